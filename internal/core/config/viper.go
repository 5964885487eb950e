package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps persistent CLI flags onto config keys.
var flagKeys = map[string]string{
	"db-url":     "database.url",
	"log-level":  "log.level",
	"log-format": "log.format",
	"host":       "server.host",
	"grpc-port":  "server.grpc_port",
	"http-port":  "server.http_port",
}

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence. flags may be
// nil; only flags the user actually set take part.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set defaults matching DefaultConfig
	d := DefaultConfig()
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.grpc_port", d.Server.GRPCPort)
	v.SetDefault("server.http_port", d.Server.HTTPPort)
	v.SetDefault("server.request_timeout", d.Server.RequestTimeout.String())
	v.SetDefault("database.url", d.Database.URL)
	v.SetDefault("database.name", d.Database.Name)
	v.SetDefault("collections.item_limit", d.Collections.ItemLimit)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Security check before the environment is bound: only the file's
		// own values are inspected.
		if err := validateNoSecretsInConfig(v); err != nil {
			return nil, err
		}
	}

	// Bind environment variables with NOVA_ prefix
	v.SetEnvPrefix("NOVA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           v.GetString("server.host"),
			GRPCPort:       v.GetInt("server.grpc_port"),
			HTTPPort:       v.GetInt("server.http_port"),
			RequestTimeout: v.GetDuration("server.request_timeout"),
		},
		Database: DatabaseConfig{
			URL:  v.GetString("database.url"),
			Name: v.GetString("database.name"),
		},
		Collections: CollectionsConfig{
			ItemLimit: v.GetInt("collections.item_limit"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks port ranges and positive values for timeout and limits.
func validateConfig(cfg *Config) error {
	if cfg.Server.GRPCPort <= 0 || cfg.Server.GRPCPort > 65535 {
		return fmt.Errorf("grpc_port must be between 1 and 65535, got %d", cfg.Server.GRPCPort)
	}
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("http_port must be between 1 and 65535, got %d", cfg.Server.HTTPPort)
	}
	if cfg.Server.GRPCPort == cfg.Server.HTTPPort {
		return fmt.Errorf("grpc_port and http_port must differ, both are %d", cfg.Server.GRPCPort)
	}
	if cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", cfg.Server.RequestTimeout)
	}
	if cfg.Collections.ItemLimit <= 0 {
		return fmt.Errorf("item_limit must be positive, got %d", cfg.Collections.ItemLimit)
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("database.url must be set")
	}
	if cfg.Database.IsDocumentStore() && cfg.Database.Name == "" {
		return fmt.Errorf("database.name must be set for mongodb")
	}
	switch cfg.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", cfg.Log.Format)
	}
	return nil
}

// validateNoSecretsInConfig enforces environment-only credentials (12-factor principle).
func validateNoSecretsInConfig(v *viper.Viper) error {
	if v.IsSet("database.password") {
		return fmt.Errorf("database credentials not allowed in config files (use NOVA_DATABASE_URL environment variable)")
	}
	if v.InConfig("database.url") && hasCredentials(v.GetString("database.url")) {
		return fmt.Errorf("database credentials not allowed in config files (use NOVA_DATABASE_URL environment variable)")
	}
	return nil
}
