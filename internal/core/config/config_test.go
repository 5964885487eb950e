package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig("", nil)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Server.Host != "0.0.0.0" {
			t.Errorf("expected host 0.0.0.0, got %s", cfg.Server.Host)
		}
		if cfg.Server.GRPCPort != 50051 {
			t.Errorf("expected grpc_port 50051, got %d", cfg.Server.GRPCPort)
		}
		if cfg.Server.HTTPPort != 8080 {
			t.Errorf("expected http_port 8080, got %d", cfg.Server.HTTPPort)
		}
		if cfg.Server.RequestTimeout != 30*time.Second {
			t.Errorf("expected timeout 30s, got %v", cfg.Server.RequestTimeout)
		}
		if cfg.Collections.ItemLimit != 50 {
			t.Errorf("expected item_limit 50, got %d", cfg.Collections.ItemLimit)
		}
		if cfg.Database.Name != "novaorizon" {
			t.Errorf("expected database name novaorizon, got %s", cfg.Database.Name)
		}
	})

	t.Run("environment override", func(t *testing.T) {
		t.Setenv("NOVA_SERVER_GRPC_PORT", "9999")
		t.Setenv("NOVA_SERVER_HOST", "127.0.0.1")
		t.Setenv("NOVA_COLLECTIONS_ITEM_LIMIT", "12")

		cfg, err := LoadConfig("", nil)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Server.GRPCPort != 9999 {
			t.Errorf("expected grpc_port 9999, got %d", cfg.Server.GRPCPort)
		}
		if cfg.Server.Host != "127.0.0.1" {
			t.Errorf("expected host 127.0.0.1, got %s", cfg.Server.Host)
		}
		if cfg.Collections.ItemLimit != 12 {
			t.Errorf("expected item_limit 12, got %d", cfg.Collections.ItemLimit)
		}
	})

	t.Run("environment overrides config file", func(t *testing.T) {
		t.Setenv("NOVA_SERVER_HTTP_PORT", "8081")
		path := writeConfig(t, "server:\n  http_port: 9090\n  request_timeout: 5s\n")

		cfg, err := LoadConfig(path, nil)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Server.HTTPPort != 8081 {
			t.Errorf("expected http_port 8081, got %d", cfg.Server.HTTPPort)
		}
		if cfg.Server.RequestTimeout != 5*time.Second {
			t.Errorf("expected timeout from file 5s, got %v", cfg.Server.RequestTimeout)
		}
	})

	t.Run("flags override environment", func(t *testing.T) {
		t.Setenv("NOVA_LOG_LEVEL", "warn")
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("log-level", "info", "")
		flags.String("db-url", "", "")
		if err := flags.Parse([]string{"--log-level=debug"}); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig("", flags)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("expected log level debug, got %s", cfg.Log.Level)
		}
		// Unset flags leave lower layers alone
		if cfg.Database.URL != DefaultConfig().Database.URL {
			t.Errorf("expected default database url, got %s", cfg.Database.URL)
		}
	})

	t.Run("invalid port range", func(t *testing.T) {
		t.Setenv("NOVA_SERVER_GRPC_PORT", "70000")
		if _, err := LoadConfig("", nil); err == nil {
			t.Error("expected error for port > 65535")
		}
	})

	t.Run("same port for both listeners", func(t *testing.T) {
		t.Setenv("NOVA_SERVER_GRPC_PORT", "8080")
		if _, err := LoadConfig("", nil); err == nil {
			t.Error("expected error for shared port")
		}
	})

	t.Run("invalid item limit", func(t *testing.T) {
		t.Setenv("NOVA_COLLECTIONS_ITEM_LIMIT", "0")
		if _, err := LoadConfig("", nil); err == nil {
			t.Error("expected error for zero item_limit")
		}
	})

	t.Run("invalid log format", func(t *testing.T) {
		t.Setenv("NOVA_LOG_FORMAT", "xml")
		if _, err := LoadConfig("", nil); err == nil {
			t.Error("expected error for unknown log format")
		}
	})
}

func TestLoadConfig_RejectsCredentialsInFile(t *testing.T) {
	const want = "database credentials not allowed in config files (use NOVA_DATABASE_URL environment variable)"

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"password in url", "database:\n  url: postgres://app:hunter2@db:5432/catalog\n", true},
		{"password key", "database:\n  password: hunter2\n", true},
		{"url without password", "database:\n  url: postgres://db:5432/catalog?sslmode=disable\n", false},
		{"user without password", "database:\n  url: mongodb://reader@mongo:27017\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content), nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for credentials in config file")
				}
				if err.Error() != want {
					t.Fatalf("wrong error message: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig() error = %v, want nil", err)
			}
		})
	}
}

func TestLoadConfig_CredentialsFromEnvironment(t *testing.T) {
	t.Setenv("NOVA_DATABASE_URL", "postgres://app:hunter2@db:5432/catalog")
	cfg, err := LoadConfig("", nil)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil", err)
	}
	if cfg.Database.URL != "postgres://app:hunter2@db:5432/catalog" {
		t.Errorf("unexpected url %s", cfg.Database.URL)
	}
}

func TestDatabaseConfig_IsDocumentStore(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"mongodb://localhost:27017", true},
		{"mongodb+srv://cluster.example.net", true},
		{"sqlite://./data/test.db", false},
		{"postgres://localhost/catalog", false},
	}
	for _, tt := range tests {
		if got := (DatabaseConfig{URL: tt.url}).IsDocumentStore(); got != tt.want {
			t.Errorf("IsDocumentStore(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("NOVA_TEST_DOTENV_KEY=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("NOVA_TEST_DOTENV_KEY") })

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v, want nil", err)
	}
	if got := os.Getenv("NOVA_TEST_DOTENV_KEY"); got != "from-file" {
		t.Errorf("expected from-file, got %q", got)
	}
}
