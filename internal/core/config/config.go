// Package config provides configuration management for the catalog services.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds listener settings for the gRPC and HTTP surfaces.
type ServerConfig struct {
	Host           string
	GRPCPort       int
	HTTPPort       int
	RequestTimeout time.Duration
}

// DatabaseConfig selects the store backend. The URL scheme picks it:
// sqlite:// and postgres:// use the SQL store, mongodb:// and mongodb+srv://
// the document store (Name is the mongo database).
type DatabaseConfig struct {
	URL  string
	Name string
}

// CollectionsConfig bounds collection materialization.
type CollectionsConfig struct {
	ItemLimit int
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string
	Format string
}

// Config is the full service configuration.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Collections CollectionsConfig
	Log         LogConfig
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			GRPCPort:       50051,
			HTTPPort:       8080,
			RequestTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			URL:  "sqlite://./data/novaorizon.db",
			Name: "novaorizon",
		},
		Collections: CollectionsConfig{
			ItemLimit: 50,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// IsDocumentStore reports whether the database URL selects MongoDB.
func (c DatabaseConfig) IsDocumentStore() bool {
	u, err := url.Parse(c.URL)
	if err != nil {
		return false
	}
	return u.Scheme == "mongodb" || u.Scheme == "mongodb+srv"
}

// LoadDotEnv loads KEY=VALUE pairs from the given .env files into the
// process environment without overriding variables already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// hasCredentials reports whether a connection URL embeds a password.
func hasCredentials(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return false
	}
	_, ok := u.User.Password()
	return ok
}
