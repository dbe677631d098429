package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user preferences loaded from ~/.config/archtext/config.toml.
// Every field has a working zero-value default, so a missing config file is
// not an error.
type Config struct {
	// Backend is the default parser backend ("auto", "line", "grammar").
	Backend string `toml:"backend"`

	// Indent is the indentation unit used by fmt. Empty means two spaces.
	Indent string `toml:"indent"`

	// SortByType orders top-level nodes by type when formatting.
	SortByType bool `toml:"sort_by_type"`

	// Server configures the `archtext serve` command and the --server
	// flag of document commands.
	Server ServerConfig `toml:"server"`

	// Redis configures the optional Redis parse cache. Empty Addr means
	// the file cache is used instead.
	Redis RedisConfig `toml:"redis"`

	// Mongo configures the optional MongoDB document store. Empty URI
	// means documents are stored as files.
	Mongo MongoConfig `toml:"mongo"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address for `archtext serve` (default ":8080").
	Addr string `toml:"addr"`

	// URL is the default remote server for document commands.
	URL string `toml:"url"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Backend: "auto",
		Server:  ServerConfig{Addr: ":8080"},
	}
}

// LoadConfig reads configuration from path, or from the default location
// (~/.config/archtext/config.toml) when path is empty. A missing file
// yields the defaults; a malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	return cfg, nil
}
