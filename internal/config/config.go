// Package config loads depsreg settings from a TOML file and the
// environment.
//
// Precedence, highest first: DEPSREG_* environment variables (CDN_URL is
// also accepted for catalog.url), the config file, built-in defaults.
// Command-line flags are applied on top by the CLI.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Deps-Tech/deps-registry/pkg/catalog"
	"github.com/Deps-Tech/deps-registry/pkg/store"
)

const (
	// AppName names the config and cache directories.
	AppName = "depsreg"

	// DefaultServerAddr is the listen address of depsreg serve.
	DefaultServerAddr = ":8080"

	// DefaultMaxFileSize is the upload limit per file.
	DefaultMaxFileSize int64 = 10 << 20
)

// Config is the full depsreg configuration.
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Server   ServerConfig   `mapstructure:"server"`
	Registry RegistryConfig `mapstructure:"registry"`
}

// CatalogConfig selects where dependency versions come from. When Dir or
// MongoURI are set they are consulted before the CDN index.
type CatalogConfig struct {
	URL           string        `mapstructure:"url"`
	Dir           string        `mapstructure:"dir"`
	TTL           time.Duration `mapstructure:"ttl"`
	MongoURI      string        `mapstructure:"mongo_uri"`
	MongoDatabase string        `mapstructure:"mongo_database"`
}

// CacheConfig configures the HTTP response cache.
type CacheConfig struct {
	Dir string `mapstructure:"dir"`
	// RedisAddr selects Redis instead of the file cache.
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	Disabled      bool   `mapstructure:"disabled"`
}

// ServerConfig configures the HTTP ingestion front end.
type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
}

// RegistryConfig locates the local registry tree.
type RegistryConfig struct {
	Dir string `mapstructure:"dir"`
}

// WithDefaults fills unset fields and returns c.
func (c *Config) WithDefaults() *Config {
	if c.Catalog.URL == "" {
		c.Catalog.URL = catalog.DefaultIndexURL
	}
	if c.Catalog.TTL <= 0 {
		c.Catalog.TTL = catalog.DefaultTTL
	}
	if c.Catalog.MongoDatabase == "" {
		c.Catalog.MongoDatabase = store.DefaultDatabase
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = DefaultCacheDir()
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.MaxFileSize <= 0 {
		c.Server.MaxFileSize = DefaultMaxFileSize
	}
	if c.Registry.Dir == "" {
		c.Registry.Dir = "."
	}
	return c
}

// DefaultConfigFile returns $XDG_CONFIG_HOME/depsreg/config.toml, falling
// back to ~/.config.
func DefaultConfigFile() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), AppName, "config.toml")
}

// DefaultCacheDir returns $XDG_CACHE_HOME/depsreg, falling back to ~/.cache.
func DefaultCacheDir() string {
	return filepath.Join(xdgDir("XDG_CACHE_HOME", ".cache"), AppName)
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), fallback)
	}
	return filepath.Join(home, fallback)
}
