package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix prefixes every environment override, e.g. DEPSREG_SERVER_ADDR.
const envPrefix = "DEPSREG"

// keys lists every configuration key so environment overrides apply even
// when the file does not mention them.
var keys = []string{
	"catalog.url",
	"catalog.dir",
	"catalog.ttl",
	"catalog.mongo_uri",
	"catalog.mongo_database",
	"cache.dir",
	"cache.redis_addr",
	"cache.redis_password",
	"cache.disabled",
	"server.addr",
	"server.max_file_size",
	"registry.dir",
}

// Loader reads configuration from a file and the environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader with environment bindings in place.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	_ = v.BindEnv("catalog.url", envPrefix+"_CATALOG_URL", "CDN_URL")

	return &Loader{v: v}
}

// Load reads configFile, or the default config file when empty, and applies
// environment overrides. A missing file is not an error.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		configFile = DefaultConfigFile()
	}
	l.v.SetConfigFile(configFile)
	l.v.SetConfigType("toml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) && !stderrors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}
	return cfg.WithDefaults(), nil
}

// ConfigFile returns the file the loader read, or "" before Load.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}
