// Package config loads runtime configuration for the schema service from
// defaults, an optional YAML file, and SCHEMA_-prefixed environment
// variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config contains runtime configuration for the schema service.
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	NATS    NATSConfig    `yaml:"nats" mapstructure:"nats"`
	Redis   RedisConfig   `yaml:"redis" mapstructure:"redis"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port                int `yaml:"port" mapstructure:"port"`
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`
	IdleTimeoutSeconds  int `yaml:"idle_timeout_seconds" mapstructure:"idle_timeout_seconds"`
}

// ReadTimeout returns the read timeout as a duration.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the write timeout as a duration.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// IdleTimeout returns the idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSeconds) * time.Second
}

// CatalogConfig locates the catalog export the service binds to. File wins
// when set; otherwise Dir and Version name a <dir>/<version>.json export,
// and an empty Version selects the newest export in Dir.
type CatalogConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Version string `yaml:"version" mapstructure:"version"`
	File    string `yaml:"file" mapstructure:"file"`
}

// NATSConfig contains NATS connection settings for the message bus bridge.
type NATSConfig struct {
	URL                  string `yaml:"url" mapstructure:"url"`
	Enabled              bool   `yaml:"enabled" mapstructure:"enabled"`
	MaxReconnects        int    `yaml:"max_reconnects" mapstructure:"max_reconnects"`
	ReconnectWaitSeconds int    `yaml:"reconnect_wait_seconds" mapstructure:"reconnect_wait_seconds"`
}

// ReconnectWait returns the reconnect wait as a duration.
func (n NATSConfig) ReconnectWait() time.Duration {
	return time.Duration(n.ReconnectWaitSeconds) * time.Second
}

// RedisConfig contains the schema cache settings.
type RedisConfig struct {
	URL             string `yaml:"url" mapstructure:"url"`
	Enabled         bool   `yaml:"enabled" mapstructure:"enabled"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds" mapstructure:"cache_ttl_seconds"`
}

// CacheTTL returns the cache TTL as a duration.
func (r RedisConfig) CacheTTL() time.Duration {
	return time.Duration(r.CacheTTLSeconds) * time.Second
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
}

// Load reads configuration from the given file path (or the default search
// paths when empty), environment variables, and built-in defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8083)
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 15)
	v.SetDefault("server.idle_timeout_seconds", 60)

	v.SetDefault("catalog.dir", "./catalogs")
	v.SetDefault("catalog.version", "")
	v.SetDefault("catalog.file", "")

	v.SetDefault("nats.url", "nats://nats:4222")
	v.SetDefault("nats.enabled", true)
	v.SetDefault("nats.max_reconnects", -1)
	v.SetDefault("nats.reconnect_wait_seconds", 2)

	v.SetDefault("redis.url", "redis://redis:6379/0")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.cache_ttl_seconds", 300)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/telhawk/schema")
	}

	v.SetEnvPrefix("SCHEMA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env cover it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
