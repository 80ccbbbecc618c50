// Package config provides viper-backed configuration for the CLI and server.
// Values come from hirelens.yaml, HIRELENS_* environment variables, and bound
// command-line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hirelens/hirelens/internal/fetch"
)

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Batch   BatchConfig   `mapstructure:"batch"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
	// StoreCapacity bounds the in-memory analysis store; the oldest
	// analysis is evicted when the cap is reached.
	StoreCapacity int             `mapstructure:"store-capacity"`
	RateLimit     RateLimitConfig `mapstructure:"rate-limit"`
}

// RateLimitConfig throttles API clients. Analysis runs are CPU-bound, so
// they get their own, stricter tier than plain reads.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	AnalyzePerMinute  int  `mapstructure:"analyze-per-minute"`
	AnalyzeBurst      int  `mapstructure:"analyze-burst"`
	RequestsPerMinute int  `mapstructure:"requests-per-minute"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// FetchConfig controls URL ingestion.
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user-agent"`
	// EnableBrowser allows the headless-browser fallback for pages that
	// render their content client-side.
	EnableBrowser bool `mapstructure:"enable-browser"`
}

// BatchConfig controls batch analysis runs.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:          "0.0.0.0",
			Port:          8080,
			ReadTimeout:   15 * time.Second,
			WriteTimeout:  30 * time.Second,
			StoreCapacity: 100,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				AnalyzePerMinute:  30,
				AnalyzeBurst:      5,
				RequestsPerMinute: 300,
			},
		},
		Fetch: FetchConfig{
			Timeout:   fetch.DefaultTimeout,
			UserAgent: fetch.DefaultUserAgent,
		},
		Batch: BatchConfig{
			Concurrency: 4,
		},
	}
}

// SetDefaults registers every configuration key with its default value on v.
// Registering the keys is what makes HIRELENS_* environment overrides visible
// to viper's Unmarshal.
func SetDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.read-timeout", def.Server.ReadTimeout)
	v.SetDefault("server.write-timeout", def.Server.WriteTimeout)
	v.SetDefault("server.store-capacity", def.Server.StoreCapacity)
	v.SetDefault("server.rate-limit.enabled", def.Server.RateLimit.Enabled)
	v.SetDefault("server.rate-limit.analyze-per-minute", def.Server.RateLimit.AnalyzePerMinute)
	v.SetDefault("server.rate-limit.analyze-burst", def.Server.RateLimit.AnalyzeBurst)
	v.SetDefault("server.rate-limit.requests-per-minute", def.Server.RateLimit.RequestsPerMinute)

	v.SetDefault("logging.json", def.Logging.JSON)
	v.SetDefault("logging.debug", def.Logging.Debug)

	v.SetDefault("fetch.timeout", def.Fetch.Timeout)
	v.SetDefault("fetch.user-agent", def.Fetch.UserAgent)
	v.SetDefault("fetch.enable-browser", def.Fetch.EnableBrowser)

	v.SetDefault("batch.concurrency", def.Batch.Concurrency)
}

// BindEnv wires the HIRELENS_* environment variable namespace into v, so
// server.port becomes HIRELENS_SERVER_PORT and so on.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix("HIRELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load unmarshals the viper state into a validated Config.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 {
		return fmt.Errorf("config error: 'server.read-timeout' must be non-negative")
	}
	if c.Server.WriteTimeout < 0 {
		return fmt.Errorf("config error: 'server.write-timeout' must be non-negative")
	}
	if c.Server.StoreCapacity < 1 {
		return fmt.Errorf("config error: 'server.store-capacity' must be at least 1, got %d", c.Server.StoreCapacity)
	}
	if c.Server.RateLimit.AnalyzePerMinute < 0 {
		return fmt.Errorf("config error: 'server.rate-limit.analyze-per-minute' must be non-negative")
	}
	if c.Server.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("config error: 'server.rate-limit.requests-per-minute' must be non-negative")
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("config error: 'fetch.timeout' must be non-negative")
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("config error: 'batch.concurrency' must be at least 1, got %d", c.Batch.Concurrency)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
