// Package config loads tool configuration from environment variables and
// an optional YAML config file.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all settings for the history fetcher. Every field has a
// working default so the tool runs with no configuration at all.
type Config struct {
	// Where cached datasets and rendered CSVs go
	CacheDir  string `mapstructure:"cache_dir"`
	OutputDir string `mapstructure:"output_dir"`

	// Provider endpoint (configurable for testing)
	YahooBaseURL   string        `mapstructure:"yahoo_base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// Retry policy around the remote call
	MaxAttempts       int           `mapstructure:"max_attempts"`
	BaseDelay         time.Duration `mapstructure:"base_delay"`
	MaxDelay          time.Duration `mapstructure:"max_delay"`
	BackoffMultiplier float64       `mapstructure:"backoff_multiplier"`

	// Outbound request throttle; zero disables limiting
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Load reads configuration from environment variables and an optional
// config file. Environment variables take precedence over file values.
//
// Environment variables (all optional):
//   - HISTFETCH_CACHE_DIR
//   - HISTFETCH_OUTPUT_DIR
//   - HISTFETCH_YAHOO_BASE_URL
//   - HISTFETCH_REQUEST_TIMEOUT
//   - HISTFETCH_MAX_ATTEMPTS
//   - HISTFETCH_BASE_DELAY
//   - HISTFETCH_MAX_DELAY
//   - HISTFETCH_BACKOFF_MULTIPLIER
//   - HISTFETCH_REQUESTS_PER_SECOND
//   - HISTFETCH_LOG_LEVEL
//   - HISTFETCH_LOG_FORMAT
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("cache_dir", "cache/yahoo")
	v.SetDefault("output_dir", ".")
	v.SetDefault("yahoo_base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("max_attempts", 5)
	v.SetDefault("base_delay", 3*time.Second)
	v.SetDefault("max_delay", 60*time.Second)
	v.SetDefault("backoff_multiplier", 2.0)
	v.SetDefault("requests_per_second", 2.0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.histfetch")
	_ = v.ReadInConfig()

	v.BindEnv("cache_dir", "HISTFETCH_CACHE_DIR")
	v.BindEnv("output_dir", "HISTFETCH_OUTPUT_DIR")
	v.BindEnv("yahoo_base_url", "HISTFETCH_YAHOO_BASE_URL")
	v.BindEnv("request_timeout", "HISTFETCH_REQUEST_TIMEOUT")
	v.BindEnv("max_attempts", "HISTFETCH_MAX_ATTEMPTS")
	v.BindEnv("base_delay", "HISTFETCH_BASE_DELAY")
	v.BindEnv("max_delay", "HISTFETCH_MAX_DELAY")
	v.BindEnv("backoff_multiplier", "HISTFETCH_BACKOFF_MULTIPLIER")
	v.BindEnv("requests_per_second", "HISTFETCH_REQUESTS_PER_SECOND")
	v.BindEnv("log_level", "HISTFETCH_LOG_LEVEL")
	v.BindEnv("log_format", "HISTFETCH_LOG_FORMAT")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.CacheDir == "" {
		return fmt.Errorf("cache_dir cannot be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	if c.YahooBaseURL == "" {
		return fmt.Errorf("yahoo_base_url cannot be empty")
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts cannot be negative, got %d", c.MaxAttempts)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second cannot be negative, got %g", c.RequestsPerSecond)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}
