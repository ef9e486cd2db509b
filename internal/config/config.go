// Package config loads stripe-orient settings from defaults, an optional
// config file, and STRIPE_ORIENT_* environment variables, in increasing order
// of precedence.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ironsheep/stripe-orient/internal/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STRIPE_ORIENT"

// HTTPConfig holds the HTTP transport settings.
type HTTPConfig struct {
	Addr           string `json:"addr" mapstructure:"addr"`
	MaxUploadBytes int64  `json:"maxUploadBytes" mapstructure:"maxUploadBytes"`
}

// LimitsConfig bounds the work a single image may cause.
type LimitsConfig struct {
	MaxPixels int `json:"maxPixels" mapstructure:"maxPixels"`
}

// ScanConfig tunes the marker scan.
type ScanConfig struct {
	Parallel bool `json:"parallel" mapstructure:"parallel"`
}

// Config is the full set of settings.
type Config struct {
	LogLevel  string       `json:"logLevel" mapstructure:"logLevel"`
	LogFormat string       `json:"logFormat" mapstructure:"logFormat"`
	HTTP      HTTPConfig   `json:"http" mapstructure:"http"`
	Limits    LimitsConfig `json:"limits" mapstructure:"limits"`
	Scan      ScanConfig   `json:"scan" mapstructure:"scan"`
}

// ConsoleLogs reports whether logs should be human-readable rather than JSON.
func (c *Config) ConsoleLogs() bool {
	return c.LogFormat != "json"
}

// envNames maps config keys to their environment variables.
var envNames = map[string]string{
	"logLevel":            EnvPrefix + "_LOG_LEVEL",
	"logFormat":           EnvPrefix + "_LOG_FORMAT",
	"http.addr":           EnvPrefix + "_HTTP_ADDR",
	"http.maxUploadBytes": EnvPrefix + "_HTTP_MAX_UPLOAD_BYTES",
	"limits.maxPixels":    EnvPrefix + "_MAX_PIXELS",
	"scan.parallel":       EnvPrefix + "_SCAN_PARALLEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFormat", "console")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.maxUploadBytes", 10<<20)

	v.SetDefault("limits.maxPixels", 40_000_000)

	v.SetDefault("scan.parallel", true)
}

// Default returns the built-in settings, ignoring files and environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load resolves the settings. path names an optional config file whose
// format follows its extension (.yaml, .yml, .json, .toml); an empty path
// skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envNames {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the transports cannot run with.
func (c *Config) Validate() error {
	if _, ok := logging.LookupLevel(c.LogLevel); !ok {
		return fmt.Errorf("invalid logLevel %q: want trace, debug, info, warn, error or off", c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logFormat %q: want console or json", c.LogFormat)
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr must not be empty")
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		return fmt.Errorf("http.maxUploadBytes must be positive, got %d", c.HTTP.MaxUploadBytes)
	}
	if c.Limits.MaxPixels < 0 {
		return fmt.Errorf("limits.maxPixels must not be negative, got %d", c.Limits.MaxPixels)
	}
	return nil
}
