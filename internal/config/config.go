// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Supported values for STORE_BACKEND.
const (
	BackendFile   = "file"
	BackendS3     = "s3"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Static errors for configuration validation.
var (
	// ErrJSearchAPIKeyRequired is returned when JSEARCH_API_KEY is not set.
	ErrJSearchAPIKeyRequired = errors.New("config: JSEARCH_API_KEY is required")
	// ErrUnknownBackend is returned when STORE_BACKEND has an unsupported value.
	ErrUnknownBackend = errors.New("config: STORE_BACKEND must be one of file, s3, redis, memory")
	// ErrS3SettingsRequired is returned when the s3 backend lacks bucket or region.
	ErrS3SettingsRequired = errors.New("config: S3_BUCKET and S3_REGION are required for the s3 backend")
	// ErrRedisURLRequired is returned when the redis backend lacks REDIS_URL.
	ErrRedisURLRequired = errors.New("config: REDIS_URL is required for the redis backend")
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	Port           int      `env:"PORT, default=8080" json:"port"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS, default=*" json:"allowed_origins"`

	// Storage settings
	StoreBackend  string `env:"STORE_BACKEND, default=file" json:"store_backend"`
	DataDir       string `env:"DATA_DIR, default=/tmp/jobfinder" json:"data_dir"`
	CollectionKey string `env:"COLLECTION_KEY, default=savedJobs" json:"collection_key"`

	// S3 backend settings
	S3Bucket           string `env:"S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"S3_REGION" json:"s3_region,omitempty"`
	S3Endpoint         string `env:"S3_ENDPOINT" json:"s3_endpoint,omitempty"`
	S3Prefix           string `env:"S3_PREFIX" json:"s3_prefix,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Redis backend settings
	RedisURL    string `env:"REDIS_URL" json:"-"` // May carry a password
	RedisPrefix string `env:"REDIS_PREFIX, default=jobfinder" json:"redis_prefix"`

	// Job listing API settings
	JSearchAPIKey  string `env:"JSEARCH_API_KEY, required" json:"-"` // Masked in JSON
	JSearchBaseURL string `env:"JSEARCH_BASE_URL, default=https://jsearch.p.rapidapi.com" json:"jsearch_base_url"`
	JSearchHost    string `env:"JSEARCH_HOST, default=jsearch.p.rapidapi.com" json:"jsearch_host"`
	PopularQuery   string `env:"POPULAR_QUERY, default=React developer" json:"popular_query"`
	NearbyQuery    string `env:"NEARBY_QUERY, default=React Native developer" json:"nearby_query"`

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// Load reads configuration from environment variables using go-envconfig
// and validates backend-specific settings.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		// Map envconfig errors to our domain errors for required fields
		if strings.Contains(err.Error(), "JSEARCH_API_KEY") {
			return nil, ErrJSearchAPIKeyRequired
		}
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() error {
	if c.JSearchAPIKey == "" {
		return ErrJSearchAPIKeyRequired
	}

	switch strings.ToLower(c.StoreBackend) {
	case BackendFile, BackendMemory:
	case BackendS3:
		if c.S3Bucket == "" || c.S3Region == "" {
			return ErrS3SettingsRequired
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return ErrRedisURLRequired
		}
	default:
		return fmt.Errorf("%w (got %q)", ErrUnknownBackend, c.StoreBackend)
	}
	return nil
}

// Backend returns the normalized STORE_BACKEND value.
func (c *Config) Backend() string {
	return strings.ToLower(c.StoreBackend)
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for production.
// Otherwise, it outputs human-readable text logs.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(c.LogLevel)}

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive values masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Port: %d, StoreBackend: %s, DataDir: %s, CollectionKey: %s, S3Bucket: %s, S3Region: %s, S3Prefix: %s, RedisPrefix: %s, JSearchBaseURL: %s, LogFormat: %s, LogLevel: %s}",
		c.Port,
		c.StoreBackend,
		c.DataDir,
		c.CollectionKey,
		c.S3Bucket,
		c.S3Region,
		c.S3Prefix,
		c.RedisPrefix,
		c.JSearchBaseURL,
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
