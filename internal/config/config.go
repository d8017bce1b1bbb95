package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

var validate = validator.New()

// Config holds all client configuration.
type Config struct {
	Environment EnvironmentConfig `yaml:"environment" toml:"environment"`
	Transport   TransportConfig   `yaml:"transport" toml:"transport"`
	Logging     LogConfig         `yaml:"logging" toml:"logging"`
	Debug       bool              `envconfig:"PNETWORK_DEBUG" default:"false" yaml:"debug" toml:"debug"`
}

// EnvironmentConfig describes the API being called.
type EnvironmentConfig struct {
	BaseURL        string  `envconfig:"PNETWORK_BASE_URL" yaml:"base_url" toml:"base_url" validate:"omitempty,url"`
	DefaultHeaders Headers `envconfig:"PNETWORK_DEFAULT_HEADERS" yaml:"default_headers" toml:"default_headers"`
}

// TransportConfig tunes the default resty transport.
type TransportConfig struct {
	Timeout      Duration `envconfig:"PNETWORK_TIMEOUT" default:"30s" yaml:"timeout" toml:"timeout" validate:"gte=0"`
	UserAgent    string   `envconfig:"PNETWORK_USER_AGENT" default:"pnetwork/1.0" yaml:"user_agent" toml:"user_agent"`
	RateLimitRPS float64  `envconfig:"PNETWORK_RATE_LIMIT_RPS" default:"0" yaml:"rate_limit_rps" toml:"rate_limit_rps" validate:"gte=0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"PNETWORK_LOG_LEVEL" default:"info" yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	Development bool   `envconfig:"PNETWORK_LOG_DEV" default:"false" yaml:"development" toml:"development"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// LoadFile reads configuration from a YAML or TOML file. Fields missing from
// the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Environment: EnvironmentConfig{
			DefaultHeaders: Headers{},
		},
		Transport: TransportConfig{
			Timeout:   Duration(30 * time.Second),
			UserAgent: "pnetwork/1.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
