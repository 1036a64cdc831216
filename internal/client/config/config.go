package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	StoreDurable = "durable"
	StoreSession = "session"
)

// Config holds runtime settings for the posadmin client.
//
// RequestTimeout of zero disables the per-request deadline.
type Config struct {
	APIBaseURL     string `validate:"required,url"`
	RequestTimeout time.Duration

	StoreMode string `validate:"oneof=durable session"`
	StorePath string `validate:"required_if=StoreMode durable"`

	RequireAdminRole       bool
	AutoLoginAfterRegister bool

	LogBackend string `validate:"oneof=slog zap"`
	LogLevel   string `validate:"oneof=debug info warn error"`
	LogFormat  string `validate:"oneof=text json"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:4000/api"
	c.RequestTimeout = 15 * time.Second
	c.StoreMode = StoreDurable
	c.StorePath = "posadmin.db"
	c.RequireAdminRole = true
	c.AutoLoginAfterRegister = true
	c.LogBackend = "slog"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a JSON file, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	parseEnv(cfg)
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
