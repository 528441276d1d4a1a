package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	TokenSecret    string `env:"TOKEN_SECRET"`               // Required: HS256 signing secret
	Issuer         string `env:"ISSUER" envDefault:"cortex"` // Issuer claim for tokens
	BootstrapToken string `env:"BOOTSTRAP_TOKEN"`            // Optional: if set, enables POST /api/bootstrap

	DatabaseFile string `env:"DATABASE_FILE" envDefault:"cortex.db"`
	PepperFile   string `env:"PEPPER_FILE" envDefault:"pepper"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Port      int    `env:"PORT" envDefault:"8080"`

	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig reads configuration from the environment, with an optional .env
// file layered underneath for local development.
func LoadConfig() (Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Sanitize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Sanitize validates the loaded configuration. The signing secret is the one
// value the service refuses to run without.
func (c *Config) Sanitize() error {
	if c.TokenSecret == "" {
		return errors.New("TOKEN_SECRET must be set")
	}
	if len(c.TokenSecret) < 16 {
		return errors.New("TOKEN_SECRET must be at least 16 bytes")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d is out of range", c.Port)
	}
	if c.ShutdownGracePeriod <= 0 {
		c.ShutdownGracePeriod = 10 * time.Second
	}
	return nil
}
