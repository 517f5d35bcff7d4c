package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/mcguiretech/truapi/internal/common/constants"
	commonerrors "github.com/mcguiretech/truapi/internal/common/errors"
)

type Environment string

const (
	EnvTest        Environment = "test"
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

type Config struct {
	Environment    string        `env:"APP_ENVIRONMENT" envDefault:"development"`
	HTTPPort       string        `env:"APP_HTTP_PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"APP_REQUEST_TIMEOUT" envDefault:"5s"`

	DatabaseURL   string `env:"DATABASE_URL"`
	SQLitePath    string `env:"APP_SQLITE_PATH" envDefault:"users.db"`
	MigrationsDir string `env:"APP_MIGRATIONS_DIR" envDefault:"migrations"`

	JWTSecret string `env:"AUTH_JWT_SECRET"`

	LogDir   string `env:"LOG_DIR"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration once at process start. A .env file in the
// working directory is loaded first when present (development convenience).
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < constants.JWTSecretMinLength {
		return Config{}, commonerrors.ErrInvalidJWTSecret
	}

	return cfg, nil
}

// NormalizedEnvironment folds the environment aliases the deployment scripts
// use (dev, prod, testing) onto the canonical names.
func (c Config) NormalizedEnvironment() Environment {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "test", "testing":
		return EnvTest
	case "dev", "development":
		return EnvDevelopment
	case "prod", "production":
		return EnvProduction
	default:
		return Environment(strings.ToLower(strings.TrimSpace(c.Environment)))
	}
}
