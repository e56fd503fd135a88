package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"niti/pkg/tz"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"production"`
	Port   string `env:"PORT" envDefault:"8080"`

	DatabaseURL         string `env:"DATABASE_URL"`
	StorageDriver       string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	MigrationsAutoApply bool   `env:"MIGRATIONS_AUTO_APPLY" envDefault:"true"`
	SeedFile            string `env:"SEED_FILE"`

	Telegram TelegramConfig

	Locale   string `env:"LOCALE" envDefault:"ru"`
	Timezone string `env:"TIMEZONE" envDefault:"Europe/Moscow"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type TelegramConfig struct {
	BotToken       string        `env:"TELEGRAM_BOT_TOKEN"`
	InitDataMaxAge time.Duration `env:"TELEGRAM_INIT_DATA_MAX_AGE" envDefault:"24h"`
	DevAuthBypass  bool          `env:"DEV_AUTH_BYPASS" envDefault:"false"`
}

// Load reads an optional .env file, then the process environment, and
// validates the result.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI).
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AppEnv {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("config: APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.AppEnv)
	}

	if c.Telegram.DevAuthBypass && c.AppEnv != EnvDevelopment {
		return errors.New("config: DEV_AUTH_BYPASS is only allowed with APP_ENV=development")
	}
	if strings.TrimSpace(c.Telegram.BotToken) == "" && !c.Telegram.DevAuthBypass {
		return errors.New("config: TELEGRAM_BOT_TOKEN is required")
	}
	if c.Telegram.InitDataMaxAge <= 0 {
		return fmt.Errorf("config: TELEGRAM_INIT_DATA_MAX_AGE must be positive, got %s", c.Telegram.InitDataMaxAge)
	}

	switch c.StorageDriver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("config: DATABASE_URL is required for the postgres driver")
		}
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL: %w", err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return errors.New("config: invalid DATABASE_URL: missing scheme or host")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if _, err := tz.Load(c.Timezone); err != nil {
		return fmt.Errorf("config: invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LOG_LEVEL (debug, info, warn, error).
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: invalid LOG_LEVEL %q", c.LogLevel)
	}
	return lvl, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}
