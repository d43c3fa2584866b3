// Package config reads the bot configuration from the environment.
// A .env file in the working directory is loaded by main before Load is called.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sosodev/duration"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

type (
	Config struct {
		BotToken string   `env:"BOT_TOKEN"`
		Prefix   string   `env:"PREFIX" envDefault:"."`
		Owners   []string `env:"OWNERS" envSeparator:","`
		Premium  []string `env:"PREMIUM_USERS" envSeparator:","`
		GitHub   string   `env:"GITHUB_URL"`

		// ISO 8601, e.g. "PT30S". Empty means plugins may run unbounded.
		CommandTimeoutRaw string `env:"COMMAND_TIMEOUT"`
		CommandTimeout    time.Duration

		Bot      BotConfig
		Antispam AntispamConfig
		Database DatabaseConfig
	}

	BotConfig struct {
		Name   string `env:"BOT_NAME" envDefault:"Raven Bot"`
		Footer string `env:"BOT_FOOTER" envDefault:"© Raven Bot"`
	}

	AntispamConfig struct {
		Rate  float64 `env:"ANTISPAM_RATE" envDefault:"1"` // messages per second
		Burst int     `env:"ANTISPAM_BURST" envDefault:"5"`
	}

	DatabaseConfig struct {
		Driver          string `env:"DB_DRIVER" envDefault:"mysql"`
		Host            string `env:"MYSQL_HOST" envDefault:"localhost"`
		Port            string `env:"MYSQL_PORT" envDefault:"3306"`
		User            string `env:"MYSQL_USER"`
		Password        string `env:"MYSQL_PASSWORD"`
		Name            string `env:"MYSQL_DB"`
		TLS             string `env:"MYSQL_TLS" envDefault:"false"`
		SQLitePath      string `env:"SQLITE_PATH" envDefault:"raven.db"`
		IgnoreMigration bool   `env:"IGNORE_SQL_MIGRATION"`
	}
)

var ErrMissingToken = errors.New("BOT_TOKEN is not set")

// Load parses the process environment.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, err
	}

	cfg.Prefix = strings.TrimSpace(cfg.Prefix)
	cfg.Owners = trimAll(cfg.Owners)
	cfg.Premium = trimAll(cfg.Premium)

	if raw := strings.TrimSpace(cfg.CommandTimeoutRaw); raw != "" {
		d, err := duration.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid COMMAND_TIMEOUT %q: %w", raw, err)
		}
		cfg.CommandTimeout = d.ToTimeDuration()
	}

	switch cfg.Database.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	if cfg.Antispam.Rate <= 0 {
		return nil, fmt.Errorf("ANTISPAM_RATE must be positive, got %v", cfg.Antispam.Rate)
	}
	if cfg.Antispam.Burst < 1 {
		cfg.Antispam.Burst = 1
	}

	return cfg, nil
}

// Validate checks settings only needed when actually connecting to a transport.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return ErrMissingToken
	}
	return nil
}

// DSN returns the data source name for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", d.SQLitePath)
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&tls=%s",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
		d.TLS,
	)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
