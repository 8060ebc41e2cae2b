package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	SourcePostgres = "postgres"
	SourceHTTP     = "http"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	API struct {
		// Source selects where users and posts are read from: the local
		// database or a remote REST backend.
		Source  string        `env:"API_SOURCE" env-default:"postgres"`
		BaseURL string        `env:"API_BASE_URL"`
		Token   string        `env:"API_TOKEN"`
		Timeout time.Duration `env:"API_TIMEOUT" env-default:"10s"`
	}
	Telegram struct {
		Token             string `env:"TELEGRAM_TOKEN"`
		RequestsPerMinute int    `env:"TELEGRAM_REQUESTS_PER_MINUTE" env-default:"12"`
		Burst             int    `env:"TELEGRAM_BURST" env-default:"3"`
	}
	Backfill struct {
		Enabled  bool   `env:"BACKFILL_ENABLED" env-default:"true"`
		Hour     uint   `env:"BACKFILL_HOUR" env-default:"3"`
		Timezone string `env:"BACKFILL_TIMEZONE" env-default:"UTC"`
	}
	Links struct {
		// BaseURL is prepended to /detail/... paths in outgoing messages.
		BaseURL string `env:"LINKS_BASE_URL"`
	}
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// New returns the process-wide configuration, reading the environment once.
// The error lists every supported variable.
func New() (*Config, error) {
	once.Do(func() {
		c, err := Load()
		if err != nil {
			help, _ := cleanenv.GetDescription(&Config{}, nil)
			cfgErr = fmt.Errorf("failed to read configuration: %w\n%s", err, help)
			return
		}
		cfg = c
	})
	return cfg, cfgErr
}

// Load reads and validates a fresh Config from the environment.
func Load() (*Config, error) {
	c := &Config{}
	if err := cleanenv.ReadEnv(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	c.API.Source = strings.ToLower(strings.TrimSpace(c.API.Source))
	switch c.API.Source {
	case SourcePostgres:
	case SourceHTTP:
		if c.API.BaseURL == "" {
			return fmt.Errorf("API_BASE_URL is required when API_SOURCE=%s", SourceHTTP)
		}
	default:
		return fmt.Errorf("unsupported API_SOURCE %q", c.API.Source)
	}
	if c.Backfill.Hour > 23 {
		return fmt.Errorf("BACKFILL_HOUR must be between 0 and 23, got %d", c.Backfill.Hour)
	}
	if c.Telegram.RequestsPerMinute <= 0 {
		return fmt.Errorf("TELEGRAM_REQUESTS_PER_MINUTE must be positive")
	}
	return nil
}

// GetDSN returns the lib/pq style connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		dsnValue(c.Postgres.Name), dsnValue(c.Postgres.User), dsnValue(c.Postgres.Pass),
		dsnValue(c.Postgres.Host), c.Postgres.Port, dsnValue(c.Postgres.SslMode),
	)
}

// dsnValue single-quotes values lib/pq would otherwise split or misread.
func dsnValue(v string) string {
	if !strings.ContainsAny(v, " '\\") {
		return v
	}
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v) + "'"
}

// GetURL returns the postgres:// connection URL used by pgxpool.
func (c *Config) GetURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Postgres.User, c.Postgres.Pass),
		Host:     net.JoinHostPort(c.Postgres.Host, strconv.Itoa(c.Postgres.Port)),
		Path:     "/" + c.Postgres.Name,
		RawQuery: url.Values{"sslmode": {c.Postgres.SslMode}}.Encode(),
	}
	return u.String()
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
