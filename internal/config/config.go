package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type SessionBackend string

const (
	SessionMemory    SessionBackend = "memory"
	SessionSQLite    SessionBackend = "sqlite"
	SessionFirestore SessionBackend = "firestore"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"8080"`
	ProjectID string `env:"PROJECTID"`
	Region    string `env:"REGION"`
	LogLevel  string `env:"LOGLEVEL" envDefault:"info"`
	LogFormat string `env:"LOGFORMAT" envDefault:"cloudrun"`

	BankAPIBaseURL string        `env:"BANKAPI_BASEURL" envDefault:"http://localhost:3000"`
	BankAPITimeout time.Duration `env:"BANKAPI_TIMEOUT" envDefault:"10s"`

	SessionBackend    SessionBackend `env:"SESSION_BACKEND" envDefault:"memory"`
	SessionSQLitePath string         `env:"SESSION_SQLITE_PATH" envDefault:"./data/sessions.db"`
	KMSKeyName        string         `env:"KMSKEYNAME"`
	CookieSecure      bool           `env:"COOKIE_SECURE" envDefault:"false"`

	NavigationDelay time.Duration `env:"NAVIGATION_DELAY" envDefault:"2s"`
	MountIdleTTL    time.Duration `env:"MOUNT_IDLE_TTL" envDefault:"15m"`
}

func New() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c Config) validate() error {
	switch c.SessionBackend {
	case SessionMemory, SessionSQLite:
	case SessionFirestore:
		if c.ProjectID == "" {
			return fmt.Errorf("PROJECTID is required for the firestore session backend")
		}
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	if c.NavigationDelay < 0 {
		return fmt.Errorf("NAVIGATION_DELAY must not be negative")
	}
	return nil
}
