package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"golang.org/x/crypto/bcrypt"
)

// Backends validos para SESSION_STORE.
const (
	SessionStoreAuto     = "auto"
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
	SessionStoreMemory   = "memory"
)

const minSessionSecretLen = 32

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort               string        `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL            string        `env:"DATABASE_URL,required,notEmpty"`
	RedisAddr              string        `env:"REDIS_ADDR"`
	RedisPassword          string        `env:"REDIS_PASSWORD"`
	RedisDB                int           `env:"REDIS_DB" envDefault:"0"`
	SessionStore           string        `env:"SESSION_STORE" envDefault:"auto"`
	SessionSecret          string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionTTL             time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionCookieName      string        `env:"SESSION_COOKIE_NAME" envDefault:"session_id"`
	SessionCookieSecure    bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	SessionCollection      string        `env:"SESSION_COLLECTION" envDefault:"sessions"` // solo prefijo de claves en Redis
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`
	SaltRounds             int           `env:"SALT" envDefault:"12"`
	LoginRedirect          string        `env:"LOGIN_REDIRECT" envDefault:"/dashboard"`
	MigrateOnStart         bool          `env:"MIGRATE_ON_START" envDefault:"false"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rechaza combinaciones que los componentes no pueden usar.
func (c *Config) Validate() error {
	if len(c.SessionSecret) < minSessionSecretLen {
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSessionSecretLen)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.SaltRounds < bcrypt.MinCost || c.SaltRounds > bcrypt.MaxCost {
		return fmt.Errorf("SALT must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if strings.TrimSpace(c.SessionCookieName) == "" {
		return errors.New("SESSION_COOKIE_NAME is required")
	}
	if strings.TrimSpace(c.SessionCollection) == "" {
		return errors.New("SESSION_COLLECTION is required")
	}
	switch c.SessionStore {
	case SessionStoreAuto, SessionStoreRedis, SessionStorePostgres, SessionStoreMemory:
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore)
	}
	if c.SessionStore == SessionStoreRedis && c.RedisAddr == "" {
		return errors.New("SESSION_STORE=redis requires REDIS_ADDR")
	}
	if !strings.HasPrefix(c.LoginRedirect, "/") || strings.HasPrefix(c.LoginRedirect, "//") {
		return errors.New("LOGIN_REDIRECT must be a local path")
	}
	return nil
}
