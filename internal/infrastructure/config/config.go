package config

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// JWTConfig configures the token issuer/validator. Rotating Secret
// invalidates every outstanding token; with the short default TTL that is
// the accepted key-rotation contract.
type JWTConfig struct {
	Secret                string        `env:"JWT_SECRET"`
	Issuer                string        `env:"JWT_ISSUER,   default=pages-api"`
	Audience              string        `env:"JWT_AUDIENCE, default=pages-clients"`
	EnforceIssuerAudience bool          `env:"JWT_ENFORCE_ISSUER_AUDIENCE, default=false"`
	TTL                   time.Duration `env:"JWT_TTL, default=30m"`
}

type AuthConfig struct {
	// DefaultPolicy governs routes with no attached requirement:
	// "deny" (hardened) or "allow" (permissive demo profile).
	DefaultPolicy string `env:"AUTHZ_DEFAULT_POLICY, default=deny"`

	// Bootstrap administrator, seeded once at startup.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Login throttling: lockout after MaxLoginFailures within LockoutWindow.
	MaxLoginFailures int           `env:"MAX_LOGIN_FAILURES, default=10"`
	LockoutWindow    time.Duration `env:"LOCKOUT_WINDOW,     default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=pages_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig and
// rejects incomplete configuration. A missing signing key or bootstrap admin
// must stop the service before it accepts traffic.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.Auth.AdminEmail == "" || c.Auth.AdminPassword == "" {
		return errors.New("config: ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}
	if c.Auth.DefaultPolicy != "deny" && c.Auth.DefaultPolicy != "allow" {
		return errors.New("config: AUTHZ_DEFAULT_POLICY must be \"deny\" or \"allow\"")
	}
	return nil
}
