package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all runtime settings, read from environment variables.
//
// JWT_SECRET defaults to the value the original deployment shipped with so
// existing tokens keep verifying; override it in any real environment.
type Config struct {
	Port      string        `env:"PORT,       default=3001"`
	Env       string        `env:"ENV,        default=development"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	JWTSecret string        `env:"JWT_SECRET, default=your-super-secret-jwt-key"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`

	SQLite SQLiteConfig
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=data.db"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
