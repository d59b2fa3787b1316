package server

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is read from the environment
type Config struct {
	Port          string        `env:"PORT, default=8080"`
	JWTSecret     string        `env:"JWT_SECRET, default=plotline-dev-secret"`
	TokenTTL      time.Duration `env:"TOKEN_TTL, default=24h"`
	AdminName     string        `env:"ADMIN_NAME, default=Admin"`
	AdminEmail    string        `env:"ADMIN_EMAIL, default=admin@plotline.local"`
	AdminPassword string        `env:"ADMIN_PASSWORD, default=admin12345"`
	BodyLimit     string        `env:"BODY_LIMIT, default=20M"`
}

// LoadConfig reads the server settings from the environment
func LoadConfig(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}
