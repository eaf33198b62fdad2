package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config carries all environment-driven settings for the service.
type Config struct {
	Port     string `env:"PORT, default=8080"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	LogPretty bool  `env:"LOG_PRETTY, default=false"`

	DatabaseURL string `env:"DATABASE_URL, required"`
	JWTSecret   string `env:"JWT_SECRET, required"`

	Redis RedisConfig

	WorkerCount         int           `env:"WORKER_COUNT, default=1"`
	OverdueScanInterval time.Duration `env:"OVERDUE_SCAN_INTERVAL, default=1h"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("config: WORKER_COUNT must be positive")
	}
	return &cfg, nil
}
