package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is everything the server reads from the environment. Ping and
// pong settings tune how fast the transport reclaims dead connections;
// they never reach the session core.
type Config struct {
	Port              string        `env:"PORT" envDefault:"8000"`
	PingInterval      time.Duration `env:"PING_INTERVAL" envDefault:"30s"`
	PongTimeout       time.Duration `env:"PONG_TIMEOUT" envDefault:"60s"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL" envDefault:"5s"`
	LogFile           string        `env:"LOG_FILE" envDefault:"app.log"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
