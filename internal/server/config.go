package server

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config - параметры HTTP-оболочки.
type Config struct {
	Port        string `env:"CD_PORT" envDefault:"8080"`
	DebugRoutes bool   `env:"CD_DEBUG_ROUTES"`
	// ReplayDir - куда сохранять журналы закрытых сессий. Пусто - не сохранять.
	ReplayDir string `env:"CD_REPLAY_DIR"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse server env: %w", err)
	}
	return cfg, nil
}
