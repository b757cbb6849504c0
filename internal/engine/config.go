package engine

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/pkg/api"
	"github.com/johnmogi/dungeon-crawler/pkg/dungeon"
)

// Config хранит параметры запуска сессии
type Config struct {
	// Seed - мастер-зерно. От него зависят карта, спавн и решения монстров.
	Seed         int64               `env:"DUNGEON_SEED"`
	Width        int                 `env:"DUNGEON_WIDTH"`
	Height       int                 `env:"DUNGEON_HEIGHT"`
	LevelIndex   int                 `env:"DUNGEON_LEVEL"`
	WinCondition domain.WinCondition `env:"DUNGEON_WIN_CONDITION"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:         time.Now().UnixNano(),
		Width:        dungeon.MapWidth,
		Height:       dungeon.MapHeight,
		LevelIndex:   1,
		WinCondition: domain.WinStairDown,
	}
}

// LoadConfig - значения по умолчанию, поверх них переменные окружения.
func LoadConfig() (Config, error) {
	cfg := NewConfig()
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate отсекает то, из чего уровень не построить ещё до генерации.
func (c Config) Validate() error {
	if c.LevelIndex < 1 {
		return &domain.GenerationError{Width: c.Width, Height: c.Height, Level: c.LevelIndex, Reason: "level index must be >= 1"}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return &domain.GenerationError{Width: c.Width, Height: c.Height, Level: c.LevelIndex, Reason: "size must be positive"}
	}
	return nil
}

// WithPayload накладывает параметры NEW от клиента. Пустые поля не трогаются.
func (c Config) WithPayload(p api.NewGamePayload) (Config, error) {
	if p.Seed != nil {
		c.Seed = *p.Seed
	}
	if p.Width > 0 {
		c.Width = p.Width
	}
	if p.Height > 0 {
		c.Height = p.Height
	}
	if p.Level > 0 {
		c.LevelIndex = p.Level
	}
	if p.WinCondition != "" {
		w, err := domain.ParseWinCondition(p.WinCondition)
		if err != nil {
			return c, err
		}
		c.WinCondition = w
	}
	return c, nil
}
