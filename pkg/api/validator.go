package api

import (
	"errors"
	"fmt"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

var directions = map[string]bool{
	"N": true, "NE": true, "E": true, "SE": true,
	"S": true, "SW": true, "W": true, "NW": true,
}

func (p DirectionPayload) Validate() error {
	if p.Direction == "" {
		return errors.New("direction is required")
	}
	if !directions[strings.ToUpper(p.Direction)] {
		return errors.New("direction must be one of N, NE, E, SE, S, SW, W, NW")
	}
	return nil
}

func (p EntityPayload) Validate() error {
	if p.TargetID == "" {
		return errors.New("targetId is required")
	}
	return nil
}

func (p ItemPayload) Validate() error {
	if p.ItemID == "" {
		return errors.New("itemId is required")
	}
	return nil
}

// Пределы NEW. Совпадают с пределами генератора (pkg/dungeon).
const (
	MaxMapWidth  = 200
	MaxMapHeight = 200
	MaxLevel     = 1<<16 - 1
)

func (p NewGamePayload) Validate() error {
	if p.Width < 0 || p.Height < 0 {
		return errors.New("width and height must not be negative")
	}
	if p.Width > MaxMapWidth || p.Height > MaxMapHeight {
		return fmt.Errorf("map must not exceed %dx%d", MaxMapWidth, MaxMapHeight)
	}
	if p.Level < 0 || p.Level > MaxLevel {
		return fmt.Errorf("level must be in 0..%d", MaxLevel)
	}
	return nil
}
