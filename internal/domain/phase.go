package domain

import (
	"fmt"
	"strings"
)

// Phase - состояние сессии.
//
//	Exploring <-> Combat -> GameOver | Victory
type Phase uint8

const (
	PhaseExploring Phase = iota
	PhaseCombat
	PhaseGameOver
	PhaseVictory
)

var phaseToString = map[Phase]string{
	PhaseExploring: "EXPLORING",
	PhaseCombat:    "COMBAT",
	PhaseGameOver:  "GAME_OVER",
	PhaseVictory:   "VICTORY",
}

func (p Phase) String() string {
	if val, ok := phaseToString[p]; ok {
		return val
	}
	return "UNKNOWN"
}

// IsTerminal - после этой фазы команды не принимаются.
func (p Phase) IsTerminal() bool {
	return p == PhaseGameOver || p == PhaseVictory
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// WinCondition - условие победы на уровне.
type WinCondition uint8

const (
	WinStairDown WinCondition = iota
	WinClearAllMonsters
)

var winConditionToString = map[WinCondition]string{
	WinStairDown:        "stair_down",
	WinClearAllMonsters: "clear_all_monsters",
}

func (w WinCondition) String() string {
	if val, ok := winConditionToString[w]; ok {
		return val
	}
	return "unknown"
}

// ParseWinCondition принимает "stair_down", "StairDown", "clear_all_monsters", "ClearAllMonsters".
func ParseWinCondition(s string) (WinCondition, error) {
	norm := strings.ToLower(strings.ReplaceAll(s, "_", ""))
	switch norm {
	case "stairdown", "":
		return WinStairDown, nil
	case "clearallmonsters", "clearall":
		return WinClearAllMonsters, nil
	}
	return WinStairDown, fmt.Errorf("unknown win condition %q", s)
}

func (w WinCondition) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText нужен для env-тегов и JSON.
func (w *WinCondition) UnmarshalText(text []byte) error {
	v, err := ParseWinCondition(string(text))
	if err != nil {
		return err
	}
	*w = v
	return nil
}
