package engine

import (
	"errors"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

// ReplayConfig восстанавливает параметры сессии из журнала.
func ReplayConfig(j domain.Journal) Config {
	return Config{
		Seed:         j.Seed,
		Width:        j.Width,
		Height:       j.Height,
		LevelIndex:   j.LevelIndex,
		WinCondition: j.WinCondition,
	}
}

// Replay пересобирает сессию по журналу. Каждая команда должна получить
// тот же вердикт (принята/отклонена), что и при записи, иначе это расхождение.
func Replay(j domain.Journal) (*Session, error) {
	s, err := NewSession(ReplayConfig(j))
	if err != nil {
		return nil, err
	}

	for _, entry := range j.Entries {
		if s.turn != entry.Turn {
			return s, domain.Violation("replay diverged: journal turn %d, session turn %d", entry.Turn, s.turn)
		}
		_, err := s.SubmitCommand(entry.Command)
		accepted := err == nil
		if err != nil && !errors.Is(err, domain.ErrRejected) {
			return s, err
		}
		if accepted != entry.Accepted {
			return s, domain.Violation("replay diverged at turn %d: %s accepted=%v, recorded %v",
				entry.Turn, entry.Command, accepted, entry.Accepted)
		}
	}
	return s, nil
}
