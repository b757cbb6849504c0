package engine

import (
	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/sirupsen/logrus"
)

// processEvents - является точкой входа для обработки событий, возвращенных хендлерами.
// Здесь события меняют фазу сессии и очередь ходов.
func (s *Session) processEvents(actor *domain.Entity, events []domain.Event) {
	for _, ev := range events {
		s.emit(ev)

		switch ev.Type {
		case domain.EventAttackResolved:
			if ev.TargetDied && ev.Target.Kind() == domain.KindMonster {
				s.turns.RemoveEntity(ev.Target)
			}

		case domain.EventPlayerDied:
			s.setPhase(domain.PhaseGameOver)

		case domain.EventLevelCleared:
			if s.cfg.WinCondition == domain.WinClearAllMonsters {
				s.setPhase(domain.PhaseVictory)
			}

		case domain.EventMoved:
			if actor.Kind == domain.KindPlayer &&
				s.cfg.WinCondition == domain.WinStairDown &&
				ev.To == s.layout.StairDown() {
				s.setPhase(domain.PhaseVictory)
			}
		}
	}
}

// emit добавляет событие в журнал хода.
func (s *Session) emit(ev domain.Event) {
	s.events = append(s.events, ev)
	s.log.WithFields(logrus.Fields{
		"turn":   ev.Turn,
		"event":  ev.Type.String(),
		"actor":  ev.Actor,
		"target": ev.Target,
	}).Debug("Event.")
}
