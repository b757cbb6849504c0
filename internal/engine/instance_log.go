package engine

import (
	"fmt"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/pkg/api"
	"github.com/sirupsen/logrus"
)

// Типы записей лога
const (
	LogInfo   = "INFO"
	LogCombat = "COMBAT"
	LogError  = "ERROR"
)

// describe превращает событие в строку игрового лога (чата).
// Перемещения в чат не пишутся.
func (s *Session) describe(i int, ev domain.Event) (api.LogEntry, bool) {
	var text, logType string

	switch ev.Type {
	case domain.EventAttackResolved:
		logType = LogCombat
		text = fmt.Sprintf("%s бьет %s на %d урона.", s.name(ev.Actor), s.name(ev.Target), ev.Damage)
		if ev.TargetDied {
			text += fmt.Sprintf(" %s погибает!", s.name(ev.Target))
		}
	case domain.EventPlayerDied:
		logType = LogCombat
		text = fmt.Sprintf("%s пал от руки %s.", s.name(ev.Target), s.name(ev.Actor))
	case domain.EventItemPickedUp:
		logType = LogInfo
		text = fmt.Sprintf("%s подбирает %s.", s.name(ev.Actor), s.name(ev.Item))
	case domain.EventItemUsed:
		logType = LogInfo
		text = fmt.Sprintf("%s использует %s (%d).", s.name(ev.Actor), s.name(ev.Item), ev.Amount)
	case domain.EventEffectExpired:
		logType = LogInfo
		text = fmt.Sprintf("Действие эффекта %s закончилось.", ev.Reason)
	case domain.EventLevelCleared:
		logType = LogInfo
		text = "На уровне не осталось монстров."
	case domain.EventBlocked:
		logType = LogError
		text = "Путь прегражден."
	case domain.EventRejected:
		logType = LogError
		text = "Так сделать нельзя: " + ev.Reason
	default:
		return api.LogEntry{}, false
	}

	s.log.WithFields(logrus.Fields{
		"component": "game_log",
		"log_type":  logType,
		"turn":      ev.Turn,
	}).Debug(text)

	return api.LogEntry{
		ID:   fmt.Sprintf("%d_%d", ev.Turn, i),
		Text: text,
		Type: logType,
	}, true
}

func (s *Session) name(id domain.EntityID) string {
	if n, ok := s.names[id]; ok {
		return n
	}
	return id.String()
}
