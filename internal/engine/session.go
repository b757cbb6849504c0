package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/internal/engine/handlers"
	"github.com/johnmogi/dungeon-crawler/internal/systems"
	"github.com/johnmogi/dungeon-crawler/pkg/api"
	"github.com/johnmogi/dungeon-crawler/pkg/dungeon"
	"github.com/johnmogi/dungeon-crawler/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Session - одна партия на одном уровне. Владеет картой, реестром и фазой.
//
// Не потокобезопасна: команды подаются строго по одной, следующая только
// после получения снимка предыдущей.
type Session struct {
	cfg Config

	layout   *domain.Layout
	reg      *domain.Registry
	playerID domain.EntityID

	phase  domain.Phase
	turn   int
	events []domain.Event

	visible  map[int]bool
	explored []bool

	// names - имена всех, кто когда-либо был на уровне (для лога после смерти)
	names map[domain.EntityID]string

	rng     *rand.Rand // решения монстров. Генератор карты сеет свой.
	turns   *TurnManager
	journal domain.Journal

	// fatal - нарушение инварианта. После него сессия только отвечает ошибкой.
	fatal error

	log *logrus.Entry
}

// NewSession генерирует уровень и расставляет сущности.
// GenerationError - из параметров уровень не построить, сессии нет.
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lvl, err := dungeon.Generate(cfg.Seed, cfg.Width, cfg.Height, cfg.LevelIndex)
	if err != nil {
		return nil, err
	}

	reg := domain.NewRegistry(lvl.Layout)
	if _, err := dungeon.Populate(reg, lvl); err != nil {
		return nil, domain.Violation("populate level: %v", err)
	}
	return newSession(cfg, reg)
}

// newSession собирает сессию вокруг уже заполненного реестра.
func newSession(cfg Config, reg *domain.Registry) (*Session, error) {
	layout := reg.Layout()
	if reg.Player() == nil {
		return nil, domain.Violation("level has no player")
	}

	s := &Session{
		cfg:      cfg,
		layout:   layout,
		reg:      reg,
		playerID: reg.PlayerID(),
		phase:    domain.PhaseExploring,
		explored: make([]bool, layout.Width()*layout.Height()),
		names:    make(map[domain.EntityID]string),
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		turns:    NewTurnManager(),
		journal: domain.Journal{
			Seed:         cfg.Seed,
			Width:        cfg.Width,
			Height:       cfg.Height,
			LevelIndex:   cfg.LevelIndex,
			WinCondition: cfg.WinCondition,
		},
		log: logger.Log.WithFields(logrus.Fields{
			"component": "session",
			"seed":      cfg.Seed,
			"level":     cfg.LevelIndex,
		}),
	}

	for _, e := range reg.Entities() {
		s.names[e.ID] = e.Name
		s.turns.AddEntity(e)
	}
	if err := reg.CheckConsistency(); err != nil {
		return nil, err
	}
	s.updatePhase()
	s.updateVision()

	s.log.WithFields(logrus.Fields{
		"width":    cfg.Width,
		"height":   cfg.Height,
		"monsters": s.turns.Len(),
		"entities": reg.Len(),
		"win":      cfg.WinCondition.String(),
	}).Info("Session created.")

	return s, nil
}

// SubmitCommand - единственная точка входа. Один принятый вызов = один ход:
// действие игрока, затем каждый живой монстр по разу, затем тик эффектов.
//
// Ошибки:
//   - *domain.RejectionError - команда нелегальна, ход не засчитан, снимок валиден;
//   - domain.ErrSessionOver - фаза терминальная, снимок не изменился;
//   - *domain.InvariantViolation - баг движка, сессия дальше непригодна.
func (s *Session) SubmitCommand(cmd domain.Command) (api.Snapshot, error) {
	if s.fatal != nil {
		return s.Snapshot(), s.fatal
	}
	if s.phase.IsTerminal() {
		return s.Snapshot(), fmt.Errorf("turn %d, phase %s: %w", s.turn, s.phase, domain.ErrSessionOver)
	}

	s.events = nil
	player := s.reg.Get(s.playerID)

	// 1. Интерпретация
	act, rej := Interpret(cmd, player, s.reg)
	if rej != nil {
		s.reject(player, act, rej)
		s.journal.Record(s.turn, cmd, false)
		return s.Snapshot(), rej
	}
	s.journal.Record(s.turn, cmd, true)

	// 2. Ход игрока
	if err := s.resolve(player, act); err != nil {
		return s.Snapshot(), s.fail(err)
	}

	// 3. Ходы монстров (если игра не закончилась ходом игрока)
	if !s.phase.IsTerminal() {
		if err := s.runMonsters(player); err != nil {
			return s.Snapshot(), s.fail(err)
		}
	}

	// 4. Конец хода
	s.tickEffects()
	s.updatePhase()
	s.turn++
	s.updateVision()

	if err := s.reg.CheckConsistency(); err != nil {
		return s.Snapshot(), s.fail(err)
	}
	return s.Snapshot(), nil
}

// runMonsters: каждый живой монстр ровно один раз, по возрастанию ID.
// Смерть игрока обрывает очередь сразу.
func (s *Session) runMonsters(player *domain.Entity) error {
	for _, id := range s.turns.Order() {
		if s.phase.IsTerminal() {
			return nil
		}
		npc := s.reg.Get(id)
		if npc == nil || !npc.IsAlive() {
			continue
		}

		d := systems.ComputeNPCAction(npc, player, s.reg, s.rng)
		cmd := decisionCommand(d)

		act, rej := Interpret(cmd, npc, s.reg)
		if rej != nil {
			s.log.WithFields(logrus.Fields{
				"npc_id": npc.ID,
				"reason": rej.Error(),
			}).Debug("NPC action rejected, waiting.")
			continue
		}
		if err := s.resolve(npc, act); err != nil {
			return err
		}
	}
	return nil
}

// resolve применяет действие и разбирает его события.
func (s *Session) resolve(actor *domain.Entity, act domain.ValidatedAction) error {
	ctx := handlers.Context{Reg: s.reg, Actor: actor, Turn: s.turn}
	res, err := Resolve(ctx, act)
	if err != nil {
		return err
	}
	s.processEvents(actor, res.Events)
	return nil
}

// reject превращает отказ в событие для клиента. Состояние не меняется.
func (s *Session) reject(player *domain.Entity, act domain.ValidatedAction, rej *domain.RejectionError) {
	ev := domain.Event{
		Type:   domain.EventRejected,
		Turn:   s.turn,
		Actor:  act.Actor,
		Reason: rej.Error(),
	}
	if isBlockedMove(rej) {
		ev.Type = domain.EventBlocked
		ev.From = act.From
		ev.To = act.To
	}
	s.emit(ev)

	s.log.WithFields(logrus.Fields{
		"turn":    s.turn,
		"command": rej.Command.String(),
		"reason":  rej.Error(),
	}).Debug("Command rejected.")
}

// fail - фатальная ошибка. Всё, что не InvariantViolation, заворачивается в неё.
func (s *Session) fail(err error) error {
	var iv *domain.InvariantViolation
	if !errors.As(err, &iv) {
		err = domain.Violation("turn %d: %v", s.turn, err)
	}
	s.fatal = err
	s.log.WithError(err).WithField("turn", s.turn).Error("Session is broken.")
	return err
}

func (s *Session) tickEffects() {
	for _, e := range s.reg.Entities() {
		if e.Carried || !e.IsAlive() {
			continue
		}
		for _, expired := range systems.TickEffects(e) {
			s.emit(domain.Event{
				Type:   domain.EventEffectExpired,
				Turn:   s.turn,
				Actor:  e.ID,
				Amount: expired.Amount,
				Reason: expired.Effect.String(),
			})
		}
	}
}

// updatePhase: Exploring <-> Combat по соседству с монстрами. Терминальные фазы не трогает.
func (s *Session) updatePhase() {
	if s.phase.IsTerminal() {
		return
	}
	player := s.reg.Get(s.playerID)
	next := domain.PhaseExploring
	for _, m := range s.reg.Monsters() {
		if m.Pos.IsAdjacent(player.Pos) {
			next = domain.PhaseCombat
			break
		}
	}
	s.setPhase(next)
}

func (s *Session) setPhase(next domain.Phase) {
	if s.phase == next {
		return
	}
	s.log.WithFields(logrus.Fields{
		"turn": s.turn,
		"from": s.phase.String(),
		"to":   next.String(),
	}).Info("Phase changed.")
	s.phase = next
}

func (s *Session) updateVision() {
	player := s.reg.Get(s.playerID)
	s.visible = systems.ComputeVisibleTiles(s.layout, player.Pos, domain.VisionRadius)
	for idx := range s.visible {
		s.explored[idx] = true
	}
}

// decisionCommand переводит решение AI во внутреннюю команду
func decisionCommand(d systems.Decision) domain.Command {
	switch d.Action {
	case domain.ActionAttack:
		return domain.Attack(d.Target)
	case domain.ActionMove:
		return domain.Move(d.Direction)
	}
	return domain.Wait()
}

// --- Только чтение ---

func (s *Session) Phase() domain.Phase                 { return s.phase }
func (s *Session) Turn() int                           { return s.turn }
func (s *Session) Config() Config                      { return s.cfg }
func (s *Session) PlayerID() domain.EntityID           { return s.playerID }
func (s *Session) Registry() *domain.Registry          { return s.reg }
func (s *Session) Events() []domain.Event              { return append([]domain.Event(nil), s.events...) }
func (s *Session) TurnQueue() []map[string]interface{} { return s.turns.DebugDump() }

// Journal возвращает копию журнала команд.
func (s *Session) Journal() domain.Journal {
	j := s.journal
	j.Entries = append([]domain.JournalEntry(nil), s.journal.Entries...)
	return j
}
