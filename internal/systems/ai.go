package systems

import (
	"math"
	"math/rand"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Decision - что монстр хочет сделать в свой ход.
type Decision struct {
	Action    domain.ActionType
	Target    domain.EntityID
	Direction domain.Direction
}

var waitDecision = Decision{Action: domain.ActionWait}

// Policy - поведение одного вида монстров. Решает, но ничего не меняет в мире
// (кроме AI.State самого монстра).
type Policy func(npc, player *domain.Entity, reg *domain.Registry, rng *rand.Rand) Decision

// Policies - таблица поведения по виду монстра. Новый вид = новая строка.
var Policies = map[domain.MonsterKind]Policy{
	domain.MonsterRat:      erraticPolicy,
	domain.MonsterGoblin:   chasePolicy,
	domain.MonsterOrc:      chasePolicy,
	domain.MonsterSkeleton: guardPolicy,
}

// ComputeNPCAction решает, что делать монстру.
func ComputeNPCAction(npc, player *domain.Entity, reg *domain.Registry, rng *rand.Rand) Decision {
	if npc.AI == nil || !npc.IsAlive() || player == nil || !player.IsAlive() {
		return waitDecision
	}

	policy, ok := Policies[npc.AI.Monster]
	if !ok {
		policy = chasePolicy
	}

	d := policy(npc, player, reg, rng)

	logger.Log.WithFields(logrus.Fields{
		"component": "ai_system",
		"npc_id":    npc.ID,
		"monster":   npc.AI.Monster.String(),
		"state":     npc.AI.State.String(),
		"action":    d.Action.String(),
		"direction": d.Direction.String(),
	}).Debug("NPC decided.")

	return d
}

// notices: игрок в радиусе агрессии (по Чебышёву) и в прямой видимости.
// Обновляет состояние AI.
func notices(npc, player *domain.Entity, reg *domain.Registry) bool {
	seen := npc.Pos.ChebyshevTo(player.Pos) <= npc.AI.AggroRange &&
		HasLineOfSight(reg.Layout(), npc.Pos, player.Pos)
	if seen {
		npc.AI.State = domain.AIStateChasing
	} else {
		npc.AI.State = domain.AIStateIdle
	}
	return seen
}

func attack(player *domain.Entity) Decision {
	return Decision{Action: domain.ActionAttack, Target: player.ID}
}

func move(dx, dy int) Decision {
	if dx == 0 && dy == 0 {
		return waitDecision
	}
	return Decision{Action: domain.ActionMove, Direction: domain.DirectionFromDelta(dx, dy)}
}

// chasePolicy: видим - бьём в упор или подходим со скольжением вдоль стен.
func chasePolicy(npc, player *domain.Entity, reg *domain.Registry, _ *rand.Rand) Decision {
	if !notices(npc, player, reg) {
		return waitDecision
	}
	if npc.Pos.IsAdjacent(player.Pos) {
		return attack(player)
	}
	return move(calculateSmartMove(npc, player, reg))
}

// erraticPolicy: как chase, но если прямой шаг закрыт - шаг в случайную
// свободную сторону, не удаляясь от игрока.
func erraticPolicy(npc, player *domain.Entity, reg *domain.Registry, rng *rand.Rand) Decision {
	if !notices(npc, player, reg) {
		return waitDecision
	}
	if npc.Pos.IsAdjacent(player.Pos) {
		return attack(player)
	}

	stepX, stepY := npc.Pos.DirectionTo(player.Pos)
	if checkMove(npc, stepX, stepY, reg) {
		return move(stepX, stepY)
	}

	dist := npc.Pos.ChebyshevTo(player.Pos)
	var options []domain.Direction
	for _, d := range domain.AllDirections {
		dx, dy := d.Delta()
		if !checkMove(npc, dx, dy, reg) {
			continue
		}
		if npc.Pos.Shift(dx, dy).ChebyshevTo(player.Pos) <= dist {
			options = append(options, d)
		}
	}
	if len(options) == 0 {
		return waitDecision
	}
	return Decision{Action: domain.ActionMove, Direction: options[rng.Intn(len(options))]}
}

// guardPolicy: стоит на месте, бьёт только соседей.
func guardPolicy(npc, player *domain.Entity, reg *domain.Registry, _ *rand.Rand) Decision {
	if notices(npc, player, reg) && npc.Pos.IsAdjacent(player.Pos) {
		return attack(player)
	}
	return waitDecision
}

// Внутренние утилиты (приватные для пакета systems)

func calculateSmartMove(npc, target *domain.Entity, reg *domain.Registry) (int, int) {
	dxRaw := target.Pos.X - npc.Pos.X
	dyRaw := target.Pos.Y - npc.Pos.Y

	stepX, stepY := npc.Pos.DirectionTo(target.Pos)

	// Попытка 1: Идеальный путь
	if checkMove(npc, stepX, stepY, reg) {
		return stepX, stepY
	}

	// Попытка 2: Smart Sliding (выбор приоритетной оси)
	tryXFirst := math.Abs(float64(dxRaw)) > math.Abs(float64(dyRaw))

	if tryXFirst {
		if stepX != 0 && checkMove(npc, stepX, 0, reg) {
			return stepX, 0
		}
		if stepY != 0 && checkMove(npc, 0, stepY, reg) {
			return 0, stepY
		}
	} else {
		if stepY != 0 && checkMove(npc, 0, stepY, reg) {
			return 0, stepY
		}
		if stepX != 0 && checkMove(npc, stepX, 0, reg) {
			return stepX, 0
		}
	}

	return 0, 0 // Тупик
}

func checkMove(e *domain.Entity, dx, dy int, reg *domain.Registry) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	return CalculateMove(e, dx, dy, reg).HasMoved
}
