package engine

import (
	"errors"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/internal/systems"
)

// Interpret проверяет команду против текущего состояния и ничего не меняет.
//
// Move в клетку с противником превращается в Attack. Move в клетку союзника
// отклоняется как занятая.
func Interpret(cmd domain.Command, actor *domain.Entity, reg *domain.Registry) (domain.ValidatedAction, *domain.RejectionError) {
	if actor == nil || !actor.IsAlive() {
		return domain.ValidatedAction{Type: cmd.Type}, domain.Reject(cmd, domain.ErrInvalidTarget, "actor is dead")
	}
	act := domain.ValidatedAction{Type: cmd.Type, Actor: actor.ID, From: actor.Pos}

	switch cmd.Type {
	case domain.ActionMove:
		return interpretMove(cmd, actor, reg, act)

	case domain.ActionAttack:
		target, err := systems.ValidateAttackTarget(actor, cmd.TargetID, reg)
		if err != nil {
			return act, domain.Reject(cmd, err, "cannot attack")
		}
		if !hostile(actor, target) {
			return act, domain.Reject(cmd, domain.ErrInvalidTarget, "target is not hostile")
		}
		act.Target = target.ID
		act.To = target.Pos
		return act, nil

	case domain.ActionUseItem:
		item, err := systems.ValidateInventoryItem(actor, cmd.ItemID, reg)
		if err != nil {
			return act, domain.Reject(cmd, err, "no such item")
		}
		if err := systems.ValidateItem(item); err != nil {
			return act, domain.Reject(cmd, err, "item cannot be used")
		}
		act.Item = item.ID
		return act, nil

	case domain.ActionWait:
		return act, nil
	}

	return act, domain.Reject(cmd, domain.ErrUnknownCommand, "unknown action")
}

func interpretMove(cmd domain.Command, actor *domain.Entity, reg *domain.Registry, act domain.ValidatedAction) (domain.ValidatedAction, *domain.RejectionError) {
	if !cmd.Direction.IsValid() {
		return act, domain.Reject(cmd, domain.ErrUnknownCommand, "no direction")
	}

	dx, dy := cmd.Direction.Delta()
	res := systems.CalculateMove(actor, dx, dy, reg)
	act.To = res.To

	switch {
	case res.OutOfBounds:
		return act, domain.Reject(cmd, domain.ErrOutOfBounds, "edge of the map")
	case res.IsWall:
		return act, domain.Reject(cmd, domain.ErrNotWalkable, "wall")
	case res.BlockedBy != nil:
		if !hostile(actor, res.BlockedBy) {
			return act, domain.Reject(cmd, domain.ErrOccupied, "cell occupied")
		}
		// Удобство: шаг в противника = удар
		act.Type = domain.ActionAttack
		act.Target = res.BlockedBy.ID
		return act, nil
	}

	act.Type = domain.ActionMove
	return act, nil
}

// hostile: игрок враждебен монстрам и наоборот. Монстры друг друга не трогают.
func hostile(a, b *domain.Entity) bool {
	return a.IsBlocking() && b.IsBlocking() && a.Kind != b.Kind
}

// isBlockedMove - отказ по геометрии (стена или край). Такие отказы
// отдаются клиенту событием BLOCKED, остальные - REJECTED.
func isBlockedMove(rej *domain.RejectionError) bool {
	return rej.Command.Type == domain.ActionMove &&
		(errors.Is(rej, domain.ErrNotWalkable) || errors.Is(rej, domain.ErrOutOfBounds) || errors.Is(rej, domain.ErrOccupied))
}
