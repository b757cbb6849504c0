package actions

import (
	"fmt"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/internal/engine/handlers"
	"github.com/johnmogi/dungeon-crawler/internal/systems"
	"github.com/johnmogi/dungeon-crawler/pkg/api"
	"github.com/johnmogi/dungeon-crawler/pkg/logger"
	"github.com/sirupsen/logrus"
)

// AttackCommand собирает ATTACK из payload клиента.
func AttackCommand(p api.EntityPayload) (domain.Command, error) {
	id, err := domain.ParseEntityID(p.TargetID)
	if err != nil {
		return domain.Command{}, err
	}
	return domain.Attack(id), nil
}

// HandleAttack наносит удар. Убитый монстр удаляется из реестра,
// убитый игрок остаётся лежать (сессия всё равно заканчивается).
func HandleAttack(ctx handlers.Context, act domain.ValidatedAction) (handlers.Result, error) {
	res := handlers.EmptyResult()

	// 1. Поиск цели
	target := ctx.Reg.Get(act.Target)
	if target == nil {
		return res, fmt.Errorf("attack %v: %w", act.Target, domain.ErrInvalidTarget)
	}

	// 2. Вызов Системы Боя
	hit := systems.ApplyAttack(ctx.Actor, target)
	res.Emit(ctx, domain.Event{
		Type:       domain.EventAttackResolved,
		Actor:      ctx.Actor.ID,
		Target:     target.ID,
		From:       ctx.Actor.Pos,
		To:         target.Pos,
		Damage:     hit.Damage,
		TargetHP:   hit.TargetHP,
		TargetDied: hit.Died,
	})
	if !hit.Died {
		return res, nil
	}

	// 3. Смерть
	log := logger.Log.WithFields(logrus.Fields{
		"component":   "attack_handler",
		"attacker_id": ctx.Actor.ID,
		"target_id":   target.ID,
		"turn":        ctx.Turn,
	})

	if target.Kind == domain.KindPlayer {
		log.Info("Player died.")
		res.Emit(ctx, domain.Event{
			Type:   domain.EventPlayerDied,
			Actor:  ctx.Actor.ID,
			Target: target.ID,
			To:     target.Pos,
		})
		return res, nil
	}

	if err := ctx.Reg.Remove(target.ID); err != nil {
		return res, err
	}
	log.Info("Monster removed from registry.")

	if len(ctx.Reg.Monsters()) == 0 {
		res.Emit(ctx, domain.Event{Type: domain.EventLevelCleared, Actor: ctx.Actor.ID})
	}
	return res, nil
}
