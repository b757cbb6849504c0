package actions

import (
	"fmt"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/internal/engine/handlers"
	"github.com/johnmogi/dungeon-crawler/internal/systems"
	"github.com/johnmogi/dungeon-crawler/pkg/api"
)

// UseCommand собирает USE из payload клиента.
func UseCommand(p api.ItemPayload) (domain.Command, error) {
	id, err := domain.ParseEntityID(p.ItemID)
	if err != nil {
		return domain.Command{}, err
	}
	return domain.UseItem(id), nil
}

// HandleUse применяет эффект предмета и убирает его из инвентаря.
func HandleUse(ctx handlers.Context, act domain.ValidatedAction) (handlers.Result, error) {
	res := handlers.EmptyResult()

	item := ctx.Reg.Get(act.Item)
	if item == nil {
		return res, fmt.Errorf("use %v: %w", act.Item, domain.ErrItemNotFound)
	}

	amount, err := systems.ApplyItem(ctx.Actor, item)
	if err != nil {
		return res, err
	}

	// Расходуем: Remove снимает предмет и с инвентаря владельца
	if err := ctx.Reg.Remove(item.ID); err != nil {
		return res, err
	}

	res.Emit(ctx, domain.Event{
		Type:   domain.EventItemUsed,
		Actor:  ctx.Actor.ID,
		Item:   item.ID,
		Amount: amount,
		Reason: item.Item.Effect.String(),
	})
	return res, nil
}
