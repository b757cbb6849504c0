package actions

import (
	"fmt"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/internal/engine/handlers"
	"github.com/johnmogi/dungeon-crawler/pkg/api"
)

// MoveCommand собирает MOVE из payload клиента.
func MoveCommand(p api.DirectionPayload) (domain.Command, error) {
	dir := domain.ParseDirection(p.Direction)
	if !dir.IsValid() {
		return domain.Command{}, fmt.Errorf("direction %q: %w", p.Direction, domain.ErrUnknownCommand)
	}
	return domain.Move(dir), nil
}

// HandleMove переставляет актора на уже проверенную клетку.
// Предметы под ногами подбираются автоматически.
func HandleMove(ctx handlers.Context, act domain.ValidatedAction) (handlers.Result, error) {
	res := handlers.EmptyResult()

	from := ctx.Actor.Pos
	if err := ctx.Reg.MoveEntity(ctx.Actor.ID, act.To); err != nil {
		return res, err
	}

	res.Emit(ctx, domain.Event{
		Type:  domain.EventMoved,
		Actor: ctx.Actor.ID,
		From:  from,
		To:    act.To,
	})

	pickUpAll(ctx, &res)
	return res, nil
}
