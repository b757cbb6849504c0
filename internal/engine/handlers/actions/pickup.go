package actions

import (
	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/internal/engine/handlers"
	"github.com/johnmogi/dungeon-crawler/internal/systems"
)

// pickUpAll подбирает всё, что лежит под ногами (только у кого есть инвентарь).
// Если места нет, предмет остаётся на полу без события.
func pickUpAll(ctx handlers.Context, res *handlers.Result) {
	for _, id := range systems.TryPickup(ctx.Actor, ctx.Reg) {
		res.Emit(ctx, domain.Event{
			Type:  domain.EventItemPickedUp,
			Actor: ctx.Actor.ID,
			Item:  id,
			To:    ctx.Actor.Pos,
		})
	}
}
