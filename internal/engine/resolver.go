package engine

import (
	"fmt"
	"strings"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/internal/engine/handlers"
	"github.com/johnmogi/dungeon-crawler/internal/engine/handlers/actions"
	"github.com/johnmogi/dungeon-crawler/pkg/api"
)

// resolvers - кто применяет проверенное действие каждого типа.
var resolvers = map[domain.ActionType]handlers.HandlerFunc{
	domain.ActionMove:    actions.HandleMove,
	domain.ActionAttack:  actions.HandleAttack,
	domain.ActionUseItem: actions.HandleUse,
	domain.ActionWait:    actions.HandleWait,
}

// decoders - как собрать команду из сообщения клиента.
var decoders = map[string]handlers.DecoderFunc{
	api.ActionMove:   handlers.WithPayload(actions.MoveCommand),
	api.ActionAttack: handlers.WithPayload(actions.AttackCommand),
	api.ActionUse:    handlers.WithPayload(actions.UseCommand),
	api.ActionWait:   handlers.WithEmptyPayload(domain.Wait()),
}

// Resolve применяет действие, уже прошедшее Interpret, и возвращает события.
// Ошибка здесь означает расхождение между проверкой и применением.
func Resolve(ctx handlers.Context, act domain.ValidatedAction) (handlers.Result, error) {
	handler, ok := resolvers[act.Type]
	if !ok {
		return handlers.EmptyResult(), fmt.Errorf("resolve %s: %w", act.Type, domain.ErrUnknownCommand)
	}
	return handler(ctx, act)
}

// ParseCommand превращает сообщение клиента в доменную команду.
func ParseCommand(cmd api.ClientCommand) (domain.Command, error) {
	decode, ok := decoders[strings.ToUpper(cmd.Action)]
	if !ok {
		return domain.Command{}, fmt.Errorf("action %q: %w", cmd.Action, domain.ErrUnknownCommand)
	}
	return decode(cmd.Payload)
}
