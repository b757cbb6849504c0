package actions

import (
	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/internal/engine/handlers"
)

// HandleWait - ход пропускается, событий нет.
func HandleWait(_ handlers.Context, _ domain.ValidatedAction) (handlers.Result, error) {
	return handlers.EmptyResult(), nil
}
