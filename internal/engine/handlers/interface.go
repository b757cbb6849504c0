package handlers

import (
	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

// Context передает хендлеру состояние мира на время одного действия.
// Хендлер не хранит ссылки после возврата.
type Context struct {
	Reg   *domain.Registry
	Actor *domain.Entity // Тот, кто выполняет действие (Игрок или NPC)
	Turn  int
}

// Result - возвращает результат выполнения действия.
// Хендлер НЕ пишет в журнал сессии напрямую, он возвращает события.
type Result struct {
	Events []domain.Event
}

// Emit добавляет событие, проставляя номер хода из контекста.
func (r *Result) Emit(ctx Context, ev domain.Event) {
	ev.Turn = ctx.Turn
	r.Events = append(r.Events, ev)
}

// HandlerFunc - это контракт для любого проверенного действия (MOVE, ATTACK, etc).
type HandlerFunc func(ctx Context, act domain.ValidatedAction) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
