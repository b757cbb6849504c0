package engine

import (
	"errors"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/pkg/api"
)

// Message упаковывает результат SubmitCommand в сообщение для клиента.
// Отказ и конец партии приходят вместе со снимком: клиент рисует его как есть.
func Message(snap api.Snapshot, err error) api.ServerMessage {
	if err == nil {
		return api.ServerMessage{Type: api.MessageSnapshot, Snapshot: &snap}
	}
	msg := ErrorMessage(err)
	msg.Snapshot = &snap
	return msg
}

// ErrorMessage - ошибка без снимка (например, сессия ещё не создана).
func ErrorMessage(err error) api.ServerMessage {
	return api.ServerMessage{
		Type:  api.MessageError,
		Error: &api.ErrorView{Code: ErrorCode(err), Message: err.Error()},
	}
}

// ErrorCode сводит таксономию ошибок к коду протокола.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrRejected):
		return api.CodeRejected
	case errors.Is(err, domain.ErrSessionOver):
		return api.CodeSessionOver
	case errors.Is(err, domain.ErrGeneration):
		return api.CodeGeneration
	case errors.Is(err, domain.ErrInvariantViolation):
		return api.CodeInvariant
	}
	return api.CodeBadRequest
}
