package domain

import (
	"errors"
	"fmt"
)

// Категории ошибок. Проверять через errors.Is.
var (
	ErrRejected           = errors.New("command rejected")
	ErrOccupied           = errors.New("cell occupied")
	ErrOutOfBounds        = errors.New("out of bounds")
	ErrNotWalkable        = errors.New("cell not walkable")
	ErrInvalidTarget      = errors.New("invalid target")
	ErrItemNotFound       = errors.New("item not in inventory")
	ErrInvalidItem        = errors.New("invalid item")
	ErrSessionOver        = errors.New("session is over")
	ErrGeneration         = errors.New("generation failed")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrUnknownCommand     = errors.New("unknown command")
)

// RejectionError - команда нелегальна в текущем состоянии. Не фатальна,
// состояние не меняется.
type RejectionError struct {
	Command Command
	Reason  string
	Err     error // одна из ErrOccupied, ErrNotWalkable, ...
}

func (e *RejectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s rejected: %s", e.Command.Type, e.Reason)
	}
	return fmt.Sprintf("%s rejected: %s: %v", e.Command.Type, e.Reason, e.Err)
}

func (e *RejectionError) Unwrap() error { return e.Err }

func (e *RejectionError) Is(target error) bool { return target == ErrRejected }

// Reject собирает RejectionError.
func Reject(cmd Command, err error, reason string) *RejectionError {
	return &RejectionError{Command: cmd, Reason: reason, Err: err}
}

// GenerationError - из этих параметров нельзя построить валидный уровень.
type GenerationError struct {
	Width, Height, Level int
	Reason               string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %dx%d level %d: %s", e.Width, e.Height, e.Level, e.Reason)
}

func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }

// InvariantViolation - баг генератора или реестра. Фатальна, не глотать.
type InvariantViolation struct {
	Detail string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Detail
}

func (e *InvariantViolation) Is(target error) bool { return target == ErrInvariantViolation }

// Violation - короткий конструктор с форматированием.
func Violation(format string, args ...any) *InvariantViolation {
	return &InvariantViolation{Detail: fmt.Sprintf(format, args...)}
}
