package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/pkg/api"
)

// DecoderFunc превращает сырой payload клиента в доменную команду.
type DecoderFunc func(raw json.RawMessage) (domain.Command, error)

// CommandBuilder - это "чистый" конструктор команды из готовой структуры T
type CommandBuilder[T any] func(payload T) (domain.Command, error)

// WithPayload берет "чистый" конструктор и превращает его в стандартный DecoderFunc.
// Она берет на себя Unmarshal и Validate.
func WithPayload[T any](build CommandBuilder[T]) DecoderFunc {
	return func(raw json.RawMessage) (domain.Command, error) {
		var payload T

		// 1. Распаковка JSON
		if len(raw) == 0 {
			return domain.Command{}, fmt.Errorf("payload is required: %w", domain.ErrUnknownCommand)
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return domain.Command{}, fmt.Errorf("invalid payload format: %w", err)
		}

		// 2. Автоматическая валидация
		// Проверяем, реализует ли структура T интерфейс Validator
		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return domain.Command{}, fmt.Errorf("validation failed: %w", err)
			}
		}

		// 3. Вызов чистой логики
		return build(payload)
	}
}

// WithEmptyPayload - обертка для команд без данных (WAIT)
func WithEmptyPayload(cmd domain.Command) DecoderFunc {
	return func(_ json.RawMessage) (domain.Command, error) {
		// Мы просто игнорируем входящий JSON, так как он не нужен логике.
		return cmd, nil
	}
}
