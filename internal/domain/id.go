package domain

import (
	"fmt"
	"strconv"
)

// EntityID - упакованный идентификатор (Kind + Level + Index).
//
// Формат битов (от старших к младшим):
//
//	[ Kind (8) | Level (16) | Index (40) ]
//
// Сравнение ID как чисел даёт стабильный порядок: внутри одного вида и уровня
// сущности упорядочены по индексу создания. Планировщик ходов опирается на это.
type EntityID uint64

// NilEntityID - отсутствие сущности.
const NilEntityID EntityID = 0

// Конфигурация битов
const (
	bitsIndex = 40
	bitsLevel = 16
	bitsKind  = 8

	// Сдвиги
	shiftLevel = bitsIndex
	shiftKind  = bitsIndex + bitsLevel

	// Маски (для извлечения значений)
	maskIndex = (1 << bitsIndex) - 1 // 0x000000FFFFFFFFFF
	maskLevel = (1 << bitsLevel) - 1 // 0xFFFF
	maskKind  = (1 << bitsKind) - 1  // 0xFF
)

// PackEntityID создает ID из компонентов
func PackEntityID(kind EntityKind, level uint16, index uint64) EntityID {
	id := index & maskIndex
	id |= (uint64(level) & maskLevel) << shiftLevel
	id |= (uint64(kind) & maskKind) << shiftKind
	return EntityID(id)
}

func (id EntityID) Kind() EntityKind {
	return EntityKind((id >> shiftKind) & maskKind)
}

func (id EntityID) Level() uint16 {
	return uint16((id >> shiftLevel) & maskLevel)
}

func (id EntityID) Index() uint64 {
	return uint64(id & maskIndex)
}

func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших int64
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON парсит строку или число из JSON
func (id *EntityID) UnmarshalJSON(data []byte) error {
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	if len(data) == 0 {
		*id = NilEntityID
		return nil
	}
	val, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("parse entity id %q: %w", data, err)
	}
	*id = EntityID(val)
	return nil
}

// ParseEntityID - для query-параметров и payload'ов
func ParseEntityID(s string) (EntityID, error) {
	var id EntityID
	err := id.UnmarshalJSON([]byte(s))
	return id, err
}

// String для логов: [Kind:Lvl:Idx]
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("[%s:%d:%d]", id.Kind(), id.Level(), id.Index())
}
