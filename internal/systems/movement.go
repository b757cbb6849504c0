package systems

import (
	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	To          domain.Position
	HasMoved    bool
	BlockedBy   *domain.Entity // Если врезались в кого-то (для атаки)
	IsWall      bool           // Если врезались в стену
	OutOfBounds bool
}

// CalculateMove вычисляет новую позицию. Не меняет состояние мира!
func CalculateMove(e *domain.Entity, dx, dy int, reg *domain.Registry) MovementResult {
	// Shift возвращает новую структуру Position, не меняя текущую
	targetPos := e.Pos.Shift(dx, dy)
	layout := reg.Layout()

	res := MovementResult{To: targetPos}

	// 1. Проверка границ
	if !layout.InBounds(targetPos) {
		res.OutOfBounds = true
		return res
	}

	// 2. Проверка стен
	if !layout.Walkable(targetPos) {
		res.IsWall = true
		return res
	}

	// 3. Проверка сущностей. Предметы проходимы, их нет в индексе блокеров.
	if other := reg.BlockerAt(targetPos); other != nil && other.ID != e.ID {
		res.BlockedBy = other
		return res
	}

	res.HasMoved = true
	return res
}
