package engine

import (
	"container/heap"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/pkg/logger"
)

// TurnManager хранит очередь монстров. Каждый ход очередь проходится целиком
// в порядке возрастания ID, сама очередь при этом не расходуется.
type TurnManager struct {
	queue turnHeap
	slots map[domain.EntityID]*turnSlot
}

func NewTurnManager() *TurnManager {
	return &TurnManager{
		queue: make(turnHeap, 0),
		slots: make(map[domain.EntityID]*turnSlot),
	}
}

// AddEntity registers an entity in the turn system. Only entities with AI act.
func (tm *TurnManager) AddEntity(e *domain.Entity) {
	if e.AI == nil {
		return
	}
	if _, ok := tm.slots[e.ID]; ok {
		return
	}

	slot := &turnSlot{id: e.ID}
	heap.Push(&tm.queue, slot)
	tm.slots[e.ID] = slot

	logger.Log.WithField("entity_id", e.ID).Debug("Entity added to TurnManager")
}

// RemoveEntity removes an entity from the turn system (e.g. death).
func (tm *TurnManager) RemoveEntity(entityID domain.EntityID) {
	if slot, ok := tm.slots[entityID]; ok {
		heap.Remove(&tm.queue, slot.index)
		delete(tm.slots, entityID)
	}
}

// Order возвращает очередь этого хода по возрастанию приоритета.
// Снимок: смерти во время хода очередь не ломают, их отсекает вызывающий.
func (tm *TurnManager) Order() []domain.EntityID {
	return tm.queue.drain()
}

func (tm *TurnManager) Len() int {
	return tm.queue.Len()
}

// DebugDump возвращает снимок очереди для отладки
func (tm *TurnManager) DebugDump() []map[string]interface{} {
	// Инициализируем как пустой слайс, а не nil. Тогда в JSON это будет "[]", а не "null"
	result := make([]map[string]interface{}, 0)

	for i, id := range tm.Order() {
		result = append(result, map[string]interface{}{
			"id":    id,
			"name":  id.String(),
			"order": i,
		})
	}
	return result
}
