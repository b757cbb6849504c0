package systems

import (
	"fmt"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

// EntityProvider - интерфейс для поиска сущностей (чтобы не зависеть от сессии напрямую)
type EntityProvider interface {
	Get(id domain.EntityID) *domain.Entity
}

// ValidateAttackTarget проверяет, может ли actor ударить targetID:
// цель существует, жива, блокирует клетку и стоит в соседней клетке (включая диагональ).
func ValidateAttackTarget(actor *domain.Entity, targetID domain.EntityID, finder EntityProvider) (*domain.Entity, error) {
	target := finder.Get(targetID)
	if target == nil {
		return nil, fmt.Errorf("target %v not found: %w", targetID, domain.ErrInvalidTarget)
	}
	if target.ID == actor.ID {
		return nil, fmt.Errorf("cannot attack self: %w", domain.ErrInvalidTarget)
	}
	if !target.IsBlocking() || !target.IsAlive() {
		return nil, fmt.Errorf("target %v is dead or not a creature: %w", targetID, domain.ErrInvalidTarget)
	}
	if !actor.Pos.IsAdjacent(target.Pos) {
		return nil, fmt.Errorf("target %v at %v is not adjacent: %w", targetID, target.Pos, domain.ErrInvalidTarget)
	}
	return target, nil
}

// ValidateInventoryItem проверяет, что предмет лежит в инвентаре actor.
func ValidateInventoryItem(actor *domain.Entity, itemID domain.EntityID, finder EntityProvider) (*domain.Entity, error) {
	if actor.Inventory == nil || !actor.Inventory.Contains(itemID) {
		return nil, fmt.Errorf("item %v: %w", itemID, domain.ErrItemNotFound)
	}
	item := finder.Get(itemID)
	if item == nil {
		return nil, fmt.Errorf("item %v: %w", itemID, domain.ErrItemNotFound)
	}
	return item, nil
}
