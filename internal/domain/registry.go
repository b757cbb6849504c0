package domain

import (
	"fmt"
	"slices"
)

// Registry - единственный источник правды "что где лежит".
//
// Два индекса (по ID и по позиции) меняются только внутри методов реестра,
// поэтому не могут разойтись. Наружу отдаются указатели на сущности, но
// позицию нужно менять только через MoveEntity.
type Registry struct {
	layout *Layout

	byID     map[EntityID]*Entity
	blockers map[Position]EntityID   // не больше одной блокирующей сущности на клетку
	floor    map[Position][]EntityID // предметы на полу, в порядке появления

	nextIndex map[EntityKind]uint64
	playerID  EntityID
}

func NewRegistry(layout *Layout) *Registry {
	return &Registry{
		layout:    layout,
		byID:      make(map[EntityID]*Entity),
		blockers:  make(map[Position]EntityID),
		floor:     make(map[Position][]EntityID),
		nextIndex: make(map[EntityKind]uint64),
	}
}

func (r *Registry) Layout() *Layout { return r.layout }

// Add регистрирует сущность и выдаёт ей ID (если ещё нет).
// ID растут в порядке добавления внутри вида.
func (r *Registry) Add(e *Entity) (EntityID, error) {
	if e.Kind == KindUnknown {
		return NilEntityID, fmt.Errorf("add %q: %w", e.Name, ErrInvalidTarget)
	}
	if !e.Carried {
		if err := r.checkCell(e.Pos); err != nil {
			return NilEntityID, fmt.Errorf("add %q: %w", e.Name, err)
		}
		if e.IsBlocking() {
			if other, ok := r.blockers[e.Pos]; ok {
				return NilEntityID, fmt.Errorf("add %q at %v (held by %v): %w", e.Name, e.Pos, other, ErrOccupied)
			}
		}
	}
	if e.Kind == KindPlayer && !r.playerID.IsNil() {
		return NilEntityID, fmt.Errorf("add %q: player already registered", e.Name)
	}

	if e.ID.IsNil() {
		r.nextIndex[e.Kind]++
		e.ID = PackEntityID(e.Kind, uint16(r.layout.Level()), r.nextIndex[e.Kind])
	}
	if _, exists := r.byID[e.ID]; exists {
		return NilEntityID, fmt.Errorf("add %v: duplicate id", e.ID)
	}

	r.byID[e.ID] = e
	if !e.Carried {
		r.index(e)
	}
	if e.Kind == KindPlayer {
		r.playerID = e.ID
	}
	return e.ID, nil
}

// Remove удаляет сущность из обоих индексов. Для предметов в инвентаре
// снимает их и из инвентаря владельца (если он известен).
func (r *Registry) Remove(id EntityID) error {
	e, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("remove %v: %w", id, ErrInvalidTarget)
	}
	if !e.Carried {
		r.unindex(e)
	} else {
		for _, holder := range r.byID {
			if holder.Inventory != nil && holder.Inventory.Remove(id) {
				break
			}
		}
	}
	if id == r.playerID {
		r.playerID = NilEntityID
	}
	delete(r.byID, id)
	return nil
}

// Get - O(1) по ID. nil, если нет.
func (r *Registry) Get(id EntityID) *Entity {
	return r.byID[id]
}

// BlockerAt - O(1) по позиции. nil, если клетка свободна.
func (r *Registry) BlockerAt(p Position) *Entity {
	id, ok := r.blockers[p]
	if !ok {
		return nil
	}
	return r.byID[id]
}

// ItemsAt возвращает предметы на полу в клетке.
func (r *Registry) ItemsAt(p Position) []*Entity {
	ids := r.floor[p]
	if len(ids) == 0 {
		return nil
	}
	out := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.byID[id])
	}
	return out
}

// MoveEntity перемещает сущность, обновляя оба индекса вместе.
func (r *Registry) MoveEntity(id EntityID, to Position) error {
	e, ok := r.byID[id]
	if !ok || e.Carried {
		return fmt.Errorf("move %v: %w", id, ErrInvalidTarget)
	}
	if err := r.checkCell(to); err != nil {
		return fmt.Errorf("move %v to %v: %w", id, to, err)
	}
	if e.IsBlocking() {
		if other, busy := r.blockers[to]; busy && other != id {
			return fmt.Errorf("move %v to %v (held by %v): %w", id, to, other, ErrOccupied)
		}
	}

	r.unindex(e)
	e.Pos = to
	r.index(e)
	return nil
}

// PickUp переносит предмет с пола в инвентарь. Позиции не сверяются:
// это забота вызывающего.
func (r *Registry) PickUp(holderID, itemID EntityID) error {
	holder, item := r.byID[holderID], r.byID[itemID]
	if holder == nil || holder.Inventory == nil {
		return fmt.Errorf("pick up by %v: %w", holderID, ErrInvalidTarget)
	}
	if item == nil || item.Kind != KindItem || item.Carried {
		return fmt.Errorf("pick up %v: %w", itemID, ErrInvalidItem)
	}
	if !holder.Inventory.Add(itemID) {
		return fmt.Errorf("pick up %v: inventory full", itemID)
	}
	r.unindex(item)
	item.Carried = true
	return nil
}

func (r *Registry) Player() *Entity {
	return r.byID[r.playerID]
}

func (r *Registry) PlayerID() EntityID {
	return r.playerID
}

// Monsters - живые монстры по возрастанию ID (порядок ходов).
func (r *Registry) Monsters() []*Entity {
	out := make([]*Entity, 0)
	for _, e := range r.byID {
		if e.Kind == KindMonster && e.IsAlive() {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b *Entity) int { return cmpID(a.ID, b.ID) })
	return out
}

// Entities - все сущности по возрастанию ID.
func (r *Registry) Entities() []*Entity {
	out := make([]*Entity, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *Entity) int { return cmpID(a.ID, b.ID) })
	return out
}

func (r *Registry) Len() int {
	return len(r.byID)
}

// CheckConsistency сверяет индексы между собой и с картой.
// Любое расхождение - InvariantViolation.
func (r *Registry) CheckConsistency() error {
	blocking := 0
	floorItems := 0
	for id, e := range r.byID {
		if e.ID != id {
			return Violation("entity stored under %v has id %v", id, e.ID)
		}
		if e.Carried {
			continue
		}
		if !r.layout.Walkable(e.Pos) {
			return Violation("%v stands on %s at %v", id, r.layout.TerrainAt(e.Pos), e.Pos)
		}
		if e.IsBlocking() {
			blocking++
			if r.blockers[e.Pos] != id {
				return Violation("position index at %v has %v, want %v", e.Pos, r.blockers[e.Pos], id)
			}
		} else {
			floorItems++
			if !slices.Contains(r.floor[e.Pos], id) {
				return Violation("floor index at %v misses %v", e.Pos, id)
			}
		}
	}
	if blocking != len(r.blockers) {
		return Violation("position index has %d blockers, registry has %d", len(r.blockers), blocking)
	}
	n := 0
	for _, ids := range r.floor {
		n += len(ids)
	}
	if n != floorItems {
		return Violation("floor index has %d items, registry has %d", n, floorItems)
	}
	return nil
}

func (r *Registry) checkCell(p Position) error {
	if !r.layout.InBounds(p) {
		return ErrOutOfBounds
	}
	if !r.layout.Walkable(p) {
		return ErrNotWalkable
	}
	return nil
}

func (r *Registry) index(e *Entity) {
	if e.IsBlocking() {
		r.blockers[e.Pos] = e.ID
		return
	}
	r.floor[e.Pos] = append(r.floor[e.Pos], e.ID)
}

func (r *Registry) unindex(e *Entity) {
	if e.IsBlocking() {
		if r.blockers[e.Pos] == e.ID {
			delete(r.blockers, e.Pos)
		}
		return
	}
	ids := r.floor[e.Pos]
	for i, other := range ids {
		if other == e.ID {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(r.floor, e.Pos)
		return
	}
	r.floor[e.Pos] = ids
}

func cmpID(a, b EntityID) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
