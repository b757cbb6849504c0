package domain

import (
	"errors"
	"testing"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(parseLayout(t,
		"######",
		"#@...#",
		"#.#..#",
		"#...>#",
		"######",
	))
}

func monster(x, y int) *Entity {
	return &Entity{
		Kind:  KindMonster,
		Name:  "Rat",
		Pos:   Position{X: x, Y: y},
		Stats: &StatsComponent{HP: 3, MaxHP: 3, Attack: 1},
		AI:    &AIComponent{Monster: MonsterRat, AggroRange: 4},
	}
}

func TestRegistry_AddAssignsOrderedIDs(t *testing.T) {
	r := testRegistry(t)

	a, err := r.Add(monster(2, 1))
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Add(monster(3, 1))
	if err != nil {
		t.Fatal(err)
	}

	if a >= b {
		t.Errorf("ids should grow: %v then %v", a, b)
	}
	if a.Kind() != KindMonster || a.Level() != 1 {
		t.Errorf("unexpected packed id %v", a)
	}
	ms := r.Monsters()
	if len(ms) != 2 || ms[0].ID != a || ms[1].ID != b {
		t.Errorf("Monsters() order wrong: %v", ms)
	}
}

func TestRegistry_AddRejectsBadCells(t *testing.T) {
	r := testRegistry(t)
	if _, err := r.Add(monster(2, 2)); !errors.Is(err, ErrNotWalkable) {
		t.Errorf("wall: got %v", err)
	}
	if _, err := r.Add(monster(9, 9)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("outside: got %v", err)
	}
	if _, err := r.Add(monster(1, 1)); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Add(monster(1, 1)); !errors.Is(err, ErrOccupied) {
		t.Errorf("double occupancy: got %v", err)
	}
}

func TestRegistry_MoveEntity(t *testing.T) {
	r := testRegistry(t)
	a, _ := r.Add(monster(1, 1))
	b, _ := r.Add(monster(3, 1))

	tests := []struct {
		name string
		to   Position
		want error
	}{
		{"wall", Position{X: 2, Y: 2}, ErrNotWalkable},
		{"outside", Position{X: -1, Y: 1}, ErrOutOfBounds},
		{"occupied", Position{X: 3, Y: 1}, ErrOccupied},
		{"free", Position{X: 2, Y: 1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.MoveEntity(a, tt.to)
			if !errors.Is(err, tt.want) {
				t.Errorf("MoveEntity(%v) = %v, want %v", tt.to, err, tt.want)
			}
			if err := r.CheckConsistency(); err != nil {
				t.Fatal(err)
			}
		})
	}

	if r.BlockerAt(Position{X: 2, Y: 1}).ID != a {
		t.Error("position index not updated")
	}
	if r.BlockerAt(Position{X: 1, Y: 1}) != nil {
		t.Error("old cell still occupied")
	}
	if r.BlockerAt(Position{X: 3, Y: 1}).ID != b {
		t.Error("other monster lost")
	}
}

func TestRegistry_ItemsDoNotBlock(t *testing.T) {
	r := testRegistry(t)
	potion := &Entity{Kind: KindItem, Name: "Potion", Pos: Position{X: 2, Y: 1}, Item: &ItemComponent{Effect: EffectHeal, Value: 5}}
	itemID, err := r.Add(potion)
	if err != nil {
		t.Fatal(err)
	}
	player := &Entity{
		Kind:      KindPlayer,
		Pos:       Position{X: 1, Y: 1},
		Stats:     &StatsComponent{HP: 10, MaxHP: 10},
		Inventory: &InventoryComponent{MaxSlots: 1},
	}
	pid, _ := r.Add(player)

	if err := r.MoveEntity(pid, Position{X: 2, Y: 1}); err != nil {
		t.Fatalf("player should walk onto item: %v", err)
	}
	if got := r.ItemsAt(Position{X: 2, Y: 1}); len(got) != 1 {
		t.Fatalf("ItemsAt = %v", got)
	}

	if err := r.PickUp(pid, itemID); err != nil {
		t.Fatal(err)
	}
	if len(r.ItemsAt(Position{X: 2, Y: 1})) != 0 {
		t.Error("item still on floor")
	}
	if !player.Inventory.Contains(itemID) {
		t.Error("item not in inventory")
	}
	if err := r.CheckConsistency(); err != nil {
		t.Fatal(err)
	}

	if err := r.Remove(itemID); err != nil {
		t.Fatal(err)
	}
	if player.Inventory.Contains(itemID) || r.Get(itemID) != nil {
		t.Error("consumed item should be gone from inventory and registry")
	}
}

func TestRegistry_Remove(t *testing.T) {
	r := testRegistry(t)
	id, _ := r.Add(monster(3, 3))

	if err := r.Remove(id); err != nil {
		t.Fatal(err)
	}
	if r.Get(id) != nil || r.BlockerAt(Position{X: 3, Y: 3}) != nil {
		t.Error("entity should be gone from both indexes")
	}
	if err := r.Remove(id); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("second remove: got %v", err)
	}
	if err := r.CheckConsistency(); err != nil {
		t.Fatal(err)
	}
}

func TestRegistry_CheckConsistencyDetectsDrift(t *testing.T) {
	r := testRegistry(t)
	id, _ := r.Add(monster(1, 1))

	// Мутация в обход MoveEntity
	r.Get(id).Pos = Position{X: 3, Y: 1}

	if err := r.CheckConsistency(); !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("expected invariant violation, got %v", err)
	}
}
