package systems

import (
	"errors"
	"testing"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

func addItem(t *testing.T, reg *domain.Registry, x, y int, props domain.ItemComponent) domain.EntityID {
	t.Helper()
	id, err := reg.Add(&domain.Entity{
		Kind: domain.KindItem,
		Name: "Potion",
		Pos:  domain.Position{X: x, Y: y},
		Item: &props,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestTryPickup_RespectsSlots(t *testing.T) {
	reg := createTestRegistry(t, "@...", "...>")
	player := addCreature(t, reg, domain.KindPlayer, 1, 0) // 2 слота
	heal := domain.ItemComponent{Effect: domain.EffectHeal, Value: 5}
	a := addItem(t, reg, 1, 0, heal)
	b := addItem(t, reg, 1, 0, heal)
	c := addItem(t, reg, 1, 0, heal)

	picked := TryPickup(player, reg)
	if len(picked) != 2 || picked[0] != a || picked[1] != b {
		t.Fatalf("picked %v, want [%v %v]", picked, a, b)
	}
	left := reg.ItemsAt(player.Pos)
	if len(left) != 1 || left[0].ID != c {
		t.Errorf("third item should stay on the floor, got %v", left)
	}
	if err := reg.CheckConsistency(); err != nil {
		t.Fatal(err)
	}
}

func TestApplyItem(t *testing.T) {
	tests := []struct {
		name    string
		props   domain.ItemComponent
		wantErr bool
		check   func(t *testing.T, s *domain.StatsComponent, amount int)
	}{
		{
			name:  "heal clamps at max",
			props: domain.ItemComponent{Effect: domain.EffectHeal, Value: 10},
			check: func(t *testing.T, s *domain.StatsComponent, amount int) {
				if s.HP != 10 || amount != 6 {
					t.Errorf("hp %d amount %d", s.HP, amount)
				}
			},
		},
		{
			name:  "attack buff",
			props: domain.ItemComponent{Effect: domain.EffectAttackBuff, Value: 3, Duration: 4},
			check: func(t *testing.T, s *domain.StatsComponent, amount int) {
				if s.EffectiveAttack() != 6 || amount != 3 {
					t.Errorf("attack %d amount %d", s.EffectiveAttack(), amount)
				}
			},
		},
		{name: "unknown effect", props: domain.ItemComponent{Value: 3}, wantErr: true},
		{name: "zero value", props: domain.ItemComponent{Effect: domain.EffectHeal}, wantErr: true},
		{name: "buff without duration", props: domain.ItemComponent{Effect: domain.EffectDefenseBuff, Value: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := &domain.Entity{Stats: &domain.StatsComponent{HP: 4, MaxHP: 10, Attack: 3}}
			before := *actor.Stats
			props := tt.props
			item := &domain.Entity{Kind: domain.KindItem, Item: &props}

			amount, err := ApplyItem(actor, item)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidItem) {
					t.Fatalf("expected ErrInvalidItem, got %v", err)
				}
				if actor.Stats.HP != before.HP || len(actor.Stats.Effects) != 0 {
					t.Error("invalid item must not change stats")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, actor.Stats, amount)
		})
	}
}

func TestValidateInventoryItem(t *testing.T) {
	reg := createTestRegistry(t, "@...", "...>")
	player := addCreature(t, reg, domain.KindPlayer, 1, 0)
	onFloor := addItem(t, reg, 2, 0, domain.ItemComponent{Effect: domain.EffectHeal, Value: 5})

	if _, err := ValidateInventoryItem(player, onFloor, reg); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("item on the floor: got %v", err)
	}

	if err := reg.MoveEntity(player.ID, domain.Position{X: 2, Y: 0}); err != nil {
		t.Fatal(err)
	}
	TryPickup(player, reg)
	if _, err := ValidateInventoryItem(player, onFloor, reg); err != nil {
		t.Errorf("item in inventory: got %v", err)
	}
}
