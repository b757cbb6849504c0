package systems

import (
	"testing"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

func TestCalculateMove(t *testing.T) {
	reg := createTestRegistry(t,
		"@.....",
		"....#.",
		"......",
		".....>",
	)
	actor := addCreature(t, reg, domain.KindPlayer, 3, 1)
	other := addCreature(t, reg, domain.KindMonster, 3, 2)

	tests := []struct {
		name      string
		dx, dy    int
		moved     bool
		wall      bool
		oob       bool
		blockedBy *domain.Entity
	}{
		{"empty", 0, -1, true, false, false, nil},
		{"wall", 1, 0, false, true, false, nil},
		{"creature", 0, 1, false, false, false, other},
		{"diagonal", -1, 1, true, false, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateMove(actor, tt.dx, tt.dy, reg)
			if res.HasMoved != tt.moved || res.IsWall != tt.wall || res.OutOfBounds != tt.oob || res.BlockedBy != tt.blockedBy {
				t.Errorf("CalculateMove(%d,%d) = %+v", tt.dx, tt.dy, res)
			}
		})
	}

	// Выход за карту
	edge := &domain.Entity{ID: domain.PackEntityID(domain.KindMonster, 1, 99), Pos: domain.Position{X: 0, Y: 0}}
	if res := CalculateMove(edge, -1, 0, reg); res.HasMoved || !res.OutOfBounds {
		t.Errorf("expected out of bounds, got %+v", res)
	}

	if actor.Pos != (domain.Position{X: 3, Y: 1}) {
		t.Error("CalculateMove must not mutate the actor")
	}
}
