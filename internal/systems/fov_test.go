package systems

import (
	"testing"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

func TestComputeVisibleTiles(t *testing.T) {
	l := createTestRegistry(t,
		"@.........",
		"..........",
		"..........",
		".....#....",
		"..........",
		"..........",
		".........>",
	).Layout()
	pos := domain.Position{X: 3, Y: 3}

	visible := ComputeVisibleTiles(l, pos, 5)

	if !visible[l.Index(pos)] {
		t.Error("observer cell must be visible")
	}
	if !visible[l.Index(domain.Position{X: 5, Y: 3})] {
		t.Error("wall itself should be visible")
	}
	if visible[l.Index(domain.Position{X: 7, Y: 3})] {
		t.Error("cell right behind the wall should be in shadow")
	}
	if visible[l.Index(domain.Position{X: 9, Y: 6})] {
		t.Error("cell beyond the radius should not be visible")
	}
	if !visible[l.Index(domain.Position{X: 3, Y: 0})] {
		t.Error("open cell within radius should be visible")
	}

	if got := ComputeVisibleTiles(l, pos, 0); len(got) != 0 {
		t.Errorf("blind observer sees %d tiles", len(got))
	}
}
