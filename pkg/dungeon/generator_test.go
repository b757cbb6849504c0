package dungeon

import (
	"errors"
	"testing"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/pkg/api"
)

func TestGenerate_Deterministic(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		a, err := Generate(seed, MapWidth, MapHeight, 2)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		b, err := Generate(seed, MapWidth, MapHeight, 2)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		for _, p := range a.Layout.WalkableCells() {
			if a.Layout.TerrainAt(p) != b.Layout.TerrainAt(p) {
				t.Fatalf("seed %d: terrain differs at %v", seed, p)
			}
		}
		if len(a.Layout.WalkableCells()) != len(b.Layout.WalkableCells()) {
			t.Fatalf("seed %d: walkable cell count differs", seed)
		}
		if a.Layout.Entry() != b.Layout.Entry() {
			t.Errorf("seed %d: entry differs", seed)
		}
		if len(a.Spawns) != len(b.Spawns) {
			t.Fatalf("seed %d: spawn count differs", seed)
		}
		for i := range a.Spawns {
			if a.Spawns[i] != b.Spawns[i] {
				t.Errorf("seed %d: spawn %d differs: %+v vs %+v", seed, i, a.Spawns[i], b.Spawns[i])
			}
		}
	}
}

func TestGenerate_ConnectedWithOneStair(t *testing.T) {
	sizes := []struct{ w, h int }{{8, 8}, {10, 10}, {20, 12}, {MapWidth, MapHeight}, {80, 40}}

	for _, sz := range sizes {
		for seed := int64(0); seed < 100; seed++ {
			lvl, err := Generate(seed, sz.w, sz.h, 1)
			if err != nil {
				t.Fatalf("%dx%d seed %d: %v", sz.w, sz.h, seed, err)
			}
			l := lvl.Layout

			stairs := 0
			for _, p := range l.WalkableCells() {
				if l.TerrainAt(p) == domain.TerrainStairDown {
					stairs++
				}
			}
			if stairs != 1 {
				t.Fatalf("%dx%d seed %d: %d stairs", sz.w, sz.h, seed, stairs)
			}

			reach := l.Reachable(l.Entry())
			for _, p := range l.WalkableCells() {
				if !reach[l.Index(p)] {
					t.Fatalf("%dx%d seed %d: %v unreachable", sz.w, sz.h, seed, p)
				}
			}

			east := l.Entry().Step(domain.East)
			if l.Walkable(east) {
				t.Errorf("%dx%d seed %d: entry should have a wall to the east", sz.w, sz.h, seed)
			}
		}
	}
}

func TestGenerate_NoSpawnOnEntryOrStairs(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		lvl, err := Generate(seed, MapWidth, MapHeight, 4)
		if err != nil {
			t.Fatal(err)
		}
		seen := map[domain.Position]bool{}
		for _, s := range lvl.Spawns {
			if s.Pos == lvl.Layout.Entry() {
				t.Fatalf("seed %d: %s spawned on entry", seed, s.Template)
			}
			if s.Pos == lvl.Layout.StairDown() {
				t.Fatalf("seed %d: %s spawned on stairs", seed, s.Template)
			}
			if seen[s.Pos] {
				t.Fatalf("seed %d: two spawns at %v", seed, s.Pos)
			}
			seen[s.Pos] = true
		}
	}
}

func TestGenerate_SpawnsScaleWithLevel(t *testing.T) {
	count := func(lvl *Level, kind domain.EntityKind) int {
		n := 0
		for _, s := range lvl.Spawns {
			if s.Kind == kind {
				n++
			}
		}
		return n
	}

	prevMonsters, prevItems := -1, -1
	for level := 1; level <= 12; level++ {
		lvl, err := Generate(7, MapWidth, MapHeight, level)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		m, i := count(lvl, domain.KindMonster), count(lvl, domain.KindItem)
		if m != MonsterCount(level) || i != ItemCount(level) {
			t.Errorf("level %d: got %d monsters/%d items", level, m, i)
		}
		if m < prevMonsters || i < prevItems {
			t.Errorf("level %d: spawns decreased (%d->%d monsters, %d->%d items)", level, prevMonsters, m, prevItems, i)
		}
		prevMonsters, prevItems = m, i
	}
}

func TestGenerate_TooSmall(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		level         int
	}{
		{"narrow", 5, 20, 1},
		{"flat", 20, 7, 1},
		{"zero", 0, 0, 1},
		{"bad level", 20, 20, 0},
		{"too wide", MaxMapWidth + 1, 20, 1},
		{"too tall", 20, MaxMapHeight + 1, 1},
		{"huge", 1 << 30, 1 << 30, 1},
		{"level overflows id", 20, 20, MaxLevel + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl, err := Generate(1, tt.width, tt.height, tt.level)
			if lvl != nil {
				t.Error("no level should be returned")
			}
			var genErr *domain.GenerationError
			if !errors.As(err, &genErr) || !errors.Is(err, domain.ErrGeneration) {
				t.Errorf("expected GenerationError, got %v", err)
			}
		})
	}
}

func TestPopulate(t *testing.T) {
	lvl, err := Generate(42, MapWidth, MapHeight, 3)
	if err != nil {
		t.Fatal(err)
	}
	reg := domain.NewRegistry(lvl.Layout)

	playerID, err := Populate(reg, lvl)
	if err != nil {
		t.Fatal(err)
	}
	if reg.Player() == nil || reg.Player().ID != playerID {
		t.Fatal("player not registered")
	}
	if reg.Player().Pos != lvl.Layout.Entry() {
		t.Error("player should start on entry")
	}
	if got := len(reg.Monsters()); got != MonsterCount(3) {
		t.Errorf("monsters = %d, want %d", got, MonsterCount(3))
	}
	if err := reg.CheckConsistency(); err != nil {
		t.Fatal(err)
	}
}

// Тест вспомогательной функции пересечения комнат
func TestRect_Intersects(t *testing.T) {
	r1 := Rect{0, 0, 10, 10}
	r2 := Rect{5, 5, 10, 10} // Пересекается
	r3 := Rect{20, 20, 5, 5} // Не пересекается

	if !r1.Intersects(r2) {
		t.Error("Rects should intersect")
	}

	if r1.Intersects(r3) {
		t.Error("Rects should NOT intersect")
	}
}

func TestGenerate_MaxSize(t *testing.T) {
	lvl, err := Generate(3, MaxMapWidth, MaxMapHeight, 1)
	if err != nil {
		t.Fatalf("max size must generate: %v", err)
	}
	if lvl.Layout.Width() != MaxMapWidth || lvl.Layout.Height() != MaxMapHeight {
		t.Errorf("size %dx%d", lvl.Layout.Width(), lvl.Layout.Height())
	}
}

// Клиентская валидация NEW отсекает то же, что и генератор.
func TestGenerate_LimitsMatchProtocol(t *testing.T) {
	if api.MaxMapWidth != MaxMapWidth || api.MaxMapHeight != MaxMapHeight || api.MaxLevel != MaxLevel {
		t.Errorf("api limits %dx%d/%d, generator %dx%d/%d",
			api.MaxMapWidth, api.MaxMapHeight, api.MaxLevel, MaxMapWidth, MaxMapHeight, MaxLevel)
	}
}
