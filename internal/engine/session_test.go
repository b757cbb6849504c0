package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/pkg/api"
)

func generatedConfig(seed int64, w, h, level int) Config {
	return Config{Seed: seed, Width: w, Height: h, LevelIndex: level, WinCondition: domain.WinStairDown}
}

// Seed 42 на 10x10: вход всегда стоит у стены с востока.
func TestNewSession_Seed42MoveEastIsBlocked(t *testing.T) {
	s, err := NewSession(generatedConfig(42, 10, 10, 1))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	before := s.Snapshot()
	player := s.Registry().Player()
	pos := player.Pos

	snap, err := s.SubmitCommand(domain.Move(domain.East))
	if !errors.Is(err, domain.ErrRejected) {
		t.Fatalf("err = %v, want rejection", err)
	}
	if snap.Phase != before.Phase {
		t.Errorf("phase changed %s -> %s", before.Phase, snap.Phase)
	}
	if player.Pos != pos {
		t.Errorf("player moved %v -> %v", pos, player.Pos)
	}
	if len(snap.Events) != 1 || snap.Events[0].Type != domain.EventBlocked.String() {
		t.Errorf("events = %+v, want one BLOCKED", snap.Events)
	}
	if snap.Turn != 0 {
		t.Errorf("turn = %d, want 0", snap.Turn)
	}
}

func TestNewSession_GenerationErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"too small", generatedConfig(1, 5, 5, 1)},
		{"too narrow", generatedConfig(1, 40, 3, 1)},
		{"level zero", generatedConfig(1, 40, 25, 0)},
		{"negative size", generatedConfig(1, -1, 25, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSession(tt.cfg)
			if s != nil {
				t.Error("session created from invalid config")
			}
			var ge *domain.GenerationError
			if !errors.As(err, &ge) || !errors.Is(err, domain.ErrGeneration) {
				t.Errorf("err = %v, want GenerationError", err)
			}
		})
	}
}

// script - фиксированная последовательность команд без знания карты.
func script(n int) []domain.Command {
	dirs := []domain.Direction{domain.East, domain.South, domain.East, domain.North, domain.West, domain.SouthEast}
	out := make([]domain.Command, 0, n)
	for i := 0; i < n; i++ {
		if i%7 == 6 {
			out = append(out, domain.Wait())
			continue
		}
		out = append(out, domain.Move(dirs[i%len(dirs)]))
	}
	return out
}

func play(t *testing.T, cfg Config, cmds []domain.Command) (*Session, api.Snapshot) {
	t.Helper()
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	snap := s.Snapshot()
	for _, cmd := range cmds {
		var err error
		snap, err = s.SubmitCommand(cmd)
		if errors.Is(err, domain.ErrSessionOver) {
			break
		}
		if err != nil && !errors.Is(err, domain.ErrRejected) {
			t.Fatalf("turn %d %s: %v", s.Turn(), cmd, err)
		}
	}
	return s, snap
}

func TestSession_Deterministic(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1337} {
		cfg := generatedConfig(seed, 30, 20, 3)
		_, a := play(t, cfg, script(80))
		_, b := play(t, cfg, script(80))
		if !reflect.DeepEqual(a, b) {
			t.Errorf("seed %d: two identical runs produced different snapshots", seed)
		}
	}
}

func TestReplay(t *testing.T) {
	cfg := generatedConfig(99, 40, 25, 2)
	original, want := play(t, cfg, script(120))

	j := original.Journal()
	if len(j.Entries) == 0 {
		t.Fatal("empty journal")
	}
	if got := ReplayConfig(j); got != cfg {
		t.Errorf("ReplayConfig = %+v, want %+v", got, cfg)
	}

	replayed, err := Replay(j)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if got := replayed.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("replayed snapshot differs (turn %d vs %d)", got.Turn, want.Turn)
	}
	if !reflect.DeepEqual(replayed.Journal().Commands(), j.Commands()) {
		t.Error("replayed journal differs")
	}
}

func TestReplay_DetectsDivergence(t *testing.T) {
	cfg := generatedConfig(5, 20, 15, 1)
	s, _ := play(t, cfg, script(10))
	j := s.Journal()
	j.Entries[0].Accepted = !j.Entries[0].Accepted

	if _, err := Replay(j); !errors.Is(err, domain.ErrInvariantViolation) {
		t.Errorf("err = %v, want divergence", err)
	}
}

func TestSession_InvariantsHoldOverManySeeds(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		s, err := NewSession(generatedConfig(seed, 24, 16, 1+int(seed%5)))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for _, cmd := range script(60) {
			_, err := s.SubmitCommand(cmd)
			if errors.Is(err, domain.ErrSessionOver) {
				break
			}
			if err != nil && !errors.Is(err, domain.ErrRejected) {
				t.Fatalf("seed %d turn %d: %v", seed, s.Turn(), err)
			}
			// Не больше одной блокирующей сущности на клетку
			seen := make(map[domain.Position]domain.EntityID)
			for _, e := range s.Registry().Entities() {
				if e.Carried || !e.IsBlocking() {
					continue
				}
				if other, ok := seen[e.Pos]; ok {
					t.Fatalf("seed %d: %v and %v share %v", seed, other, e.ID, e.Pos)
				}
				seen[e.Pos] = e.ID
			}
		}
	}
}

func TestSnapshot(t *testing.T) {
	s, err := NewSession(generatedConfig(3, 30, 20, 1))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	snap := s.Snapshot()

	if len(snap.Map) != 30*20 {
		t.Errorf("map has %d tiles, want %d", len(snap.Map), 30*20)
	}
	if snap.Grid.Width != 30 || snap.Grid.Height != 20 {
		t.Errorf("grid = %+v", snap.Grid)
	}
	if snap.Phase != domain.PhaseExploring.String() && snap.Phase != domain.PhaseCombat.String() {
		t.Errorf("phase = %s", snap.Phase)
	}
	if snap.WinCondition != "stair_down" {
		t.Errorf("winCondition = %s", snap.WinCondition)
	}

	var player *api.EntityView
	for i := range snap.Entities {
		if snap.Entities[i].ID == snap.PlayerID {
			player = &snap.Entities[i]
		}
	}
	if player == nil {
		t.Fatal("player missing from snapshot")
	}
	if !player.IsVisible || player.Stats == nil || player.Inventory == nil {
		t.Errorf("player view = %+v", player)
	}

	tile := snap.Map[player.Pos.Y*30+player.Pos.X]
	if !tile.IsVisible || !tile.IsExplored || tile.IsWall {
		t.Errorf("player tile = %+v, want visible explored floor", tile)
	}

	stairs := 0
	for _, tv := range snap.Map {
		if tv.Terrain == domain.TerrainStairDown.String() {
			stairs++
		}
		if tv.IsVisible && !tv.IsExplored {
			t.Fatalf("tile %d,%d visible but not explored", tv.X, tv.Y)
		}
	}
	if stairs != 1 {
		t.Errorf("snapshot has %d stairs", stairs)
	}

	// Снимок не делит память с сессией
	snap.Entities[0].Name = "changed"
	if s.Snapshot().Entities[0].Name == "changed" {
		t.Error("snapshot aliases session state")
	}
}

func TestConfig(t *testing.T) {
	t.Setenv("DUNGEON_SEED", "77")
	t.Setenv("DUNGEON_WIDTH", "32")
	t.Setenv("DUNGEON_WIN_CONDITION", "clear_all_monsters")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Seed != 77 || cfg.Width != 32 || cfg.Height != 25 || cfg.LevelIndex != 1 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.WinCondition != domain.WinClearAllMonsters {
		t.Errorf("win = %s", cfg.WinCondition)
	}

	seed := int64(5)
	got, err := cfg.WithPayload(api.NewGamePayload{Seed: &seed, Level: 3, WinCondition: "StairDown"})
	if err != nil {
		t.Fatalf("WithPayload: %v", err)
	}
	if got.Seed != 5 || got.LevelIndex != 3 || got.Width != 32 || got.WinCondition != domain.WinStairDown {
		t.Errorf("WithPayload = %+v", got)
	}
	if _, err := cfg.WithPayload(api.NewGamePayload{WinCondition: "treasure"}); err == nil {
		t.Error("unknown win condition accepted")
	}

	t.Setenv("DUNGEON_LEVEL", "0")
	if _, err := LoadConfig(); !errors.Is(err, domain.ErrGeneration) {
		t.Errorf("level 0: err = %v", err)
	}
}
