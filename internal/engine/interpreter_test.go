package engine

import (
	"errors"
	"testing"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
)

// Карта для проверок интерпретатора:
//
//	#######
//	#@gr..#   игрок (1,1), гоблин (2,1), крыса (3,1)
//	#S....#   эликсир на полу (1,2)
//	#....O#   орк далеко (5,3)
//	#....>#
//	#######
func interpreterFixture(t *testing.T) (*Session, map[rune]*domain.Entity) {
	t.Helper()
	s := newTestSession(t, domain.WinStairDown,
		"#######",
		"#@gr..#",
		"#S....#",
		"#....O#",
		"#....>#",
		"#######",
	)
	byPos := map[domain.Position]rune{
		{X: 1, Y: 1}: '@', {X: 2, Y: 1}: 'g', {X: 3, Y: 1}: 'r',
		{X: 1, Y: 2}: 'S', {X: 5, Y: 3}: 'O',
	}
	out := make(map[rune]*domain.Entity)
	for _, e := range s.Registry().Entities() {
		out[byPos[e.Pos]] = e
	}
	return s, out
}

func TestInterpret(t *testing.T) {
	s, ents := interpreterFixture(t)
	reg := s.Registry()
	player, goblin, rat, elixir, orc := ents['@'], ents['g'], ents['r'], ents['S'], ents['O']

	tests := []struct {
		name     string
		actor    *domain.Entity
		cmd      domain.Command
		wantErr  error
		wantType domain.ActionType
		check    func(t *testing.T, act domain.ValidatedAction)
	}{
		{"move into wall", player, domain.Move(domain.West), domain.ErrNotWalkable, 0, nil},
		{"move without direction", player, domain.Move(domain.DirNone), domain.ErrUnknownCommand, 0, nil},
		{
			name: "move onto item is a move", actor: player, cmd: domain.Move(domain.South), wantType: domain.ActionMove,
			check: func(t *testing.T, act domain.ValidatedAction) {
				if act.To != (domain.Position{X: 1, Y: 2}) {
					t.Errorf("To = %v", act.To)
				}
			},
		},
		{
			name: "move into monster becomes attack", actor: player, cmd: domain.Move(domain.East), wantType: domain.ActionAttack,
			check: func(t *testing.T, act domain.ValidatedAction) {
				if act.Target != goblin.ID {
					t.Errorf("Target = %v, want goblin %v", act.Target, goblin.ID)
				}
			},
		},
		{"monster into monster is occupied", goblin, domain.Move(domain.East), domain.ErrOccupied, 0, nil},
		{"monster into player attacks", goblin, domain.Move(domain.West), nil, domain.ActionAttack, nil},
		{"attack adjacent", player, domain.Attack(goblin.ID), nil, domain.ActionAttack, nil},
		{"attack not adjacent", player, domain.Attack(orc.ID), domain.ErrInvalidTarget, 0, nil},
		{"attack self", player, domain.Attack(player.ID), domain.ErrInvalidTarget, 0, nil},
		{"attack item", player, domain.Attack(elixir.ID), domain.ErrInvalidTarget, 0, nil},
		{"attack unknown id", player, domain.Attack(domain.PackEntityID(domain.KindMonster, 1, 999)), domain.ErrInvalidTarget, 0, nil},
		{"monsters do not fight each other", goblin, domain.Attack(rat.ID), domain.ErrInvalidTarget, 0, nil},
		{"use item from the floor", player, domain.UseItem(elixir.ID), domain.ErrItemNotFound, 0, nil},
		{"wait", player, domain.Wait(), nil, domain.ActionWait, nil},
		{"unknown action", player, domain.Command{Type: domain.ActionUnknown}, domain.ErrUnknownCommand, 0, nil},
	}

	before := make(map[domain.EntityID]domain.Position)
	for _, e := range reg.Entities() {
		before[e.ID] = e.Pos
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, rej := Interpret(tt.cmd, tt.actor, reg)
			if tt.wantErr != nil {
				if rej == nil {
					t.Fatalf("expected rejection %v, got action %+v", tt.wantErr, act)
				}
				if !errors.Is(rej, tt.wantErr) || !errors.Is(rej, domain.ErrRejected) {
					t.Errorf("rejection = %v, want %v", rej, tt.wantErr)
				}
				return
			}
			if rej != nil {
				t.Fatalf("unexpected rejection: %v", rej)
			}
			if act.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", act.Type, tt.wantType)
			}
			if act.Actor != tt.actor.ID {
				t.Errorf("Actor = %v, want %v", act.Actor, tt.actor.ID)
			}
			if tt.check != nil {
				tt.check(t, act)
			}
		})
	}

	// Интерпретатор ничего не меняет
	for _, e := range reg.Entities() {
		if before[e.ID] != e.Pos {
			t.Errorf("%v moved from %v to %v", e.ID, before[e.ID], e.Pos)
		}
	}
	if err := reg.CheckConsistency(); err != nil {
		t.Errorf("registry inconsistent: %v", err)
	}
}

func TestInterpret_OutOfBounds(t *testing.T) {
	s := newTestSession(t, domain.WinStairDown, "@.>")
	_, rej := Interpret(domain.Move(domain.North), s.Registry().Player(), s.Registry())
	if rej == nil || !errors.Is(rej, domain.ErrOutOfBounds) {
		t.Fatalf("rejection = %v, want ErrOutOfBounds", rej)
	}
	if !isBlockedMove(rej) {
		t.Error("out of bounds move should be reported as BLOCKED")
	}
}

func TestInterpret_DeadActor(t *testing.T) {
	s, ents := interpreterFixture(t)
	ents['@'].Stats.HP = 0
	if _, rej := Interpret(domain.Wait(), ents['@'], s.Registry()); rej == nil {
		t.Error("dead actor must not act")
	}
	if _, rej := Interpret(domain.Wait(), nil, s.Registry()); rej == nil {
		t.Error("nil actor must not act")
	}
}
