package domain

import (
	"encoding/json"
	"testing"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionType
	}{
		{"MOVE", ActionMove},
		{"move", ActionMove},
		{"Move", ActionMove},
		{"ATTACK", ActionAttack},
		{"use", ActionUseItem},
		{"WAIT", ActionWait},
		{"UNKNOWN_ACTION", ActionUnknown},
		{"", ActionUnknown},
	}

	for _, tt := range tests {
		result := ParseAction(tt.input)
		if result != tt.expected {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestActionType_String(t *testing.T) {
	tests := []struct {
		action   ActionType
		expected string
	}{
		{ActionMove, "MOVE"},
		{ActionAttack, "ATTACK"},
		{ActionUseItem, "USE"},
		{ActionUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("ActionType(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input string
		want  Direction
	}{
		{"E", East},
		{"east", East},
		{"sw", SouthWest},
		{"NorthWest", NorthWest},
		{"up", DirNone},
	}
	for _, tt := range tests {
		if got := ParseDirection(tt.input); got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDirection_DeltaRoundTrip(t *testing.T) {
	for _, d := range AllDirections {
		dx, dy := d.Delta()
		if got := DirectionFromDelta(dx, dy); got != d {
			t.Errorf("DirectionFromDelta(%d, %d) = %v, want %v", dx, dy, got, d)
		}
	}
	if DirectionFromDelta(0, 0) != DirNone {
		t.Error("zero delta should map to DirNone")
	}
}

func TestCommand_JournalJSON(t *testing.T) {
	cmd := Attack(PackEntityID(KindMonster, 3, 7))
	data, err := json.Marshal(cmd)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Command
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	if back != cmd {
		t.Errorf("got %+v, want %+v", back, cmd)
	}
}
