package api

import "testing"

func TestPayloadValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload Validator
		wantErr bool
	}{
		{"direction ok", DirectionPayload{Direction: "ne"}, false},
		{"direction empty", DirectionPayload{}, true},
		{"direction bogus", DirectionPayload{Direction: "UP"}, true},
		{"target ok", EntityPayload{TargetID: "123"}, false},
		{"target missing", EntityPayload{}, true},
		{"item missing", ItemPayload{}, true},
		{"new defaults", NewGamePayload{}, false},
		{"new negative", NewGamePayload{Width: -1}, true},
		{"new max size", NewGamePayload{Width: MaxMapWidth, Height: MaxMapHeight}, false},
		{"new too wide", NewGamePayload{Width: MaxMapWidth + 1}, true},
		{"new huge", NewGamePayload{Width: 1 << 30, Height: 1 << 30}, true},
		{"new level overflow", NewGamePayload{Level: MaxLevel + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
