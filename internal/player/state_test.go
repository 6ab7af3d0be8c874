package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState(t *testing.T) {
	tests := []struct {
		state  State
		name   string
		active bool
	}{
		{Stopped, "Stopped", false},
		{Playing, "Playing", true},
		{Paused, "Paused", true},
		{State(99), "Unknown", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.state.String())
			assert.Equal(t, tt.active, tt.state.IsActive())
		})
	}
}

func TestState_ZeroIsStopped(t *testing.T) {
	var s State
	assert.Equal(t, Stopped, s)
}
