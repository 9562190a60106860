package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from RoundStatus
		to   RoundStatus
		want bool
	}{
		{"initiated commits", StatusInitiated, StatusCommitted, true},
		{"initiated rolls back", StatusInitiated, StatusRolledBack, true},
		{"initiated cannot complete", StatusInitiated, StatusCompleted, false},
		{"committed completes", StatusCommitted, StatusCompleted, true},
		{"committed rolls back", StatusCommitted, StatusRolledBack, true},
		{"committed cannot commit again", StatusCommitted, StatusCommitted, false},
		{"completed is terminal", StatusCompleted, StatusRolledBack, false},
		{"rolled back is terminal", StatusRolledBack, StatusCommitted, false},
		{"no transition to initiated", StatusCommitted, StatusInitiated, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Round{Status: tt.from}
			assert.Equal(t, tt.want, r.CanTransition(tt.to))
		})
	}
}
