package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionSlot(t *testing.T) {
	tests := []struct {
		name    string
		current SlotStatus
		event   SlotEvent
		want    SlotStatus
		wantErr bool
	}{
		{"claim available", SlotAvailable, SlotEventClaim, SlotUnavailable, false},
		{"release unavailable", SlotUnavailable, SlotEventRelease, SlotAvailable, false},
		{"claim unavailable rejected", SlotUnavailable, SlotEventClaim, SlotUnavailable, true},
		{"release available rejected", SlotAvailable, SlotEventRelease, SlotAvailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TransitionSlot(tt.current, tt.event)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrSlotTransition)
				assert.Equal(t, tt.current, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTotalRoundRobinMatches(t *testing.T) {
	assert.Equal(t, 15, TotalRoundRobinMatches(6))
	assert.Equal(t, 6, TotalRoundRobinMatches(4))
	assert.Equal(t, 1, TotalRoundRobinMatches(2))
}

func TestDateHelpers(t *testing.T) {
	a := time.Date(2025, 10, 15, 18, 30, 0, 0, time.UTC)
	b := time.Date(2025, 10, 18, 9, 0, 0, 0, time.UTC)

	assert.True(t, DateBefore(a, b))
	assert.False(t, DateBefore(b, a))
	assert.False(t, DateBefore(a, a))
	assert.Equal(t, 3, DaysBetween(a, b))
	assert.Equal(t, -3, DaysBetween(b, a))
	assert.True(t, SameDay(a, DateOnly(a)))
}
