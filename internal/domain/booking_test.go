package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name        string
		from        BookingState
		to          BookingState
		shouldAllow bool
	}{
		{"created to accepted", StateCreated, StateAccepted, true},
		{"accepted to started", StateAccepted, StateStarted, true},
		{"started to completed", StateStarted, StateCompleted, true},
		{"created to exception", StateCreated, StateException, true},
		{"accepted to exception", StateAccepted, StateException, true},
		{"started to exception", StateStarted, StateException, true},
		{"created to started skips acceptance", StateCreated, StateStarted, false},
		{"created to completed", StateCreated, StateCompleted, false},
		{"completed is terminal", StateCompleted, StateException, false},
		{"exception is terminal", StateException, StateCreated, false},
		{"no self transition", StateAccepted, StateAccepted, false},
		{"backwards", StateStarted, StateAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.shouldAllow, CanTransition(tt.from, tt.to))
		})
	}
}

func TestBooking_TransitionTo(t *testing.T) {
	b := &Booking{State: StateCreated}

	require.NoError(t, b.TransitionTo(StateAccepted))
	require.NoError(t, b.TransitionTo(StateStarted))
	require.NoError(t, b.TransitionTo(StateCompleted))
	assert.Equal(t, StateCompleted, b.State)

	err := b.TransitionTo(StateException)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StateCompleted, b.State)
}

func TestParseBookingState(t *testing.T) {
	state, err := ParseBookingState("STARTED")
	require.NoError(t, err)
	assert.Equal(t, StateStarted, state)

	_, err = ParseBookingState("started")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBookingState_IsTerminal(t *testing.T) {
	assert.True(t, StateCompleted.IsTerminal())
	assert.True(t, StateException.IsTerminal())
	assert.False(t, StateCreated.IsTerminal())
}

func TestBooking_BlocksAvailability(t *testing.T) {
	assert.True(t, (&Booking{State: StateCreated}).BlocksAvailability())
	assert.False(t, (&Booking{State: StateCreated, IsException: true}).BlocksAvailability())
	assert.False(t, (&Booking{State: StateException}).BlocksAvailability())
}

func TestBooking_Duration(t *testing.T) {
	start := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	b := &Booking{StartDatetime: start, EndDatetime: start.Add(2 * time.Hour)}
	assert.Equal(t, DefaultBookingDuration, b.Duration())
}
