package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionForwardOnly(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusConfirmed, StatusCompleted))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusConfirmed, StatusCancelled))
}

func TestCanTransitionNoSkippingConfirmed(t *testing.T) {
	// There is no path from pending straight to completed
	assert.False(t, CanTransition(StatusPending, StatusCompleted))
}

func TestCanTransitionTerminalStates(t *testing.T) {
	for _, from := range []string{StatusCompleted, StatusCancelled} {
		for _, to := range []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
			assert.False(t, CanTransition(from, to), "%s -> %s should be rejected", from, to)
		}
	}
}

func TestCanTransitionNoRollback(t *testing.T) {
	assert.False(t, CanTransition(StatusConfirmed, StatusPending))
	assert.False(t, CanTransition(StatusCompleted, StatusConfirmed))
}

func TestDisplayRiskScoreClamps(t *testing.T) {
	assert.Equal(t, 0, (&Booking{RiskScore: -5}).DisplayRiskScore())
	assert.Equal(t, 100, (&Booking{RiskScore: 250}).DisplayRiskScore())
	assert.Equal(t, 42, (&Booking{RiskScore: 42}).DisplayRiskScore())

	// The stored value is untouched
	b := &Booking{RiskScore: 250}
	_ = b.DisplayRiskScore()
	assert.Equal(t, 250, b.RiskScore)
}
