package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakerOpensAfterThreshold(t *testing.T) {
	b := New("borrows", WithFailureThreshold(3))

	assert.False(t, b.RecordFailure())
	assert.False(t, b.RecordFailure())
	assert.True(t, b.RecordFailure(), "third consecutive failure should open the circuit")
	assert.Equal(t, StateOpen, b.State())
}

func TestBreakerShortCircuitsWhileOpen(t *testing.T) {
	b := New("fines", WithFailureThreshold(1), WithProbeInterval(3))
	b.RecordFailure()

	assert.False(t, b.Allow())
	assert.False(t, b.Allow())
	assert.True(t, b.Allow(), "every probeInterval-th call passes as a probe")
}

func TestBreakerClosesOnProbeSuccess(t *testing.T) {
	b := New("users", WithFailureThreshold(1))
	b.RecordFailure()
	assert.Equal(t, StateOpen, b.State())

	assert.True(t, b.RecordSuccess())
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

func TestSuccessResetsFailureStreak(t *testing.T) {
	b := New("books", WithFailureThreshold(2))
	b.RecordFailure()
	b.RecordSuccess()
	assert.False(t, b.RecordFailure(), "streak restarted after a success")
	assert.Equal(t, StateClosed, b.State())
}
