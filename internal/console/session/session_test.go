package session

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bibliodesk/internal/console/lifecycle"
	"bibliodesk/internal/console/view"
)

func testFactory(t *testing.T) Factory {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return func(string) *lifecycle.Controller {
		return lifecycle.New(nil, nil, nil, view.NewBorrowView(8), view.NewFineView(8), logger)
	}
}

func TestGetReturnsSameSessionPerOperator(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRegistry(testFactory(t), logger)

	alice := r.Get("op-alice")
	bob := r.Get("op-bob")
	require.NotNil(t, alice)
	require.NotNil(t, bob)
	assert.NotSame(t, alice, bob)

	assert.Same(t, alice, r.Get("op-alice"))
	assert.Equal(t, 2, r.Len())
}

func TestSweepEvictsOnlyIdleSessions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	r := NewRegistry(testFactory(t), logger, WithTTL(30*time.Minute), withClock(clock))

	idle := r.Get("op-idle")
	now = now.Add(31 * time.Minute)
	fresh := r.Get("op-fresh")

	r.sweep()
	assert.Equal(t, 1, r.Len())
	assert.Same(t, fresh, r.Get("op-fresh"))
	assert.NotSame(t, idle, r.Get("op-idle"), "evicted operator gets a fresh session")
}

func TestEvictionInvalidatesViewLifetime(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	r := NewRegistry(testFactory(t), logger, WithTTL(time.Minute), withClock(clock))

	c := r.Get("op-1")
	staleToken := c.BorrowView().Token()

	now = now.Add(2 * time.Minute)
	r.sweep()

	// a pass that was in flight when the session died must not land
	assert.False(t, c.BorrowView().Apply(nil, staleToken))
}

func TestTouchKeepsSessionAlive(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	r := NewRegistry(testFactory(t), logger, WithTTL(30*time.Minute), withClock(clock))

	c := r.Get("op-1")
	for i := 0; i < 3; i++ {
		now = now.Add(20 * time.Minute)
		r.Get("op-1")
	}
	now = now.Add(20 * time.Minute)
	r.sweep()

	require.Equal(t, 1, r.Len())
	assert.Same(t, c, r.Get("op-1"))
}
