// Package session keeps one console state per operator. Each operator gets
// their own controller and view pair; state is evicted after an idle TTL so
// abandoned consoles do not pin snapshots forever.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"bibliodesk/internal/console/lifecycle"
	"bibliodesk/internal/platform/metrics"
)

// DefaultTTL is how long an operator's console state survives without a
// request before eviction.
const DefaultTTL = 30 * time.Minute

const sweepInterval = time.Minute

// Factory builds a fresh controller, with its own views, for one operator.
type Factory func(operatorID string) *lifecycle.Controller

type entry struct {
	controller *lifecycle.Controller
	lastSeen   time.Time
}

// Registry maps operator IDs to live console sessions.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	factory Factory
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Registry)

func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// withClock overrides time for tests.
func withClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(factory Factory, logger *slog.Logger, opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]*entry),
		factory: factory,
		ttl:     DefaultTTL,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the operator's controller, creating one on first use, and
// marks the session as seen.
func (r *Registry) Get(operatorID string) *lifecycle.Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[operatorID]
	if !ok {
		e = &entry{controller: r.factory(operatorID)}
		r.entries[operatorID] = e
		r.logger.Debug("created console session", "operator_id", operatorID)
		r.updateGaugeLocked()
	}
	e.lastSeen = r.now()
	return e.controller
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Run sweeps idle sessions until ctx is done. Intended as a goroutine next
// to the HTTP server.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

// sweep evicts every session idle past the TTL. Evicted views are
// invalidated so an aggregation pass still in flight for them is dropped on
// arrival instead of resurrecting the session's snapshot.
func (r *Registry) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	for id, e := range r.entries {
		if e.lastSeen.After(cutoff) {
			continue
		}
		e.controller.BorrowView().Invalidate()
		e.controller.FineView().Invalidate()
		delete(r.entries, id)
		r.logger.Info("evicted idle console session", "operator_id", id)
	}
	r.updateGaugeLocked()
}

func (r *Registry) updateGaugeLocked() {
	if r.metrics == nil {
		return
	}
	r.metrics.ActiveViewSessions.Set(float64(len(r.entries)))
}
