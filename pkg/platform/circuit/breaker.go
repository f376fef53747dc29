// Package circuit provides a simple circuit breaker guarding upstream calls.
package circuit

import "sync"

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means the circuit is healthy and requests flow normally.
	StateClosed State = iota
	// StateOpen means the circuit has tripped and calls should be skipped.
	StateOpen
)

// Breaker tracks consecutive failures for one upstream service.
// It implements a two-state circuit breaker (closed/open). When closed,
// requests flow normally. After FailureThreshold consecutive failures the
// circuit opens and callers short-circuit without a network call. After
// SuccessThreshold consecutive probe successes while open, it closes again.
type Breaker struct {
	mu               sync.Mutex
	state            State
	name             string
	failureCount     int
	successCount     int
	probeInterval    int
	callsSinceOpen   int
	failureThreshold int
	successThreshold int
}

// Option configures a Breaker instance.
type Option func(*Breaker)

// WithFailureThreshold sets the number of consecutive failures to open the
// circuit. Default is 5.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

// WithSuccessThreshold sets the number of consecutive successes to close the
// circuit. Default is 1.
func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.successThreshold = n
		}
	}
}

// WithProbeInterval sets how many short-circuited calls pass between probe
// attempts while the circuit is open. Default is 10.
func WithProbeInterval(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.probeInterval = n
		}
	}
}

// New creates a circuit breaker named after the upstream it guards.
func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		state:            StateClosed,
		failureThreshold: 5,
		successThreshold: 1,
		probeInterval:    10,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Name returns the circuit breaker's name for logging/metrics.
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current circuit state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Allow reports whether the next call may go to the upstream. While open,
// every probeInterval-th call is let through as a probe so the circuit can
// recover without an explicit half-open timer.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateClosed {
		return true
	}

	b.callsSinceOpen++
	if b.callsSinceOpen >= b.probeInterval {
		b.callsSinceOpen = 0
		return true
	}
	return false
}

// RecordFailure records a failed upstream call.
// Returns true when the circuit transitioned to open on this call.
func (b *Breaker) RecordFailure() (opened bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount++
	b.successCount = 0

	if b.state == StateOpen {
		return false
	}
	if b.failureCount >= b.failureThreshold {
		b.state = StateOpen
		b.callsSinceOpen = 0
		return true
	}
	return false
}

// RecordSuccess records a successful upstream call.
// Returns true when the circuit transitioned to closed on this call.
func (b *Breaker) RecordSuccess() (closed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		b.successCount++
		if b.successCount >= b.successThreshold {
			b.state = StateClosed
			b.failureCount = 0
			b.successCount = 0
			return true
		}
		return false
	}

	b.failureCount = 0
	return false
}

// Reset resets the circuit breaker to closed state with zero counts.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failureCount = 0
	b.successCount = 0
	b.callsSinceOpen = 0
}
