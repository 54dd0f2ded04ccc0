package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker guards one upstream dependency. A nil *CircuitBreaker is a
// disabled breaker: it admits every call and reports closed.
type CircuitBreaker struct {
	failureThreshold int
	openTimeout      time.Duration
	halfOpenMaxReq   int
	now              func() time.Time

	mu       sync.Mutex
	state    CircuitState
	failures int
	openedAt time.Time
	trips    int
	inFlight int
	passed   int
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold: max(failureThreshold, 1),
		openTimeout:      cmpOr(openTimeout, 15*time.Second),
		halfOpenMaxReq:   max(halfOpenMaxReq, 1),
		now:              time.Now,
		state:            CircuitStateClosed,
	}
}

// Allow admits a call or returns ErrCircuitOpen. Every admitted call must be
// followed by exactly one Record.
func (b *CircuitBreaker) Allow() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current() {
	case CircuitStateOpen:
		return ErrCircuitOpen
	case CircuitStateHalfOpen:
		if b.state == CircuitStateOpen {
			b.enter(CircuitStateHalfOpen)
		}
		if b.inFlight >= b.halfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.inFlight++
	}
	return nil
}

// Record reports the outcome of an admitted call.
func (b *CircuitBreaker) Record(failed bool) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateHalfOpen && b.inFlight > 0 {
		b.inFlight--
	}

	switch {
	case !failed && b.state == CircuitStateClosed:
		b.failures = 0
	case !failed && b.state == CircuitStateHalfOpen:
		b.passed++
		if b.passed >= b.halfOpenMaxReq && b.inFlight == 0 {
			b.enter(CircuitStateClosed)
		}
	case !failed:
	case b.state == CircuitStateClosed:
		b.failures++
		if b.failures >= b.failureThreshold {
			b.enter(CircuitStateOpen)
		}
	case b.state == CircuitStateHalfOpen:
		b.enter(CircuitStateOpen)
	default:
		b.openedAt = b.now()
	}
}

// State reports the effective state; an expired open window reads as half open.
func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current()
}

// CircuitSnapshot is a read-only view of breaker state for health reporting.
type CircuitSnapshot struct {
	State               CircuitState `json:"state"`
	ConsecutiveFailures int          `json:"consecutive_failures"`
	Trips               int          `json:"trips"`
	OpenedAt            *time.Time   `json:"opened_at,omitempty"`
}

func (b *CircuitBreaker) Snapshot() CircuitSnapshot {
	if b == nil {
		return CircuitSnapshot{State: CircuitStateClosed}
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	out := CircuitSnapshot{
		State:               b.current(),
		ConsecutiveFailures: b.failures,
		Trips:               b.trips,
	}
	if !b.openedAt.IsZero() {
		openedAt := b.openedAt
		out.OpenedAt = &openedAt
	}
	return out
}

func (b *CircuitBreaker) current() CircuitState {
	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) enter(state CircuitState) {
	b.state = state
	b.inFlight = 0
	b.passed = 0
	switch state {
	case CircuitStateOpen:
		b.openedAt = b.now()
		b.trips++
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	}
}

func cmpOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
