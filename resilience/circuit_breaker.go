package resilience

import (
	"errors"
	"sync"
	"time"
)

// State is a circuit breaker state.
type State int

const (
	// StateClosed passes calls through.
	StateClosed State = iota
	// StateOpen rejects calls immediately.
	StateOpen
	// StateHalfOpen admits a limited number of probe calls.
	StateHalfOpen
)

var stateNames = [...]string{"closed", "open", "half-open"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// ErrCircuitOpen is returned by Execute while the circuit rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig shapes how quickly a breaker trips and recovers.
type CircuitBreakerConfig struct {
	// Name identifies the breaker in logs and state-change callbacks.
	Name string
	// MaxFailures is the consecutive-failure count that opens the circuit.
	MaxFailures int
	// Timeout is how long an open circuit waits before probing again.
	Timeout time.Duration
	// HalfOpenMaxCalls bounds concurrent probes in the half-open state.
	HalfOpenMaxCalls int
	// OnStateChange is called on every transition.
	OnStateChange func(name string, from, to State)
}

// DefaultCircuitBreakerConfig opens after five straight failures and probes
// again thirty seconds later.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxFailures:      5,
		Timeout:          30 * time.Second,
		HalfOpenMaxCalls: 1,
	}
}

// CircuitBreaker fails fast once a remote dependency looks down, so a
// broken provider does not eat a timeout per login attempt.
//
// Closed passes calls through and counts consecutive failures. Open
// rejects everything until Timeout passes; then half-open lets a bounded
// number of probes through, and their outcome decides between closing and
// re-opening.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig

	mu         sync.Mutex
	state      State
	failures   int
	successes  int
	openedAt   time.Time
	probeCalls int
}

// NewCircuitBreaker creates a circuit breaker, normalizing non-positive
// config fields to the defaults.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCircuitBreakerConfig(cfg.Name)
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = def.MaxFailures
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.HalfOpenMaxCalls <= 0 {
		cfg.HalfOpenMaxCalls = def.HalfOpenMaxCalls
	}
	return &CircuitBreaker{cfg: cfg, state: StateClosed}
}

// Execute runs op through the breaker, returning ErrCircuitOpen without
// calling it while the circuit rejects.
func (b *CircuitBreaker) Execute(op func() error) error {
	if !b.admit() {
		return ErrCircuitOpen
	}
	err := op()
	b.observe(err)
	return err
}

// State reports the effective state, accounting for an elapsed open
// timeout.
func (b *CircuitBreaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maybeProbe()
	return b.state
}

// Failures reports the current consecutive-failure count.
func (b *CircuitBreaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// Reset forces the breaker closed and clears its counters.
func (b *CircuitBreaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transition(StateClosed)
	b.failures = 0
}

// admit decides whether a call may proceed, performing the open-to-half-open
// transition when the open timeout has elapsed.
func (b *CircuitBreaker) admit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.maybeProbe()

	switch b.state {
	case StateClosed:
		return true
	case StateHalfOpen:
		if b.probeCalls < b.cfg.HalfOpenMaxCalls {
			b.probeCalls++
			return true
		}
		return false
	default:
		return false
	}
}

// maybeProbe moves an open circuit to half-open once Timeout has elapsed.
// Callers must hold b.mu.
func (b *CircuitBreaker) maybeProbe() {
	if b.state == StateOpen && time.Since(b.openedAt) >= b.cfg.Timeout {
		b.transition(StateHalfOpen)
	}
}

// observe folds a call result into the breaker state.
func (b *CircuitBreaker) observe(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failures++
		switch b.state {
		case StateClosed:
			if b.failures >= b.cfg.MaxFailures {
				b.transition(StateOpen)
			}
		case StateHalfOpen:
			// A failed probe re-opens immediately.
			b.transition(StateOpen)
		}
		return
	}

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		b.successes++
		if b.successes >= b.cfg.HalfOpenMaxCalls {
			b.transition(StateClosed)
		}
	}
}

// transition switches states, resets per-state counters and fires the
// callback. Callers must hold b.mu.
func (b *CircuitBreaker) transition(to State) {
	if b.state == to {
		return
	}

	from := b.state
	b.state = to
	b.successes = 0
	b.probeCalls = 0
	switch to {
	case StateClosed:
		b.failures = 0
	case StateOpen:
		b.openedAt = time.Now()
	}

	if b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(b.cfg.Name, from, to)
	}
}
