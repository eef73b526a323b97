// Package breaker implements the circuit breaker guarding the external ML
// scorer. It is the only piece of state in the pipeline that outlives a
// single request.
package breaker

import (
	"sync"
	"time"
)

// Clock returns the current time; injectable so tests can step through the
// cooldown without sleeping.
type Clock func() time.Time

type Breaker struct {
	mu        sync.Mutex
	threshold int
	cooldown  time.Duration
	now       Clock

	failures int
	openedAt time.Time
	open     bool
}

func New(threshold int, cooldown time.Duration, clock Clock) *Breaker {
	if clock == nil {
		clock = time.Now
	}
	return &Breaker{
		threshold: threshold,
		cooldown:  cooldown,
		now:       clock,
	}
}

// Allow reports whether a call may proceed. An open breaker auto-resets to
// closed once the cooldown has elapsed, independent of request boundaries.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return true
	}
	if b.now().Sub(b.openedAt) >= b.cooldown {
		b.open = false
		b.failures = 0
		return true
	}
	return false
}

// RecordFailure increments the failure count and opens the breaker once the
// threshold is reached.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	if b.failures >= b.threshold {
		b.open = true
		b.openedAt = b.now()
	}
}

// RecordSuccess resets the failure count to zero.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	b.open = false
}

func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}
