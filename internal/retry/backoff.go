package retry

import (
	"math"
	"math/rand"
	"time"
)

// Strategy decides how long to wait before each retry and how many retries
// are allowed.
type Strategy interface {
	// NextDelay returns the wait before retry number attempt (0-based).
	NextDelay(attempt int) time.Duration
	// MaxAttempts returns the number of retries after the first call.
	// Negative means unlimited.
	MaxAttempts() int
}

// Backoff is an exponential Strategy with jitter.
type Backoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	maxAttempts  int

	// jitter of 0.1 spreads each delay by +/- 10%.
	jitter     float64
	jitterFunc func() float64
}

// BackoffOption configures a Backoff.
type BackoffOption func(*Backoff)

// WithInitialDelay sets the wait before the first retry.
func WithInitialDelay(d time.Duration) BackoffOption {
	return func(b *Backoff) { b.initialDelay = d }
}

// WithMaxDelay caps the wait between retries.
func WithMaxDelay(d time.Duration) BackoffOption {
	return func(b *Backoff) { b.maxDelay = d }
}

// WithMultiplier sets the growth factor between retries.
func WithMultiplier(m float64) BackoffOption {
	return func(b *Backoff) { b.multiplier = m }
}

// WithJitter sets the jitter factor (0.0-1.0).
func WithJitter(j float64) BackoffOption {
	return func(b *Backoff) { b.jitter = j }
}

// WithJitterFunc replaces the random source, which must return values in [0, 1).
func WithJitterFunc(f func() float64) BackoffOption {
	return func(b *Backoff) { b.jitterFunc = f }
}

// NewBackoff creates a Backoff allowing maxAttempts retries. Platform calls
// are slow to recover, so the defaults start at one second and cap at 30s.
func NewBackoff(maxAttempts int, opts ...BackoffOption) *Backoff {
	b := &Backoff{
		initialDelay: time.Second,
		maxDelay:     30 * time.Second,
		multiplier:   2.0,
		maxAttempts:  maxAttempts,
		jitter:       0.1,
		jitterFunc:   rand.Float64,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NextDelay returns initialDelay * multiplier^attempt, capped and jittered.
func (b *Backoff) NextDelay(attempt int) time.Duration {
	delay := float64(b.initialDelay) * math.Pow(b.multiplier, float64(attempt))
	if limit := float64(b.maxDelay); delay > limit {
		delay = limit
	}

	if b.jitter > 0 {
		offset := (b.jitterFunc() - 0.5) * 2.0
		delay *= 1.0 + b.jitter*offset
	}

	return time.Duration(delay)
}

// MaxAttempts returns the number of retries.
func (b *Backoff) MaxAttempts() int {
	return b.maxAttempts
}
