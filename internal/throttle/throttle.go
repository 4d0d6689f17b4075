// Package throttle spaces out outbound requests to a remote site.
//
// A single Limiter is shared by every call site in a run. It guarantees that
// a request never starts until the configured minimum interval has elapsed
// since the previous request completed, no matter which entity (team,
// pitcher, listing page) the request is for.
package throttle

import (
	"context"
	"sync"
	"time"

	"github.com/tscizzle/mlb-stats/internal/logger"
)

// DefaultInterval is the spacing baseball-reference asks crawlers to keep.
const DefaultInterval = 3100 * time.Millisecond

// Clock abstracts time so tests can run without real waits.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Limiter serializes requests and enforces a minimum spacing between them.
// The zero value of last means no request has completed yet.
type Limiter struct {
	mu       sync.Mutex
	clock    Clock
	interval time.Duration
	last     time.Time
}

// Option configures a Limiter
type Option func(*Limiter)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(l *Limiter) {
		l.clock = c
	}
}

// New creates a Limiter. A non-positive interval disables spacing.
func New(interval time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		clock:    realClock{},
		interval: interval,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Interval returns the configured minimum spacing.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Last returns the completion time of the most recent request.
func (l *Limiter) Last() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}

// Do waits for the remaining required delay, runs fn and records its
// completion time. The lock is held for the whole sequence, so concurrent
// callers queue behind each other. The completion time is recorded even
// when fn fails, since the remote server still saw the request.
//
// If ctx is cancelled while waiting, fn is not run and ctx.Err() is returned.
func (l *Limiter) Do(ctx context.Context, fn func(context.Context) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.wait(ctx); err != nil {
		return err
	}

	err := fn(ctx)
	l.last = l.clock.Now()
	return err
}

func (l *Limiter) wait(ctx context.Context) error {
	if l.last.IsZero() || l.interval <= 0 {
		return ctx.Err()
	}

	remaining := l.interval - l.clock.Now().Sub(l.last)
	if remaining <= 0 {
		return ctx.Err()
	}

	logger.Debug("throttling request", logger.Fields{
		"wait": remaining.String(),
	})
	start := l.clock.Now()
	if err := l.clock.Sleep(ctx, remaining); err != nil {
		return err
	}
	logger.RecordTiming("throttle.wait", l.clock.Now().Sub(start))
	return nil
}
