package throttle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeClock advances only when Sleep is called or a request "takes" time.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestLimiter_FirstCallDoesNotWait(t *testing.T) {
	clock := newFakeClock()
	l := New(DefaultInterval, WithClock(clock))

	if !l.Last().IsZero() {
		t.Fatalf("Last() = %v before any call, want zero", l.Last())
	}

	if err := l.Do(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	if len(clock.sleeps) != 0 {
		t.Errorf("first call slept %v, want no sleep", clock.sleeps)
	}
	if !l.Last().Equal(clock.Now()) {
		t.Errorf("Last() = %v, want %v", l.Last(), clock.Now())
	}
}

func TestLimiter_SpacesCompletions(t *testing.T) {
	tests := []struct {
		name        string
		requestTime time.Duration // how long each fake request takes
		gapBetween  time.Duration // caller work between requests
		wantSleep   time.Duration // expected sleep before each later request
	}{
		{"back to back", 0, 0, DefaultInterval},
		{"slow requests", 500 * time.Millisecond, 0, DefaultInterval},
		{"caller busy for a second", 0, time.Second, DefaultInterval - time.Second},
		{"caller busier than interval", 0, 5 * time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			l := New(DefaultInterval, WithClock(clock))

			var completions []time.Time
			for i := 0; i < 4; i++ {
				err := l.Do(context.Background(), func(context.Context) error {
					clock.Advance(tt.requestTime)
					return nil
				})
				if err != nil {
					t.Fatalf("Do() error = %v", err)
				}
				completions = append(completions, l.Last())
				clock.Advance(tt.gapBetween)
			}

			for i := 1; i < len(completions); i++ {
				if gap := completions[i].Sub(completions[i-1]); gap < DefaultInterval {
					t.Errorf("gap between completions %d and %d = %v, want >= %v", i-1, i, gap, DefaultInterval)
				}
			}

			wantSleeps := 3
			if tt.wantSleep == 0 {
				wantSleeps = 0
			}
			if len(clock.sleeps) != wantSleeps {
				t.Fatalf("slept %d times (%v), want %d", len(clock.sleeps), clock.sleeps, wantSleeps)
			}
			for _, d := range clock.sleeps {
				if d != tt.wantSleep {
					t.Errorf("sleep = %v, want %v", d, tt.wantSleep)
				}
			}
		})
	}
}

func TestLimiter_RecordsCompletionOnError(t *testing.T) {
	clock := newFakeClock()
	l := New(DefaultInterval, WithClock(clock))
	boom := errors.New("boom")

	err := l.Do(context.Background(), func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("Do() error = %v, want %v", err, boom)
	}
	if l.Last().IsZero() {
		t.Fatal("Last() not recorded after failed request")
	}

	if err := l.Do(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if len(clock.sleeps) != 1 || clock.sleeps[0] != DefaultInterval {
		t.Errorf("sleeps = %v, want [%v]", clock.sleeps, DefaultInterval)
	}
}

func TestLimiter_CancelledWaitSkipsRequest(t *testing.T) {
	clock := newFakeClock()
	l := New(DefaultInterval, WithClock(clock))

	if err := l.Do(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	last := l.Last()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := l.Do(ctx, func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
	if called {
		t.Error("request ran after context was cancelled")
	}
	if !l.Last().Equal(last) {
		t.Errorf("Last() changed to %v, want %v", l.Last(), last)
	}
}

func TestLimiter_ZeroIntervalNeverWaits(t *testing.T) {
	clock := newFakeClock()
	l := New(0, WithClock(clock))

	for i := 0; i < 3; i++ {
		if err := l.Do(context.Background(), func(context.Context) error { return nil }); err != nil {
			t.Fatalf("Do() error = %v", err)
		}
	}
	if len(clock.sleeps) != 0 {
		t.Errorf("sleeps = %v, want none", clock.sleeps)
	}
}

func TestLimiter_RealClockConcurrentCallers(t *testing.T) {
	const interval = 40 * time.Millisecond
	l := New(interval)

	var (
		mu          sync.Mutex
		completions []time.Time
		wg          sync.WaitGroup
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.Do(context.Background(), func(context.Context) error {
				mu.Lock()
				defer mu.Unlock()
				completions = append(completions, time.Now())
				return nil
			})
			if err != nil {
				t.Errorf("Do() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if len(completions) != 4 {
		t.Fatalf("got %d completions, want 4", len(completions))
	}
	// Completions are appended inside the critical section, so they are in order.
	for i := 1; i < len(completions); i++ {
		if gap := completions[i].Sub(completions[i-1]); gap < interval {
			t.Errorf("gap %d = %v, want >= %v", i, gap, interval)
		}
	}
}
