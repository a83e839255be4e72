package schedule

import (
	"context"
	"sync"
	"testing"
	"time"

	"duebell/internal/logger"
)

// tickingClock is a settable fake time source.
type tickingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *tickingClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *tickingClock) set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func at(hour, min int) time.Time {
	return time.Date(2025, time.November, 20, hour, min, 0, 0, time.UTC)
}

func TestNextBoundary(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{at(10, 59), at(11, 0)},
		{at(11, 0), at(12, 0)}, // strictly after
		{at(0, 30), at(1, 0)},
		{time.Date(2025, time.November, 20, 23, 30, 0, 0, time.UTC),
			time.Date(2025, time.November, 21, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := NextBoundary(tt.in); !got.Equal(tt.want) {
			t.Errorf("NextBoundary(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFireExactlyOncePerBoundary(t *testing.T) {
	clock := &tickingClock{t: at(10, 59)}
	fired := 0
	h := New(func(context.Context) { fired++ }, logger.New(logger.LevelOff, nil), WithClock(clock.now))
	h.lastFired = at(10, 0)

	ctx := context.Background()

	// Still inside hour 10 — nothing fires.
	if h.fire(ctx) {
		t.Fatal("fire inside already-fired hour must be a no-op")
	}

	// Clock crosses 10:59 -> 11:00 — exactly one episode.
	clock.set(at(11, 0))
	if !h.fire(ctx) {
		t.Fatal("expected fire at 11:00 boundary")
	}

	// A second wake at 11:00 and a later one at 11:30 stay quiet.
	if h.fire(ctx) {
		t.Fatal("double wake at the boundary must not fire twice")
	}
	clock.set(at(11, 30))
	if h.fire(ctx) {
		t.Fatal("11:00 -> 11:30 is the same hour, must not fire")
	}

	if fired != 1 {
		t.Fatalf("expected exactly 1 fire, got %d", fired)
	}

	// Next boundary fires again.
	clock.set(at(12, 0))
	if !h.fire(ctx) {
		t.Fatal("expected fire at 12:00 boundary")
	}
	if fired != 2 {
		t.Fatalf("expected 2 fires, got %d", fired)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	h := New(func(context.Context) {}, logger.New(logger.LevelOff, nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRunDoesNotFireForStartupHour(t *testing.T) {
	clock := &tickingClock{t: at(10, 30)}
	fired := 0
	h := New(func(context.Context) { fired++ }, logger.New(logger.LevelOff, nil), WithClock(clock.now))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	// Give Run a moment to initialize, then try to fire within hour 10.
	time.Sleep(20 * time.Millisecond)
	if h.fire(ctx) {
		t.Fatal("startup hour must be treated as already fired")
	}
	if fired != 0 {
		t.Fatalf("expected no fires, got %d", fired)
	}

	cancel()
	<-done
}
