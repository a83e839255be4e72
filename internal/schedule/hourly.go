// Package schedule fires the automatic reminder on calendar-hour
// boundaries.
//
// Instead of polling every minute and diffing the hour-of-day, the
// scheduler computes the next boundary explicitly and sleeps until that
// instant with a one-shot timer, rescheduling after each fire. A
// last-fired guard keeps a boundary from firing twice even when the timer
// wakes slightly early or late (clock changes, suspend/resume).
package schedule

import (
	"context"
	"sync"
	"time"

	"duebell/internal/logger"
)

// Option configures the scheduler.
type Option func(*Hourly)

// WithClock overrides the time source. Tests use this to pin "now".
func WithClock(now func() time.Time) Option {
	return func(h *Hourly) { h.now = now }
}

// Hourly invokes a callback exactly once per calendar-hour boundary.
type Hourly struct {
	run func(context.Context)
	log *logger.Logger
	now func() time.Time

	mu        sync.Mutex
	lastFired time.Time // boundary hour of the last fire
}

// New creates an hourly scheduler invoking run on each boundary.
func New(run func(context.Context), log *logger.Logger, opts ...Option) *Hourly {
	h := &Hourly{
		run: run,
		log: log,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NextBoundary returns the first calendar-hour boundary strictly after t.
func NextBoundary(t time.Time) time.Time {
	return t.Truncate(time.Hour).Add(time.Hour)
}

// Run blocks until ctx is cancelled, firing the callback at each hour
// boundary. Intended to be called as a goroutine. The hour in progress at
// startup never fires — only boundaries crossed while running do.
func (h *Hourly) Run(ctx context.Context) {
	h.mu.Lock()
	h.lastFired = h.now().Truncate(time.Hour)
	h.mu.Unlock()

	h.log.Info("hourly scheduler started (next boundary %s)", NextBoundary(h.now()).Format("15:04"))

	for {
		now := h.now()
		timer := time.NewTimer(NextBoundary(now).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			h.log.Info("hourly scheduler stopped")
			return
		case <-timer.C:
			h.fire(ctx)
		}
	}
}

// fire runs the callback if the current hour hasn't fired yet. Returns
// whether the callback ran. A wake-up inside an already-fired hour is a
// no-op, so double wakes near a boundary collapse to one fire.
func (h *Hourly) fire(ctx context.Context) bool {
	hour := h.now().Truncate(time.Hour)

	h.mu.Lock()
	if hour.Equal(h.lastFired) {
		h.mu.Unlock()
		h.log.Debug("scheduler: woke inside already-fired hour %s", hour.Format("15:04"))
		return false
	}
	h.lastFired = hour
	h.mu.Unlock()

	h.log.Info("scheduler: hour boundary %s, firing reminder", hour.Format("15:04"))
	h.run(ctx)
	return true
}
