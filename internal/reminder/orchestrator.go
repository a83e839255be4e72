// Package reminder implements the episode orchestrator: it decides what a
// reminder says, when it becomes visible, and whether it is spoken.
package reminder

import (
	"context"
	"errors"
	"sync"
	"time"

	"duebell/internal/countdown"
	"duebell/internal/domain"
	"duebell/internal/logger"
)

// State is the full UI-facing view of the reminder system. The countdown
// fields are recomputed from the clock on every snapshot, never cached.
type State struct {
	Message          string
	ShowPopup        bool
	Tier             domain.Tier
	DaysLeft         int
	HoursLeft        int
	BackgroundURL    string
	ImageDescription string
	ImageLoading     bool
	SoundEnabled     bool
}

// Listener is invoked with a fresh State after every state change.
type Listener func(State)

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithClock overrides the time source. Tests use this to pin "now".
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithListener registers the state-change listener.
func WithListener(fn Listener) Option {
	return func(o *Orchestrator) { o.listener = fn }
}

// WithSound sets the initial sound preference.
func WithSound(enabled bool) Option {
	return func(o *Orchestrator) { o.soundEnabled = enabled }
}

// Orchestrator runs reminder episodes. At most one episode is in flight at
// a time: triggers arriving while one is outstanding are dropped, not
// queued. All dependencies are injected — no package-level state.
type Orchestrator struct {
	provider domain.ContentProvider
	sink     domain.AudioSink
	deadline time.Time
	now      func() time.Time
	log      *logger.Logger
	listener Listener

	mu           sync.Mutex
	inFlight     bool
	message      string
	showPopup    bool
	soundEnabled bool
	image        domain.Image
	imageLoading bool
	last         domain.Episode
}

// New creates an orchestrator for the fixed deadline.
func New(provider domain.ContentProvider, sink domain.AudioSink, deadline time.Time, log *logger.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		provider:     provider,
		sink:         sink,
		deadline:     deadline,
		now:          time.Now,
		log:          log,
		soundEnabled: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Deadline returns the fixed deadline.
func (o *Orchestrator) Deadline() time.Time { return o.deadline }

// LastEpisode returns the most recently completed episode. The zero value
// means no episode has fired yet.
func (o *Orchestrator) LastEpisode() domain.Episode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last
}

// Snapshot returns the current UI state with countdown figures recomputed
// from the clock.
func (o *Orchestrator) Snapshot() State {
	snap := countdown.Classify(o.now(), o.deadline)

	o.mu.Lock()
	defer o.mu.Unlock()
	return State{
		Message:          o.message,
		ShowPopup:        o.showPopup,
		Tier:             snap.Tier,
		DaysLeft:         snap.DaysLeft,
		HoursLeft:        snap.HoursLeft,
		BackgroundURL:    o.image.URL,
		ImageDescription: o.image.Description,
		ImageLoading:     o.imageLoading,
		SoundEnabled:     o.soundEnabled,
	}
}

// RunEpisode executes one reminder episode: classify, fetch text, reveal
// the popup, then (if sound is on) synthesize and enqueue speech. The
// popup is revealed as soon as text is available — it never waits for
// audio. Returns domain.ErrEpisodeInFlight when another episode is
// outstanding; the trigger is dropped.
func (o *Orchestrator) RunEpisode(ctx context.Context, manual bool) error {
	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		o.log.Debug("episode dropped (manual=%v): one already in flight", manual)
		return domain.ErrEpisodeInFlight
	}
	o.inFlight = true
	speak := o.soundEnabled
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	snap := countdown.Classify(o.now(), o.deadline)
	o.log.Info("episode start (manual=%v, tier=%s, days=%d, hours=%d)",
		manual, snap.Tier, snap.DaysLeft, snap.HoursLeft)

	text := o.fetchText(ctx, snap)

	o.mu.Lock()
	o.message = text
	o.showPopup = true
	o.last = domain.Episode{Snapshot: snap, Text: text, Manual: manual, Spoken: speak}
	o.mu.Unlock()
	o.notify()

	if !speak {
		return nil
	}

	audio, err := o.provider.Speech(ctx, text)
	if err != nil {
		// No retry, no user-visible error. The reminder stays silent.
		o.log.Error("episode: speech synthesis: %v", err)
		return nil
	}
	o.sink.Enqueue(audio)
	return nil
}

// fetchText asks the provider for reminder copy and substitutes the
// hardcoded fallbacks on failure. Never returns an empty string.
func (o *Orchestrator) fetchText(ctx context.Context, snap domain.Snapshot) string {
	text, err := o.provider.ReminderText(ctx, snap)
	switch {
	case errors.Is(err, domain.ErrEmptyResponse):
		o.log.Warn("episode: provider returned empty text, using fallback")
		return fallbackEmpty
	case err != nil:
		o.log.Error("episode: reminder text: %v", err)
		return fallbackText(snap.Tier)
	}
	return text
}

// FetchBackground fetches the background image for the current tier. Run
// once at startup; the image is cosmetic and is not refreshed on tier
// changes.
func (o *Orchestrator) FetchBackground(ctx context.Context) {
	o.mu.Lock()
	o.imageLoading = true
	o.mu.Unlock()
	o.notify()

	snap := countdown.Classify(o.now(), o.deadline)
	img, err := o.provider.BackgroundImage(ctx, snap.Tier)
	if err != nil {
		o.log.Error("background image: %v", err)
	}

	o.mu.Lock()
	o.image = img
	o.imageLoading = false
	o.mu.Unlock()
	o.notify()
}

// ToggleSound flips the session sound preference and returns the new value.
func (o *Orchestrator) ToggleSound() bool {
	o.mu.Lock()
	o.soundEnabled = !o.soundEnabled
	enabled := o.soundEnabled
	o.mu.Unlock()

	o.log.Info("sound %s", map[bool]string{true: "enabled", false: "disabled"}[enabled])
	o.notify()
	return enabled
}

// TriggerManual starts a manual episode in the background. Drops silently
// if an episode is already in flight.
func (o *Orchestrator) TriggerManual(ctx context.Context) {
	go func() {
		if err := o.RunEpisode(ctx, true); err != nil && !errors.Is(err, domain.ErrEpisodeInFlight) {
			o.log.Error("manual episode: %v", err)
		}
	}()
}

// DismissPopup hides the popup. In-flight fetches are not cancelled; only
// the visibility is cleared.
func (o *Orchestrator) DismissPopup() {
	o.mu.Lock()
	o.showPopup = false
	o.mu.Unlock()
	o.notify()
}

// notify pushes a fresh snapshot to the listener, if any.
func (o *Orchestrator) notify() {
	if o.listener == nil {
		return
	}
	o.listener(o.Snapshot())
}
