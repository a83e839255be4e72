package speech

import (
	"context"

	"duebell/internal/domain"
	"duebell/internal/logger"
)

// wavPlayer is the playback surface Speaker needs. Satisfied by *Player;
// tests substitute a fake.
type wavPlayer interface {
	Play(wav []byte) error
	Stop()
}

// Compile-time interface check.
var _ domain.AudioSink = (*Speaker)(nil)

// SpeakerOption configures the Speaker.
type SpeakerOption func(*Speaker)

// WithQueueSize sets the playback queue capacity. Submissions beyond
// capacity are dropped, never queued unbounded.
func WithQueueSize(n int) SpeakerOption {
	return func(s *Speaker) {
		s.queue = make(chan []byte, n)
	}
}

// Speaker routes all playback through a single consumer goroutine so two
// overlapping reminder episodes can never layer audio. Enqueue is
// fire-and-forget: the caller neither waits for playback nor learns about
// playback errors (they are logged and swallowed).
type Speaker struct {
	player wavPlayer
	log    *logger.Logger
	queue  chan []byte
}

// NewSpeaker creates a speaker backed by the given player.
func NewSpeaker(player wavPlayer, log *logger.Logger, opts ...SpeakerOption) *Speaker {
	s := &Speaker{
		player: player,
		log:    log,
		queue:  make(chan []byte, 4),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the playback goroutine. Non-blocking.
func (s *Speaker) Start(ctx context.Context) {
	go s.loop(ctx)
	s.log.Info("speaker started (queue=%d)", cap(s.queue))
}

// Enqueue schedules WAV data for playback. Non-blocking; drops the clip
// when the queue is full.
func (s *Speaker) Enqueue(wav []byte) {
	if len(wav) == 0 {
		return
	}
	select {
	case s.queue <- wav:
		s.log.Debug("speaker: queued %d bytes (pending=%d)", len(wav), len(s.queue))
	default:
		s.log.Warn("speaker: queue full, dropping %d bytes", len(wav))
	}
}

// loop plays queued clips one at a time until ctx is cancelled.
func (s *Speaker) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.player.Stop()
			s.log.Info("speaker stopped")
			return
		case wav := <-s.queue:
			if err := s.player.Play(wav); err != nil {
				s.log.Error("speaker: playback failed: %v", err)
			}
		}
	}
}
