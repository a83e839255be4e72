package domain

import "context"

// ContentProvider supplies generated reminder content. Every method is a
// single best-effort attempt: no retries, no circuit breaking. Callers
// recover from failures locally (fallback text, skipped playback, sentinel
// image) and never treat a provider error as fatal.
type ContentProvider interface {
	// ReminderText generates reminder copy for the given countdown snapshot.
	ReminderText(ctx context.Context, snap Snapshot) (string, error)

	// Speech synthesizes the text into WAV audio. Callers treat any error
	// as "no audio, skip playback".
	Speech(ctx context.Context, text string) ([]byte, error)

	// BackgroundImage generates a background image for the given tier.
	BackgroundImage(ctx context.Context, tier Tier) (Image, error)
}

// AudioSink accepts synthesized audio for playback. Implementations
// serialize playback so overlapping submissions never layer audio.
type AudioSink interface {
	// Enqueue schedules the WAV data for playback. Non-blocking.
	Enqueue(wav []byte)
}
