package speech

import (
	"duebell/internal/domain"
	"duebell/internal/logger"
)

// Compile-time interface check.
var _ domain.AudioSink = (*NoOp)(nil)

// NoOp is an audio sink that discards everything. Used when the audio
// device is unavailable or speech is disabled at startup.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a no-op audio sink.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Enqueue discards the audio.
func (n *NoOp) Enqueue(wav []byte) {
	n.log.Debug("speech no-op: dropping %d bytes of audio", len(wav))
}
