package domain

// Episode is one complete reminder cycle: text acquisition, optional
// speech synthesis and playback, and the UI reveal. Episodes are
// ephemeral — each one supersedes the previous, there is no queue.
type Episode struct {
	Snapshot Snapshot
	Text     string
	Manual   bool
	Spoken   bool // speech playback was requested for this episode
}

// Image is the result of a background-image generation request.
// URL is empty when generation failed; Description then carries the
// failure sentinel instead of a caption.
type Image struct {
	URL         string
	Description string
}
