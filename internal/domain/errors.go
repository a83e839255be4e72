package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrMissingCredential = errors.New("missing API credential")
	ErrEmptyResponse     = errors.New("empty provider response")
	ErrEpisodeInFlight   = errors.New("reminder episode already in flight")
)
