package genai

import (
	"context"
	"os"
	"strings"

	"duebell/internal/domain"
	"duebell/internal/logger"
)

// Image description sentinels used when generation fails. Kept distinct so
// logs show whether the request itself failed or the response was unusable.
const (
	imageDescError  = "Error"
	imageDescFailed = "Failed to generate"
)

// Compile-time interface check.
var _ domain.ContentProvider = (*Provider)(nil)

// Provider adapts the generative endpoint to the domain.ContentProvider
// port. It holds the only credential in the system; a missing key is a
// configuration error caught at construction, never mid-call.
type Provider struct {
	client *Client
	cache  *AudioCache
	log    *logger.Logger
}

// NewProviderFromEnv builds a provider from DUEBELL_API_KEY and
// DUEBELL_API_BASE. Returns domain.ErrMissingCredential when the key is
// absent — fatal for any content operation, so callers should treat it as
// an initialization failure.
func NewProviderFromEnv(log *logger.Logger, opts ...Option) (*Provider, error) {
	key := strings.TrimSpace(os.Getenv(EnvAPIKey))
	if key == "" {
		return nil, domain.ErrMissingCredential
	}
	client := NewClient(os.Getenv(EnvBaseURL), key, log, opts...)
	return NewProvider(client, log), nil
}

// NewProvider wraps an existing client. Useful for tests.
func NewProvider(client *Client, log *logger.Logger) *Provider {
	return &Provider{
		client: client,
		cache:  NewAudioCache(client.Voice(), log),
		log:    log,
	}
}

// ReminderText generates reminder copy for the snapshot. The raw reply is
// trimmed; an all-whitespace reply is reported as domain.ErrEmptyResponse
// so the caller can substitute its fallback.
func (p *Provider) ReminderText(ctx context.Context, snap domain.Snapshot) (string, error) {
	messages := []Message{
		{Role: RoleSystem, Content: promptReminder},
		{Role: RoleUser, Content: reminderUserPrompt(snap)},
	}

	reply, err := p.client.Chat(ctx, messages)
	if err != nil {
		return "", err
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", domain.ErrEmptyResponse
	}
	return reply, nil
}

// Speech synthesizes the text into WAV audio, consulting the audio cache
// first. Any failure surfaces as an error; the caller skips playback
// silently.
func (p *Provider) Speech(ctx context.Context, text string) ([]byte, error) {
	if audio, ok := p.cache.Get(text); ok {
		return audio, nil
	}
	audio, err := p.client.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}
	p.cache.Put(text, audio)
	return audio, nil
}

// BackgroundImage generates a background image for the tier. On failure
// the returned Image carries a sentinel description alongside the error,
// so the caller can surface it without inspecting the error.
func (p *Provider) BackgroundImage(ctx context.Context, tier domain.Tier) (domain.Image, error) {
	prompt, ok := imagePromptByTier[tier]
	if !ok {
		prompt = imagePromptByTier[domain.TierLow]
	}

	url, desc, err := p.client.GenerateImage(ctx, prompt)
	if err != nil {
		p.log.Error("provider: image generation: %v", err)
		return domain.Image{Description: imageDescError}, err
	}
	if url == "" {
		return domain.Image{Description: imageDescFailed}, domain.ErrEmptyResponse
	}
	return domain.Image{URL: url, Description: desc}, nil
}
