// Package genai talks to an OpenAI-compatible generative endpoint for the
// three content operations: reminder text (chat completions), speech audio
// (text-to-speech), and background images (image generation).
//
// Every call is a single best-effort attempt. There are no retries and no
// circuit breaking; callers degrade gracefully on any error.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"duebell/internal/logger"
)

// Defaults for the OpenAI-compatible endpoint.
const (
	DefaultBaseURL    = "https://api.openai.com/v1"
	DefaultChatModel  = "gpt-4o-mini"
	DefaultTTSModel   = "tts-1"
	DefaultTTSVoice   = "alloy"
	DefaultImageModel = "dall-e-3"
	DefaultImageSize  = "1024x1024"
)

// Env var names for provider configuration.
const (
	EnvAPIKey  = "DUEBELL_API_KEY"
	EnvBaseURL = "DUEBELL_API_BASE"
)

// ── Wire types ───────────────────────────────────────────────────

// Role constants.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single chat-completion message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatPayload struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type speechPayload struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

type imagePayload struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		URL           string `json:"url"`
		RevisedPrompt string `json:"revised_prompt"`
	} `json:"data"`
}

// ── Client ───────────────────────────────────────────────────────

// Option configures the Client.
type Option func(*Client)

// WithChatModel overrides the chat model name.
func WithChatModel(model string) Option {
	return func(c *Client) { c.chatModel = model }
}

// WithVoice sets the TTS voice.
func WithVoice(voice string) Option {
	return func(c *Client) { c.voice = voice }
}

// WithImageModel overrides the image model name.
func WithImageModel(model string) Option {
	return func(c *Client) { c.imageModel = model }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// Client is a thin HTTP client for the generative endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	chatModel  string
	ttsModel   string
	voice      string
	imageModel string
	imageSize  string
	http       *http.Client
	log        *logger.Logger
}

// NewClient creates a client for the given endpoint and key.
func NewClient(baseURL, apiKey string, log *logger.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		chatModel:  DefaultChatModel,
		ttsModel:   DefaultTTSModel,
		voice:      DefaultTTSVoice,
		imageModel: DefaultImageModel,
		imageSize:  DefaultImageSize,
		http:       &http.Client{Timeout: 60 * time.Second},
		log:        log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Voice returns the configured TTS voice name.
func (c *Client) Voice() string { return c.voice }

// Chat sends a chat-completion request and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	body := chatPayload{
		Model:       c.chatModel,
		Messages:    messages,
		Temperature: 0.8,
		MaxTokens:   200,
	}

	respBody, err := c.post(ctx, "/chat/completions", body, "application/json")
	if err != nil {
		return "", err
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("genai: unmarshal chat response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("genai: chat response has no choices")
	}

	reply := result.Choices[0].Message.Content
	c.log.Debug("genai: chat reply (%d chars): %s", len(reply), truncate(reply, 80))
	return reply, nil
}

// Synthesize converts text to speech and returns WAV bytes.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body := speechPayload{
		Model:          c.ttsModel,
		Input:          text,
		Voice:          c.voice,
		ResponseFormat: "wav",
	}

	audio, err := c.post(ctx, "/audio/speech", body, "application/json")
	if err != nil {
		return nil, err
	}

	c.log.Debug("genai: tts returned %d bytes for %d chars", len(audio), len(text))
	return audio, nil
}

// GenerateImage requests one image for the prompt and returns its URL and
// the provider's revised prompt (used as the image description).
func (c *Client) GenerateImage(ctx context.Context, prompt string) (url, description string, err error) {
	body := imagePayload{
		Model:  c.imageModel,
		Prompt: prompt,
		N:      1,
		Size:   c.imageSize,
	}

	respBody, err := c.post(ctx, "/images/generations", body, "application/json")
	if err != nil {
		return "", "", err
	}

	var result imageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", "", fmt.Errorf("genai: unmarshal image response: %w", err)
	}
	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return "", "", fmt.Errorf("genai: image response has no data")
	}

	d := result.Data[0]
	desc := d.RevisedPrompt
	if desc == "" {
		desc = prompt
	}
	c.log.Debug("genai: image generated: %s", truncate(d.URL, 80))
	return d.URL, desc, nil
}

// post marshals body, sends it to baseURL+path and returns the raw
// response bytes. Non-200 statuses are returned as errors.
func (c *Client) post(ctx context.Context, path string, body any, contentType string) ([]byte, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("genai: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("genai: create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.log.Debug("genai: POST %s (%d bytes)", path, len(jsonData))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("genai: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("genai: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("genai: API %s: %s", resp.Status, truncate(string(respBody), 200))
	}
	return respBody, nil
}

// truncate shortens a string for logging.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
