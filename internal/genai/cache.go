package genai

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"duebell/internal/logger"
)

// AudioCache is a thread-safe in-memory cache for synthesized audio. The
// cache key is sha256(voice + ":" + text), so a voice change causes misses
// until the voice is switched back. Nag text repeats hour after hour —
// especially the fallback strings — so identical reminders are spoken
// without a second synthesis round-trip.
//
// The cache is session-only: nothing is persisted across restarts.
type AudioCache struct {
	mu      sync.RWMutex
	entries map[string][]byte // hash -> WAV bytes
	voice   string            // included in every cache key
	log     *logger.Logger
	hits    int64
	misses  int64
}

// NewAudioCache creates an empty cache for the given voice.
func NewAudioCache(voice string, log *logger.Logger) *AudioCache {
	return &AudioCache{
		entries: make(map[string][]byte),
		voice:   voice,
		log:     log,
	}
}

// Get returns cached audio for the text and true, or nil and false.
func (c *AudioCache) Get(text string) ([]byte, bool) {
	key := c.hashKey(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.log.Debug("audio cache hit: %s (%d bytes)", truncate(text, 40), len(data))
	return data, true
}

// Put stores audio for the text.
func (c *AudioCache) Put(text string, audio []byte) {
	if len(audio) == 0 {
		return
	}
	key := c.hashKey(text)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = audio
}

// Stats returns hit and miss counts.
func (c *AudioCache) Stats() (hits, misses int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

func (c *AudioCache) hashKey(text string) string {
	sum := sha256.Sum256([]byte(c.voice + ":" + text))
	return hex.EncodeToString(sum[:])
}
