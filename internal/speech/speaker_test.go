package speech

import (
	"context"
	"sync"
	"testing"
	"time"

	"duebell/internal/logger"
)

// fakePlayer records Play calls and can simulate slow playback.
type fakePlayer struct {
	mu      sync.Mutex
	played  [][]byte
	playing int
	overlap bool
	delay   time.Duration
}

func (f *fakePlayer) Play(wav []byte) error {
	f.mu.Lock()
	f.playing++
	if f.playing > 1 {
		f.overlap = true
	}
	f.mu.Unlock()

	time.Sleep(f.delay)

	f.mu.Lock()
	f.played = append(f.played, wav)
	f.playing--
	f.mu.Unlock()
	return nil
}

func (f *fakePlayer) Stop() {}

func (f *fakePlayer) playedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.played)
}

func TestSpeakerPlaysQueuedAudio(t *testing.T) {
	player := &fakePlayer{}
	s := NewSpeaker(player, logger.New(logger.LevelOff, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	s.Enqueue([]byte("clip-1"))
	s.Enqueue([]byte("clip-2"))

	deadline := time.Now().Add(2 * time.Second)
	for player.playedCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if got := player.playedCount(); got != 2 {
		t.Fatalf("expected 2 clips played, got %d", got)
	}
}

func TestSpeakerNeverOverlapsPlayback(t *testing.T) {
	player := &fakePlayer{delay: 30 * time.Millisecond}
	s := NewSpeaker(player, logger.New(logger.LevelOff, nil), WithQueueSize(8))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	for i := 0; i < 5; i++ {
		s.Enqueue([]byte{byte(i)})
	}

	deadline := time.Now().Add(2 * time.Second)
	for player.playedCount() < 5 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	player.mu.Lock()
	overlap := player.overlap
	player.mu.Unlock()
	if overlap {
		t.Fatal("two clips were playing at the same time")
	}
}

func TestSpeakerDropsWhenQueueFull(t *testing.T) {
	player := &fakePlayer{delay: time.Hour} // never finishes
	s := NewSpeaker(player, logger.New(logger.LevelOff, nil), WithQueueSize(1))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	// First clip starts playing, second fills the queue, the rest drop.
	// Enqueue must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			s.Enqueue([]byte{byte(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

func TestSpeakerIgnoresEmptyAudio(t *testing.T) {
	player := &fakePlayer{}
	s := NewSpeaker(player, logger.New(logger.LevelOff, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	s.Enqueue(nil)
	s.Enqueue([]byte{})

	time.Sleep(50 * time.Millisecond)
	if got := player.playedCount(); got != 0 {
		t.Fatalf("expected no playback for empty audio, got %d", got)
	}
}
