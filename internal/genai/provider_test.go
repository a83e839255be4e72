package genai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"duebell/internal/domain"
	"duebell/internal/logger"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logger.New(logger.LevelOff, nil)
	return NewProvider(NewClient(srv.URL, "test-key", log), log)
}

func TestReminderTextParsesReply(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"  还剩3天，请尽快完成安全课程。 "}}]}`))
	})

	text, err := p.ReminderText(context.Background(), domain.Snapshot{Tier: domain.TierHigh, DaysLeft: 3, HoursLeft: 70})
	if err != nil {
		t.Fatalf("ReminderText: %v", err)
	}
	if text != "还剩3天，请尽快完成安全课程。" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestReminderTextEmptyReply(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"   "}}]}`))
	})

	_, err := p.ReminderText(context.Background(), domain.Snapshot{Tier: domain.TierLow, DaysLeft: 30})
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestReminderTextServerError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	_, err := p.ReminderText(context.Background(), domain.Snapshot{Tier: domain.TierLow, DaysLeft: 30})
	if err == nil {
		t.Fatal("expected error on 503")
	}
}

func TestSpeechReturnsRawBytes(t *testing.T) {
	wav := []byte("RIFFxxxxWAVE-fake-audio")
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/speech" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write(wav)
	})

	audio, err := p.Speech(context.Background(), "请立即完成安全课程！")
	if err != nil {
		t.Fatalf("Speech: %v", err)
	}
	if string(audio) != string(wav) {
		t.Fatalf("audio bytes mangled")
	}
}

func TestBackgroundImageSuccess(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":[{"url":"https://img.example/bg.png","revised_prompt":"an hourglass"}]}`))
	})

	img, err := p.BackgroundImage(context.Background(), domain.TierHigh)
	if err != nil {
		t.Fatalf("BackgroundImage: %v", err)
	}
	if img.URL != "https://img.example/bg.png" || img.Description != "an hourglass" {
		t.Fatalf("unexpected image %+v", img)
	}
}

func TestBackgroundImageFailureSentinel(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	})

	img, err := p.BackgroundImage(context.Background(), domain.TierLow)
	if err == nil {
		t.Fatal("expected error")
	}
	if img.URL != "" || img.Description != "Error" {
		t.Fatalf("expected error sentinel, got %+v", img)
	}
}

func TestBackgroundImageEmptyData(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	})

	img, err := p.BackgroundImage(context.Background(), domain.TierLow)
	if err == nil {
		t.Fatal("expected error")
	}
	// An unusable response maps to the "Error" sentinel via the client error path.
	if img.URL != "" || img.Description == "" {
		t.Fatalf("expected failure sentinel, got %+v", img)
	}
}

func TestNewProviderFromEnvMissingKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	_, err := NewProviderFromEnv(logger.New(logger.LevelOff, nil))
	if !errors.Is(err, domain.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}
