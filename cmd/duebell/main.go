// duebell — a deadline countdown nagger.
//
// Counts down to Nov 30 23:59:59 and nags on every hour boundary with
// AI-generated reminder text, spoken aloud when sound is on.
//
// Usage:
//
//	duebell [-verbose] [-quiet] [-no-speech] [-no-image]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"duebell/internal/countdown"
	"duebell/internal/display"
	"duebell/internal/domain"
	"duebell/internal/genai"
	"duebell/internal/logger"
	"duebell/internal/reminder"
	"duebell/internal/schedule"
	"duebell/internal/speech"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".duebell-logs/duebell.log", "file to write logs to (use \"stderr\" to log to console)")
	noSpeech := flag.Bool("no-speech", false, "disable text-to-speech playback")
	noImage := flag.Bool("no-image", false, "skip background image generation")
	voice := flag.String("voice", genai.DefaultTTSVoice, "TTS voice name")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the TUI stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	// Set up context — cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The content provider needs its credential up front. Missing key is
	// fatal: every content operation would fail anyway.
	provider, err := genai.NewProviderFromEnv(log, genai.WithVoice(*voice))
	if err != nil {
		if errors.Is(err, domain.ErrMissingCredential) {
			fmt.Fprintf(os.Stderr, "error: %s is not set\n", genai.EnvAPIKey)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}

	now := time.Now()
	deadline := countdown.NextDeadline(now)
	log.Info("deadline %s (%d days out)", deadline.Format("2006-01-02 15:04:05"),
		countdown.Classify(now, deadline).DaysLeft)

	// Build the audio sink. If the device is unavailable or speech is
	// disabled, reminders degrade to silent popups.
	var sink domain.AudioSink = speech.NewNoOp(log)
	soundOn := false
	if !*noSpeech {
		player, err := speech.NewPlayer(log)
		if err != nil {
			log.Error("audio player init failed, speech disabled: %v", err)
		} else {
			speaker := speech.NewSpeaker(player, log)
			speaker.Start(ctx)
			sink = speaker
			soundOn = true
			log.Info("TTS enabled (voice=%s)", *voice)
		}
	}

	// Wire the orchestrator and UI. The listener pushes every state
	// change straight into the view.
	var ui *display.UI
	orch := reminder.New(provider, sink, deadline, log,
		reminder.WithSound(soundOn),
		reminder.WithListener(func(s reminder.State) {
			if ui != nil {
				ui.Push(s)
			}
		}),
	)
	ui = display.NewUI(ctx, orch, deadline)

	// Hourly boundary scheduler drives the automatic episodes.
	sched := schedule.New(func(ctx context.Context) {
		if err := orch.RunEpisode(ctx, false); err != nil && !errors.Is(err, domain.ErrEpisodeInFlight) {
			log.Error("scheduled episode: %v", err)
		}
	}, log)
	go sched.Run(ctx)

	// One-shot startup work: background image and an initial reminder.
	if !*noImage {
		go orch.FetchBackground(ctx)
	}
	go func() {
		if err := orch.RunEpisode(ctx, false); err != nil && !errors.Is(err, domain.ErrEpisodeInFlight) {
			log.Error("startup episode: %v", err)
		}
	}()

	// Bubble Tea owns the terminal — blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}
