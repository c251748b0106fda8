package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lbriand/reverb/internal/api"
	"github.com/lbriand/reverb/internal/app"
	"github.com/lbriand/reverb/internal/auth"
	"github.com/lbriand/reverb/internal/config"
	"github.com/lbriand/reverb/internal/mediasession"
	"github.com/lbriand/reverb/internal/notify"
	"github.com/lbriand/reverb/internal/playback"
	"github.com/lbriand/reverb/internal/player"
	"github.com/lbriand/reverb/internal/state"
	"github.com/lbriand/reverb/internal/transport"
	"github.com/lbriand/reverb/internal/wakelock"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger()

	// The keyring token wins; the config token is the fallback for setups
	// without a secret service.
	session, err := auth.Load()
	if err != nil {
		logger.Warn("keyring unavailable", "err", err)
	}
	var tokens api.TokenSource = session
	if session == nil || !session.LoggedIn() {
		tokens = auth.StaticToken(cfg.API.Token)
	}

	client := api.New(cfg.API.BaseURL, tokens, logger)

	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state db: %w", err)
	}
	defer stateMgr.Close()

	engine := player.NewIPCEngine(cfg.Engine.SocketPath, logger)
	adapter := player.NewAdapter(engine, logger)

	svc := playback.New(adapter, client, logger)
	defer svc.Close()
	svc.Run()

	svc.SetVolume(cfg.Player.Volume)
	if saved, err := stateMgr.Session(); err == nil {
		app.RestoreSession(context.Background(), svc, client, saved)
	} else {
		logger.Warn("session restore failed", "err", err)
	}

	if err := svc.LoadLiked(context.Background()); err != nil {
		logger.Warn("liked songs unavailable", "err", err)
	}

	adapter.Mount(func() {
		logger.Info("engine ready", "socket", cfg.Engine.SocketPath)
	})

	media, err := mediasession.New(svc)
	if err != nil {
		logger.Warn("media session unavailable", "err", err)
	} else {
		defer media.Close()
	}

	wake := wakelock.New(logger)
	defer wake.Close()

	notifier, err := notify.New()
	if err != nil {
		logger.Warn("notifications unavailable", "err", err)
	}

	model := app.New(svc, transport.NewSurface(svc), client, stateMgr, svc.Subscribe(),
		wake, notify.NewSongChanges(notifier), logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// newLogger writes to the file named by REVERB_LOG, or discards. Logging to
// the terminal would corrupt the alternate screen.
func newLogger() *log.Logger {
	path := os.Getenv("REVERB_LOG")
	if path == "" {
		return log.New(io.Discard)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard)
	}
	logger := log.New(f)
	logger.SetLevel(log.DebugLevel)
	return logger
}
