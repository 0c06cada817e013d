package main

import (
	"context"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// runtimeConfig sizes the game to the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// isTerminal reports whether stdout is an interactive terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// openStore opens the scores database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// localHost starts loading sound clips and returns the collaborators for
// a local game plus a function releasing the speaker.
func localHost(muted bool) (core.Host, func()) {
	lib := audio.NewLibrary(time.Now().UnixNano())
	lib.Load()
	host := core.Host{Audio: audio.Nop{}, Assets: settled{lib}}

	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		logger.Warn("could not load config for audio", "err", err)
		cfg = config.DefaultFlappyConfig()
	}
	if muted || !cfg.Audio.Enabled {
		return host, func() {}
	}

	player := audio.NewBeepPlayer(lib, cfg.Audio.Volume)
	if err := player.Init(); err != nil {
		logger.Warn("audio disabled", "err", err)
		return host, func() {}
	}
	host.Audio = player

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := lib.Wait(ctx); err != nil {
			logger.Warn("sound clips unavailable", "err", err)
			return
		}
		logger.Debug("sound clips ready")
	}()
	return host, player.Close
}

// settled lets the game start once loading has finished, even if it
// failed; the player then stays silent.
type settled struct {
	lib *audio.Library
}

func (s settled) Ready() bool {
	return s.lib.Ready() || s.lib.Err() != nil
}
