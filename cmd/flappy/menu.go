package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// runMenu loops between the variant menu, games and the scoreboard until
// the player quits.
func runMenu(_ *cobra.Command, _ []string) {
	if !isTerminal() {
		fmt.Fprintln(os.Stderr, "Error: the menu needs an interactive terminal")
		os.Exit(1)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	host, closeAudio := localHost(flagMute)
	defer closeAudio()

	cfg := runtimeConfig()
	for {
		res, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return

		case res.WantsScoreboard:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, cfg.TickRate)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !back {
				return
			}
			continue
		}

		game, err := registry.Create(res.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		run := cfg
		if flagSeed == 0 {
			run.Seed = time.Now().UnixNano()
		}
		back, err := tui.Run(game, tui.Options{
			Store:   store,
			Runtime: run,
			Host:    host,
			Logger:  logger,
			Player:  flagPlayer,
			Preset:  flagDifficulty,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !back {
			return
		}
	}
}
