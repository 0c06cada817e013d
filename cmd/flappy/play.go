package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var flagRecord string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: flappy).

Controls:
  Space/Up/W  - Flap (hold to keep climbing), start, play again
  Mouse click - Flap
  P           - Pause
  Esc/B       - Back (when paused or game over)
  Ctrl+S      - Screenshot to ~/.arcade/screenshots
  Q/Ctrl+C    - Quit

Difficulty presets:
  easy   - Fixed, widest gap
  normal - Fixed gap as configured
  hard   - Gap height varies between gap_min and gap_max
  fixed  - Config file as is

Examples:
  flappy play
  flappy play flappy_varied
  flappy play --difficulty easy --mute
  flappy play --seed 42 --record run.replay`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay of the session to this file")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := flappy.IDFixed
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'flappy list' to see available variants.")
		os.Exit(1)
	}
	if !isTerminal() {
		fmt.Fprintln(os.Stderr, "Error: play needs an interactive terminal")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	host, closeAudio := localHost(flagMute)
	defer closeAudio()

	_, err = tui.Run(game, tui.Options{
		Store:      store,
		Runtime:    runtimeConfig(),
		Host:       host,
		Logger:     logger,
		Player:     flagPlayer,
		RecordPath: flagRecord,
		Preset:     flagDifficulty,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
