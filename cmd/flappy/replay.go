package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/replay"
)

var flagReplayEvents bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Play back a recorded session headlessly",
	Long: `Feed a recording made with 'flappy play --record' back into the game
without a terminal, and check it ends with the recorded score and phase.

The game must load the same config as during recording; pass --config
again if one was used.

Examples:
  flappy replay run.replay
  flappy replay run.replay --events`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayEvents, "events", false, "Print game events as they happen")
}

func runReplay(_ *cobra.Command, args []string) {
	rec, err := replay.LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if rec.Preset != "" {
		flappy.SetDifficultyPreset(rec.Preset)
	}

	game, err := registry.Create(rec.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var observe replay.StepFunc
	if flagReplayEvents {
		observe = func(tick int, res core.StepResult) bool {
			for _, ev := range res.Events {
				fmt.Printf("%6d  %-14s %s\n", tick, ev.Kind, ev.Detail)
			}
			return true
		}
	}

	fmt.Printf("Replaying %s: %d ticks (%.1fs) at %d Hz, seed %d\n",
		rec.GameID, len(rec.Frames), rec.Duration(), rec.TickRate, rec.Seed)

	state, err := replay.Run(game, rec, observe)
	fmt.Printf("Final: score %d, phase %s\n", state.Score, state.Phase)
	switch {
	case errors.Is(err, replay.ErrDiverged):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Replay matches the recording.")
}
