// flappy plays Flappy Bird in the terminal, locally or over SSH.
//
// Usage:
//
//	flappy                   - Pick a variant from the menu
//	flappy list              - List available variants
//	flappy play [variant]    - Play a variant directly
//	flappy scores [variant]  - Show high scores
//	flappy serve             - Start SSH server for remote play
//	flappy replay <file>     - Verify a recorded session headlessly
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Load game settings from a YAML file
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Append logs to a file
//	--debug               - Log at debug level
//	--mute                - Disable sound
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagDebug      bool
	flagStrict     bool
	flagMute       bool
	flagPlayer     string

	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal",
	Long: `Flappy Bird for the terminal. Hold space to flap through the gaps
between the pipes; every gap you clear scores a point.

Running flappy without a command opens the variant menu.

Examples:
  flappy
  flappy play flappy_varied --difficulty hard
  flappy scores
  flappy serve --ssh :2222`,
	PersistentPreRunE: setup,
	Run:               runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to a game config YAML file")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "", "Append logs to this file")
	pf.BoolVar(&flagDebug, "debug", false, "Log at debug level")
	pf.BoolVar(&flagStrict, "strict", false, "Panic on game lifecycle invariant violations")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound")
	pf.StringVar(&flagPlayer, "player", "", "Name stored with your scores (default: local)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
}

// setup builds the logger and hands game settings to the flappy package
// before any variant is created.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	var out io.Writer = io.Discard
	if cmd.Name() == serveCmd.Name() {
		out = os.Stderr
	}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	}
	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	flappy.SetLogger(logger)
	flappy.SetConfigPath(flagConfig)
	flappy.SetDifficultyPreset(flagDifficulty)
	flappy.SetStrict(flagStrict)
	return nil
}
