// termtris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	termtris                 - Play (same as "termtris play")
//	termtris play            - Play a game
//	termtris replays         - Browse recorded games
//	termtris replay <id>     - Re-simulate a recorded game headless
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.termtris, ./configs)
//	--fps <rate>        - Set tick rate (default from config: 20)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set replay database path (default: ~/.termtris/replays.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/termtris/internal/games/tetris"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "termtris",
	Short: "termtris - falling blocks in your terminal",
	Long: `termtris is a falling-block puzzle game for the terminal.

Every game is recorded as a seed plus the keys you pressed, so it can be
watched again or re-simulated later.

Available commands:
  play     - Play a game (default)
  replays  - Browse recorded games
  replay   - Re-simulate or watch one recorded game

Examples:
  termtris
  termtris --seed 42 --fps 30
  termtris replays
  termtris replay 7 --watch`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	// Global persistent flags. Flags left unset fall back to the config file.
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
}
