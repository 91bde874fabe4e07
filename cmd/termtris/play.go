package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termtris/internal/games/tetris"
	"github.com/vovakirdan/termtris/internal/platform/tui"
	"github.com/vovakirdan/termtris/internal/registry"
	"github.com/vovakirdan/termtris/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game. Keys can be changed in the config file.

Controls (defaults):
  Left/A, Right/D  - Shift the piece
  Up/W             - Rotate clockwise
  Down/S           - Move down one row
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Finished and quit games are recorded unless record_replays is off.

Examples:
  termtris play
  termtris play --seed 42
  termtris play --fps 30 --config ./my-termtris.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.CreateReplayable(tetris.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := fileLogger(cfg)

	// Open replay storage
	var store *storage.Store
	if cfg.RecordReplays {
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
			logger.Warn("replays disabled", "error", err)
			// Continue without storage - game still works
			store = nil
		}
	}

	runErr := tui.Run(game, tuiOptions(cfg, logger, store))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
