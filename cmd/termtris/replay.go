package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termtris/internal/config"
	"github.com/vovakirdan/termtris/internal/platform/tui"
	"github.com/vovakirdan/termtris/internal/replay"
	"github.com/vovakirdan/termtris/internal/storage"
)

var (
	flagWatch  bool
	flagDelete bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded game",
	Long: `Re-simulate a recorded game without a terminal UI, check that it ends
the way it was recorded, and print the final board and statistics.

Board legend: '.' empty, a shape letter for settled cells, '#' for the
falling piece.

Examples:
  termtris replay 7
  termtris replay 7 --watch
  termtris replay 7 --delete`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Watch the replay in the terminal UI")
	replayCmd.Flags().BoolVar(&flagDelete, "delete", false, "Delete the replay")
	replayCmd.MarkFlagsMutuallyExclusive("watch", "delete")
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid replay id %q\n", args[0])
		os.Exit(1)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}

	switch {
	case flagDelete:
		err = store.DeleteReplay(id)
		if err == nil {
			fmt.Printf("Deleted replay %d\n", id)
		}
	case flagWatch:
		err = watchReplay(cfg, store, id)
	default:
		err = simulateReplay(cfg, store, id)
	}
	store.Close()

	if errors.Is(err, storage.ErrReplayNotFound) {
		fmt.Fprintf(os.Stderr, "Error: replay %d not found\n", id)
		fmt.Fprintln(os.Stderr, "Run 'termtris replays' to see recorded games.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func watchReplay(cfg config.Config, store *storage.Store, id int64) error {
	rep, err := store.Replay(id)
	if err != nil {
		return err
	}

	logger, closeLog := fileLogger(cfg)
	defer closeLog()
	return tui.Watch(rep, tuiOptions(cfg, logger, nil))
}

// simulateReplay runs the replay headless and prints the final board.
func simulateReplay(cfg config.Config, store *storage.Store, id int64) error {
	logger := newLogger(os.Stderr, cfg.LogLevel())

	rep, err := store.Replay(id)
	if err != nil {
		return err
	}
	logger.Debug("simulating replay", "id", id, "seed", rep.Seed, "frames", rep.Frames, "inputs", rep.InputCount)

	res, err := replay.Run(rep)
	if err != nil {
		logger.Warn("replay does not reproduce", "id", id, "error", err)
		return err
	}
	logger.Info("replay verified", "id", id, "score", res.State.Score)

	fmt.Print(res.Game.Dump())
	fmt.Println()
	fmt.Printf("Replay #%d (seed %d)\n", rep.ID, rep.Seed)
	fmt.Printf("  Score:  %d\n", res.State.Score)
	fmt.Printf("  Level:  %d\n", res.State.Level+1)
	fmt.Printf("  Lines:  %d\n", res.State.Lines)
	fmt.Printf("  Frames: %d\n", res.Game.Frame())
	fmt.Printf("  Inputs: %d\n", rep.InputCount)
	fmt.Printf("  Ended:  %s\n", rep.EndReason)
	return nil
}
