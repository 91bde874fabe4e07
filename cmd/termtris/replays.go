package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/termtris/internal/config"
	"github.com/vovakirdan/termtris/internal/platform/tui"
	"github.com/vovakirdan/termtris/internal/storage"
)

var flagPlain bool

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded games",
	Long: `List recorded games, newest first.

In a terminal this opens a browser: Enter watches the selected game,
d deletes it and q/Esc quits. With --plain, or when stdout is not a
terminal, the list is printed instead.

Examples:
  termtris replays
  termtris replays --plain`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the list instead of opening the browser")
}

func runReplays(cmd *cobra.Command, _ []string) {
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

	if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		err = printReplays(store)
	} else {
		err = browseReplays(cfg, store)
	}
	store.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// browseReplays alternates between the browser and playback until the user
// quits the browser.
func browseReplays(cfg config.Config, store *storage.Store) error {
	logger, closeLog := fileLogger(cfg)
	defer closeLog()

	for {
		width, height := terminalSize()
		id, err := tui.RunReplayBrowser(store, logger, width, height)
		if err != nil || id == 0 {
			return err
		}

		rep, err := store.Replay(id)
		if err != nil {
			return err
		}
		if err := tui.Watch(rep, tuiOptions(cfg, logger, nil)); err != nil {
			return err
		}
	}
}

func printReplays(store *storage.Store) error {
	replays, err := store.RecentReplays(tui.MaxListedReplays)
	if err != nil {
		return err
	}

	fmt.Println("Recorded games")
	fmt.Println()

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'termtris' to record the first one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-5s  %-16s  %-7s  %-5s  %-5s  %-7s  %-6s  %s\n",
		"ID", "Date", "Score", "Level", "Lines", "Frames", "Inputs", "Ended")
	fmt.Printf("  %-5s  %-16s  %-7s  %-5s  %-5s  %-7s  %-6s  %s\n",
		"--", "----", "-----", "-----", "-----", "------", "------", "-----")

	for _, r := range replays {
		fmt.Printf("  %-5d  %-16s  %-7d  %-5d  %-5d  %-7d  %-6d  %s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Score, r.Level+1, r.Lines, r.Frames, r.InputCount, r.EndReason)
	}

	fmt.Println()
	fmt.Println("Run 'termtris replay <id>' to re-simulate one.")
	return nil
}
