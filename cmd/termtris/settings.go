package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/termtris/internal/config"
	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/platform/tui"
	"github.com/vovakirdan/termtris/internal/storage"
)

// loadConfig reads the config file and applies the flags the user set.
// Warnings about skipped config files go to stderr before any TUI starts.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	bootLogger := newLogger(os.Stderr, log.WarnLevel)

	cfg, source, err := config.Load(flagConfig, bootLogger)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.TickRate = flagFPS
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	bootLogger.Debug("config loaded", "source", source)
	return cfg, nil
}

// newLogger builds the structured logger used by every command.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "termtris",
	})
	logger.SetLevel(level)
	return logger
}

// fileLogger logs to the configured file so the TUI keeps the terminal.
// The returned close func is never nil. If the file cannot be opened,
// logging is discarded.
func fileLogger(cfg config.Config) (*log.Logger, func()) {
	path, err := storage.ExpandHome(cfg.Log.File)
	if err != nil || cfg.Log.File == "" {
		return newLogger(io.Discard, cfg.LogLevel()), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newLogger(io.Discard, cfg.LogLevel()), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(io.Discard, cfg.LogLevel()), func() {}
	}
	return newLogger(f, cfg.LogLevel()), func() { f.Close() }
}

// screenshotDir returns ~/.termtris/screenshots, or empty if home is unknown.
func screenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".termtris", "screenshots")
}

// terminalSize returns the size of stdout, or 80x24 if it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// tuiOptions builds the driver options for a screen of the current terminal size.
func tuiOptions(cfg config.Config, logger *log.Logger, store *storage.Store) tui.Options {
	width, height := terminalSize()
	return tui.Options{
		Config: core.RuntimeConfig{
			ScreenW:           width,
			ScreenH:           height,
			TickRate:          cfg.TickRate,
			Seed:              flagSeed,
			CelebrationFrames: cfg.CelebrationFrames(),
		},
		Keys:          tui.NewKeyMap(cfg.Keys),
		Styles:        tui.NewStyles(cfg.Palette),
		Store:         store,
		Logger:        logger,
		ScreenshotDir: screenshotDir(),
	}
}
