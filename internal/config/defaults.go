package config

import (
	_ "embed"
)

//go:embed defaults/termtris.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches defaults/termtris.yaml
// and is used when even the embedded file cannot be parsed.
func Default() Config {
	return Config{
		TickRate:      20,
		CelebrationMS: 1500,
		RecordReplays: true,
		DBPath:        "~/.termtris/replays.db",
		Log: LogConfig{
			Level: "info",
			File:  "~/.termtris/termtris.log",
		},
		Keys: KeyConfig{
			Rotate:  []string{"w", "up"},
			Down:    []string{"s", "down"},
			Left:    []string{"a", "left"},
			Right:   []string{"d", "right"},
			Pause:   []string{"p", "esc"},
			Restart: []string{"r"},
			Quit:    []string{"q", "ctrl+c"},
		},
		Palette: PaletteConfig{
			I: "2",
			O: "4",
			S: "1",
			Z: "3",
			L: "5",
			J: "6",
			T: "7",
		},
	}
}
