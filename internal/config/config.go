// Package config loads termtris settings from YAML.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Config holds every user-tunable setting. Board geometry, scoring and the
// speed table are fixed by the rules and deliberately absent.
type Config struct {
	TickRate      int           `yaml:"tick_rate"`
	CelebrationMS int           `yaml:"celebration_ms"`
	RecordReplays bool          `yaml:"record_replays"`
	DBPath        string        `yaml:"db_path"`
	Log           LogConfig     `yaml:"log"`
	Keys          KeyConfig     `yaml:"keys"`
	Palette       PaletteConfig `yaml:"palette"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
	File  string `yaml:"file"`  // Log file for interactive sessions
}

// KeyConfig lists the key names bound to each action.
type KeyConfig struct {
	Rotate  []string `yaml:"rotate"`
	Down    []string `yaml:"down"`
	Left    []string `yaml:"left"`
	Right   []string `yaml:"right"`
	Pause   []string `yaml:"pause"`
	Restart []string `yaml:"restart"`
	Quit    []string `yaml:"quit"`
}

// PaletteConfig holds the ANSI color code drawn for each shape.
type PaletteConfig struct {
	I string `yaml:"i"`
	O string `yaml:"o"`
	S string `yaml:"s"`
	Z string `yaml:"z"`
	L string `yaml:"l"`
	J string `yaml:"j"`
	T string `yaml:"t"`
}

// ForShape returns the color code for a shape letter, or "" if unknown.
func (p PaletteConfig) ForShape(letter byte) string {
	switch letter {
	case 'I':
		return p.I
	case 'O':
		return p.O
	case 'S':
		return p.S
	case 'Z':
		return p.Z
	case 'L':
		return p.L
	case 'J':
		return p.J
	case 'T':
		return p.T
	default:
		return ""
	}
}

// CelebrationFrames converts the celebration time to frames at TickRate.
func (c Config) CelebrationFrames() int {
	d := time.Duration(c.CelebrationMS) * time.Millisecond
	return int(d * time.Duration(c.TickRate) / time.Second)
}

// LogLevel returns the parsed log level, defaulting to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.TickRate <= 0 || c.TickRate > 240 {
		errs = append(errs, fmt.Errorf("tick_rate must be in 1..240, got %d", c.TickRate))
	}
	if c.CelebrationMS < 0 {
		errs = append(errs, fmt.Errorf("celebration_ms must not be negative, got %d", c.CelebrationMS))
	}
	if c.RecordReplays && c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required when record_replays is on"))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	seen := make(map[string]string)
	for _, b := range c.Keys.bindings() {
		if len(b.keys) == 0 {
			errs = append(errs, fmt.Errorf("keys.%s must list at least one key", b.name))
		}
		for _, k := range b.keys {
			if other, dup := seen[k]; dup && other != b.name {
				errs = append(errs, fmt.Errorf("key %q is bound to both %s and %s", k, other, b.name))
			}
			seen[k] = b.name
		}
	}

	for _, letter := range []byte("IOSZLJT") {
		if c.Palette.ForShape(letter) == "" {
			errs = append(errs, fmt.Errorf("palette.%c must be set", letter+'a'-'A'))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

type namedKeys struct {
	name string
	keys []string
}

func (k KeyConfig) bindings() []namedKeys {
	return []namedKeys{
		{"rotate", k.Rotate},
		{"down", k.Down},
		{"left", k.Left},
		{"right", k.Right},
		{"pause", k.Pause},
		{"restart", k.Restart},
		{"quit", k.Quit},
	}
}
