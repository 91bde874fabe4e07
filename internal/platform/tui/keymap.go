package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/termtris/internal/config"
	"github.com/vovakirdan/termtris/internal/core"
)

// KeyMap holds the in-game key bindings.
type KeyMap struct {
	Rotate     key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

// NewKeyMap builds the bindings from the configured key names.
func NewKeyMap(keys config.KeyConfig) KeyMap {
	return KeyMap{
		Rotate:     binding(keys.Rotate, "rotate"),
		Down:       binding(keys.Down, "down"),
		Left:       binding(keys.Left, "left"),
		Right:      binding(keys.Right, "right"),
		Pause:      binding(keys.Pause, "pause"),
		Restart:    binding(keys.Restart, "restart"),
		Quit:       binding(keys.Quit, "quit"),
		Screenshot: binding([]string{"ctrl+s"}, "screenshot"),
	}
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Rotate, k.Down, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Rotate, k.Down},
		{k.Pause, k.Restart, k.Screenshot, k.Quit},
	}
}

// Action translates a key press to a game action. Keys that are not game
// actions, including the screenshot key, map to ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Rotate):
		return core.ActionRotate
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}
