package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/termtris/internal/config"
	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/games/tetris"
	"github.com/vovakirdan/termtris/internal/games/tetris/engine"
	"github.com/vovakirdan/termtris/internal/registry"
	"github.com/vovakirdan/termtris/internal/replay"
	"github.com/vovakirdan/termtris/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	game, err := registry.CreateReplayable(tetris.ID)
	require.NoError(t, err)

	return NewModel(game, Options{
		Config: core.RuntimeConfig{
			ScreenW:           80,
			ScreenH:           25,
			TickRate:          1, // Gravity on every tick
			Seed:              42,
			CelebrationFrames: 2,
		},
		Keys:   NewKeyMap(config.Default().Keys),
		Styles: NewStyles(config.Default().Palette),
		Store:  store,
	})
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return out, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = send(t, m, TickMsg(time.Time{}))
	return m
}

// playUntilOver ticks m until the game ends, nudging the piece left and right
// so the recording has inputs.
func playUntilOver(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 20000; i++ {
		switch i % 5 {
		case 1:
			m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
		case 3:
			m, _ = send(t, m, runeKey("w"))
			m, _ = send(t, m, runeKey("d"))
		}
		m = tick(t, m)
		if m.State().GameOver {
			return m
		}
	}
	t.Fatal("game did not end")
	return m
}

func TestKeyMapAction(t *testing.T) {
	keys := NewKeyMap(config.Default().Keys)
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotate},
		{runeKey("w"), core.ActionRotate},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runeKey("d"), core.ActionRight},
		{runeKey("p"), core.ActionPause},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{runeKey("r"), core.ActionRestart},
		{runeKey("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey("x"), core.ActionNone},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionNone},
	}
	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestKeyMapCustomKeys(t *testing.T) {
	cfg := config.Default().Keys
	cfg.Rotate = []string{"k"}
	keys := NewKeyMap(cfg)

	assert.Equal(t, core.ActionRotate, keys.Action(runeKey("k")))
	assert.Equal(t, core.ActionNone, keys.Action(runeKey("w")))
	assert.Equal(t, "k", keys.Rotate.Help().Key)
}

func TestStylesUsePalette(t *testing.T) {
	palette := config.Default().Palette
	palette.I = "200"
	styles := NewStyles(palette)

	iColor := tetris.ScreenColor(engine.ShapeI.Color())
	assert.Equal(t, lipgloss.Color("200"), styles.Style(iColor).GetForeground())
	assert.Equal(t, lipgloss.Color("245"), styles.Style(core.ColorGray).GetForeground())
	assert.Equal(t, lipgloss.NoColor{}, styles.Style(core.Color(200)).GetForeground())
}

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(20, 3)
	scr.DrawTextColor(2, 1, "TERMTRIS", core.ColorBrightWhite)
	out := NewStyles(config.Default().Palette).RenderScreen(scr)

	assert.Contains(t, out, "TERMTRIS")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestModelIntentsReachGame(t *testing.T) {
	m := newTestModel(t, nil)
	before := m.game.Dump()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, before, m.game.Dump(), "keys are queued until the next tick")

	m = tick(t, m)
	assert.NotEqual(t, before, m.game.Dump())
	assert.Equal(t, uint64(1), m.game.Frame())
	assert.Zero(t, m.input.Len(), "input is cleared after each tick")
}

func TestModelSavesReplayOnGameOver(t *testing.T) {
	store := openStore(t)
	m := playUntilOver(t, newTestModel(t, store))

	replays, err := store.RecentReplays(10)
	require.NoError(t, err)
	require.Len(t, replays, 1)
	assert.Equal(t, storage.EndGameOver, replays[0].EndReason)
	assert.Equal(t, m.State().Score, replays[0].Score)
	assert.Equal(t, m.game.Frame(), replays[0].Frames)
	assert.Positive(t, replays[0].InputCount)

	// Ticking after game over and quitting do not store it again.
	m = tick(t, m)
	m, _ = send(t, m, runeKey("q"))
	replays, err = store.RecentReplays(10)
	require.NoError(t, err)
	assert.Len(t, replays, 1)

	rep, err := store.Replay(replays[0].ID)
	require.NoError(t, err)
	res, err := replay.Run(rep)
	require.NoError(t, err)
	assert.Equal(t, rep.Score, res.State.Score)
}

func TestModelSavesReplayOnQuit(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, store)
	for i := 0; i < 5; i++ {
		m, _ = send(t, m, runeKey("a"))
		m = tick(t, m)
	}

	m, cmd := send(t, m, runeKey("q"))
	assert.True(t, m.Quitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())

	replays, err := store.RecentReplays(10)
	require.NoError(t, err)
	require.Len(t, replays, 1)
	assert.Equal(t, storage.EndQuit, replays[0].EndReason)
	assert.Equal(t, uint64(5), replays[0].Frames)
	assert.Equal(t, 5, replays[0].InputCount)

	rep, err := store.Replay(replays[0].ID)
	require.NoError(t, err)
	_, err = replay.Run(rep)
	assert.NoError(t, err)
}

func TestModelQuitBeforeFirstFrame(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, store)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.Quitting())

	replays, err := store.RecentReplays(10)
	require.NoError(t, err)
	assert.Empty(t, replays)
}

func TestModelRestartRecordsNewGame(t *testing.T) {
	store := openStore(t)
	m := playUntilOver(t, newTestModel(t, store))
	firstSeed := m.game.Seed()

	m, _ = send(t, m, runeKey("r"))
	m = tick(t, m)
	require.False(t, m.State().GameOver)
	assert.NotEqual(t, firstSeed, m.game.Seed())

	for i := 0; i < 3; i++ {
		m = tick(t, m)
	}
	m, _ = send(t, m, runeKey("q"))

	replays, err := store.RecentReplays(10)
	require.NoError(t, err)
	require.Len(t, replays, 2)
	assert.Equal(t, storage.EndQuit, replays[0].EndReason)
	assert.Equal(t, m.game.Seed(), replays[0].Seed)
	assert.Equal(t, uint64(3), replays[0].Frames)
	assert.Equal(t, firstSeed, replays[1].Seed)
}

func TestModelResizeKeepsGame(t *testing.T) {
	m := newTestModel(t, nil)
	for i := 0; i < 3; i++ {
		m = tick(t, m)
	}
	before := m.game.Dump()

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, before, m.game.Dump())
	assert.Equal(t, uint64(3), m.game.Frame())
	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 40-footerHeight, m.screen.Height())
	assert.Contains(t, m.View(), "TERMTRIS")
}

func TestPlaybackModelReproducesGame(t *testing.T) {
	store := openStore(t)
	played := playUntilOver(t, newTestModel(t, store))

	replays, err := store.RecentReplays(1)
	require.NoError(t, err)
	require.Len(t, replays, 1)
	rep, err := store.Replay(replays[0].ID)
	require.NoError(t, err)

	m, err := NewPlaybackModel(rep, Options{Config: core.RuntimeConfig{ScreenW: 80, ScreenH: 25}})
	require.NoError(t, err)

	// Pause holds playback; keys other than pause and quit are ignored.
	m, _ = send(t, m, runeKey("p"))
	m = tick(t, m)
	assert.Zero(t, m.game.Frame())
	m, _ = send(t, m, runeKey("p"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Zero(t, m.input.Len())

	for i := uint64(0); i < rep.Frames+10; i++ {
		m = tick(t, m)
	}
	assert.True(t, m.State().GameOver)
	assert.Equal(t, played.State().Score, m.State().Score)
	assert.Equal(t, played.game.Dump(), m.game.Dump())
	assert.Contains(t, m.footer(), "finished")
}

func TestPlaybackModelRejectsUnknownGame(t *testing.T) {
	_, err := NewPlaybackModel(&storage.Replay{GameID: "solitaire"}, Options{})
	assert.Error(t, err)
}

func TestReplayBrowser(t *testing.T) {
	store := openStore(t)
	older, err := store.SaveReplay(storage.Replay{GameID: tetris.ID, Seed: 1, TickRate: 20, Score: 10, EndReason: storage.EndQuit})
	require.NoError(t, err)
	newer, err := store.SaveReplay(storage.Replay{GameID: tetris.ID, Seed: 2, TickRate: 20, Score: 20, EndReason: storage.EndGameOver})
	require.NoError(t, err)

	m := NewReplayBrowserModel(store, nil, 80, 30)
	require.Len(t, m.replays, 2)
	assert.Equal(t, newer, m.replays[0].ID)
	assert.Contains(t, m.View(), "REPLAYS (2)")

	next, _ := m.Update(runeKey("d"))
	m = next.(ReplayBrowserModel)
	require.Len(t, m.replays, 1)
	assert.Equal(t, older, m.replays[0].ID)
	assert.Contains(t, m.status, "deleted")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(ReplayBrowserModel)
	assert.Equal(t, older, m.Selected())
	assert.NotNil(t, cmd)
}

func TestReplayBrowserEmpty(t *testing.T) {
	m := NewReplayBrowserModel(openStore(t), nil, 80, 30)
	assert.Contains(t, m.View(), "No replays recorded yet.")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Zero(t, next.(ReplayBrowserModel).Selected())
}
