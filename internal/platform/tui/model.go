package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termtris/internal/config"
	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/registry"
	"github.com/vovakirdan/termtris/internal/replay"
	"github.com/vovakirdan/termtris/internal/storage"
)

// footerHeight is the number of terminal rows below the game screen.
const footerHeight = 1

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configures a session.
type Options struct {
	Config        core.RuntimeConfig
	Keys          KeyMap
	Styles        *Styles
	Store         *storage.Store // Replays are not recorded when nil
	Logger        *log.Logger
	ScreenshotDir string // Screenshots are disabled when empty
}

// Model is the Bubble Tea model for playing or watching a game.
type Model struct {
	game   registry.Replayable
	screen *core.Screen
	opts   Options
	config core.RuntimeConfig
	input  core.InputFrame
	state  core.GameState
	help   help.Model

	recorder *replay.Recorder // nil when not recording
	saved    bool             // Current game's replay is stored

	player       *replay.Player // Set in playback mode
	replayID     int64
	replayFrames uint64
	holding      bool // Playback paused

	quitting bool
}

// NewModel resets game with opts.Config and returns a model that plays it.
// A zero seed is replaced with a time-based one.
func NewModel(game registry.Replayable, opts Options) Model {
	opts = withDefaults(opts)
	if opts.Config.Seed == 0 {
		opts.Config.Seed = time.Now().UnixNano()
	}

	m := newModel(game, opts)
	if opts.Store != nil {
		m.recorder = replay.NewRecorder(game, m.config)
	}
	opts.Logger.Info("game started", "game", game.ID(), "seed", game.Seed(), "tick_rate", m.config.TickRate)
	return m
}

// NewPlaybackModel returns a model that re-simulates a stored replay at the
// tick rate it was recorded with. Keys other than pause and quit are ignored.
func NewPlaybackModel(rep *storage.Replay, opts Options) (Model, error) {
	opts = withDefaults(opts)

	game, err := registry.CreateReplayable(rep.GameID)
	if err != nil {
		return Model{}, err
	}
	player, err := replay.NewPlayer(rep)
	if err != nil {
		return Model{}, err
	}

	opts.Config = replay.Config(rep, opts.Config.ScreenW, opts.Config.ScreenH)
	opts.Store = nil

	m := newModel(game, opts)
	m.player = player
	m.replayID = rep.ID
	m.replayFrames = rep.Frames
	opts.Logger.Info("watching replay", "id", rep.ID, "seed", rep.Seed, "frames", rep.Frames)
	return m, nil
}

func withDefaults(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Styles == nil {
		opts.Styles = NewStyles(config.Default().Palette)
	}
	if len(opts.Keys.Quit.Keys()) == 0 {
		opts.Keys = NewKeyMap(config.Default().Keys)
	}
	return opts
}

func newModel(game registry.Replayable, opts Options) Model {
	game.Reset(opts.Config)

	h := help.New()
	h.Width = opts.Config.ScreenW

	return Model{
		game:   game,
		screen: core.NewScreen(opts.Config.ScreenW, max(0, opts.Config.ScreenH-footerHeight)),
		opts:   opts,
		config: opts.Config,
		input:  core.NewInputFrame(),
		state:  game.State(),
		help:   h,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the key's action for the next frame. Quit and the
// screenshot key take effect immediately.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.opts.Keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.opts.Keys.Action(msg)
	switch {
	case action == core.ActionQuit:
		m.finish(storage.EndQuit)
		m.quitting = true
		m.opts.Logger.Info("session ended", "seed", m.game.Seed(), "frames", m.game.Frame(), "score", m.state.Score)
		return m, tea.Quit
	case m.player != nil:
		if action == core.ActionPause {
			m.holding = !m.holding
		}
		return m, nil
	}

	m.input.Push(action)
	return m, nil
}

// handleResize resizes the screen buffer. The game keeps running; it draws
// into whatever size it is given.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(0, msg.Height-footerHeight))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick steps the game once with the actions queued since the last tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.player != nil {
		return m.playbackTick()
	}

	if m.recorder != nil && !m.state.GameOver {
		m.recorder.Record(m.game.Frame(), m.input)
	}
	result := m.game.Step(m.input)
	m.state = result.State
	m.input.Clear()

	for _, ev := range result.Events {
		m.handleEvent(ev)
	}
	return m, tickCmd(m.config.TickRate)
}

func (m Model) playbackTick() (tea.Model, tea.Cmd) {
	frame := m.game.Frame()
	if !m.holding && !m.player.Done(frame) && !m.state.GameOver {
		m.state = m.game.Step(m.player.Next(frame)).State
	}
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) handleEvent(ev core.Event) {
	logger := m.opts.Logger
	switch ev.Kind {
	case core.EventSettled:
		logger.Debug("piece settled", "score", ev.Value)
	case core.EventLinesCleared:
		logger.Debug("lines cleared", "rows", ev.Value, "total", m.state.Lines)
	case core.EventLevelUp:
		logger.Info("level up", "level", ev.Value+1)
	case core.EventCelebration:
		logger.Info("four lines at once")
	case core.EventGameOver:
		logger.Info("game over", "score", m.state.Score, "level", m.state.Level+1,
			"lines", m.state.Lines, "frames", m.game.Frame())
		m.finish(storage.EndGameOver)
	case core.EventRestart:
		logger.Info("game restarted", "seed", m.game.Seed())
		if m.opts.Store != nil {
			m.recorder = replay.NewRecorder(m.game, m.config)
			m.saved = false
		}
	}
}

// finish stores the current game's replay once. Games quit before their
// first frame are not stored.
func (m *Model) finish(reason string) {
	if m.recorder == nil || m.saved {
		return
	}
	if reason == storage.EndQuit && (m.game.Frame() == 0 || m.state.GameOver) {
		return
	}
	m.saved = true

	rep := m.recorder.Finish(m.game.Frame(), m.state, reason)
	id, err := m.opts.Store.SaveReplay(rep)
	if err != nil {
		m.opts.Logger.Warn("cannot save replay", "error", err)
		return
	}
	m.opts.Logger.Info("replay saved", "id", id, "reason", reason, "inputs", rep.InputCount)
}

// saveScreenshot writes the uncolored screen to a text file.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot create screenshot directory", "error", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(m.opts.ScreenshotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.state
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.opts.Styles.RenderScreen(m.screen) + "\n" + footerStyle.Render(m.footer())
}

func (m Model) footer() string {
	if m.player == nil {
		return m.help.View(m.opts.Keys)
	}

	status := "playing"
	switch {
	case m.state.GameOver || m.player.Done(m.game.Frame()):
		status = "finished"
	case m.holding:
		status = "paused"
	}
	return fmt.Sprintf("replay #%d  frame %d/%d  %s  %s quit  %s pause",
		m.replayID, m.game.Frame(), m.replayFrames, status,
		m.opts.Keys.Quit.Help().Key, m.opts.Keys.Pause.Help().Key)
}

// Run plays game until the user quits.
func Run(game registry.Replayable, opts Options) error {
	return runProgram(NewModel(game, opts))
}

// Watch plays back a stored replay until the user quits.
func Watch(rep *storage.Replay, opts Options) error {
	m, err := NewPlaybackModel(rep, opts)
	if err != nil {
		return err
	}
	return runProgram(m)
}

func runProgram(m Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(), // Use alternate screen buffer
	)
	_, err := p.Run()
	return err
}
