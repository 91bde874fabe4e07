package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termtris/internal/storage"
)

// MaxListedReplays caps how many replays the browser loads.
const MaxListedReplays = 100

// ReplayKeyMap defines the key bindings for the replay browser.
type ReplayKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Watch  key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Watch, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Watch, k.Delete, k.Quit},
	}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Watch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ReplayBrowserModel lists stored replays.
type ReplayBrowserModel struct {
	store    *storage.Store
	logger   *log.Logger
	replays  []storage.Replay
	table    table.Model
	help     help.Model
	keys     ReplayKeyMap
	width    int
	height   int
	status   string // Last load or delete error
	selected int64  // Replay chosen with Watch, 0 if none
	quitting bool
}

// NewReplayBrowserModel creates a browser and loads the newest replays.
func NewReplayBrowserModel(store *storage.Store, logger *log.Logger, width, height int) ReplayBrowserModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.Width = width

	m := ReplayBrowserModel{
		store:  store,
		logger: logger,
		keys:   DefaultReplayKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

func (m *ReplayBrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Date", Width: 12},
		{Title: "Score", Width: 7},
		{Title: "Lvl", Width: 4},
		{Title: "Lines", Width: 5},
		{Title: "Frames", Width: 7},
		{Title: "Inputs", Width: 6},
		{Title: "Ended", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ReplayBrowserModel) loadReplays() {
	replays, err := m.store.RecentReplays(MaxListedReplays)
	if err != nil {
		m.logger.Error("cannot list replays", "error", err)
		m.status = err.Error()
		replays = nil
	}
	m.replays = replays
	m.updateTableRows()
}

func (m *ReplayBrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Level+1),
			fmt.Sprintf("%d", r.Lines),
			fmt.Sprintf("%d", r.Frames),
			fmt.Sprintf("%d", r.InputCount),
			strings.ReplaceAll(r.EndReason, "_", " "),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

func (m ReplayBrowserModel) current() (storage.Replay, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.Replay{}, false
	}
	return m.replays[i], true
}

// Init initializes the browser.
func (m ReplayBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m ReplayBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Watch):
			if r, ok := m.current(); ok {
				m.selected = r.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.current(); ok {
				m.delete(r.ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ReplayBrowserModel) delete(id int64) {
	err := m.store.DeleteReplay(id)
	switch {
	case errors.Is(err, storage.ErrReplayNotFound):
		m.status = fmt.Sprintf("replay %d is already gone", id)
	case err != nil:
		m.logger.Error("cannot delete replay", "id", id, "error", err)
		m.status = err.Error()
		return
	default:
		m.logger.Info("replay deleted", "id", id)
		m.status = fmt.Sprintf("deleted replay %d", id)
	}
	m.loadReplays()
}

// View renders the browser.
func (m ReplayBrowserModel) View() string {
	if m.quitting || m.selected != 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(fmt.Sprintf("REPLAYS (%d)", len(m.replays))))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.replays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No replays recorded yet.\nFinish a game to record one!")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	if m.status != "" {
		b.WriteString(helpStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Selected returns the ID of the replay chosen for watching, or 0.
func (m ReplayBrowserModel) Selected() int64 {
	return m.selected
}

// RunReplayBrowser shows the browser and returns the ID of the replay to
// watch, or 0 if the user quit.
func RunReplayBrowser(store *storage.Store, logger *log.Logger, width, height int) (int64, error) {
	model := NewReplayBrowserModel(store, logger, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, err
	}

	m, ok := finalModel.(ReplayBrowserModel)
	if !ok {
		return 0, nil
	}
	return m.Selected(), nil
}
