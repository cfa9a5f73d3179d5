package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/frameloop/internal/registry"
	"github.com/vovakirdan/frameloop/internal/storage"
)

const maxSessions = 100

// DashboardKeyMap defines the key bindings for the session dashboard.
type DashboardKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	NextStrategy key.Binding
	PrevStrategy key.Binding
	Quit         key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k DashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextStrategy, k.PrevStrategy, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k DashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextStrategy, k.PrevStrategy, k.Quit},
	}
}

// DefaultDashboardKeyMap returns default key bindings.
func DefaultDashboardKeyMap() DashboardKeyMap {
	return DashboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextStrategy: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next strategy"),
		),
		PrevStrategy: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev strategy"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DashboardModel is the Bubble Tea model browsing recorded benchmark
// sessions, filterable per loop strategy.
type DashboardModel struct {
	store      *storage.Store
	strategies []string // first entry is "" meaning no filter
	cursor     int
	sessions   []storage.Session
	table      table.Model
	help       help.Model
	keys       DashboardKeyMap
	width      int
	height     int
	quitting   bool
}

// NewDashboardModel creates a dashboard over the given store.
func NewDashboardModel(store *storage.Store, width, height int) DashboardModel {
	h := help.New()
	h.ShowAll = false

	strategies := []string{""}
	for _, info := range registry.List() {
		strategies = append(strategies, info.Name)
	}

	m := DashboardModel{
		store:      store,
		strategies: strategies,
		keys:       DefaultDashboardKeyMap(),
		help:       h,
		width:      width,
		height:     height,
	}
	m.table = m.createTable()
	m.loadSessions()
	return m
}

func (m *DashboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 14},
		{Title: "Strategy", Width: 10},
		{Title: "Dur", Width: 7},
		{Title: "Frames", Width: 8},
		{Title: "Avg FPS", Width: 8},
		{Title: "Min", Width: 7},
		{Title: "Max", Width: 7},
		{Title: "Dropped", Width: 8},
		{Title: "Err", Width: 4},
	}

	height := m.height - 6
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

func (m *DashboardModel) loadSessions() {
	var (
		sessions []storage.Session
		err      error
	)
	strategy := m.strategies[m.cursor]
	if strategy == "" {
		sessions, err = m.store.RecentSessions(maxSessions)
	} else {
		sessions, err = m.store.SessionsByStrategy(strategy, maxSessions)
	}
	if err != nil {
		sessions = nil
	}
	m.sessions = sessions

	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		rows[i] = table.Row{
			s.CreatedAt.Format("Jan 02 15:04"),
			s.Strategy,
			fmt.Sprintf("%.1fs", s.Duration),
			fmt.Sprintf("%d", s.Frames),
			fmt.Sprintf("%.1f", s.AvgFPS),
			fmt.Sprintf("%.1f", s.MinFPS),
			fmt.Sprintf("%.1f", s.MaxFPS),
			fmt.Sprintf("%.2fs", s.DroppedTime),
			fmt.Sprintf("%d", s.Errors),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the dashboard.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextStrategy):
			m.cursor = (m.cursor + 1) % len(m.strategies)
			m.loadSessions()
			return m, nil

		case key.Matches(msg, m.keys.PrevStrategy):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.strategies) - 1
			}
			m.loadSessions()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.loadSessions()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "BENCH SESSIONS"
	if s := m.strategies[m.cursor]; s != "" {
		title = fmt.Sprintf("BENCH SESSIONS - %s", s)
	}

	body := m.table.View()
	if len(m.sessions) == 0 {
		body = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No sessions recorded yet.\nRun `frameloop bench` to record one.")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	return titleStyle.Render(title) + "\n\n" +
		body + "\n" +
		helpStyle.Render(m.help.View(m.keys))
}

// RunDashboard runs the session dashboard until the user quits.
func RunDashboard(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewDashboardModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
