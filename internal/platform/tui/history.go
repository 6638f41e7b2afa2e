package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gotchi/internal/storage"
)

// History layout constants
const (
	minWidthForDetail = 100 // Minimum width to show the detail pane beside the table
	detailWidth       = 36  // Width of the detail pane
	maxRuns           = 200 // Max runs to load
)

// historyModes are the filter tabs, in order.
var historyModes = []string{"all", "play", "sim", "auto"}

// HistoryKeyMap defines the key bindings for the run history.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing past runs.
type HistoryModel struct {
	all        []storage.Run // every loaded run, newest first
	runs       []storage.Run // runs shown under the current mode
	stats      *storage.RunStats
	modeCursor int
	table      table.Model
	help       help.Model
	keys       HistoryKeyMap
	width      int
	height     int
	quitting   bool
	showDetail bool
}

// NewHistoryModel creates a history browser over the given runs.
func NewHistoryModel(runs []storage.Run, stats *storage.RunStats, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		all:        runs,
		stats:      stats,
		keys:       DefaultHistoryKeyMap(),
		help:       h,
		width:      width,
		height:     height,
		showDetail: width >= minWidthForDetail,
	}
	m.table = m.createTable()
	m.applyMode()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Mode", Width: 5},
		{Title: "Outcome", Width: 13},
		{Title: "Ticks", Width: 7},
		{Title: "Hun", Width: 5},
		{Title: "Hap", Width: 5},
		{Title: "Ene", Width: 5},
		{Title: "Started", Width: 12},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
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

// Mode returns the current filter tab.
func (m HistoryModel) Mode() string {
	return historyModes[m.modeCursor]
}

// Runs returns the runs shown under the current mode.
func (m HistoryModel) Runs() []storage.Run {
	return m.runs
}

// applyMode filters the loaded runs by the current mode.
func (m *HistoryModel) applyMode() {
	mode := m.Mode()
	m.runs = m.runs[:0:0]
	for _, r := range m.all {
		if mode == "all" || r.Mode == mode {
			m.runs = append(m.runs, r)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.Mode,
			r.Status,
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%.1f", r.Hunger),
			fmt.Sprintf("%.1f", r.Happiness),
			fmt.Sprintf("%.1f", r.Energy),
			r.StartedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode):
			m.modeCursor = (m.modeCursor + 1) % len(historyModes)
			m.applyMode()
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			m.modeCursor--
			if m.modeCursor < 0 {
				m.modeCursor = len(historyModes) - 1
			}
			m.applyMode()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showDetail = m.width >= minWidthForDetail
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(fmt.Sprintf("RUN HISTORY - %s", strings.ToUpper(m.Mode()))))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showDetail {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", m.renderDetail()))
	} else {
		b.WriteString(tableRendered)
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders the mode tabs.
func (m HistoryModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(historyModes))
	for i, mode := range historyModes {
		if i == m.modeCursor {
			tabs[i] = activeTabStyle.Render(mode)
		} else {
			tabs[i] = tabStyle.Render(" " + mode + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderDetail renders totals and the selected run's summary.
func (m HistoryModel) renderDetail() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(detailWidth).
		Padding(0, 1)

	var b strings.Builder
	if m.stats != nil {
		fmt.Fprintf(&b, "Finished runs: %d\n", m.stats.Runs)
		fmt.Fprintf(&b, "Longest: %d ticks\n", m.stats.LongestTicks)
		fmt.Fprintf(&b, "Average: %.0f ticks\n", m.stats.AvgTicks)
		statuses := make([]string, 0, len(m.stats.ByStatus))
		for status := range m.stats.ByStatus {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)
		for _, status := range statuses {
			fmt.Fprintf(&b, "  %s: %d\n", status, m.stats.ByStatus[status])
		}
		b.WriteString(strings.Repeat("-", detailWidth-4))
		b.WriteString("\n")
	}

	if run, ok := m.selected(); ok {
		fmt.Fprintf(&b, "Run %d (seed %d)\n", run.ID, run.Seed)
		fmt.Fprintf(&b, "Friendship %.1f, away %d\n", run.Friendship, run.AwayUsed)
		if run.Summary != "" {
			b.WriteString("\n")
			b.WriteString(run.Summary)
		}
	}
	return style.Render(b.String())
}

func (m HistoryModel) selected() (storage.Run, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.Run{}, false
	}
	return m.runs[i], true
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nRun gotchi play to raise a pet!")
	}

	return m.table.View()
}

// RunHistory loads the stored runs and shows the history browser.
func RunHistory(store *storage.Store, width, height int) error {
	runs, err := store.RecentRuns(maxRuns)
	if err != nil {
		return err
	}
	stats, err := store.Stats()
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		NewHistoryModel(runs, stats, width, height),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
