package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gotchi/internal/session"
)

// Options configures the pet screen.
type Options struct {
	Interval time.Duration     // loop period; zero means 100ms
	Submit   func(line string) // where typed lines go; defaults to the session queue
}

// Model is the Bubble Tea model that owns a pet session. Its Update loop is
// the single goroutine advancing the session.
type Model struct {
	session  *session.Session
	keys     *KeyMapper
	input    textinput.Model
	interval time.Duration
	submit   func(line string)
	result   session.Result
	quitting bool
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewModel creates a new Bubble Tea model around s.
func NewModel(s *session.Session, opts Options) Model {
	interval := opts.Interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	submit := opts.Submit
	if submit == nil {
		submit = s.Queue().PushLine
	}

	in := textinput.New()
	in.Prompt = "> "
	in.PromptStyle = promptStyle
	in.Placeholder = "say something, or press f/p/s/q"
	in.CharLimit = 60
	in.Focus()

	return Model{
		session:  s,
		keys:     NewKeyMapper(),
		input:    in,
		interval: interval,
		submit:   submit,
	}
}

// Init starts the loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(m.interval))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, line := m.keys.MapKey(msg, m.input.Value() == "")

	switch action {
	case KeyActionQuit:
		m.quitting = true
		m.result = session.Result{Quit: true}
		return m, tea.Quit

	case KeyActionSubmit:
		if line == "" {
			line = m.input.Value()
			m.input.Reset()
		}
		if strings.TrimSpace(line) != "" {
			m.submit(line)
		}
		return m, nil

	case KeyActionClear:
		m.input.Reset()
		return m, nil

	case KeyActionEdit:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleTick advances the session to wall time now.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	res := m.session.Advance(now)
	if res.Done() {
		m.result = res
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.interval)
}

// Result returns how the run ended. It is zero while the run is live.
func (m Model) Result() session.Result {
	return m.result
}

// View renders the pet, the input line and a help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(RenderLines(m.session.Lines()))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: send  esc: clear  ctrl+c: quit"))
	return b.String()
}

// Run starts the Bubble Tea program and blocks until the run ends.
func Run(s *session.Session, opts Options) (session.Result, error) {
	p := tea.NewProgram(
		NewModel(s, opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return session.Result{}, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return session.Result{}, nil
	}
	return m.Result(), nil
}
