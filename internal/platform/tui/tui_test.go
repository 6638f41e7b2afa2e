package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gotchi/internal/core"
	"github.com/vovakirdan/gotchi/internal/display"
	"github.com/vovakirdan/gotchi/internal/pet"
	"github.com/vovakirdan/gotchi/internal/session"
	"github.com/vovakirdan/gotchi/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name      string
		msg       tea.KeyMsg
		lineEmpty bool
		action    KeyAction
		line      string
	}{
		{"feed shortcut", runeKey('f'), true, KeyActionSubmit, "f"},
		{"quit shortcut", runeKey('Q'), true, KeyActionSubmit, "Q"},
		{"letter while typing", runeKey('f'), false, KeyActionEdit, ""},
		{"other letter", runeKey('h'), true, KeyActionEdit, ""},
		{"leading space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, true, KeyActionNone, ""},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, false, KeyActionSubmit, ""},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, false, KeyActionClear, ""},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, true, KeyActionQuit, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, line := km.MapKey(tt.msg, tt.lineEmpty)
			if action != tt.action || line != tt.line {
				t.Errorf("MapKey() = %v, %q; want %v, %q", action, line, tt.action, tt.line)
			}
		})
	}
}

func TestRenderLinesKeepsHeight(t *testing.T) {
	lines := display.Lines(pet.Snapshot{Hunger: 5, Happiness: 5, Energy: 5, Away: true})
	out := RenderLines(lines)
	if got := strings.Count(out, "\n") + 1; got != display.Height {
		t.Errorf("rendered %d rows, want %d", got, display.Height)
	}
	if !strings.Contains(out, display.HintLine) {
		t.Errorf("hint line missing: %q", out)
	}
}

func newTestModel(t *testing.T, submit func(string)) (Model, *session.Session) {
	t.Helper()
	rng := pet.NewRand(1)
	engine := pet.New(pet.Tables{}, rng, pet.WithRealTime())
	s := session.New(engine, core.NewQueue(), rng, session.Options{Location: time.UTC})
	return NewModel(s, Options{Interval: time.Millisecond, Submit: submit}), s
}

func TestModelShortcutSubmits(t *testing.T) {
	var sent []string
	m, _ := newTestModel(t, func(line string) { sent = append(sent, line) })

	m.Update(runeKey('p'))
	if len(sent) != 1 || sent[0] != "p" {
		t.Errorf("sent = %v, want [p]", sent)
	}
}

func TestModelTypedLine(t *testing.T) {
	var sent []string
	m, _ := newTestModel(t, func(line string) { sent = append(sent, line) })

	for _, r := range "hi f" {
		next, _ := m.Update(runeKey(r))
		m = next.(Model)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if len(sent) != 1 || sent[0] != "hi f" {
		t.Errorf("sent = %v, want [hi f]", sent)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
}

func TestModelQuitsWhenRunEnds(t *testing.T) {
	m, s := newTestModel(t, nil)
	s.Queue().PushLine("q")

	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if !m.Result().Quit {
		t.Fatalf("Result() = %+v, want quit", m.Result())
	}
	if cmd == nil {
		t.Fatal("expected tea.Quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelCtrlC(t *testing.T) {
	m, _ := newTestModel(t, nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(Model).Result().Quit {
		t.Error("ctrl+c should quit")
	}
}

func TestModelViewShowsPet(t *testing.T) {
	m, _ := newTestModel(t, nil)
	view := m.View()
	if !strings.Contains(view, "Hunger: 5.00") || !strings.Contains(view, "ctrl+c: quit") {
		t.Errorf("View() = %q", view)
	}
}

func TestHistoryModes(t *testing.T) {
	runs := []storage.Run{
		{ID: 3, Mode: "auto", Status: "died"},
		{ID: 2, Mode: "play", Status: "quit"},
		{ID: 1, Mode: "play", Status: "ran_away"},
	}
	m := NewHistoryModel(runs, &storage.RunStats{Runs: 3}, 120, 30)
	if m.Mode() != "all" || len(m.Runs()) != 3 {
		t.Fatalf("mode %q shows %d runs", m.Mode(), len(m.Runs()))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if m.Mode() != "play" || len(m.Runs()) != 2 {
		t.Errorf("mode %q shows %d runs, want play/2", m.Mode(), len(m.Runs()))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(HistoryModel)
	if m.Mode() != "auto" || len(m.Runs()) != 1 {
		t.Errorf("mode %q shows %d runs, want auto/1", m.Mode(), len(m.Runs()))
	}
	if !strings.Contains(m.View(), "RUN HISTORY - AUTO") {
		t.Errorf("View() title missing")
	}
}

func TestHistoryEmpty(t *testing.T) {
	m := NewHistoryModel(nil, nil, 80, 24)
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Errorf("View() = %q", m.View())
	}
}
