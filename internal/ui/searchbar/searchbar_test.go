package searchbar

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeRunes(m Model, s string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, r := range s {
		m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m, cmd
}

func TestTypingBumpsVersion(t *testing.T) {
	m := New("search")
	m.Focus()

	m, cmd := typeRunes(m, "abc")
	if m.Value() != "abc" {
		t.Fatalf("value = %q, want %q", m.Value(), "abc")
	}
	if m.version != 3 {
		t.Errorf("version = %d, want 3", m.version)
	}
	if cmd == nil {
		t.Error("typing should schedule a debounce timer")
	}
}

func TestStaleTimerIgnored(t *testing.T) {
	m := New("search")
	m.Focus()
	m, _ = typeRunes(m, "ab")

	m, cmd := m.Update(debounceTimeoutMsg{version: 1})
	if cmd != nil {
		t.Error("stale timer should not emit a query")
	}

	m, cmd = m.Update(debounceTimeoutMsg{version: m.version})
	if cmd == nil {
		t.Fatal("current timer should emit a query")
	}
	msg, ok := cmd().(QueryMsg)
	if !ok {
		t.Fatalf("emitted %T, want QueryMsg", cmd())
	}
	if msg.Query != "ab" {
		t.Errorf("query = %q, want %q", msg.Query, "ab")
	}
}

func TestUnchangedQueryNotReemitted(t *testing.T) {
	m := New("search")
	m.Focus()
	m, _ = typeRunes(m, "a")

	m, cmd := m.Update(debounceTimeoutMsg{version: m.version})
	if cmd == nil {
		t.Fatal("first timer should emit")
	}
	cmd()

	m, cmd = m.Update(debounceTimeoutMsg{version: m.version})
	if cmd != nil {
		t.Error("same query should not be emitted twice")
	}
}

func TestResetClearsEmitted(t *testing.T) {
	m := New("search")
	m.Focus()
	m, _ = typeRunes(m, "xyz")
	m, _ = m.Update(debounceTimeoutMsg{version: m.version})

	m.Reset()
	if m.Value() != "" {
		t.Errorf("value after reset = %q, want empty", m.Value())
	}
	if m.emitted != "" {
		t.Errorf("emitted after reset = %q, want empty", m.emitted)
	}
}
