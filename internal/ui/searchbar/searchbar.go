// Package searchbar wraps a text input with debounced query emission.
package searchbar

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const debounceDelay = 300 * time.Millisecond

// QueryMsg carries a debounced search query.
type QueryMsg struct {
	Query string
}

// debounceTimeoutMsg fires after the debounce delay. The version lets stale
// timers from earlier keystrokes be ignored.
type debounceTimeoutMsg struct {
	version int
}

// Model is a search input that emits QueryMsg once typing pauses.
type Model struct {
	input   textinput.Model
	version int
	emitted string
}

// New returns a search bar with the given placeholder.
func New(placeholder string) Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	ti.CharLimit = 200
	return Model{input: ti}
}

// Focus gives the input keyboard focus.
func (m *Model) Focus() tea.Cmd { return m.input.Focus() }

// Blur removes keyboard focus.
func (m *Model) Blur() { m.input.Blur() }

// Focused reports whether the input has focus.
func (m Model) Focused() bool { return m.input.Focused() }

// Value returns the current raw input text.
func (m Model) Value() string { return m.input.Value() }

// Reset clears the input and the emitted query.
func (m *Model) Reset() {
	m.input.Reset()
	m.emitted = ""
	m.version++
}

// Update handles input events and debounce timers.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceTimeoutMsg:
		if msg.version != m.version {
			return m, nil
		}
		query := m.input.Value()
		if query == m.emitted {
			return m, nil
		}
		m.emitted = query
		return m, func() tea.Msg { return QueryMsg{Query: query} }
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.version++
		return m, tea.Batch(cmd, debounceCmd(m.version))
	}
	return m, cmd
}

func debounceCmd(version int) tea.Cmd {
	return tea.Tick(debounceDelay, func(_ time.Time) tea.Msg {
		return debounceTimeoutMsg{version: version}
	})
}

// View renders the input.
func (m Model) View() string {
	return inputStyle().Render(m.input.View())
}

func inputStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
}
