// Package textprompt provides an inline single-line text prompt.
package textprompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is a labelled text input shown in place of the status line. The
// context value identifies what the entered text is for.
type Model struct {
	active  bool
	label   string
	context any
	input   textinput.Model
}

// New returns an inactive prompt.
func New() Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 120
	return Model{input: ti}
}

// Show activates the prompt with a label and focuses the input.
func (m *Model) Show(label string, context any) tea.Cmd {
	m.active = true
	m.label = label
	m.context = context
	m.input.Reset()
	return m.input.Focus()
}

// Reset deactivates and clears the prompt.
func (m *Model) Reset() {
	m.active = false
	m.label = ""
	m.context = nil
	m.input.Blur()
	m.input.Reset()
}

// Active reports whether the prompt is shown.
func (m Model) Active() bool { return m.active }

// Context returns the value passed to Show.
func (m Model) Context() any { return m.context }

// Value returns the trimmed input text.
func (m Model) Value() string { return strings.TrimSpace(m.input.Value()) }

// HandleKey consumes one key while active. It returns the entered value and
// its context when the user pressed enter on non-empty input; done is true
// whenever the key was consumed.
func (m *Model) HandleKey(msg tea.KeyMsg) (value string, context any, submitted, done bool) {
	if !m.active {
		return "", nil, false, false
	}
	switch msg.String() {
	case "enter":
		value = m.Value()
		context = m.context
		m.Reset()
		if value == "" {
			return "", nil, false, true
		}
		return value, context, true, true
	case "esc":
		m.Reset()
		return "", nil, false, true
	}
	m.input, _ = m.input.Update(msg)
	return "", nil, false, true
}

// View renders the prompt line.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	return labelStyle().Render(m.label+": ") + m.input.View()
}

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
}
