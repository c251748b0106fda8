// Package confirm provides an inline yes/no confirmation prompt.
package confirm

import "github.com/charmbracelet/lipgloss"

// Model is a yes/no prompt shown in place of the status line. The context
// value identifies what is being confirmed.
type Model struct {
	active  bool
	prompt  string
	context any
}

// Show activates the prompt.
func (m *Model) Show(prompt string, context any) {
	m.active = true
	m.prompt = prompt
	m.context = context
}

// Reset clears the prompt.
func (m *Model) Reset() {
	m.active = false
	m.prompt = ""
	m.context = nil
}

// Active reports whether the prompt is shown.
func (m Model) Active() bool { return m.active }

// Context returns the value passed to Show.
func (m Model) Context() any { return m.context }

// HandleKey consumes one key while active. It returns the confirmed context
// when the user answered yes; ok is false until the prompt resolves.
func (m *Model) HandleKey(key string) (context any, confirmed, done bool) {
	if !m.active {
		return nil, false, false
	}
	switch key {
	case "y", "Y", "enter":
		ctx := m.context
		m.Reset()
		return ctx, true, true
	case "n", "N", "esc", "q":
		m.Reset()
		return nil, false, true
	}
	// Swallow other keys while the prompt is up.
	return nil, false, true
}

// View renders the prompt line.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	return promptStyle().Render(m.prompt + " (y/n)")
}

func promptStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
}
