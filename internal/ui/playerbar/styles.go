package playerbar

import "github.com/charmbracelet/lipgloss"

func barStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func timeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
}

func metaStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
}

func progressFilled() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
}

func progressEmpty() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
}
