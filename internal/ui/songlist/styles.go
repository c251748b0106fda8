package songlist

import "github.com/charmbracelet/lipgloss"

func cursorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("237")).
		Bold(true)
}

func playingStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
}

func artistStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
}

func emptyStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
}
