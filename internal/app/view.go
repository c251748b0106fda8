package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lbriand/reverb/internal/keymap"
	"github.com/lbriand/reverb/internal/ui/playerbar"
)

var pageTitles = map[Page]string{
	PageHome:      "Home",
	PageLibrary:   "Library",
	PageLiked:     "Liked",
	PagePlaylists: "Playlists",
	PageSearch:    "Search",
	PageQueue:     "Queue",
}

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderPage())

	if m.confirm.Active() {
		b.WriteString("\n")
		b.WriteString(m.confirm.View())
	} else if m.prompt.Active() {
		b.WriteString("\n")
		b.WriteString(m.prompt.View())
	} else if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle().Render(m.statusMsg))
	}

	bar := playerbar.Render(playerbar.Snapshot(m.svc), m.width)
	if bar != "" {
		b.WriteString("\n")
		b.WriteString(bar)
	}
	return b.String()
}

// listHeight returns the rows available for the song list after the tab
// header, player bar and status line.
func (m Model) listHeight() int {
	h := m.height - 1 - playerbar.Height() - 1
	return max(h, 1)
}

func (m Model) renderTabs() string {
	var tabs []string
	for _, p := range pageCycle {
		title := pageTitles[p]
		active := p == m.page || (m.page == PageDrill && p == m.prevPage)
		if active {
			tabs = append(tabs, activeTabStyle().Render(title))
		} else {
			tabs = append(tabs, tabStyle().Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderPage() string {
	if m.pickerActive {
		return m.renderPicker()
	}
	switch m.page {
	case PageHome:
		return m.renderHome()
	case PagePlaylists:
		return m.renderPlaylists()
	case PageSearch:
		return m.searchInput.View() + "\n" + m.renderList()
	case PageDrill:
		title := ""
		if m.drill != nil {
			title = titleStyle().Render(m.drill.Title()) + "\n"
		}
		return title + m.renderList()
	default:
		return m.renderList()
	}
}

func (m Model) renderList() string {
	playingID := ""
	if sg, ok := m.svc.CurrentSong(); ok && m.listIsActiveContext() {
		playingID = sg.ExternalID
	}
	return m.list.View(m.width, playingID, m.svc.IsLiked)
}

// listIsActiveContext reports whether the visible list is the launch context
// of the current song, so only that list carries the playing indicator.
func (m Model) listIsActiveContext() bool {
	switch m.page {
	case PageQueue:
		return true
	case PageSearch:
		return m.svc.ContextID() == ""
	default:
		if v := m.activeView(); v != nil {
			return v.IsActive(m.svc)
		}
	}
	return false
}

func (m Model) renderHome() string {
	if !m.home.Loaded() {
		return dimStyle().Render("Loading dashboard...")
	}
	d := m.home.Dashboard()
	entries := m.homeEntries()
	artistCount := min(len(d.Artists), homeSectionLimit)

	var b strings.Builder
	b.WriteString(titleStyle().Render("Top Songs"))
	b.WriteString("\n")
	for i, sg := range d.TopSongs {
		if i >= homeSectionLimit {
			break
		}
		fmt.Fprintf(&b, "  %s\n", sg.Title)
	}

	b.WriteString(titleStyle().Render("Artists"))
	b.WriteString("\n")
	for i, e := range entries[:artistCount] {
		b.WriteString(m.renderHomeEntry(e.label, i))
	}

	b.WriteString(titleStyle().Render("Channels"))
	b.WriteString("\n")
	for i, e := range entries[artistCount:] {
		b.WriteString(m.renderHomeEntry(e.label, artistCount+i))
	}
	return b.String()
}

func (m Model) renderHomeEntry(label string, index int) string {
	if index == m.homeCursor {
		return activeTabStyle().Render(label) + "\n"
	}
	return "  " + label + "\n"
}

func (m Model) renderPlaylists() string {
	if len(m.playlists) == 0 {
		return dimStyle().Render("No playlists")
	}
	var b strings.Builder
	for i, pl := range m.playlists {
		row := fmt.Sprintf("%s (%d)", pl.Name, pl.SongCount)
		if i == m.playlistCursor {
			row = activeTabStyle().Render(row)
		}
		b.WriteString(row)
		if i < len(m.playlists)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderPicker() string {
	var b strings.Builder
	b.WriteString(titleStyle().Render(fmt.Sprintf("Add %q to playlist", m.pickerSong.Title)))
	b.WriteString("\n")
	if len(m.playlists) == 0 {
		b.WriteString(dimStyle().Render("No playlists"))
		return b.String()
	}
	for i, pl := range m.playlists {
		row := fmt.Sprintf("%s (%d)", pl.Name, pl.SongCount)
		if i == m.pickerCursor {
			row = activeTabStyle().Render(row)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		if i < len(m.playlists)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(titleStyle().Render("Key bindings"))
	b.WriteString("\n\n")
	context := ""
	for _, binding := range keymap.All {
		if binding.Context != context {
			context = binding.Context
			fmt.Fprintf(&b, "%s\n", titleStyle().Render(context))
		}
		fmt.Fprintf(&b, "  %-14s %s\n", strings.Join(binding.Keys, ", "), binding.Description)
	}
	b.WriteString("\n")
	b.WriteString(dimStyle().Render("Press ? or esc to close"))
	return b.String()
}

func tabStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 2)
}

func activeTabStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("237")).
		Bold(true).
		Padding(0, 2)
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
}

func dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
}

func statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
}
