// Package playerbar renders the transport bar at the bottom of the
// screen.
package playerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lbriand/reverb/internal/playback"
	"github.com/lbriand/reverb/internal/song"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
)

// State holds everything needed to render the player bar.
type State struct {
	Song        song.Song
	Playing     bool
	CurrentTime float64
	Duration    float64
	Volume      int
	Muted       bool
	Shuffle     bool
	Repeat      playback.RepeatMode
	Liked       bool
}

// Height returns the total height of the player bar.
func Height() int {
	return 3 // top border + content + bottom border
}

// Snapshot builds a State from the playback service.
func Snapshot(svc playback.Service) State {
	s := State{
		Playing:     svc.IsPlaying(),
		CurrentTime: svc.CurrentTime(),
		Duration:    svc.Duration(),
		Volume:      svc.Volume(),
		Muted:       svc.Muted(),
		Shuffle:     svc.Shuffle(),
		Repeat:      svc.Repeat(),
	}
	if cur, ok := svc.CurrentSong(); ok {
		s.Song = cur
		s.Liked = svc.IsLiked(cur.ExternalID)
	}
	return s
}

// Render returns the player bar string for the given width. Returns an
// empty string when nothing is loaded.
func Render(s State, width int) string {
	if s.Song.IsZero() {
		return ""
	}

	innerWidth := max(width-6, 0)

	status := playSymbol
	if !s.Playing {
		status = pauseSymbol
	}

	title := s.Song.Title
	if title == "" {
		title = "Unknown Song"
	}
	artist := song.PrimaryArtist(s.Song.Artist)

	timeStr := fmt.Sprintf("%s / %s", formatTime(s.CurrentTime), formatTime(s.Duration))
	modes := renderModes(s)
	volume := renderVolume(s.Volume, s.Muted)

	separator := "   "
	sepWidth := lipgloss.Width(separator)
	fixed := lipgloss.Width(status+"  ") + lipgloss.Width(timeStr) +
		lipgloss.Width(modes) + lipgloss.Width(volume) + sepWidth*4

	minBarWidth := 10
	availableForContent := innerWidth - fixed - minBarWidth

	label := title
	if artist != "" {
		label = title + " — " + artist
	}
	if lipgloss.Width(label) > availableForContent {
		label = truncate(label, max(availableForContent, 10))
	}

	barWidth := max(innerWidth-lipgloss.Width(label)-fixed, 5)

	var ratio float64
	if s.Duration > 0 {
		ratio = s.CurrentTime / s.Duration
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)
	bar := progressFilled().Render(strings.Repeat("━", filled)) +
		progressEmpty().Render(strings.Repeat("─", barWidth-filled))

	var content strings.Builder
	content.WriteString(titleStyle().Render(label))
	content.WriteString(separator)
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(bar)
	content.WriteString(separator)
	content.WriteString(timeStyle().Render(timeStr))
	if modes != "" {
		content.WriteString(separator)
		content.WriteString(metaStyle().Render(modes))
	}
	content.WriteString(separator)
	content.WriteString(timeStyle().Render(volume))

	return barStyle().Padding(0, 2).Width(width - 2).Render(content.String())
}

func renderModes(s State) string {
	var parts []string
	if s.Liked {
		parts = append(parts, "♥")
	}
	if s.Shuffle {
		parts = append(parts, "⤮")
	}
	switch s.Repeat {
	case playback.RepeatAll:
		parts = append(parts, "⟳")
	case playback.RepeatOne:
		parts = append(parts, "⟳1")
	}
	return strings.Join(parts, " ")
}

func renderVolume(volume int, muted bool) string {
	if muted {
		return fmt.Sprintf("🔇 %3d%%", volume)
	}
	return fmt.Sprintf("🔊 %3d%%", volume)
}

func formatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	m := total / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

func truncate(s string, maxWidth int) string {
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
