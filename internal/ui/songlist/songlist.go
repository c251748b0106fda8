// Package songlist renders a scrollable song list with a cursor and a
// playing indicator.
package songlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lbriand/reverb/internal/song"
)

// Model is a cursor-driven song list. The zero value is usable.
type Model struct {
	songs  []song.Song
	cursor int
	offset int
	height int
}

// SetSongs replaces the list contents, clamping the cursor.
func (m *Model) SetSongs(songs []song.Song) {
	m.songs = songs
	if m.cursor >= len(songs) {
		m.cursor = max(len(songs)-1, 0)
	}
	m.scrollIntoView()
}

// Songs returns the current contents.
func (m *Model) Songs() []song.Song { return m.songs }

// SetHeight sets the number of visible rows.
func (m *Model) SetHeight(height int) {
	m.height = max(height, 1)
	m.scrollIntoView()
}

// Cursor returns the cursor index.
func (m *Model) Cursor() int { return m.cursor }

// Selected returns the song under the cursor.
func (m *Model) Selected() (song.Song, bool) {
	if m.cursor < 0 || m.cursor >= len(m.songs) {
		return song.Song{}, false
	}
	return m.songs[m.cursor], true
}

// CursorUp moves the cursor one row up.
func (m *Model) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
	}
	m.scrollIntoView()
}

// CursorDown moves the cursor one row down.
func (m *Model) CursorDown() {
	if m.cursor < len(m.songs)-1 {
		m.cursor++
	}
	m.scrollIntoView()
}

// CursorTop jumps to the first row.
func (m *Model) CursorTop() {
	m.cursor = 0
	m.scrollIntoView()
}

// CursorBottom jumps to the last row.
func (m *Model) CursorBottom() {
	m.cursor = max(len(m.songs)-1, 0)
	m.scrollIntoView()
}

func (m *Model) scrollIntoView() {
	if m.height <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the visible window. playingID marks the row carrying the
// playing indicator; liked reports liked-set membership per row.
func (m *Model) View(width int, playingID string, liked func(externalID string) bool) string {
	if len(m.songs) == 0 {
		return emptyStyle().Render("No songs")
	}

	height := m.height
	if height <= 0 {
		height = len(m.songs)
	}
	end := min(m.offset+height, len(m.songs))

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		s := m.songs[i]

		indicator := "  "
		if playingID != "" && s.ExternalID == playingID {
			indicator = "▶ "
		}

		heart := "  "
		if liked != nil && liked(s.ExternalID) {
			heart = "♥ "
		}

		title := s.Title
		artist := song.PrimaryArtist(s.Artist)
		duration := formatDuration(s.DurationSeconds)

		row := fmt.Sprintf("%s%s%s", indicator, heart, renderRow(title, artist, duration, width-4))
		if i == m.cursor {
			row = cursorStyle().Render(row)
		} else if playingID != "" && s.ExternalID == playingID {
			row = playingStyle().Render(row)
		}
		b.WriteString(row)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderRow(title, artist, duration string, width int) string {
	right := duration
	left := title
	if artist != "" {
		left = title + "  " + artistStyle().Render(artist)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "--:--"
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
