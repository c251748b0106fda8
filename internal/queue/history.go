package queue

import "github.com/lbriand/reverb/internal/song"

// MaxHistory bounds the history to the most recent entries.
const MaxHistory = 50

// History is the linear record of songs actually played, with a cursor for
// exact-replay back/forward navigation. Going back leaves the forward
// entries in place, so "next" can retrace them before resolving anything
// new. Replay is stable even under shuffle.
type History struct {
	entries []song.Song
	index   int // position of the currently playing entry, -1 when empty
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{index: -1}
}

// Record appends s and moves the cursor to the tail, trimming the oldest
// entries beyond MaxHistory.
func (h *History) Record(s song.Song) {
	if s.IsZero() {
		return
	}
	h.entries = append(h.entries, s)
	if excess := len(h.entries) - MaxHistory; excess > 0 {
		h.entries = h.entries[excess:]
	}
	h.index = len(h.entries) - 1
}

// Back moves the cursor one step toward the oldest entry and returns the
// song there. No underflow: at the first entry it returns false and stays.
func (h *History) Back() (song.Song, bool) {
	if h.index <= 0 {
		return song.Song{}, false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward moves the cursor one step toward the tail and returns the song
// there. Returns false when the cursor is already at the tail.
func (h *History) Forward() (song.Song, bool) {
	if h.index < 0 || h.index >= len(h.entries)-1 {
		return song.Song{}, false
	}
	h.index++
	return h.entries[h.index], true
}

// AtTail reports whether there is no forward history to replay.
func (h *History) AtTail() bool {
	return h.index >= len(h.entries)-1
}

// Current returns the entry under the cursor.
func (h *History) Current() (song.Song, bool) {
	if h.index < 0 || h.index >= len(h.entries) {
		return song.Song{}, false
	}
	return h.entries[h.index], true
}

// Index returns the cursor position (-1 when empty).
func (h *History) Index() int {
	return h.index
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the recorded songs, oldest first.
func (h *History) Entries() []song.Song {
	out := make([]song.Song, len(h.entries))
	copy(out, h.entries)
	return out
}
