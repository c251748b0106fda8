// Package queue implements the three-tier ordering model behind playback:
// the explicit "play next" queue, the launch context, and the linear history.
// Exactly one of the three decides what plays next at any instant; the
// playback store evaluates them in fixed priority order.
package queue

import "github.com/lbriand/reverb/internal/song"

// Explicit is the user-inserted "play next" list. FIFO, consumed head
// first, deduplicated by external ID on insert.
type Explicit struct {
	songs []song.Song
}

// NewExplicit creates an empty explicit queue.
func NewExplicit() *Explicit {
	return &Explicit{}
}

// Add appends s unless a song with the same external ID is already queued.
// Returns true if the song was added.
func (q *Explicit) Add(s song.Song) bool {
	if s.IsZero() {
		return false
	}
	if song.IndexOf(q.songs, s.ExternalID) >= 0 {
		return false
	}
	q.songs = append(q.songs, s)
	return true
}

// AddAll appends each song not already queued, preserving order.
func (q *Explicit) AddAll(songs []song.Song) int {
	added := 0
	for _, s := range songs {
		if q.Add(s) {
			added++
		}
	}
	return added
}

// Pop removes and returns the head of the queue.
func (q *Explicit) Pop() (song.Song, bool) {
	if len(q.songs) == 0 {
		return song.Song{}, false
	}
	head := q.songs[0]
	q.songs = q.songs[1:]
	return head, true
}

// Remove drops the song with the given external ID.
func (q *Explicit) Remove(externalID string) bool {
	i := song.IndexOf(q.songs, externalID)
	if i < 0 {
		return false
	}
	q.songs = append(q.songs[:i], q.songs[i+1:]...)
	return true
}

// RemoveAt drops the song at index.
func (q *Explicit) RemoveAt(index int) bool {
	if index < 0 || index >= len(q.songs) {
		return false
	}
	q.songs = append(q.songs[:index], q.songs[index+1:]...)
	return true
}

// Move relocates the song at fromIndex to toIndex.
func (q *Explicit) Move(fromIndex, toIndex int) bool {
	if fromIndex < 0 || fromIndex >= len(q.songs) {
		return false
	}
	if toIndex < 0 || toIndex >= len(q.songs) {
		return false
	}
	if fromIndex == toIndex {
		return true
	}
	s := q.songs[fromIndex]
	q.songs = append(q.songs[:fromIndex], q.songs[fromIndex+1:]...)
	q.songs = append(q.songs[:toIndex], append([]song.Song{s}, q.songs[toIndex:]...)...)
	return true
}

// Clear removes all queued songs.
func (q *Explicit) Clear() {
	q.songs = q.songs[:0]
}

// Songs returns a copy of the queued songs in order.
func (q *Explicit) Songs() []song.Song {
	out := make([]song.Song, len(q.songs))
	copy(out, q.songs)
	return out
}

// Len returns the number of queued songs.
func (q *Explicit) Len() int {
	return len(q.songs)
}
