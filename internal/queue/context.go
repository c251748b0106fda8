package queue

import "github.com/lbriand/reverb/internal/song"

// Context is the ordered list the current song was launched from: a
// playlist, the liked set, an artist or channel grouping, or the whole
// library. The ID is the sole signal views use to decide whether they are
// the active list.
type Context struct {
	id      string
	songs   []song.Song
	current int
}

// NewContext creates a context positioned on startSong. The index is
// located by external ID; a song not present in the list defaults to
// index 0. That fallback is long-standing observed behavior, so views must
// key their playing-indicator on song identity rather than on this index.
func NewContext(id string, songs []song.Song, startSong song.Song) *Context {
	c := &Context{id: id, songs: make([]song.Song, len(songs))}
	copy(c.songs, songs)
	if i := song.IndexOf(c.songs, startSong.ExternalID); i >= 0 {
		c.current = i
	}
	return c
}

// ID returns the context identifier, e.g. "playlist-42" or "liked".
func (c *Context) ID() string {
	return c.id
}

// Songs returns a copy of the context's ordered song list.
func (c *Context) Songs() []song.Song {
	out := make([]song.Song, len(c.songs))
	copy(out, c.songs)
	return out
}

// Len returns the number of songs in the context.
func (c *Context) Len() int {
	return len(c.songs)
}

// CurrentIndex returns the position of the current song.
func (c *Context) CurrentIndex() int {
	return c.current
}

// Song returns the song at index, or a zero song if out of bounds.
func (c *Context) Song(index int) (song.Song, bool) {
	if index < 0 || index >= len(c.songs) {
		return song.Song{}, false
	}
	return c.songs[index], true
}

// SetIndex moves the cursor to index if valid.
func (c *Context) SetIndex(index int) bool {
	if index < 0 || index >= len(c.songs) {
		return false
	}
	c.current = index
	return true
}

// Align moves the cursor onto the song with the given external ID if it is
// part of this context; otherwise the cursor is left untouched.
func (c *Context) Align(externalID string) {
	if i := song.IndexOf(c.songs, externalID); i >= 0 {
		c.current = i
	}
}
