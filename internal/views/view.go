// Package views holds the library context views. Each view owns one
// ordered song list and knows how to launch playback with itself as the
// context; the playing-indicator logic keys off context ID string
// equality and nothing else.
package views

import (
	"context"

	"github.com/lbriand/reverb/internal/api"
	"github.com/lbriand/reverb/internal/errmsg"
	"github.com/lbriand/reverb/internal/playback"
	"github.com/lbriand/reverb/internal/song"
)

// Context IDs. A view is "active" iff the store's context ID equals its
// own.
const (
	ContextLibrary = "library"
	ContextLiked   = "liked"
)

// Gateway is the slice of the API client the views consume.
type Gateway interface {
	Search(ctx context.Context, query string) ([]song.Song, error)
	HybridSearch(ctx context.Context, query string) ([]song.Song, error)
	SaveSong(ctx context.Context, s song.Song) (song.Song, error)
	LikedSongs(ctx context.Context) ([]song.Song, error)
	Playlist(ctx context.Context, id string) (api.Playlist, error)
	Playlists(ctx context.Context) ([]api.Playlist, error)
	FetchDashboard(ctx context.Context) (api.Dashboard, error)
}

// View is one song list with a context identity.
type View struct {
	id    string
	title string
	op    errmsg.Op
	load  func(ctx context.Context) ([]song.Song, error)

	songs   []song.Song
	loaded  bool
	loadErr string
}

// ContextID returns the view's context identity string.
func (v *View) ContextID() string { return v.id }

// Title returns the display title.
func (v *View) Title() string { return v.title }

// Songs returns the loaded song list in view order.
func (v *View) Songs() []song.Song { return v.songs }

// Loaded reports whether a load has completed successfully.
func (v *View) Loaded() bool { return v.loaded }

// Err returns the user-facing load failure message, empty when the last
// load succeeded. A non-empty message pairs with a retry affordance.
func (v *View) Err() string { return v.loadErr }

// Load fetches the view's song list. A failure keeps the previous list
// and records a retryable message instead of propagating.
func (v *View) Load(ctx context.Context) {
	songs, err := v.load(ctx)
	if err != nil {
		v.loadErr = errmsg.Format(v.op, err)
		return
	}
	v.songs = songs
	v.loaded = true
	v.loadErr = ""
}

// PlayAt launches playback of the song at index with this view as the
// context.
func (v *View) PlayAt(svc playback.Service, index int) {
	if index < 0 || index >= len(v.songs) {
		return
	}
	svc.PlayWithContext(v.id, v.songs, v.songs[index])
}

// IsActive reports whether this view is the store's current context.
func (v *View) IsActive(svc playback.Service) bool {
	return svc.ContextID() == v.id
}

// IsPlayingRow reports whether the song at index is the one currently
// playing in this context. It compares by external ID, so the store's
// index bookkeeping cannot mis-highlight a row.
func (v *View) IsPlayingRow(svc playback.Service, index int) bool {
	if !v.IsActive(svc) || index < 0 || index >= len(v.songs) {
		return false
	}
	cur, ok := svc.CurrentSong()
	return ok && cur.Same(v.songs[index])
}
