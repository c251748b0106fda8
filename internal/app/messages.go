// Package app contains the root terminal UI model.
package app

import (
	"time"

	"github.com/lbriand/reverb/internal/api"
	"github.com/lbriand/reverb/internal/playback"
	"github.com/lbriand/reverb/internal/song"
)

// TickMsg is sent periodically to refresh the progress display.
type TickMsg time.Time

// ServiceStateChangedMsg is sent when the play/pause flag flips.
type ServiceStateChangedMsg struct {
	Playing bool
}

// ServiceSongChangedMsg is sent when a different song becomes current.
type ServiceSongChangedMsg struct {
	Previous song.Song
	Current  song.Song
}

// ServiceTimeChangedMsg carries the sampled playback clock.
type ServiceTimeChangedMsg struct {
	CurrentTime float64
	Duration    float64
}

// ServiceQueueChangedMsg is sent when the explicit queue contents change.
type ServiceQueueChangedMsg struct {
	Songs []song.Song
}

// ServiceModeChangedMsg is sent when shuffle or repeat changes.
type ServiceModeChangedMsg struct {
	Shuffle bool
	Repeat  playback.RepeatMode
}

// ServiceLikeChangedMsg is sent on every optimistic like toggle.
type ServiceLikeChangedMsg struct {
	ExternalID string
	Liked      bool
}

// ServiceErrorMsg carries non-fatal playback service failures.
type ServiceErrorMsg struct {
	Operation string
	Err       error
}

// ServiceClosedMsg is sent when the playback service shuts down.
type ServiceClosedMsg struct{}

// ViewLoadedMsg is sent when a song view finished loading.
type ViewLoadedMsg struct {
	ContextID string
}

// SearchDoneMsg is sent when a search request finished.
type SearchDoneMsg struct {
	Query string
}

// DashboardLoadedMsg is sent when the home dashboard finished loading.
type DashboardLoadedMsg struct{}

// PlaylistsLoadedMsg carries the playlist summaries for the playlists page.
type PlaylistsLoadedMsg struct {
	Playlists []api.Playlist
	Err       error
}

// PlaylistDeletedMsg is sent after a playlist delete request.
type PlaylistDeletedMsg struct {
	ID  string
	Err error
}

// PlaylistCreatedMsg is sent after a playlist create request.
type PlaylistCreatedMsg struct {
	Playlist api.Playlist
	Err      error
}

// PlaylistRenamedMsg is sent after a playlist rename request.
type PlaylistRenamedMsg struct {
	Playlist api.Playlist
	Err      error
}

// SongAddedMsg is sent after adding a song to a playlist.
type SongAddedMsg struct {
	Playlist api.Playlist
	Song     song.Song
	Err      error
}

// SongRemovedMsg is sent after removing a song from a playlist.
type SongRemovedMsg struct {
	PlaylistID string
	Song       song.Song
	Err        error
}

// StatusClearMsg hides a transient status line message.
type StatusClearMsg struct {
	Version int
}
