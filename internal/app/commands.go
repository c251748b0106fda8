package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lbriand/reverb/internal/api"
	"github.com/lbriand/reverb/internal/song"
	"github.com/lbriand/reverb/internal/views"
)

const requestTimeout = 15 * time.Second

func newRequestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// TickCmd returns a command that sends TickMsg after 500ms.
func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// StatusClearCmd returns a command that sends StatusClearMsg after 5 seconds.
func StatusClearCmd(version int) tea.Cmd {
	return tea.Tick(5*time.Second, func(_ time.Time) tea.Msg {
		return StatusClearMsg{Version: version}
	})
}

// WatchServiceEvents returns a command that waits for one playback service
// event and converts it to a tea.Msg. Update reissues it after each message.
func (m Model) WatchServiceEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-m.sub.StateChanged:
			return ServiceStateChangedMsg{Playing: e.Playing}
		case e := <-m.sub.SongChanged:
			return ServiceSongChangedMsg{Previous: e.Previous, Current: e.Current}
		case e := <-m.sub.TimeChanged:
			return ServiceTimeChangedMsg{CurrentTime: e.CurrentTime, Duration: e.Duration}
		case e := <-m.sub.QueueChanged:
			return ServiceQueueChangedMsg{Songs: e.Songs}
		case e := <-m.sub.ModeChanged:
			return ServiceModeChangedMsg{Shuffle: e.Shuffle, Repeat: e.Repeat}
		case e := <-m.sub.LikeChanged:
			return ServiceLikeChangedMsg{ExternalID: e.ExternalID, Liked: e.Liked}
		case e := <-m.sub.Error:
			return ServiceErrorMsg{Operation: e.Operation, Err: e.Err}
		case <-m.sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// LoadViewCmd loads a song view in the background.
func LoadViewCmd(v *views.View) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := newRequestContext()
		defer cancel()
		v.Load(ctx)
		return ViewLoadedMsg{ContextID: v.ContextID()}
	}
}

// SearchCmd runs a search query in the background.
func SearchCmd(s *views.Search, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := newRequestContext()
		defer cancel()
		s.Run(ctx, query)
		return SearchDoneMsg{Query: query}
	}
}

// LoadDashboardCmd loads the home dashboard in the background.
func LoadDashboardCmd(h *views.Home) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := newRequestContext()
		defer cancel()
		h.Load(ctx)
		return DashboardLoadedMsg{}
	}
}

// LoadPlaylistsCmd fetches the playlist summaries in the background.
func (m Model) LoadPlaylistsCmd() tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		ctx, cancel := newRequestContext()
		defer cancel()
		playlists, err := gw.Playlists(ctx)
		return PlaylistsLoadedMsg{Playlists: playlists, Err: err}
	}
}

// CreatePlaylistCmd creates a playlist in the background.
func (m Model) CreatePlaylistCmd(name string) tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		ctx, cancel := newRequestContext()
		defer cancel()
		pl, err := gw.CreatePlaylist(ctx, name, "")
		return PlaylistCreatedMsg{Playlist: pl, Err: err}
	}
}

// RenamePlaylistCmd renames a playlist in the background, keeping its
// description.
func (m Model) RenamePlaylistCmd(pl api.Playlist, name string) tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		ctx, cancel := newRequestContext()
		defer cancel()
		renamed, err := gw.UpdatePlaylist(ctx, pl.ID, name, pl.Description)
		return PlaylistRenamedMsg{Playlist: renamed, Err: err}
	}
}

// RemoveFromPlaylistCmd removes a song from a playlist in the background.
func (m Model) RemoveFromPlaylistCmd(playlistID string, sg song.Song) tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		ctx, cancel := newRequestContext()
		defer cancel()
		err := gw.RemoveSongFromPlaylist(ctx, playlistID, sg.ExternalID)
		return SongRemovedMsg{PlaylistID: playlistID, Song: sg, Err: err}
	}
}

// AddToPlaylistCmd adds a song to a playlist in the background. Songs that
// only exist upstream are saved into the library first; playlist membership
// references library rows.
func (m Model) AddToPlaylistCmd(pl api.Playlist, sg song.Song) tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		ctx, cancel := newRequestContext()
		defer cancel()
		if !sg.InDatabase {
			saved, err := gw.SaveSong(ctx, sg)
			if err != nil {
				return SongAddedMsg{Playlist: pl, Song: sg, Err: err}
			}
			sg = saved
		}
		err := gw.AddSongToPlaylist(ctx, pl.ID, sg.ExternalID)
		return SongAddedMsg{Playlist: pl, Song: sg, Err: err}
	}
}

// DeletePlaylistCmd deletes one playlist in the background.
func (m Model) DeletePlaylistCmd(id string) tea.Cmd {
	gw := m.gateway
	return func() tea.Msg {
		ctx, cancel := newRequestContext()
		defer cancel()
		err := gw.DeletePlaylist(ctx, id)
		return PlaylistDeletedMsg{ID: id, Err: err}
	}
}
