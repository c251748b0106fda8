package app

import (
	"context"

	"github.com/lbriand/reverb/internal/playback"
	"github.com/lbriand/reverb/internal/song"
	"github.com/lbriand/reverb/internal/state"
)

// saveSession snapshots the playback session into the state manager. The
// manager debounces writes, so calling this on every event is fine.
func (m Model) saveSession() {
	if m.stateMg == nil {
		return
	}
	s := state.Session{
		Volume:      m.svc.Volume(),
		Muted:       m.svc.Muted(),
		Shuffle:     m.svc.Shuffle(),
		RepeatMode:  int(m.svc.Repeat()),
		CurrentTime: m.svc.CurrentTime(),
		Queue:       m.svc.QueueSongs(),
	}
	if sg, ok := m.svc.CurrentSong(); ok {
		s.CurrentID = sg.ExternalID
	}
	m.stateMg.SaveSession(s)
}

// SongFetcher resolves a song record by external id. Used to rehydrate the
// saved current song, whose full metadata is not part of the session row.
type SongFetcher interface {
	FetchSongByID(ctx context.Context, externalID string) (song.Song, error)
}

// RestoreSession applies a saved session to the playback service. Called once
// at startup, before the UI loop runs. The saved current song is cued paused
// at its last position; playback only resumes on an explicit toggle.
func RestoreSession(ctx context.Context, svc playback.Service, songs SongFetcher, s *state.Session) {
	if s == nil {
		return
	}
	svc.SetVolume(s.Volume)
	if s.Muted {
		svc.ToggleMute()
	}
	if s.Shuffle != svc.Shuffle() {
		svc.ToggleShuffle()
	}
	svc.SetRepeat(playback.RepeatMode(s.RepeatMode))
	if len(s.Queue) > 0 {
		svc.EnqueueAll(s.Queue)
	}
	if s.CurrentID == "" || songs == nil {
		return
	}
	sg, err := songs.FetchSongByID(ctx, s.CurrentID)
	if err != nil {
		// Startup must not fail on a stale id; the session is still usable.
		return
	}
	svc.CueSong(sg, s.CurrentTime)
}
