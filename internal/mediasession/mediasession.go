//go:build linux

// Package mediasession exposes playback on the system media session via
// MPRIS over D-Bus, so desktop media keys and applets control the player.
package mediasession

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/lbriand/reverb/internal/playback"
)

// Adapter connects the playback service to MPRIS over D-Bus.
type Adapter struct {
	service playback.Service
	server  *server.Server
	done    chan struct{}
}

// New creates and starts a new media session adapter.
func New(service playback.Service) (*Adapter, error) {
	a := &Adapter{
		service: service,
		done:    make(chan struct{}),
	}

	rootAdapter := &rootAdapter{}
	playerAdapter := &playerAdapter{service: service}

	a.server = server.NewServer("reverb", rootAdapter, playerAdapter)

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources. Closing twice is
// a no-op.
func (a *Adapter) Close() error {
	select {
	case <-a.done:
		return nil
	default:
	}
	close(a.done)
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Reverb", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{}, nil // Playback goes through the library service
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and optional
// interfaces. Every command delegates to the playback service; the
// adapter never reaches the player engine directly.
type playerAdapter struct {
	service playback.Service
}

func (p *playerAdapter) Next() error {
	p.service.Next()
	return nil
}

func (p *playerAdapter) Previous() error {
	p.service.Previous()
	return nil
}

func (p *playerAdapter) Pause() error {
	if p.service.IsPlaying() {
		p.service.Toggle()
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.service.Toggle()
	return nil
}

func (p *playerAdapter) Stop() error {
	if p.service.IsPlaying() {
		p.service.Toggle()
	}
	return nil
}

func (p *playerAdapter) Play() error {
	if !p.service.IsPlaying() {
		p.service.Toggle()
	}
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	delta := time.Duration(offset) * time.Microsecond
	p.service.SeekTo(p.service.CurrentTime() + delta.Seconds())
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	d := time.Duration(position) * time.Microsecond
	p.service.SeekTo(d.Seconds())
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	if _, ok := p.service.CurrentSong(); !ok {
		return types.PlaybackStatusStopped, nil
	}
	if p.service.IsPlaying() {
		return types.PlaybackStatusPlaying, nil
	}
	return types.PlaybackStatusPaused, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	current, ok := p.service.CurrentSong()
	if !ok {
		return types.Metadata{}, nil
	}

	length := time.Duration(current.DurationSeconds * float64(time.Second))
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(current.ExternalID)),
		Length:  types.Microseconds(length.Microseconds()),
		Title:   current.Title,
		Artist:  []string{current.Artist},
	}
	if current.ThumbnailURL != "" {
		meta.ArtUrl = current.ThumbnailURL
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return float64(p.service.Volume()) / 100, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.service.SetVolume(int(v * 100))
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	d := time.Duration(p.service.CurrentTime() * float64(time.Second))
	return d.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	_, ok := p.service.CurrentSong()
	return ok, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	_, ok := p.service.CurrentSong()
	return ok, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	_, ok := p.service.CurrentSong()
	return ok, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch p.service.Repeat() {
	case playback.RepeatOne:
		return types.LoopStatusTrack, nil
	case playback.RepeatAll:
		return types.LoopStatusPlaylist, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusNone:
		p.service.SetRepeat(playback.RepeatOff)
	case types.LoopStatusTrack:
		p.service.SetRepeat(playback.RepeatOne)
	case types.LoopStatusPlaylist:
		p.service.SetRepeat(playback.RepeatAll)
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.service.Shuffle(), nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	if p.service.Shuffle() != shuffle {
		p.service.ToggleShuffle()
	}
	return nil
}

func formatTrackID(externalID string) string {
	h := fnv.New64a()
	h.Write([]byte(externalID))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
