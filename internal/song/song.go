// Package song defines the song model shared by the queue, the playback
// store, the gateway and the views.
package song

import "strings"

// Source identifies where a song record came from.
type Source string

const (
	SourceDatabase Source = "database"
	SourceSearch   Source = "external-search"
)

// Song is an immutable value once resolved. Identity is always the
// provider's video ID; two songs are the same iff their ExternalID match,
// never by pointer.
type Song struct {
	ExternalID      string
	Title           string
	Artist          string
	ThumbnailURL    string
	DurationSeconds float64

	// Provenance, optional.
	Source      Source
	ChannelID   string
	ChannelName string
	ViewCount   int64
	LikeCount   int64
	InDatabase  bool
}

// Same reports whether both songs refer to the same video.
func (s Song) Same(other Song) bool {
	return s.ExternalID != "" && s.ExternalID == other.ExternalID
}

// IsZero reports whether the song carries no identity.
func (s Song) IsZero() bool {
	return s.ExternalID == ""
}

// PrimaryArtist splits the display artist out of a raw "artist|other
// metadata" field as stored by the ingestion pipeline.
func PrimaryArtist(raw string) string {
	if i := strings.IndexByte(raw, '|'); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(raw)
}

// Merge backfills blank metadata fields from other. Populated fields are
// never overwritten: richer data already displayed must not be discarded
// when a sparser record for the same song arrives later.
func (s *Song) Merge(other Song) {
	if !s.Same(other) {
		return
	}
	if s.Title == "" {
		s.Title = other.Title
	}
	if s.Artist == "" {
		s.Artist = other.Artist
	}
	if s.ThumbnailURL == "" {
		s.ThumbnailURL = other.ThumbnailURL
	}
	if s.DurationSeconds == 0 {
		s.DurationSeconds = other.DurationSeconds
	}
	if s.ChannelID == "" {
		s.ChannelID = other.ChannelID
	}
	if s.ChannelName == "" {
		s.ChannelName = other.ChannelName
	}
}

// IndexOf returns the position of id in songs, or -1.
func IndexOf(songs []Song, id string) int {
	for i, s := range songs {
		if s.ExternalID == id {
			return i
		}
	}
	return -1
}
