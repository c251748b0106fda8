package api

import (
	"github.com/samber/lo"

	"github.com/lbriand/reverb/internal/song"
)

// songDTO is the wire shape of a song record.
type songDTO struct {
	ExternalID   string  `json:"externalId"`
	Title        string  `json:"title"`
	Artist       string  `json:"artist"`
	ThumbnailURL string  `json:"thumbnailUrl"`
	Duration     float64 `json:"duration"`
	Source       string  `json:"source"`
	ChannelID    string  `json:"channelId"`
	ChannelName  string  `json:"channelName"`
	ViewCount    int64   `json:"viewCount"`
	LikeCount    int64   `json:"likeCount"`
	InDatabase   bool    `json:"inDatabase"`
}

func (d songDTO) toSong() song.Song {
	return song.Song{
		ExternalID:      d.ExternalID,
		Title:           d.Title,
		Artist:          d.Artist,
		ThumbnailURL:    d.ThumbnailURL,
		DurationSeconds: d.Duration,
		Source:          song.Source(d.Source),
		ChannelID:       d.ChannelID,
		ChannelName:     d.ChannelName,
		ViewCount:       d.ViewCount,
		LikeCount:       d.LikeCount,
		InDatabase:      d.InDatabase,
	}
}

func fromSong(s song.Song) songDTO {
	return songDTO{
		ExternalID:   s.ExternalID,
		Title:        s.Title,
		Artist:       s.Artist,
		ThumbnailURL: s.ThumbnailURL,
		Duration:     s.DurationSeconds,
		Source:       string(s.Source),
		ChannelID:    s.ChannelID,
		ChannelName:  s.ChannelName,
		ViewCount:    s.ViewCount,
		LikeCount:    s.LikeCount,
		InDatabase:   s.InDatabase,
	}
}

func toSongs(dtos []songDTO) []song.Song {
	return lo.Map(dtos, func(d songDTO, _ int) song.Song {
		return d.toSong()
	})
}

// Playlist is a user playlist as reported by the service.
type Playlist struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	SongCount   int         `json:"songCount"`
	Songs       []song.Song `json:"-"`
}

type playlistDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SongCount   int       `json:"songCount"`
	Songs       []songDTO `json:"songs"`
}

func (d playlistDTO) toPlaylist() Playlist {
	return Playlist{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		SongCount:   d.SongCount,
		Songs:       toSongs(d.Songs),
	}
}

// ArtistSummary is one dashboard artist grouping.
type ArtistSummary struct {
	Name      string `json:"name"`
	SongCount int    `json:"songCount"`
}

// ChannelSummary is one dashboard channel grouping.
type ChannelSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SongCount int    `json:"songCount"`
}

// Dashboard is the home view payload: the most played songs plus artist
// and channel groupings over the library.
type Dashboard struct {
	TopSongs []song.Song
	Artists  []ArtistSummary
	Channels []ChannelSummary
}
