package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lbriand/reverb/internal/song"
)

// FetchSongByID fetches one song record.
func (c *Client) FetchSongByID(ctx context.Context, externalID string) (song.Song, error) {
	var dto songDTO
	path := "/songs/" + url.PathEscape(externalID)
	if err := c.do(ctx, http.MethodGet, path, nil, &dto); err != nil {
		return song.Song{}, fmt.Errorf("fetch song %s: %w", externalID, err)
	}
	return dto.toSong(), nil
}

// Search runs a keyword search over the library and returns matches in
// service order.
func (c *Client) Search(ctx context.Context, query string) ([]song.Song, error) {
	var dtos []songDTO
	path := "/songs/search?" + url.Values{"q": {query}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return toSongs(dtos), nil
}

// HybridSearch searches the library and the upstream provider together.
// Results carry InDatabase and Source provenance so the caller can tell
// saved songs from external ones.
func (c *Client) HybridSearch(ctx context.Context, query string) ([]song.Song, error) {
	var dtos []songDTO
	path := "/songs/hybrid-search?" + url.Values{"q": {query}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, fmt.Errorf("hybrid search: %w", err)
	}
	return toSongs(dtos), nil
}

// SaveSong upserts a song into the library, keyed by its external ID.
// Saving an already-saved song refreshes its metadata.
func (c *Client) SaveSong(ctx context.Context, s song.Song) (song.Song, error) {
	var dto songDTO
	if err := c.do(ctx, http.MethodPost, "/songs", fromSong(s), &dto); err != nil {
		return song.Song{}, fmt.Errorf("save song %s: %w", s.ExternalID, err)
	}
	return dto.toSong(), nil
}

// LikedSongs returns the authenticated user's liked set.
func (c *Client) LikedSongs(ctx context.Context) ([]song.Song, error) {
	var dtos []songDTO
	if err := c.do(ctx, http.MethodGet, "/likes", nil, &dtos); err != nil {
		return nil, fmt.Errorf("liked songs: %w", err)
	}
	return toSongs(dtos), nil
}

// Like adds a song to the liked set, saving it to the library first if it
// is not there yet.
func (c *Client) Like(ctx context.Context, s song.Song) error {
	if err := c.do(ctx, http.MethodPost, "/likes", fromSong(s), nil); err != nil {
		return fmt.Errorf("like %s: %w", s.ExternalID, err)
	}
	return nil
}

// Unlike removes a song from the liked set.
func (c *Client) Unlike(ctx context.Context, externalID string) error {
	path := "/likes/" + url.PathEscape(externalID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("unlike %s: %w", externalID, err)
	}
	return nil
}
