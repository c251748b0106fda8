package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/samber/lo"
)

// Playlists returns the user's playlists without their songs.
func (c *Client) Playlists(ctx context.Context) ([]Playlist, error) {
	var dtos []playlistDTO
	if err := c.do(ctx, http.MethodGet, "/playlists", nil, &dtos); err != nil {
		return nil, fmt.Errorf("playlists: %w", err)
	}
	return lo.Map(dtos, func(d playlistDTO, _ int) Playlist {
		return d.toPlaylist()
	}), nil
}

// Playlist fetches one playlist with its full ordered song list.
func (c *Client) Playlist(ctx context.Context, id string) (Playlist, error) {
	var dto playlistDTO
	path := "/playlists/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &dto); err != nil {
		return Playlist{}, fmt.Errorf("playlist %s: %w", id, err)
	}
	return dto.toPlaylist(), nil
}

// CreatePlaylist creates an empty playlist.
func (c *Client) CreatePlaylist(ctx context.Context, name, description string) (Playlist, error) {
	body := map[string]string{"name": name, "description": description}
	var dto playlistDTO
	if err := c.do(ctx, http.MethodPost, "/playlists", body, &dto); err != nil {
		return Playlist{}, fmt.Errorf("create playlist: %w", err)
	}
	return dto.toPlaylist(), nil
}

// UpdatePlaylist renames a playlist or changes its description.
func (c *Client) UpdatePlaylist(ctx context.Context, id, name, description string) (Playlist, error) {
	body := map[string]string{"name": name, "description": description}
	var dto playlistDTO
	path := "/playlists/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, body, &dto); err != nil {
		return Playlist{}, fmt.Errorf("update playlist %s: %w", id, err)
	}
	return dto.toPlaylist(), nil
}

// DeletePlaylist removes a playlist. The songs in it stay in the library.
func (c *Client) DeletePlaylist(ctx context.Context, id string) error {
	path := "/playlists/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete playlist %s: %w", id, err)
	}
	return nil
}

// AddSongToPlaylist appends a library song to a playlist.
func (c *Client) AddSongToPlaylist(ctx context.Context, playlistID, externalID string) error {
	body := map[string]string{"externalId": externalID}
	path := "/playlists/" + url.PathEscape(playlistID) + "/songs"
	if err := c.do(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("add song %s to playlist %s: %w", externalID, playlistID, err)
	}
	return nil
}

// RemoveSongFromPlaylist removes a song from a playlist.
func (c *Client) RemoveSongFromPlaylist(ctx context.Context, playlistID, externalID string) error {
	path := "/playlists/" + url.PathEscape(playlistID) + "/songs/" + url.PathEscape(externalID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("remove song %s from playlist %s: %w", externalID, playlistID, err)
	}
	return nil
}
