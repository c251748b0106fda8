package api

import (
	"context"
	"fmt"
	"net/http"
)

// FetchDashboard returns the home view payload.
func (c *Client) FetchDashboard(ctx context.Context) (Dashboard, error) {
	var dto struct {
		TopSongs []songDTO        `json:"topSongs"`
		Artists  []ArtistSummary  `json:"artists"`
		Channels []ChannelSummary `json:"channels"`
	}
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, &dto); err != nil {
		return Dashboard{}, fmt.Errorf("dashboard: %w", err)
	}
	return Dashboard{
		TopSongs: toSongs(dto.TopSongs),
		Artists:  dto.Artists,
		Channels: dto.Channels,
	}, nil
}
