package views

import (
	"context"

	"github.com/samber/lo"

	"github.com/lbriand/reverb/internal/errmsg"
	"github.com/lbriand/reverb/internal/song"
)

// Library lists every saved song.
func Library(gw Gateway) *View {
	return &View{
		id:    ContextLibrary,
		title: "Library",
		op:    errmsg.OpLibraryLoad,
		load: func(ctx context.Context) ([]song.Song, error) {
			// An empty query matches everything.
			return gw.Search(ctx, "")
		},
	}
}

// Liked lists the user's liked songs.
func Liked(gw Gateway) *View {
	return &View{
		id:    ContextLiked,
		title: "Liked Songs",
		op:    errmsg.OpLikedLoad,
		load:  gw.LikedSongs,
	}
}

// PlaylistView lists the songs of one playlist.
func PlaylistView(gw Gateway, playlistID, name string) *View {
	return &View{
		id:    "playlist-" + playlistID,
		title: name,
		op:    errmsg.OpPlaylistLoad,
		load: func(ctx context.Context) ([]song.Song, error) {
			pl, err := gw.Playlist(ctx, playlistID)
			if err != nil {
				return nil, err
			}
			return pl.Songs, nil
		},
	}
}

// Artist lists every library song by the given primary artist.
func Artist(gw Gateway, name string) *View {
	return &View{
		id:    "artist-" + name,
		title: name,
		op:    errmsg.OpLibraryLoad,
		load: func(ctx context.Context) ([]song.Song, error) {
			all, err := gw.Search(ctx, "")
			if err != nil {
				return nil, err
			}
			return lo.Filter(all, func(s song.Song, _ int) bool {
				return song.PrimaryArtist(s.Artist) == name
			}), nil
		},
	}
}

// Channel lists every library song from the given channel.
func Channel(gw Gateway, channelID, name string) *View {
	return &View{
		id:    "channel-" + channelID,
		title: name,
		op:    errmsg.OpLibraryLoad,
		load: func(ctx context.Context) ([]song.Song, error) {
			all, err := gw.Search(ctx, "")
			if err != nil {
				return nil, err
			}
			return lo.Filter(all, func(s song.Song, _ int) bool {
				return s.ChannelID == channelID
			}), nil
		},
	}
}
