// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Library operations
	OpLibraryLoad   Op = "load library"
	OpDashboardLoad Op = "load dashboard"
	OpSongFetch     Op = "fetch song"
	OpSongSave      Op = "save song"
	OpSearch        Op = "search"

	// Liked songs
	OpLikedLoad  Op = "load liked songs"
	OpLikeToggle Op = "update liked songs"

	// Playlist operations
	OpPlaylistLoad    Op = "load playlists"
	OpPlaylistCreate  Op = "create playlist"
	OpPlaylistRename  Op = "rename playlist"
	OpPlaylistDelete  Op = "delete playlist"
	OpPlaylistAddSong Op = "add song to playlist"
	OpPlaylistRemove  Op = "remove song from playlist"

	// Queue operations
	OpQueueAdd     Op = "add to queue"
	OpQueueRestore Op = "restore queue"
	OpQueueSave    Op = "save queue"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"
	OpEngineMount   Op = "connect to playback engine"

	// Session
	OpSessionLoad Op = "load saved session"
	OpSessionSave Op = "save session"
	OpLogin       Op = "log in"
	OpLogout      Op = "log out"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
