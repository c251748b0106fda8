package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpLikedLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpLikedLoad,
			err:      errors.New("network down"),
			expected: "Failed to load liked songs: network down",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("engine not ready"),
			expected: "Failed to start playback: engine not ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaylistDelete,
			context:  "Favorites",
			err:      nil,
			expected: "",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpPlaylistDelete,
			context:  "",
			err:      errors.New("not found"),
			expected: "Failed to delete playlist: not found",
		},
		{
			name:     "context included in message",
			op:       OpPlaylistDelete,
			context:  "Favorites",
			err:      errors.New("not found"),
			expected: "Failed to delete playlist 'Favorites': not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", result, tt.expected)
			}
		})
	}
}
