// Package keymap defines key bindings for the application.
package keymap

// Binding describes a single key binding for documentation.
type Binding struct {
	Keys        []string
	Description string
	Context     string // "global", "list", "playback", "queue", "playlists", "search"
}

// All contains all key bindings for help generation.
var All = []Binding{
	// Global
	{[]string{"q", "ctrl+c"}, "Quit application", "global"},
	{[]string{"1"}, "Home view", "global"},
	{[]string{"2"}, "Library view", "global"},
	{[]string{"3"}, "Liked songs view", "global"},
	{[]string{"4"}, "Playlists view", "global"},
	{[]string{"5"}, "Search view", "global"},
	{[]string{"6"}, "Queue view", "global"},
	{[]string{"tab"}, "Next view", "global"},
	{[]string{"shift+tab"}, "Previous view", "global"},
	{[]string{"esc"}, "Back", "global"},
	{[]string{"?"}, "Show help", "global"},

	// Playback
	{[]string{"space"}, "Play/pause", "playback"},
	{[]string{"n", "pgdown"}, "Next song", "playback"},
	{[]string{"p", "pgup"}, "Previous song", "playback"},
	{[]string{"S"}, "Toggle shuffle", "playback"},
	{[]string{"R"}, "Cycle repeat mode", "playback"},
	{[]string{"m"}, "Toggle mute", "playback"},
	{[]string{"L"}, "Like/unlike current song", "playback"},
	{[]string{"+", "="}, "Volume up", "playback"},
	{[]string{"-"}, "Volume down", "playback"},
	{[]string{"shift+left"}, "Seek -5s", "playback"},
	{[]string{"shift+right"}, "Seek +5s", "playback"},

	// Song lists
	{[]string{"j", "down"}, "Move down", "list"},
	{[]string{"k", "up"}, "Move up", "list"},
	{[]string{"g", "home"}, "First row", "list"},
	{[]string{"G", "end"}, "Last row", "list"},
	{[]string{"enter"}, "Play from here", "list"},
	{[]string{"e"}, "Add to queue", "list"},
	{[]string{"E"}, "Add all to queue", "list"},
	{[]string{"l"}, "Like/unlike song", "list"},
	{[]string{"a"}, "Add to playlist", "list"},
	{[]string{"x"}, "Remove from playlist", "list"},

	// Playlists
	{[]string{"enter"}, "Open playlist", "playlists"},
	{[]string{"N"}, "New playlist", "playlists"},
	{[]string{"r"}, "Rename playlist", "playlists"},
	{[]string{"d"}, "Delete playlist", "playlists"},

	// Queue
	{[]string{"d", "delete"}, "Remove from queue", "queue"},
	{[]string{"J", "shift+down"}, "Move down", "queue"},
	{[]string{"K", "shift+up"}, "Move up", "queue"},
	{[]string{"c"}, "Clear queue", "queue"},

	// Search
	{[]string{"/"}, "Focus search input", "search"},
	{[]string{"esc"}, "Leave search input", "search"},
}

// ForContext returns the bindings declared for one context.
func ForContext(context string) []Binding {
	var out []Binding
	for _, b := range All {
		if b.Context == context {
			out = append(out, b)
		}
	}
	return out
}
