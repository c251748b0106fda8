package app

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lbriand/reverb/internal/api"
	"github.com/lbriand/reverb/internal/playback"
	"github.com/lbriand/reverb/internal/player"
	"github.com/lbriand/reverb/internal/song"
	"github.com/lbriand/reverb/internal/state"
	"github.com/lbriand/reverb/internal/transport"
	"github.com/lbriand/reverb/internal/wakelock"
)

type nopControl struct {
	events chan player.Event
}

func (c *nopControl) LoadSong(string)                {}
func (c *nopControl) Play()                          {}
func (c *nopControl) Pause()                         {}
func (c *nopControl) Seek(float64)                   {}
func (c *nopControl) SetVolume(int)                  {}
func (c *nopControl) Mute()                          {}
func (c *nopControl) Unmute()                        {}
func (c *nopControl) Status() (player.Status, error) { return player.Status{}, nil }
func (c *nopControl) Events() <-chan player.Event    { return c.events }

type fakeGateway struct {
	songs     []song.Song
	playlists []api.Playlist
	dash      api.Dashboard
	deleted   []string
	created   []string
	renamed   []string
	added     []string
	removed   []string
	saved     []string
}

func (g *fakeGateway) Search(_ context.Context, query string) ([]song.Song, error) {
	if query == "" {
		return g.songs, nil
	}
	var out []song.Song
	for _, s := range g.songs {
		if s.Title == query {
			out = append(out, s)
		}
	}
	return out, nil
}

func (g *fakeGateway) HybridSearch(ctx context.Context, query string) ([]song.Song, error) {
	return g.Search(ctx, query)
}

func (g *fakeGateway) SaveSong(_ context.Context, s song.Song) (song.Song, error) {
	g.saved = append(g.saved, s.ExternalID)
	s.InDatabase = true
	return s, nil
}

func (g *fakeGateway) LikedSongs(context.Context) ([]song.Song, error) { return nil, nil }

func (g *fakeGateway) Playlist(_ context.Context, id string) (api.Playlist, error) {
	for _, pl := range g.playlists {
		if pl.ID == id {
			return pl, nil
		}
	}
	return api.Playlist{}, api.ErrNotFound
}

func (g *fakeGateway) Playlists(context.Context) ([]api.Playlist, error) {
	return g.playlists, nil
}

func (g *fakeGateway) FetchDashboard(context.Context) (api.Dashboard, error) {
	return g.dash, nil
}

func (g *fakeGateway) DeletePlaylist(_ context.Context, id string) error {
	g.deleted = append(g.deleted, id)
	return nil
}

func (g *fakeGateway) CreatePlaylist(_ context.Context, name, description string) (api.Playlist, error) {
	pl := api.Playlist{ID: "pl-new", Name: name, Description: description}
	g.playlists = append(g.playlists, pl)
	g.created = append(g.created, name)
	return pl, nil
}

func (g *fakeGateway) UpdatePlaylist(_ context.Context, id, name, description string) (api.Playlist, error) {
	g.renamed = append(g.renamed, id+":"+name)
	for i, pl := range g.playlists {
		if pl.ID == id {
			g.playlists[i].Name = name
			g.playlists[i].Description = description
			return g.playlists[i], nil
		}
	}
	return api.Playlist{}, api.ErrNotFound
}

func (g *fakeGateway) AddSongToPlaylist(_ context.Context, playlistID, externalID string) error {
	g.added = append(g.added, playlistID+":"+externalID)
	return nil
}

func (g *fakeGateway) RemoveSongFromPlaylist(_ context.Context, playlistID, externalID string) error {
	g.removed = append(g.removed, playlistID+":"+externalID)
	return nil
}

func (g *fakeGateway) FetchSongByID(_ context.Context, id string) (song.Song, error) {
	for _, s := range g.songs {
		if s.ExternalID == id {
			return s, nil
		}
	}
	return song.Song{}, api.ErrNotFound
}

type nopLikes struct{}

func (nopLikes) LikedSongs(context.Context) ([]song.Song, error) { return nil, nil }
func (nopLikes) Like(context.Context, song.Song) error           { return nil }
func (nopLikes) Unlike(context.Context, string) error            { return nil }

func makeSongs(ids ...string) []song.Song {
	songs := make([]song.Song, len(ids))
	for i, id := range ids {
		songs[i] = song.Song{ExternalID: id, Title: "Song " + id, Artist: "Artist"}
	}
	return songs
}

func newTestModel(t *testing.T) (Model, playback.Service, *fakeGateway) {
	t.Helper()
	logger := log.New(io.Discard)
	svc := playback.New(&nopControl{events: make(chan player.Event)}, nopLikes{}, logger)
	t.Cleanup(func() { svc.Close() })

	gw := &fakeGateway{
		songs: makeSongs("a", "b", "c"),
		playlists: []api.Playlist{
			{ID: "pl-1", Name: "Favorites", SongCount: 2},
			{ID: "pl-2", Name: "Chill", SongCount: 5},
		},
	}

	m := New(svc, transport.NewSurface(svc), gw, nil, svc.Subscribe(), wakelock.New(logger), nil, logger)
	m.width = 80
	m.height = 24
	return m, svc, gw
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return got, cmd
}

func TestPageSwitchKeys(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, cmd := update(t, m, keyRune('2'))
	if m.page != PageLibrary {
		t.Errorf("page = %v, want PageLibrary", m.page)
	}
	if cmd == nil {
		t.Error("switching to an unloaded library should schedule a load")
	}

	m, _ = update(t, m, keyRune('6'))
	if m.page != PageQueue {
		t.Errorf("page = %v, want PageQueue", m.page)
	}
}

func TestTabCyclesPages(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.page != PageLibrary {
		t.Errorf("page after tab = %v, want PageLibrary", m.page)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.page != PageQueue {
		t.Errorf("page after wrapping backwards = %v, want PageQueue", m.page)
	}
}

func TestQueuePageKeys(t *testing.T) {
	m, svc, _ := newTestModel(t)
	svc.EnqueueAll(makeSongs("a", "b", "c"))

	m, _ = update(t, m, keyRune('6'))
	if got := len(m.list.Songs()); got != 3 {
		t.Fatalf("queue list rows = %d, want 3", got)
	}

	m, _ = update(t, m, keyRune('d'))
	if got := len(svc.QueueSongs()); got != 2 {
		t.Errorf("queue length after remove = %d, want 2", got)
	}
	if svc.QueueSongs()[0].ExternalID != "b" {
		t.Errorf("queue head = %q, want %q", svc.QueueSongs()[0].ExternalID, "b")
	}

	m, _ = update(t, m, keyRune('c'))
	if got := len(svc.QueueSongs()); got != 0 {
		t.Errorf("queue length after clear = %d, want 0", got)
	}
}

func TestQueueMoveKeys(t *testing.T) {
	m, svc, _ := newTestModel(t)
	svc.EnqueueAll(makeSongs("a", "b", "c"))
	m, _ = update(t, m, keyRune('6'))

	m, _ = update(t, m, keyRune('J'))
	got := svc.QueueSongs()
	if got[0].ExternalID != "b" || got[1].ExternalID != "a" {
		t.Fatalf("queue after move down = [%s %s %s], want [b a c]",
			got[0].ExternalID, got[1].ExternalID, got[2].ExternalID)
	}
	if m.list.Cursor() != 1 {
		t.Errorf("cursor after move down = %d, want 1", m.list.Cursor())
	}

	m, _ = update(t, m, keyRune('K'))
	got = svc.QueueSongs()
	if got[0].ExternalID != "a" {
		t.Errorf("queue head after move back up = %q, want %q", got[0].ExternalID, "a")
	}
}

func TestEnqueueFromListPage(t *testing.T) {
	m, svc, _ := newTestModel(t)
	m, _ = update(t, m, keyRune('2'))
	m.library.Load(context.Background())
	m.syncList()

	m, cmd := update(t, m, keyRune('e'))
	if got := len(svc.QueueSongs()); got != 1 {
		t.Fatalf("queue length = %d, want 1", got)
	}
	if cmd == nil {
		t.Error("enqueue should set a status message")
	}

	m, _ = update(t, m, keyRune('E'))
	if got := len(svc.QueueSongs()); got != 3 {
		t.Errorf("queue length after enqueue all = %d, want 3", got)
	}
}

func TestPlaylistsPage(t *testing.T) {
	m, _, gw := newTestModel(t)
	m, _ = update(t, m, keyRune('4'))

	m, _ = update(t, m, PlaylistsLoadedMsg{Playlists: gw.playlists})
	if len(m.playlists) != 2 {
		t.Fatalf("playlists = %d, want 2", len(m.playlists))
	}

	m, _ = update(t, m, keyRune('j'))
	m, _ = update(t, m, keyRune('d'))
	if !m.confirm.Active() {
		t.Fatal("delete should prompt for confirmation")
	}

	// Unrelated keys must not leak through while the prompt is up.
	m, _ = update(t, m, keyRune('k'))
	if m.playlistCursor != 1 {
		t.Errorf("cursor moved during confirmation, got %d", m.playlistCursor)
	}

	m, cmd := update(t, m, keyRune('y'))
	if cmd == nil {
		t.Fatal("confirming delete should return a command")
	}
	msg := cmd()
	deleted, ok := msg.(PlaylistDeletedMsg)
	if !ok {
		t.Fatalf("delete command returned %T, want PlaylistDeletedMsg", msg)
	}
	if deleted.ID != "pl-2" {
		t.Errorf("deleted ID = %q, want %q", deleted.ID, "pl-2")
	}
}

func TestCreatePlaylistFlow(t *testing.T) {
	m, _, gw := newTestModel(t)
	m, _ = update(t, m, keyRune('4'))
	m, _ = update(t, m, PlaylistsLoadedMsg{Playlists: gw.playlists})

	m, _ = update(t, m, keyRune('N'))
	if !m.prompt.Active() {
		t.Fatal("N should open the new playlist prompt")
	}

	// Keys type into the prompt instead of driving the page underneath.
	for _, r := range "Road Trip" {
		m, _ = update(t, m, keyRune(r))
	}
	if m.playlistCursor != 0 {
		t.Errorf("cursor moved while prompt was up, got %d", m.playlistCursor)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("submitting the prompt should return a command")
	}
	if m.prompt.Active() {
		t.Error("prompt should close on submit")
	}
	msg := cmd()
	created, ok := msg.(PlaylistCreatedMsg)
	if !ok {
		t.Fatalf("create command returned %T, want PlaylistCreatedMsg", msg)
	}
	if created.Err != nil || created.Playlist.Name != "Road Trip" {
		t.Errorf("created = %+v", created)
	}
	if len(gw.created) != 1 || gw.created[0] != "Road Trip" {
		t.Errorf("gateway create calls = %v", gw.created)
	}
}

func TestCreatePlaylistPromptEscape(t *testing.T) {
	m, _, gw := newTestModel(t)
	m, _ = update(t, m, keyRune('4'))
	m, _ = update(t, m, PlaylistsLoadedMsg{Playlists: gw.playlists})

	m, _ = update(t, m, keyRune('N'))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.prompt.Active() {
		t.Error("esc should dismiss the prompt")
	}
	if cmd != nil {
		t.Error("dismissing the prompt must not issue a request")
	}
	if len(gw.created) != 0 {
		t.Errorf("gateway create calls = %v, want none", gw.created)
	}
}

func TestRenamePlaylistFlow(t *testing.T) {
	m, _, gw := newTestModel(t)
	m, _ = update(t, m, keyRune('4'))
	m, _ = update(t, m, PlaylistsLoadedMsg{Playlists: gw.playlists})

	m, _ = update(t, m, keyRune('j'))
	m, _ = update(t, m, keyRune('r'))
	if !m.prompt.Active() {
		t.Fatal("r should open the rename prompt")
	}

	for _, r := range "Mellow" {
		m, _ = update(t, m, keyRune(r))
	}
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("submitting the rename should return a command")
	}
	msg := cmd()
	renamed, ok := msg.(PlaylistRenamedMsg)
	if !ok {
		t.Fatalf("rename command returned %T, want PlaylistRenamedMsg", msg)
	}
	if renamed.Err != nil || renamed.Playlist.Name != "Mellow" {
		t.Errorf("renamed = %+v", renamed)
	}
	if len(gw.renamed) != 1 || gw.renamed[0] != "pl-2:Mellow" {
		t.Errorf("gateway rename calls = %v", gw.renamed)
	}
}

func TestRemoveSongFromPlaylistDrill(t *testing.T) {
	m, _, gw := newTestModel(t)
	gw.playlists[0].Songs = makeSongs("a", "b")
	m, _ = update(t, m, keyRune('4'))
	m, _ = update(t, m, PlaylistsLoadedMsg{Playlists: gw.playlists})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("opening a playlist should schedule a load")
	}
	m, _ = update(t, m, cmd())
	if got := len(m.list.Songs()); got != 2 {
		t.Fatalf("drill list = %d songs, want 2", got)
	}

	m, _ = update(t, m, keyRune('j'))
	m, cmd = update(t, m, keyRune('x'))
	if cmd == nil {
		t.Fatal("x should return a remove command")
	}
	msg := cmd()
	removed, ok := msg.(SongRemovedMsg)
	if !ok {
		t.Fatalf("remove command returned %T, want SongRemovedMsg", msg)
	}
	if removed.Err != nil || removed.PlaylistID != "pl-1" || removed.Song.ExternalID != "b" {
		t.Errorf("removed = %+v", removed)
	}
	if len(gw.removed) != 1 || gw.removed[0] != "pl-1:b" {
		t.Errorf("gateway remove calls = %v", gw.removed)
	}
}

func TestRemoveIgnoredOutsidePlaylistDrill(t *testing.T) {
	m, _, gw := newTestModel(t)
	m, _ = update(t, m, keyRune('4'))
	m, _ = update(t, m, PlaylistsLoadedMsg{Playlists: gw.playlists})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Leaving the drill keeps the view cached; x must not act on it.
	m.library.Load(context.Background())
	m, _ = update(t, m, keyRune('2'))

	m, cmd := update(t, m, keyRune('x'))
	if cmd != nil {
		t.Error("x outside a playlist drill must not issue a request")
	}
	if len(gw.removed) != 0 {
		t.Errorf("gateway remove calls = %v, want none", gw.removed)
	}
}

func TestAddSongToPlaylistFromList(t *testing.T) {
	m, _, gw := newTestModel(t)
	m.library.Load(context.Background())
	m, _ = update(t, m, keyRune('2'))

	m, cmd := update(t, m, keyRune('a'))
	if !m.pickerActive {
		t.Fatal("a should open the playlist picker")
	}
	if cmd == nil {
		t.Fatal("empty picker should load the playlist summaries")
	}
	m, _ = update(t, m, cmd())

	m, _ = update(t, m, keyRune('j'))
	if m.pickerCursor != 1 {
		t.Fatalf("picker cursor = %d, want 1", m.pickerCursor)
	}
	if m.list.Cursor() != 0 {
		t.Error("list cursor moved while the picker was up")
	}

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.pickerActive {
		t.Error("picker should close on selection")
	}
	if cmd == nil {
		t.Fatal("selecting a playlist should return a command")
	}
	msg := cmd()
	added, ok := msg.(SongAddedMsg)
	if !ok {
		t.Fatalf("add command returned %T, want SongAddedMsg", msg)
	}
	if added.Err != nil || added.Playlist.ID != "pl-2" || added.Song.ExternalID != "a" {
		t.Errorf("added = %+v", added)
	}
	if len(gw.added) != 1 || gw.added[0] != "pl-2:a" {
		t.Errorf("gateway add calls = %v", gw.added)
	}
	// Songs not yet in the library get saved before membership is written.
	if len(gw.saved) != 1 || gw.saved[0] != "a" {
		t.Errorf("gateway save calls = %v", gw.saved)
	}
}

func TestAddToPlaylistPickerEscape(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.library.Load(context.Background())
	m, _ = update(t, m, keyRune('2'))

	m, _ = update(t, m, keyRune('a'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.pickerActive {
		t.Error("esc should dismiss the picker")
	}
}

func TestOpenPlaylistDrillAndBack(t *testing.T) {
	m, _, gw := newTestModel(t)
	m, _ = update(t, m, keyRune('4'))
	m, _ = update(t, m, PlaylistsLoadedMsg{Playlists: gw.playlists})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.page != PageDrill {
		t.Fatalf("page = %v, want PageDrill", m.page)
	}
	if cmd == nil {
		t.Error("opening a playlist should schedule a load")
	}
	if m.drill == nil || m.drill.ContextID() != "playlist-pl-1" {
		t.Errorf("drill context = %v, want playlist-pl-1", m.drill)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.page != PagePlaylists {
		t.Errorf("page after esc = %v, want PagePlaylists", m.page)
	}
}

func TestHomeDrillIntoArtist(t *testing.T) {
	m, _, gw := newTestModel(t)
	gw.dash = api.Dashboard{
		Artists:  []api.ArtistSummary{{Name: "X", SongCount: 3}},
		Channels: []api.ChannelSummary{{ID: "ch-1", Name: "ChanX", SongCount: 2}},
	}
	m.home.Load(context.Background())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.page != PageDrill {
		t.Fatalf("page = %v, want PageDrill", m.page)
	}
	if cmd == nil {
		t.Error("drill should schedule a load")
	}
	if got := m.drill.ContextID(); got != "artist-X" {
		t.Errorf("drill context = %q, want %q", got, "artist-X")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.page != PageHome {
		t.Errorf("page after esc = %v, want PageHome", m.page)
	}

	// Second entry is the channel.
	m, _ = update(t, m, keyRune('j'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.drill.ContextID(); got != "channel-ch-1" {
		t.Errorf("drill context = %q, want %q", got, "channel-ch-1")
	}
}

func TestStatusMessageLifecycle(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, cmd := update(t, m, ServiceErrorMsg{Operation: "toggle like", Err: context.DeadlineExceeded})
	if m.statusMsg == "" {
		t.Fatal("service error should set a status message")
	}
	if cmd == nil {
		t.Fatal("service error should schedule a clear and a rewatch")
	}

	m, _ = update(t, m, StatusClearMsg{Version: m.statusVersion - 1})
	if m.statusMsg == "" {
		t.Error("stale clear should not hide the status")
	}

	m, _ = update(t, m, StatusClearMsg{Version: m.statusVersion})
	if m.statusMsg != "" {
		t.Error("current clear should hide the status")
	}
}

func TestHelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = update(t, m, keyRune('?'))
	if !m.showHelp {
		t.Fatal("? should show help")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.showHelp {
		t.Error("esc should close help")
	}
}

func TestRestoreSession(t *testing.T) {
	_, svc, gw := newTestModel(t)

	RestoreSession(context.Background(), svc, gw, &state.Session{
		Volume:      40,
		Muted:       true,
		Shuffle:     true,
		RepeatMode:  int(playback.RepeatAll),
		CurrentID:   "b",
		CurrentTime: 12.5,
		Queue:       makeSongs("x", "y"),
	})

	if svc.Volume() != 40 {
		t.Errorf("volume = %d, want 40", svc.Volume())
	}
	if !svc.Muted() {
		t.Error("muted should be restored")
	}
	if !svc.Shuffle() {
		t.Error("shuffle should be restored")
	}
	if svc.Repeat() != playback.RepeatAll {
		t.Errorf("repeat = %v, want RepeatAll", svc.Repeat())
	}
	if got := len(svc.QueueSongs()); got != 2 {
		t.Errorf("restored queue length = %d, want 2", got)
	}
	cur, ok := svc.CurrentSong()
	if !ok || cur.ExternalID != "b" {
		t.Fatalf("current song = %v, %v, want b cued", cur, ok)
	}
	if svc.IsPlaying() {
		t.Error("restored song must be cued paused, not playing")
	}
	if got := svc.CurrentTime(); got != 12.5 {
		t.Errorf("restored position = %v, want 12.5", got)
	}
}

func TestRestoreSession_SkipsUnresolvableSong(t *testing.T) {
	_, svc, gw := newTestModel(t)

	RestoreSession(context.Background(), svc, gw, &state.Session{
		Volume:    70,
		CurrentID: "gone",
	})

	if _, ok := svc.CurrentSong(); ok {
		t.Error("unresolvable song must not be cued")
	}
	if svc.Volume() != 70 {
		t.Errorf("volume = %d, want 70 applied despite stale id", svc.Volume())
	}
}

func TestViewRendersTabsAndList(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.library.Load(context.Background())
	m, _ = update(t, m, keyRune('2'))

	out := m.View()
	if out == "" {
		t.Fatal("view should render")
	}
	for _, want := range []string{"Library", "Song a"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}
