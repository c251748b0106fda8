package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lbriand/reverb/internal/api"
	"github.com/lbriand/reverb/internal/notify"
	"github.com/lbriand/reverb/internal/playback"
	"github.com/lbriand/reverb/internal/song"
	"github.com/lbriand/reverb/internal/state"
	"github.com/lbriand/reverb/internal/transport"
	"github.com/lbriand/reverb/internal/ui/confirm"
	"github.com/lbriand/reverb/internal/ui/searchbar"
	"github.com/lbriand/reverb/internal/ui/songlist"
	"github.com/lbriand/reverb/internal/ui/textprompt"
	"github.com/lbriand/reverb/internal/views"
	"github.com/lbriand/reverb/internal/wakelock"
)

// Page identifies one of the top-level views.
type Page int

const (
	PageHome Page = iota
	PageLibrary
	PageLiked
	PagePlaylists
	PageDrill
	PageSearch
	PageQueue
)

var pageCycle = []Page{PageHome, PageLibrary, PageLiked, PagePlaylists, PageSearch, PageQueue}

// Gateway is the remote library surface the UI needs.
type Gateway interface {
	views.Gateway
	CreatePlaylist(ctx context.Context, name, description string) (api.Playlist, error)
	UpdatePlaylist(ctx context.Context, id, name, description string) (api.Playlist, error)
	DeletePlaylist(ctx context.Context, id string) error
	AddSongToPlaylist(ctx context.Context, playlistID, externalID string) error
	RemoveSongFromPlaylist(ctx context.Context, playlistID, externalID string) error
}

// Model is the root application model.
type Model struct {
	svc     playback.Service
	surface *transport.Surface
	gateway Gateway
	stateMg *state.Manager
	sub     *playback.Subscription
	wake    *wakelock.Lock
	notify  *notify.SongChanges
	logger  *log.Logger

	page     Page
	prevPage Page

	home      *views.Home
	library   *views.View
	liked     *views.View
	search    *views.Search
	drill     *views.View // artist, channel or playlist view opened from another page
	playlists []api.Playlist

	list           songlist.Model
	playlistCursor int
	homeCursor     int
	searchInput    searchbar.Model

	confirm confirm.Model
	prompt  textprompt.Model

	// Playlist picker for the add-to-playlist action.
	pickerSong   song.Song
	pickerActive bool
	pickerCursor int

	statusMsg     string
	statusVersion int
	showHelp      bool

	width  int
	height int
}

// New creates the root model. The playback subscription must come from svc.
func New(
	svc playback.Service,
	surface *transport.Surface,
	gateway Gateway,
	stateMgr *state.Manager,
	sub *playback.Subscription,
	wake *wakelock.Lock,
	songNotify *notify.SongChanges,
	logger *log.Logger,
) Model {
	return Model{
		svc:         svc,
		surface:     surface,
		gateway:     gateway,
		stateMg:     stateMgr,
		sub:         sub,
		wake:        wake,
		notify:      songNotify,
		logger:      logger,
		page:        PageHome,
		home:        views.NewHome(gateway),
		library:     views.Library(gateway),
		liked:       views.Liked(gateway),
		search:      views.NewSearch(gateway),
		searchInput: searchbar.New("search songs"),
		prompt:      textprompt.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.WatchServiceEvents(),
		TickCmd(),
		LoadDashboardCmd(m.home),
		LoadViewCmd(m.library),
	)
}

// activeView returns the song view behind the current page, nil when the
// page is not backed by one.
func (m *Model) activeView() *views.View {
	switch m.page {
	case PageLibrary:
		return m.library
	case PageLiked:
		return m.liked
	case PageDrill:
		return m.drill
	}
	return nil
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusVersion++
	return StatusClearCmd(m.statusVersion)
}

// homeEntry is a selectable dashboard row that opens a drill view.
type homeEntry struct {
	label string
	open  func() *views.View
}

const homeSectionLimit = 5

func (m Model) homeEntries() []homeEntry {
	d := m.home.Dashboard()
	var entries []homeEntry
	for i, a := range d.Artists {
		if i >= homeSectionLimit {
			break
		}
		entries = append(entries, homeEntry{
			label: fmt.Sprintf("%s (%d)", a.Name, a.SongCount),
			open:  func() *views.View { return m.home.ArtistView(a) },
		})
	}
	for i, c := range d.Channels {
		if i >= homeSectionLimit {
			break
		}
		entries = append(entries, homeEntry{
			label: fmt.Sprintf("%s (%d)", c.Name, c.SongCount),
			open:  func() *views.View { return m.home.ChannelView(c) },
		})
	}
	return entries
}

func (m *Model) syncList() {
	switch m.page {
	case PageLibrary, PageLiked, PageDrill:
		if v := m.activeView(); v != nil {
			m.list.SetSongs(v.Songs())
		}
	case PageSearch:
		m.list.SetSongs(m.search.Results())
	case PageQueue:
		m.list.SetSongs(m.svc.QueueSongs())
	}
}
