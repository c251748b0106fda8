package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lbriand/reverb/internal/api"
	"github.com/lbriand/reverb/internal/errmsg"
	"github.com/lbriand/reverb/internal/song"
	"github.com/lbriand/reverb/internal/ui/searchbar"
	"github.com/lbriand/reverb/internal/views"
)

const seekStepSeconds = 5
const volumeStep = 5

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetHeight(m.listHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m, TickCmd()

	case ServiceStateChangedMsg:
		if msg.Playing {
			m.wake.Acquire()
		} else {
			m.wake.Release()
		}
		m.saveSession()
		return m, m.WatchServiceEvents()

	case ServiceSongChangedMsg:
		if m.notify != nil {
			m.notify.Announce(msg.Current)
		}
		m.saveSession()
		return m, m.WatchServiceEvents()

	// Time samples arrive every 100ms while playing. Saving here would keep
	// resetting the state manager's debounce timer, so the clock is only
	// persisted alongside the other lifecycle events.
	case ServiceTimeChangedMsg:
		return m, m.WatchServiceEvents()

	case ServiceQueueChangedMsg:
		if m.page == PageQueue {
			m.list.SetSongs(msg.Songs)
		}
		m.saveSession()
		return m, m.WatchServiceEvents()

	case ServiceModeChangedMsg:
		m.saveSession()
		return m, m.WatchServiceEvents()

	case ServiceLikeChangedMsg:
		if m.page == PageLiked {
			return m, tea.Batch(LoadViewCmd(m.liked), m.WatchServiceEvents())
		}
		return m, m.WatchServiceEvents()

	case ServiceErrorMsg:
		cmd := m.setStatus(errmsg.Format(errmsg.Op(msg.Operation), msg.Err))
		return m, tea.Batch(cmd, m.WatchServiceEvents())

	case ServiceClosedMsg:
		return m, tea.Quit

	case ViewLoadedMsg:
		if v := m.activeView(); v != nil && v.ContextID() == msg.ContextID {
			if v.Err() != "" {
				return m, m.setStatus(v.Err())
			}
			m.syncList()
		}
		return m, nil

	case SearchDoneMsg:
		if msg.Query != m.search.Query() {
			return m, nil
		}
		if m.search.Err() != "" {
			return m, m.setStatus(m.search.Err())
		}
		if m.page == PageSearch {
			m.syncList()
		}
		return m, nil

	case searchbar.QueryMsg:
		return m, SearchCmd(m.search, msg.Query)

	case DashboardLoadedMsg:
		if m.home.Err() != "" {
			return m, m.setStatus(m.home.Err())
		}
		return m, nil

	case PlaylistsLoadedMsg:
		if msg.Err != nil {
			return m, m.setStatus(errmsg.Format(errmsg.OpPlaylistLoad, msg.Err))
		}
		m.playlists = msg.Playlists
		if m.playlistCursor >= len(m.playlists) {
			m.playlistCursor = max(len(m.playlists)-1, 0)
		}
		return m, nil

	case PlaylistDeletedMsg:
		if msg.Err != nil {
			return m, m.setStatus(errmsg.Format(errmsg.OpPlaylistDelete, msg.Err))
		}
		return m, m.LoadPlaylistsCmd()

	case PlaylistCreatedMsg:
		if msg.Err != nil {
			return m, m.setStatus(errmsg.Format(errmsg.OpPlaylistCreate, msg.Err))
		}
		cmd := m.setStatus("Created playlist: " + msg.Playlist.Name)
		return m, tea.Batch(cmd, m.LoadPlaylistsCmd())

	case PlaylistRenamedMsg:
		if msg.Err != nil {
			return m, m.setStatus(errmsg.Format(errmsg.OpPlaylistRename, msg.Err))
		}
		cmd := m.setStatus("Renamed playlist: " + msg.Playlist.Name)
		return m, tea.Batch(cmd, m.LoadPlaylistsCmd())

	case SongAddedMsg:
		if msg.Err != nil {
			return m, m.setStatus(errmsg.Format(errmsg.OpPlaylistAddSong, msg.Err))
		}
		return m, m.setStatus(fmt.Sprintf("Added %q to %s", msg.Song.Title, msg.Playlist.Name))

	case SongRemovedMsg:
		if msg.Err != nil {
			return m, m.setStatus(errmsg.Format(errmsg.OpPlaylistRemove, msg.Err))
		}
		cmd := m.setStatus(fmt.Sprintf("Removed %q from playlist", msg.Song.Title))
		if m.drillPlaylistID() == msg.PlaylistID {
			return m, tea.Batch(cmd, LoadViewCmd(m.drill))
		}
		return m, cmd

	case StatusClearMsg:
		if msg.Version == m.statusVersion {
			m.statusMsg = ""
		}
		return m, nil
	}

	if m.page == PageSearch && m.searchInput.Focused() {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// promptCreatePlaylist tags the text prompt context for playlist creation.
const promptCreatePlaylist = "create-playlist"

// renamePrompt tags the text prompt context for renaming a playlist.
type renamePrompt struct {
	pl api.Playlist
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm.Active() {
		ctx, confirmed, done := m.confirm.HandleKey(msg.String())
		if done && confirmed {
			if id, ok := ctx.(string); ok {
				return m, m.DeletePlaylistCmd(id)
			}
		}
		return m, nil
	}

	if m.prompt.Active() {
		value, pctx, submitted, _ := m.prompt.HandleKey(msg)
		if !submitted {
			return m, nil
		}
		switch c := pctx.(type) {
		case string:
			if c == promptCreatePlaylist {
				return m, m.CreatePlaylistCmd(value)
			}
		case renamePrompt:
			return m, m.RenamePlaylistCmd(c.pl, value)
		}
		return m, nil
	}

	if m.pickerActive {
		return m.handlePickerKey(msg)
	}

	// A focused search input swallows everything except escape and enter.
	if m.page == PageSearch && m.searchInput.Focused() {
		switch msg.String() {
		case "esc":
			m.searchInput.Blur()
			return m, nil
		case "enter":
			m.searchInput.Blur()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "esc":
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.page == PageDrill {
			return m.switchPage(m.prevPage)
		}
		return m, nil

	case "1":
		return m.switchPage(PageHome)
	case "2":
		return m.switchPage(PageLibrary)
	case "3":
		return m.switchPage(PageLiked)
	case "4":
		return m.switchPage(PagePlaylists)
	case "5":
		return m.switchPage(PageSearch)
	case "6":
		return m.switchPage(PageQueue)
	case "tab":
		return m.cyclePage(1)
	case "shift+tab":
		return m.cyclePage(-1)

	// Playback controls route through the transport surface so pointer and
	// key activations share the same dedup path.
	case " ":
		m.surface.ToggleClick()
		return m, nil
	case "n", "pgdown":
		m.surface.NextClick()
		return m, nil
	case "p", "pgup":
		m.surface.PreviousClick()
		return m, nil
	case "S":
		m.surface.ShuffleClick()
		return m, nil
	case "R":
		m.surface.RepeatClick()
		return m, nil
	case "m":
		m.surface.MuteClick()
		return m, nil
	case "L":
		if sg, ok := m.svc.CurrentSong(); ok {
			m.surface.LikeClick(sg)
		}
		return m, nil
	case "+", "=":
		m.surface.VolumeBy(volumeStep)
		return m, nil
	case "-":
		m.surface.VolumeBy(-volumeStep)
		return m, nil
	case "shift+left":
		m.surface.SeekBy(-seekStepSeconds)
		return m, nil
	case "shift+right":
		m.surface.SeekBy(seekStepSeconds)
		return m, nil
	}

	switch m.page {
	case PageHome:
		return m.handleHomeKey(msg)
	case PagePlaylists:
		return m.handlePlaylistsKey(msg)
	case PageQueue:
		return m.handleQueueKey(msg)
	case PageSearch:
		if msg.String() == "/" {
			return m, m.searchInput.Focus()
		}
		return m.handleListKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.list.CursorDown()
	case "k", "up":
		m.list.CursorUp()
	case "g", "home":
		m.list.CursorTop()
	case "G", "end":
		m.list.CursorBottom()

	case "enter":
		return m.playSelected()

	case "e":
		if sg, ok := m.list.Selected(); ok {
			if m.svc.Enqueue(sg) {
				return m, m.setStatus("Added to queue: " + sg.Title)
			}
			return m, m.setStatus("Already in queue: " + sg.Title)
		}

	case "E":
		if n := m.svc.EnqueueAll(m.list.Songs()); n > 0 {
			return m, m.setStatus(fmt.Sprintf("Added %d songs to queue", n))
		}

	case "l":
		if sg, ok := m.list.Selected(); ok {
			m.surface.LikeClick(sg)
		}

	case "a":
		if sg, ok := m.list.Selected(); ok {
			return m.openPicker(sg)
		}

	case "x":
		if id := m.drillPlaylistID(); id != "" {
			if sg, ok := m.list.Selected(); ok {
				return m, m.RemoveFromPlaylistCmd(id, sg)
			}
		}
	}
	return m, nil
}

// drillPlaylistID returns the playlist id behind the open drill page, ""
// when the drill is not showing a playlist.
func (m Model) drillPlaylistID() string {
	if m.page != PageDrill || m.drill == nil {
		return ""
	}
	id, ok := strings.CutPrefix(m.drill.ContextID(), "playlist-")
	if !ok {
		return ""
	}
	return id
}

// openPicker shows the playlist picker for a song. Summaries are fetched on
// first use; the picker renders empty until they arrive.
func (m Model) openPicker(sg song.Song) (tea.Model, tea.Cmd) {
	m.pickerActive = true
	m.pickerSong = sg
	m.pickerCursor = 0
	if len(m.playlists) == 0 {
		return m, m.LoadPlaylistsCmd()
	}
	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc", "q", "a":
		m.pickerActive = false

	case "j", "down":
		if m.pickerCursor < len(m.playlists)-1 {
			m.pickerCursor++
		}
	case "k", "up":
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}

	case "enter":
		if m.pickerCursor < len(m.playlists) {
			pl := m.playlists[m.pickerCursor]
			sg := m.pickerSong
			m.pickerActive = false
			return m, m.AddToPlaylistCmd(pl, sg)
		}
	}
	return m, nil
}

func (m Model) playSelected() (tea.Model, tea.Cmd) {
	idx := m.list.Cursor()
	switch m.page {
	case PageSearch:
		s := m.search
		return m, func() tea.Msg {
			ctx, cancel := newRequestContext()
			defer cancel()
			s.PlayAt(ctx, m.svc, idx)
			return SearchDoneMsg{Query: s.Query()}
		}
	default:
		if v := m.activeView(); v != nil {
			v.PlayAt(m.svc, idx)
		}
	}
	return m, nil
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.homeEntries()
	switch msg.String() {
	case "j", "down":
		if m.homeCursor < len(entries)-1 {
			m.homeCursor++
		}
	case "k", "up":
		if m.homeCursor > 0 {
			m.homeCursor--
		}
	case "g", "home":
		m.homeCursor = 0
	case "G", "end":
		m.homeCursor = max(len(entries)-1, 0)

	case "enter":
		if m.homeCursor < len(entries) {
			return m.openDrill(entries[m.homeCursor].open())
		}
	}
	return m, nil
}

func (m Model) handlePlaylistsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.playlistCursor < len(m.playlists)-1 {
			m.playlistCursor++
		}
	case "k", "up":
		if m.playlistCursor > 0 {
			m.playlistCursor--
		}
	case "g", "home":
		m.playlistCursor = 0
	case "G", "end":
		m.playlistCursor = max(len(m.playlists)-1, 0)

	case "enter":
		if m.playlistCursor < len(m.playlists) {
			pl := m.playlists[m.playlistCursor]
			return m.openDrill(views.PlaylistView(m.gateway, pl.ID, pl.Name))
		}

	case "d":
		if m.playlistCursor < len(m.playlists) {
			pl := m.playlists[m.playlistCursor]
			m.confirm.Show(fmt.Sprintf("Delete playlist %q?", pl.Name), pl.ID)
		}

	case "N":
		return m, m.prompt.Show("New playlist", promptCreatePlaylist)

	case "r":
		if m.playlistCursor < len(m.playlists) {
			pl := m.playlists[m.playlistCursor]
			return m, m.prompt.Show(fmt.Sprintf("Rename %q", pl.Name), renamePrompt{pl: pl})
		}
	}
	return m, nil
}

func (m Model) handleQueueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.list.CursorDown()
	case "k", "up":
		m.list.CursorUp()
	case "g", "home":
		m.list.CursorTop()
	case "G", "end":
		m.list.CursorBottom()

	case "d", "delete":
		m.svc.RemoveQueueAt(m.list.Cursor())
		m.list.SetSongs(m.svc.QueueSongs())

	case "J", "shift+down":
		i := m.list.Cursor()
		m.svc.MoveQueueItem(i, i+1)
		m.list.SetSongs(m.svc.QueueSongs())
		m.list.CursorDown()

	case "K", "shift+up":
		i := m.list.Cursor()
		m.svc.MoveQueueItem(i, i-1)
		m.list.SetSongs(m.svc.QueueSongs())
		m.list.CursorUp()

	case "c":
		m.svc.ClearQueue()
		m.list.SetSongs(nil)
	}
	return m, nil
}

func (m Model) switchPage(page Page) (tea.Model, tea.Cmd) {
	// Drill pages remember where they were opened from so esc can return.
	if page == PageDrill && m.page != PageDrill {
		m.prevPage = m.page
	}
	m.page = page
	m.list.SetHeight(m.listHeight())

	var cmd tea.Cmd
	switch page {
	case PageHome:
		if !m.home.Loaded() {
			cmd = LoadDashboardCmd(m.home)
		}
	case PageLibrary:
		if !m.library.Loaded() {
			cmd = LoadViewCmd(m.library)
		}
	case PageLiked:
		cmd = LoadViewCmd(m.liked)
	case PagePlaylists:
		cmd = m.LoadPlaylistsCmd()
	case PageDrill:
		if m.drill != nil && !m.drill.Loaded() {
			cmd = LoadViewCmd(m.drill)
		}
	}
	m.syncList()
	return m, cmd
}

func (m Model) cyclePage(delta int) (tea.Model, tea.Cmd) {
	cur := 0
	for i, p := range pageCycle {
		if p == m.page {
			cur = i
			break
		}
	}
	next := (cur + delta + len(pageCycle)) % len(pageCycle)
	return m.switchPage(pageCycle[next])
}

func (m Model) openDrill(v *views.View) (tea.Model, tea.Cmd) {
	m.drill = v
	return m.switchPage(PageDrill)
}
