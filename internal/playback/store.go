// Package playback implements the orchestration core: the observable
// single-writer store that owns the current song, the queue triple, the
// playback flags, and the reduction of normalized player events into
// consistent application state.
package playback

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lbriand/reverb/internal/player"
	"github.com/lbriand/reverb/internal/queue"
	"github.com/lbriand/reverb/internal/song"
)

const (
	// PreviousRestartSeconds is the fixed previous-button contract: past
	// this point into a song, "previous" restarts it instead of
	// navigating back.
	PreviousRestartSeconds = 3.0

	// resumeRewind is how far behind the last known position the store
	// reseeks before resuming out of an ended state; the engine refuses
	// to resume into a finished clip.
	resumeRewind = 0.1

	// playDriftSeconds is the tolerated gap between the store clock and
	// the engine clock before a resume reseeks first.
	playDriftSeconds = 0.5

	sampleInterval = 100 * time.Millisecond
	likeTimeout    = 10 * time.Second
)

// Verify store implements Service at compile time.
var _ Service = (*store)(nil)

type store struct {
	mu     sync.Mutex
	ctrl   Control
	likes  LikeGateway
	logger *log.Logger
	rng    *rand.Rand

	current       song.Song
	playing       bool
	intentPlaying bool
	pendingSeek   float64
	currentTime   float64
	duration      float64
	volume        int
	muted         bool
	shuffle       bool
	repeat        RepeatMode

	explicit *queue.Explicit
	ctx      *queue.Context
	history  *queue.History

	liked    map[string]bool
	likeBusy map[string]bool

	subs   []*Subscription
	subsMu sync.RWMutex

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a playback store over the given player control and like
// gateway. Call Run to start consuming player events.
func New(ctrl Control, likes LikeGateway, logger *log.Logger) Service {
	if logger == nil {
		logger = log.Default()
	}
	return &store{
		ctrl:     ctrl,
		likes:    likes,
		logger:   logger.With("component", "playback"),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		volume:   100,
		explicit: queue.NewExplicit(),
		history:  queue.NewHistory(),
		liked:    make(map[string]bool),
		likeBusy: make(map[string]bool),
		done:     make(chan struct{}),
	}
}

// Run starts the event loop consuming adapter events and the time
// sampling ticker.
func (s *store) Run() {
	go s.loop()
}

func (s *store) loop() {
	ticker := time.NewTicker(sampleInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.ctrl.Events():
			if !ok {
				return
			}
			s.handleEvent(ev)
		case <-ticker.C:
			s.sample()
		}
	}
}

// Close stops the event loop and releases all subscriptions.
func (s *store) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.subsMu.Lock()
		for _, sub := range s.subs {
			sub.close()
		}
		s.subs = nil
		s.subsMu.Unlock()
	})
}

// Subscribe creates a new event subscription.
func (s *store) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// handleEvent reduces one normalized player event into store state. All
// transitions re-validate against the current song so a late event cannot
// stamp state for a song that is no longer loaded.
func (s *store) handleEvent(ev player.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.IsZero() {
		return
	}

	switch ev.State {
	case player.Ended:
		if s.repeat == RepeatOne {
			// Replay in place: no queue or history mutation.
			s.replayCurrentLocked()
			return
		}
		s.advanceLocked()

	case player.Playing:
		s.applySnapshotLocked(ev.Snapshot)
		s.setPlayingLocked(true)

	case player.Paused:
		s.setPlayingLocked(false)

	case player.Buffering:
		// Preserve prior intent: buffering is not a pause and must not
		// flip the play/pause affordance.

	case player.Cued:
		if s.pendingSeek > 0 {
			// A restored session waits for the cue before seeking; the
			// engine drops seeks issued against an unloaded clip.
			s.currentTime = s.pendingSeek
			s.ctrl.Seek(s.pendingSeek)
			s.pendingSeek = 0
		} else {
			s.currentTime = 0
		}
		s.emitTimeLocked()
		s.setPlayingLocked(false)
		if s.intentPlaying {
			// A fast song switch raced the cue event. One play command,
			// not a loop: the next cue gets its own single retry.
			s.ctrl.Play()
		}

	case player.Unstarted:
		// Ignored; the engine settles with a follow-up event.
	}
}

func (s *store) applySnapshotLocked(snap player.Snapshot) {
	if snap.CurrentTime > 0 {
		s.currentTime = snap.CurrentTime
	}
	if snap.Duration > 0 {
		s.duration = snap.Duration
	}
}

// sample polls the engine clock while playing and publishes it.
func (s *store) sample() {
	s.mu.Lock()
	playing := s.playing
	s.mu.Unlock()
	if !playing {
		return
	}

	st, err := s.ctrl.Status()
	if err != nil {
		return
	}

	s.mu.Lock()
	if st.CurrentTime > 0 || s.currentTime > 0 {
		s.currentTime = st.CurrentTime
	}
	if st.Duration > 0 {
		s.duration = st.Duration
	}
	s.emitTimeLocked()
	s.mu.Unlock()
}

// PlayWithContext points the store at a new launch context and starts
// playback on the given song. The explicit queue is cleared: a new context
// supersedes pending "play next" items.
func (s *store) PlayWithContext(contextID string, songs []song.Song, start song.Song) {
	if start.IsZero() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = queue.NewContext(contextID, songs, start)
	s.explicit.Clear()
	s.emitQueueLocked()
	s.setCurrentLocked(start, true)
	s.startPlaybackLocked()
}

// PlaySong starts playback of a single song without touching the context,
// used for ad-hoc search-result playback.
func (s *store) PlaySong(sg song.Song) {
	if sg.IsZero() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCurrentLocked(sg, true)
	s.startPlaybackLocked()
}

// CueSong loads a song paused at the given position without starting
// playback. Used once at startup to put the previous session's song back
// on the deck.
func (s *store) CueSong(sg song.Song, at float64) {
	if sg.IsZero() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCurrentLocked(sg, true)
	s.intentPlaying = false
	if at > 0 && (sg.DurationSeconds == 0 || at < sg.DurationSeconds) {
		s.currentTime = at
		s.pendingSeek = at
		s.emitTimeLocked()
	}
	s.ctrl.LoadSong(sg.ExternalID)
}

// setCurrentLocked replaces the current song, resets the clock and
// optionally records the song into history.
func (s *store) setCurrentLocked(sg song.Song, record bool) {
	prev := s.current
	s.current = sg
	s.currentTime = 0
	s.pendingSeek = 0
	s.duration = sg.DurationSeconds
	if record {
		s.history.Record(sg)
	}
	if !prev.Same(sg) {
		s.emitSongLocked(prev, sg)
	}
	s.emitTimeLocked()
}

func (s *store) startPlaybackLocked() {
	s.intentPlaying = true
	s.ctrl.LoadSong(s.current.ExternalID)
	s.ctrl.Play()
	s.setPlayingLocked(true)
}

func (s *store) replayCurrentLocked() {
	s.currentTime = 0
	s.emitTimeLocked()
	s.ctrl.Seek(0)
	s.ctrl.Play()
	s.setPlayingLocked(true)
}

func (s *store) setPlayingLocked(playing bool) {
	if s.playing == playing {
		return
	}
	s.playing = playing
	s.subsMu.RLock()
	for _, sub := range s.subs {
		sub.sendState(StateChange{Playing: playing})
	}
	s.subsMu.RUnlock()
}

// Toggle flips play/pause. It branches on the engine's reported state
// rather than the local flag, since the two desynchronize after
// backgrounding. The local flag is the fallback when the engine cannot be
// asked.
func (s *store) Toggle() {
	st, err := s.ctrl.Status()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.IsZero() {
		return
	}

	playing := s.playing
	if err == nil {
		playing = st.Playing
	} else {
		s.logger.Debug("engine state query failed, using local flag", "err", err)
	}

	if playing {
		s.ctrl.Pause()
		s.intentPlaying = false
		s.setPlayingLocked(false)
		return
	}

	if err == nil {
		if st.Ended {
			// The engine refuses to resume into a finished clip; back off
			// slightly from the last known position first.
			resume := math.Max(0, st.CurrentTime-resumeRewind)
			s.ctrl.Seek(resume)
			s.currentTime = resume
			s.emitTimeLocked()
		} else if math.Abs(st.CurrentTime-s.currentTime) > playDriftSeconds {
			s.ctrl.Seek(s.currentTime)
		}
	}
	s.ctrl.Play()
	s.intentPlaying = true
	s.setPlayingLocked(true)
}

// Next advances playback. Forward history is replayed first; only at the
// history tail does the store resolve a fresh song from queue/context.
func (s *store) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked()
}

func (s *store) advanceLocked() {
	if fwd, ok := s.history.Forward(); ok {
		s.setCurrentLocked(fwd, false)
		if s.ctx != nil {
			s.ctx.Align(fwd.ExternalID)
		}
		s.startPlaybackLocked()
		return
	}

	next, ok := s.resolveNextLocked()
	if !ok {
		// End of playback: keep the song, drop the intent.
		s.intentPlaying = false
		s.setPlayingLocked(false)
		return
	}
	if next.Same(s.current) {
		// Repeat-one resolution: replay without touching history.
		s.replayCurrentLocked()
		return
	}
	s.setCurrentLocked(next, true)
	if s.ctx != nil {
		s.ctx.Align(next.ExternalID)
	}
	s.startPlaybackLocked()
}

// Previous retraces history. Past the restart threshold it restarts the
// current song in place; otherwise it steps the history cursor back. It
// never consults the explicit queue and never recomputes shuffle; back
// replays exactly what played.
func (s *store) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentTime > PreviousRestartSeconds {
		s.currentTime = 0
		s.emitTimeLocked()
		s.ctrl.Seek(0)
		return
	}

	prev, ok := s.history.Back()
	if !ok {
		// First song in history: stay, no wraparound.
		return
	}
	s.setCurrentLocked(prev, false)
	if s.ctx != nil {
		s.ctx.Align(prev.ExternalID)
	}
	s.startPlaybackLocked()
}

// SeekTo clamps the target into the known range and forwards it. With an
// unknown duration the current position is the conservative upper bound;
// non-finite input never reaches the adapter.
func (s *store) SeekTo(seconds float64) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	limit := s.duration
	if limit <= 0 || math.IsNaN(limit) {
		limit = s.currentTime
	}
	target := math.Max(0, math.Min(seconds, limit))
	s.ctrl.Seek(target)
	s.currentTime = target
	s.emitTimeLocked()
}

// SetVolume sets the output level. Raising the volume above zero while
// muted unmutes; the coupling is one-directional, muting never zeroes the
// stored level.
func (s *store) SetVolume(volume int) {
	volume = min(max(volume, 0), 100)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = volume
	s.ctrl.SetVolume(volume)
	if volume > 0 && s.muted {
		s.muted = false
		s.ctrl.Unmute()
	}
}

// ToggleMute silences or restores output. Unmuting restores the stored
// level exactly.
func (s *store) ToggleMute() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.muted {
		s.ctrl.Unmute()
		s.ctrl.SetVolume(s.volume)
	} else {
		s.ctrl.Mute()
	}
	s.muted = !s.muted
}

// ToggleShuffle flips shuffle and returns the new value.
func (s *store) ToggleShuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shuffle = !s.shuffle
	s.emitModeLocked()
	return s.shuffle
}

// CycleRepeat cycles off -> all -> one and returns the new mode.
func (s *store) CycleRepeat() RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repeat = s.repeat.next()
	s.emitModeLocked()
	return s.repeat
}

// SetRepeat sets the repeat mode directly.
func (s *store) SetRepeat(mode RepeatMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.repeat == mode {
		return
	}
	s.repeat = mode
	s.emitModeLocked()
}

// Enqueue appends a song to the explicit queue, deduplicated by ID.
func (s *store) Enqueue(sg song.Song) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := s.explicit.Add(sg)
	if added {
		s.emitQueueLocked()
	}
	return added
}

// EnqueueAll appends every song not already queued.
func (s *store) EnqueueAll(songs []song.Song) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := s.explicit.AddAll(songs)
	if added > 0 {
		s.emitQueueLocked()
	}
	return added
}

// RemoveFromQueue drops the queued song with the given ID.
func (s *store) RemoveFromQueue(externalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.explicit.Remove(externalID)
	if removed {
		s.emitQueueLocked()
	}
	return removed
}

// RemoveQueueAt drops the queued song at index.
func (s *store) RemoveQueueAt(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.explicit.RemoveAt(index)
	if removed {
		s.emitQueueLocked()
	}
	return removed
}

// MoveQueueItem reorders the explicit queue.
func (s *store) MoveQueueItem(fromIndex, toIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved := s.explicit.Move(fromIndex, toIndex)
	if moved {
		s.emitQueueLocked()
	}
	return moved
}

// ClearQueue empties the explicit queue.
func (s *store) ClearQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.explicit.Clear()
	s.emitQueueLocked()
}

// QueueSongs returns a copy of the explicit queue.
func (s *store) QueueSongs() []song.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.explicit.Songs()
}

// State accessors

func (s *store) CurrentSong() (song.Song, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, !s.current.IsZero()
}

func (s *store) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func (s *store) CurrentTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTime
}

func (s *store) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

func (s *store) Volume() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

func (s *store) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

func (s *store) Shuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shuffle
}

func (s *store) Repeat() RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repeat
}

// ContextID returns the active context identifier, empty when none.
func (s *store) ContextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return ""
	}
	return s.ctx.ID()
}

func (s *store) ContextSongs() []song.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return nil
	}
	return s.ctx.Songs()
}

func (s *store) HistorySongs() []song.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Entries()
}

// Event emission helpers. Callers hold s.mu.

func (s *store) emitSongLocked(prev, cur song.Song) {
	s.subsMu.RLock()
	for _, sub := range s.subs {
		sub.sendSong(SongChange{Previous: prev, Current: cur})
	}
	s.subsMu.RUnlock()
}

func (s *store) emitTimeLocked() {
	s.subsMu.RLock()
	for _, sub := range s.subs {
		sub.sendTime(TimeChange{CurrentTime: s.currentTime, Duration: s.duration})
	}
	s.subsMu.RUnlock()
}

func (s *store) emitQueueLocked() {
	songs := s.explicit.Songs()
	s.subsMu.RLock()
	for _, sub := range s.subs {
		sub.sendQueue(QueueChange{Songs: songs})
	}
	s.subsMu.RUnlock()
}

func (s *store) emitModeLocked() {
	s.subsMu.RLock()
	for _, sub := range s.subs {
		sub.sendMode(ModeChange{Shuffle: s.shuffle, Repeat: s.repeat})
	}
	s.subsMu.RUnlock()
}

func (s *store) emitLike(externalID string, liked bool) {
	s.subsMu.RLock()
	for _, sub := range s.subs {
		sub.sendLike(LikeChange{ExternalID: externalID, Liked: liked})
	}
	s.subsMu.RUnlock()
}

func (s *store) emitError(op string, err error) {
	s.subsMu.RLock()
	for _, sub := range s.subs {
		sub.sendError(ErrorEvent{Operation: op, Err: err})
	}
	s.subsMu.RUnlock()
}
