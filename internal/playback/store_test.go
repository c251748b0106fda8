package playback

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/lbriand/reverb/internal/player"
	"github.com/lbriand/reverb/internal/song"
)

func sg(id string) song.Song {
	return song.Song{ExternalID: id, Title: "song " + id, DurationSeconds: 240}
}

type fakeControl struct {
	mu        sync.Mutex
	loads     []string
	plays     int
	pauses    int
	seeks     []float64
	volumes   []int
	mutes     int
	unmutes   int
	status    player.Status
	statusErr error
	events    chan player.Event
}

func newFakeControl() *fakeControl {
	return &fakeControl{events: make(chan player.Event, 16)}
}

func (f *fakeControl) LoadSong(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads = append(f.loads, id)
}

func (f *fakeControl) Play() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
}

func (f *fakeControl) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
}

func (f *fakeControl) Seek(seconds float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, seconds)
}

func (f *fakeControl) SetVolume(v int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volumes = append(f.volumes, v)
}

func (f *fakeControl) Mute() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutes++
}

func (f *fakeControl) Unmute() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unmutes++
}

func (f *fakeControl) Status() (player.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status, f.statusErr
}

func (f *fakeControl) Events() <-chan player.Event { return f.events }

func (f *fakeControl) lastSeek() (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.seeks) == 0 {
		return 0, false
	}
	return f.seeks[len(f.seeks)-1], true
}

type fakeLikes struct {
	mu      sync.Mutex
	songs   []song.Song
	likes   []string
	unlikes []string
	err     error
	gate    chan struct{}
}

func (f *fakeLikes) LikedSongs(context.Context) ([]song.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.songs, f.err
}

func (f *fakeLikes) Like(_ context.Context, s song.Song) error {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.likes = append(f.likes, s.ExternalID)
	return f.err
}

func (f *fakeLikes) Unlike(_ context.Context, id string) error {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unlikes = append(f.unlikes, id)
	return f.err
}

// newTestStore builds a store wired to fakes without starting the event
// loop; tests feed events through handleEvent directly.
func newTestStore(t *testing.T) (*store, *fakeControl, *fakeLikes) {
	t.Helper()
	ctrl := newFakeControl()
	likes := &fakeLikes{}
	s := New(ctrl, likes, nil).(*store)
	s.rng = rand.New(rand.NewSource(1))
	t.Cleanup(s.Close)
	return s, ctrl, likes
}

func startContext(s *store, ids ...string) []song.Song {
	songs := make([]song.Song, len(ids))
	for i, id := range ids {
		songs[i] = sg(id)
	}
	s.PlayWithContext("playlist-1", songs, songs[0])
	return songs
}

func currentID(t *testing.T, s *store) string {
	t.Helper()
	cur, ok := s.CurrentSong()
	if !ok {
		t.Fatal("no current song")
	}
	return cur.ExternalID
}

func TestPlayWithContext_StartsPlayback(t *testing.T) {
	s, ctrl, _ := newTestStore(t)

	startContext(s, "a", "b", "c")

	if got := currentID(t, s); got != "a" {
		t.Errorf("current = %q, want a", got)
	}
	if !s.IsPlaying() {
		t.Error("expected playing after context launch")
	}
	if len(ctrl.loads) != 1 || ctrl.loads[0] != "a" {
		t.Errorf("loads = %v, want [a]", ctrl.loads)
	}
	if s.ContextID() != "playlist-1" {
		t.Errorf("ContextID = %q", s.ContextID())
	}
}

func TestPlayWithContext_ClearsExplicitQueue(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.Enqueue(sg("queued"))

	startContext(s, "a", "b")

	if n := len(s.QueueSongs()); n != 0 {
		t.Errorf("queue len = %d after context launch, want 0", n)
	}
}

func TestEnded_QueueHeadBeatsContext(t *testing.T) {
	s, _, _ := newTestStore(t)
	startContext(s, "a", "b", "c")
	s.Enqueue(sg("x"))

	s.handleEvent(player.Event{State: player.Ended})

	if got := currentID(t, s); got != "x" {
		t.Errorf("current = %q, want queued x before context b", got)
	}
	if n := len(s.QueueSongs()); n != 0 {
		t.Errorf("queue len = %d after pop, want 0", n)
	}
}

func TestEnded_RepeatOneLeavesQueueUntouched(t *testing.T) {
	s, _, _ := newTestStore(t)
	startContext(s, "a", "b")
	s.SetRepeat(RepeatOne)
	s.Enqueue(sg("x"))

	s.handleEvent(player.Event{State: player.Ended})

	if got := currentID(t, s); got != "a" {
		t.Errorf("current = %q, want a replayed", got)
	}
	if n := len(s.QueueSongs()); n != 1 {
		t.Errorf("queue len = %d, replay must not consume the queue", n)
	}
}

func TestNext_QueueHeadBeatsRepeatOne(t *testing.T) {
	s, _, _ := newTestStore(t)
	startContext(s, "a", "b")
	s.SetRepeat(RepeatOne)
	s.Enqueue(sg("x"))

	s.Next()

	if got := currentID(t, s); got != "x" {
		t.Errorf("current = %q, want queued x on explicit skip", got)
	}
}

func TestEnded_RepeatOneReplaysInPlace(t *testing.T) {
	s, ctrl, _ := newTestStore(t)
	startContext(s, "a", "b")
	s.SetRepeat(RepeatOne)
	before := s.history.Len()

	s.handleEvent(player.Event{State: player.Ended})
	s.handleEvent(player.Event{State: player.Ended})

	if got := currentID(t, s); got != "a" {
		t.Errorf("current = %q, want a (stable under repeat-one)", got)
	}
	if s.history.Len() != before {
		t.Errorf("history grew from %d to %d on replay", before, s.history.Len())
	}
	if last, ok := ctrl.lastSeek(); !ok || last != 0 {
		t.Errorf("expected seek to 0 for replay, got %v %v", last, ok)
	}
	if len(ctrl.loads) != 1 {
		t.Errorf("loads = %v, replay must not reload", ctrl.loads)
	}
}

func TestEnded_SequentialAdvance(t *testing.T) {
	s, _, _ := newTestStore(t)
	startContext(s, "a", "b", "c")

	s.handleEvent(player.Event{State: player.Ended})

	if got := currentID(t, s); got != "b" {
		t.Errorf("current = %q, want b", got)
	}
}

func TestEnded_WithoutContextStops(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.PlaySong(sg("solo"))

	s.handleEvent(player.Event{State: player.Ended})

	if s.IsPlaying() {
		t.Error("expected stopped with no context")
	}
	if got := currentID(t, s); got != "solo" {
		t.Errorf("current = %q, song must stay loaded", got)
	}
}

func TestEnded_EndOfContextStops(t *testing.T) {
	s, _, _ := newTestStore(t)
	songs := startContext(s, "a", "b")
	s.PlayWithContext("playlist-1", songs, songs[1])

	s.handleEvent(player.Event{State: player.Ended})

	if s.IsPlaying() {
		t.Error("expected stopped at end of context with repeat off")
	}
	if got := currentID(t, s); got != "b" {
		t.Errorf("current = %q, want b unchanged", got)
	}
}

func TestEnded_RepeatAllWraps(t *testing.T) {
	s, _, _ := newTestStore(t)
	songs := startContext(s, "a", "b")
	s.PlayWithContext("playlist-1", songs, songs[1])
	s.SetRepeat(RepeatAll)

	s.handleEvent(player.Event{State: player.Ended})

	if got := currentID(t, s); got != "a" {
		t.Errorf("current = %q, want wraparound to a", got)
	}
	if !s.IsPlaying() {
		t.Error("expected playing after wraparound")
	}
}

func TestEnded_ShuffleNeverRepeatsCurrent(t *testing.T) {
	s, _, _ := newTestStore(t)
	startContext(s, "a", "b", "c", "d")
	s.ToggleShuffle()

	for i := 0; i < 50; i++ {
		before := currentID(t, s)
		s.handleEvent(player.Event{State: player.Ended})
		after := currentID(t, s)
		if before == after {
			t.Fatalf("shuffle picked the current song %q on step %d", after, i)
		}
	}
}

func TestEnded_ShuffleSingleSong(t *testing.T) {
	s, _, _ := newTestStore(t)
	startContext(s, "only")
	s.ToggleShuffle()

	s.handleEvent(player.Event{State: player.Ended})
	if s.IsPlaying() {
		t.Error("single-song shuffle with repeat off must stop")
	}

	s.SetRepeat(RepeatAll)
	s.handleEvent(player.Event{State: player.Ended})
	if !s.IsPlaying() {
		t.Error("single-song shuffle under repeat-all must replay")
	}
	if got := currentID(t, s); got != "only" {
		t.Errorf("current = %q, want only", got)
	}
}

func TestNext_ForwardHistoryBeforeResolution(t *testing.T) {
	s, _, _ := newTestStore(t)
	startContext(s, "a", "b", "c")
	s.handleEvent(player.Event{State: player.Ended}) // -> b
	s.handleEvent(player.Event{State: player.Ended}) // -> c
	s.Previous()                                     // back to b
	s.Previous()                                     // back to a
	s.ToggleShuffle()                                // shuffle must not matter here

	s.Next()
	if got := currentID(t, s); got != "b" {
		t.Errorf("current = %q, want b replayed from forward history", got)
	}
	s.Next()
	if got := currentID(t, s); got != "c" {
		t.Errorf("current = %q, want c replayed from forward history", got)
	}
}

func TestPrevious_RestartsPastThreshold(t *testing.T) {
	s, ctrl, _ := newTestStore(t)
	startContext(s, "a", "b")
	s.handleEvent(player.Event{State: player.Ended}) // -> b
	s.mu.Lock()
	s.currentTime = PreviousRestartSeconds + 2
	s.mu.Unlock()

	s.Previous()

	if got := currentID(t, s); got != "b" {
		t.Errorf("current = %q, want b restarted in place", got)
	}
	if last, ok := ctrl.lastSeek(); !ok || last != 0 {
		t.Errorf("expected seek to 0, got %v %v", last, ok)
	}
	if s.CurrentTime() != 0 {
		t.Errorf("CurrentTime = %v, want 0", s.CurrentTime())
	}
}

func TestPrevious_NavigatesAtOrBelowThreshold(t *testing.T) {
	s, _, _ := newTestStore(t)
	startContext(s, "a", "b")
	s.handleEvent(player.Event{State: player.Ended}) // -> b
	s.mu.Lock()
	s.currentTime = PreviousRestartSeconds // boundary is exclusive
	s.mu.Unlock()

	s.Previous()

	if got := currentID(t, s); got != "a" {
		t.Errorf("current = %q, want history step back to a", got)
	}
}

func TestPrevious_NoUnderflow(t *testing.T) {
	s, _, _ := newTestStore(t)
	startContext(s, "a", "b")

	s.Previous()
	s.Previous()

	if got := currentID(t, s); got != "a" {
		t.Errorf("current = %q, want a with no wraparound", got)
	}
}

func TestPrevious_ReplaysHistoryNotShuffle(t *testing.T) {
	s, _, _ := newTestStore(t)
	startContext(s, "a", "b", "c", "d", "e")
	s.ToggleShuffle()

	var played []string
	played = append(played, currentID(t, s))
	for i := 0; i < 3; i++ {
		s.handleEvent(player.Event{State: player.Ended})
		played = append(played, currentID(t, s))
	}

	for i := len(played) - 2; i >= 0; i-- {
		s.Previous()
		if got := currentID(t, s); got != played[i] {
			t.Fatalf("Previous replayed %q, want %q (exact history)", got, played[i])
		}
	}
}

func TestToggle_PausesWhenEngineReportsPlaying(t *testing.T) {
	s, ctrl, _ := newTestStore(t)
	startContext(s, "a")
	ctrl.status = player.Status{Playing: true}

	s.Toggle()

	if ctrl.pauses != 1 {
		t.Errorf("pauses = %d, want 1", ctrl.pauses)
	}
	if s.IsPlaying() {
		t.Error("expected local flag cleared after pause")
	}
}

func TestToggle_ResumeFromEndedReseeks(t *testing.T) {
	s, ctrl, _ := newTestStore(t)
	startContext(s, "a")
	ctrl.status = player.Status{Playing: false, Ended: true, CurrentTime: 200}

	s.Toggle()

	last, ok := ctrl.lastSeek()
	if !ok {
		t.Fatal("expected a reseek before resuming an ended song")
	}
	if math.Abs(last-(200-resumeRewind)) > 1e-9 {
		t.Errorf("reseek = %v, want %v", last, 200-resumeRewind)
	}
	if !s.IsPlaying() {
		t.Error("expected playing after resume")
	}
}

func TestToggle_ReseeksOnClockDrift(t *testing.T) {
	s, ctrl, _ := newTestStore(t)
	startContext(s, "a")
	s.mu.Lock()
	s.playing = false
	s.currentTime = 30
	s.mu.Unlock()
	ctrl.status = player.Status{Playing: false, CurrentTime: 10}

	s.Toggle()

	if last, ok := ctrl.lastSeek(); !ok || last != 30 {
		t.Errorf("seek = %v %v, want reseek to local position 30", last, ok)
	}
}

func TestToggle_StatusErrorFallsBackToLocalFlag(t *testing.T) {
	s, ctrl, _ := newTestStore(t)
	startContext(s, "a")
	ctrl.statusErr = errors.New("not ready")

	// Local flag says playing, so toggle must pause despite the error.
	s.Toggle()

	if ctrl.pauses != 1 {
		t.Errorf("pauses = %d, want 1", ctrl.pauses)
	}
}

func TestToggle_NoopWithoutSong(t *testing.T) {
	s, ctrl, _ := newTestStore(t)

	s.Toggle()

	if ctrl.plays != 0 || ctrl.pauses != 0 {
		t.Errorf("plays/pauses = %d/%d, want 0/0", ctrl.plays, ctrl.pauses)
	}
}

func TestCued_ReissuesPlayWhenIntentIsPlaying(t *testing.T) {
	s, ctrl, _ := newTestStore(t)
	startContext(s, "a")
	playsBefore := ctrl.plays

	s.handleEvent(player.Event{State: player.Cued})

	if ctrl.plays != playsBefore+1 {
		t.Errorf("plays = %d, want one reissued play after cue race", ctrl.plays)
	}
	if s.CurrentTime() != 0 {
		t.Errorf("CurrentTime = %v, want reset to 0 on cue", s.CurrentTime())
	}
}

func TestCueSong_RestoresPausedPosition(t *testing.T) {
	s, ctrl, _ := newTestStore(t)

	s.CueSong(sg("a"), 42.5)

	if s.IsPlaying() {
		t.Error("cueing must not start playback")
	}
	if ctrl.plays != 0 {
		t.Errorf("plays = %d, want 0", ctrl.plays)
	}
	if len(ctrl.loads) != 1 || ctrl.loads[0] != "a" {
		t.Fatalf("loads = %v, want [a]", ctrl.loads)
	}
	if got := s.CurrentTime(); got != 42.5 {
		t.Errorf("CurrentTime = %v, want 42.5", got)
	}
	if _, ok := ctrl.lastSeek(); ok {
		t.Error("seek issued before the engine acknowledged the cue")
	}

	s.handleEvent(player.Event{State: player.Cued})

	if got, ok := ctrl.lastSeek(); !ok || got != 42.5 {
		t.Errorf("seek after cue = %v, %v, want 42.5", got, ok)
	}
	if got := s.CurrentTime(); got != 42.5 {
		t.Errorf("CurrentTime after cue = %v, want 42.5", got)
	}
	if s.IsPlaying() || ctrl.plays != 0 {
		t.Error("cued song must stay paused until toggled")
	}
}

func TestCueSong_PositionDroppedOnNewPlayback(t *testing.T) {
	s, ctrl, _ := newTestStore(t)

	s.CueSong(sg("a"), 30)
	startContext(s, "b", "c")
	s.handleEvent(player.Event{State: player.Cued})

	if got, ok := ctrl.lastSeek(); ok && got != 0 {
		t.Errorf("restore position %v leaked into new playback", got)
	}
	if s.CurrentTime() != 0 {
		t.Errorf("CurrentTime = %v, want 0 after cue", s.CurrentTime())
	}
}

func TestBuffering_PreservesPlayingFlag(t *testing.T) {
	s, _, _ := newTestStore(t)
	startContext(s, "a")

	s.handleEvent(player.Event{State: player.Buffering})

	if !s.IsPlaying() {
		t.Error("buffering must not flip the playing flag")
	}
}

func TestHandleEvent_IgnoredWithoutCurrentSong(t *testing.T) {
	s, ctrl, _ := newTestStore(t)

	s.handleEvent(player.Event{State: player.Ended})
	s.handleEvent(player.Event{State: player.Playing})

	if s.IsPlaying() {
		t.Error("events without a loaded song must be dropped")
	}
	if ctrl.plays != 0 {
		t.Errorf("plays = %d, want 0", ctrl.plays)
	}
}

func TestSeekTo_ClampsIntoDuration(t *testing.T) {
	s, ctrl, _ := newTestStore(t)
	startContext(s, "a") // DurationSeconds 240

	s.SeekTo(1000)
	if last, _ := ctrl.lastSeek(); last != 240 {
		t.Errorf("seek = %v, want clamp to 240", last)
	}

	s.SeekTo(-5)
	if last, _ := ctrl.lastSeek(); last != 0 {
		t.Errorf("seek = %v, want clamp to 0", last)
	}
}

func TestSeekTo_RejectsNonFinite(t *testing.T) {
	s, ctrl, _ := newTestStore(t)
	startContext(s, "a")

	s.SeekTo(math.NaN())
	s.SeekTo(math.Inf(1))

	if _, ok := ctrl.lastSeek(); ok {
		t.Error("non-finite seek must never reach the adapter")
	}
}

func TestSetVolume_RaisingUnmutes(t *testing.T) {
	s, ctrl, _ := newTestStore(t)
	s.ToggleMute()

	s.SetVolume(40)

	if s.Muted() {
		t.Error("raising volume above zero must unmute")
	}
	if ctrl.unmutes != 1 {
		t.Errorf("unmutes = %d, want 1", ctrl.unmutes)
	}
}

func TestSetVolume_ZeroWhileMutedStaysMuted(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.ToggleMute()

	s.SetVolume(0)

	if !s.Muted() {
		t.Error("setting volume to zero must not unmute")
	}
}

func TestToggleMute_PreservesVolume(t *testing.T) {
	s, ctrl, _ := newTestStore(t)
	s.SetVolume(37)

	s.ToggleMute()
	if s.Volume() != 37 {
		t.Errorf("Volume = %d after mute, want 37 preserved", s.Volume())
	}

	s.ToggleMute()
	ctrl.mu.Lock()
	restored := ctrl.volumes[len(ctrl.volumes)-1]
	ctrl.mu.Unlock()
	if restored != 37 {
		t.Errorf("restored volume = %d, want 37", restored)
	}
}

func TestSetVolume_Clamps(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.SetVolume(150)
	if s.Volume() != 100 {
		t.Errorf("Volume = %d, want 100", s.Volume())
	}
	s.SetVolume(-10)
	if s.Volume() != 0 {
		t.Errorf("Volume = %d, want 0", s.Volume())
	}
}

func TestCycleRepeat_Order(t *testing.T) {
	s, _, _ := newTestStore(t)

	want := []RepeatMode{RepeatAll, RepeatOne, RepeatOff}
	for _, w := range want {
		if got := s.CycleRepeat(); got != w {
			t.Errorf("CycleRepeat = %v, want %v", got, w)
		}
	}
}

func TestLoadLiked_SeedsMembership(t *testing.T) {
	s, _, likes := newTestStore(t)
	likes.songs = []song.Song{sg("a"), sg("b")}

	if err := s.LoadLiked(context.Background()); err != nil {
		t.Fatalf("LoadLiked: %v", err)
	}

	if !s.IsLiked("a") || !s.IsLiked("b") {
		t.Error("expected a and b liked")
	}
	if s.IsLiked("c") {
		t.Error("c must not be liked")
	}
}

func TestToggleLike_OptimisticAndSerialized(t *testing.T) {
	s, _, likes := newTestStore(t)
	likes.gate = make(chan struct{})

	s.ToggleLike(sg("a"))

	// Optimistic: local state flips before the request completes.
	if !s.IsLiked("a") {
		t.Error("expected optimistic like before the request returns")
	}

	// A second toggle while the first is in flight is dropped.
	s.ToggleLike(sg("a"))
	close(likes.gate)

	deadline := time.After(2 * time.Second)
	for {
		likes.mu.Lock()
		n := len(likes.likes) + len(likes.unlikes)
		likes.mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("gateway never called")
		case <-time.After(5 * time.Millisecond):
		}
	}

	time.Sleep(20 * time.Millisecond)
	likes.mu.Lock()
	defer likes.mu.Unlock()
	if len(likes.likes) != 1 || len(likes.unlikes) != 0 {
		t.Errorf("gateway calls = %v likes / %v unlikes, want exactly one like",
			likes.likes, likes.unlikes)
	}
}

func TestToggleLike_NoRollbackOnFailure(t *testing.T) {
	s, _, likes := newTestStore(t)
	likes.err = errors.New("gateway down")
	sub := s.Subscribe()

	s.ToggleLike(sg("a"))

	select {
	case ev := <-sub.Error:
		if ev.Operation != "toggle like" {
			t.Errorf("error operation = %q", ev.Operation)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected an error event")
	}
	if !s.IsLiked("a") {
		t.Error("optimistic state must not be rolled back on failure")
	}
}

func TestSubscribe_ReceivesSongAndModeChanges(t *testing.T) {
	s, _, _ := newTestStore(t)
	sub := s.Subscribe()

	startContext(s, "a", "b")

	select {
	case ev := <-sub.SongChanged:
		if ev.Current.ExternalID != "a" {
			t.Errorf("song change current = %q, want a", ev.Current.ExternalID)
		}
	default:
		t.Fatal("expected a buffered song change")
	}

	s.ToggleShuffle()
	select {
	case ev := <-sub.ModeChanged:
		if !ev.Shuffle {
			t.Error("mode change shuffle = false, want true")
		}
	default:
		t.Fatal("expected a buffered mode change")
	}
}
