package playback

import "github.com/lbriand/reverb/internal/song"

const eventBufferSize = 16

// StateChange is emitted when the play/pause flag flips.
type StateChange struct {
	Playing bool
}

// SongChange is emitted when a different song becomes current.
type SongChange struct {
	Previous song.Song
	Current  song.Song
}

// TimeChange carries the sampled clock while playing and after seeks.
type TimeChange struct {
	CurrentTime float64
	Duration    float64
}

// QueueChange is emitted when the explicit queue contents change.
type QueueChange struct {
	Songs []song.Song
}

// ModeChange is emitted when shuffle or repeat changes.
type ModeChange struct {
	Shuffle bool
	Repeat  RepeatMode
}

// LikeChange is emitted on every optimistic like toggle.
type LikeChange struct {
	ExternalID string
	Liked      bool
}

// ErrorEvent carries non-fatal failures (gateway calls, engine faults) to
// the UI. Playback continues regardless.
type ErrorEvent struct {
	Operation string
	Err       error
}

// Subscription provides event channels for one subscriber. Sends are
// non-blocking; a lagging subscriber loses events rather than stalling the
// store.
type Subscription struct {
	StateChanged <-chan StateChange
	SongChanged  <-chan SongChange
	TimeChanged  <-chan TimeChange
	QueueChanged <-chan QueueChange
	ModeChanged  <-chan ModeChange
	LikeChanged  <-chan LikeChange
	Error        <-chan ErrorEvent
	Done         <-chan struct{}

	stateCh chan StateChange
	songCh  chan SongChange
	timeCh  chan TimeChange
	queueCh chan QueueChange
	modeCh  chan ModeChange
	likeCh  chan LikeChange
	errCh   chan ErrorEvent
	doneCh  chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		stateCh: make(chan StateChange, eventBufferSize),
		songCh:  make(chan SongChange, eventBufferSize),
		timeCh:  make(chan TimeChange, eventBufferSize),
		queueCh: make(chan QueueChange, eventBufferSize),
		modeCh:  make(chan ModeChange, eventBufferSize),
		likeCh:  make(chan LikeChange, eventBufferSize),
		errCh:   make(chan ErrorEvent, eventBufferSize),
		doneCh:  make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.SongChanged = s.songCh
	s.TimeChanged = s.timeCh
	s.QueueChanged = s.queueCh
	s.ModeChanged = s.modeCh
	s.LikeChanged = s.likeCh
	s.Error = s.errCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
	}
}

func (s *Subscription) sendSong(e SongChange) {
	select {
	case s.songCh <- e:
	default:
	}
}

func (s *Subscription) sendTime(e TimeChange) {
	select {
	case s.timeCh <- e:
	default:
	}
}

func (s *Subscription) sendQueue(e QueueChange) {
	select {
	case s.queueCh <- e:
	default:
	}
}

func (s *Subscription) sendMode(e ModeChange) {
	select {
	case s.modeCh <- e:
	default:
	}
}

func (s *Subscription) sendLike(e LikeChange) {
	select {
	case s.likeCh <- e:
	default:
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errCh <- e:
	default:
	}
}
