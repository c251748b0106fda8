package player

import "time"

// State is the closed set of semantic lifecycle states the adapter derives
// from the engine's raw numeric codes. The store never sees raw codes.
type State int

const (
	Unstarted State = iota
	Ended
	Playing
	Paused
	Buffering
	Cued
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unstarted:
		return "Unstarted"
	case Ended:
		return "Ended"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Buffering:
		return "Buffering"
	case Cued:
		return "Cued"
	default:
		return "Unknown"
	}
}

// normalizeState maps a raw engine code onto the semantic set. Unknown
// codes map to Unstarted and are ignored by the store.
func normalizeState(code int) State {
	switch code {
	case rawEnded:
		return Ended
	case rawPlaying:
		return Playing
	case rawPaused:
		return Paused
	case rawBuffering:
		return Buffering
	case rawCued:
		return Cued
	default:
		return Unstarted
	}
}

// Snapshot is a best-effort timestamped reading of the engine's clock.
// Zero values mean the engine could not be queried at that moment.
type Snapshot struct {
	CurrentTime float64
	Duration    float64
	At          time.Time
}

// Event is one normalized lifecycle transition plus the clock reading taken
// when it was observed.
type Event struct {
	State    State
	Snapshot Snapshot
}

// Status answers the store's "what is actually happening" query, used to
// branch play/pause on the engine's truth instead of local state.
type Status struct {
	CurrentTime float64
	Duration    float64
	Playing     bool
	Ended       bool
}
