package transport

import (
	"math"

	"github.com/lbriand/reverb/internal/playback"
	"github.com/lbriand/reverb/internal/song"
)

// Control names used to pair touch presses with their releases and to
// match duplicate click deliveries.
const (
	controlToggle   = "toggle"
	controlNext     = "next"
	controlPrevious = "previous"
	controlShuffle  = "shuffle"
	controlRepeat   = "repeat"
	controlMute     = "mute"
	controlLike     = "like"
)

// Surface relays gestures to the playback service. It owns no playback
// state and never talks to the player adapter; everything goes through
// service operations.
type Surface struct {
	svc  playback.Service
	taps *Arbiter
}

// NewSurface creates a transport surface over the playback service.
func NewSurface(svc playback.Service) *Surface {
	return &Surface{svc: svc, taps: NewArbiter()}
}

// Touch-pair entry points. Press records the gesture, Release commits it.

func (s *Surface) TogglePress()   { s.taps.Press(controlToggle, s.svc.Toggle) }
func (s *Surface) ToggleRelease() { s.taps.Release(controlToggle) }

func (s *Surface) NextPress()   { s.taps.Press(controlNext, s.svc.Next) }
func (s *Surface) NextRelease() { s.taps.Release(controlNext) }

func (s *Surface) PreviousPress()   { s.taps.Press(controlPrevious, s.svc.Previous) }
func (s *Surface) PreviousRelease() { s.taps.Release(controlPrevious) }

func (s *Surface) ShufflePress()   { s.taps.Press(controlShuffle, func() { s.svc.ToggleShuffle() }) }
func (s *Surface) ShuffleRelease() { s.taps.Release(controlShuffle) }

func (s *Surface) RepeatPress()   { s.taps.Press(controlRepeat, func() { s.svc.CycleRepeat() }) }
func (s *Surface) RepeatRelease() { s.taps.Release(controlRepeat) }

func (s *Surface) MutePress()   { s.taps.Press(controlMute, s.svc.ToggleMute) }
func (s *Surface) MuteRelease() { s.taps.Release(controlMute) }

// Click entry points for the same controls. Suppressed when the click is
// the duplicate delivery of a touch tap already committed.

func (s *Surface) ToggleClick()   { s.taps.Click(controlToggle, s.svc.Toggle) }
func (s *Surface) NextClick()     { s.taps.Click(controlNext, s.svc.Next) }
func (s *Surface) PreviousClick() { s.taps.Click(controlPrevious, s.svc.Previous) }
func (s *Surface) ShuffleClick()  { s.taps.Click(controlShuffle, func() { s.svc.ToggleShuffle() }) }
func (s *Surface) RepeatClick()   { s.taps.Click(controlRepeat, func() { s.svc.CycleRepeat() }) }
func (s *Surface) MuteClick()     { s.taps.Click(controlMute, s.svc.ToggleMute) }

// LikeClick toggles the liked state of the given song.
func (s *Surface) LikeClick(sg song.Song) {
	s.taps.Click(controlLike, func() { s.svc.ToggleLike(sg) })
}

// LikePress records a like tap for the given song.
func (s *Surface) LikePress(sg song.Song) {
	s.taps.Press(controlLike, func() { s.svc.ToggleLike(sg) })
}

// LikeRelease commits a pending like tap.
func (s *Surface) LikeRelease() { s.taps.Release(controlLike) }

// Scrub seeks to a fraction of the song. The fraction is clamped into
// [0, 1] and non-finite input is dropped before it can poison the clock.
func (s *Surface) Scrub(fraction float64) {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		return
	}
	fraction = math.Max(0, math.Min(fraction, 1))
	duration := s.svc.Duration()
	if duration <= 0 {
		return
	}
	s.svc.SeekTo(fraction * duration)
}

// SeekBy moves the playhead by a relative amount of seconds.
func (s *Surface) SeekBy(delta float64) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	s.svc.SeekTo(s.svc.CurrentTime() + delta)
}

// SetVolume sets the absolute output level.
func (s *Surface) SetVolume(volume int) {
	s.svc.SetVolume(volume)
}

// VolumeBy adjusts the output level by a relative step.
func (s *Surface) VolumeBy(delta int) {
	s.svc.SetVolume(s.svc.Volume() + delta)
}
