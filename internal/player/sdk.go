package player

import "errors"

// Raw lifecycle codes as documented by the embedded engine's SDK.
const (
	rawUnstarted = -1
	rawEnded     = 0
	rawPlaying   = 1
	rawPaused    = 2
	rawBuffering = 3
	rawCued      = 5
)

// ErrNotReady is returned by engine queries issued before bootstrap
// completes. Control operations never return it: the adapter queues them.
var ErrNotReady = errors.New("player engine not ready")

// InstanceOptions is the non-interactive configuration applied to every
// instance before it is handed to callers: no native controls, no keyboard
// shortcuts, inline playback, no related-video suggestions.
type InstanceOptions struct {
	DisableControls bool
	DisableKeyboard bool
	Inline          bool
	SuppressRelated bool
}

// Engine is the external embeddable player's entry point. It is an
// asynchronously initialized black box: Bootstrap may complete on another
// goroutine long after the call returns.
//
// Implementations must make bootstrap idempotent per process and must chain
// ready callbacks: a second Bootstrap while one is pending composes with
// the first instead of replacing it, and a Bootstrap after readiness
// invokes ready immediately with the live instance.
type Engine interface {
	Bootstrap(ready func(Instance)) error
}

// Instance is one live player bound to its playback surface. Any method
// may fail transiently, especially clock queries issued mid-transition;
// callers treat failures as no-ops.
type Instance interface {
	Configure(opts InstanceOptions) error

	LoadVideoByID(externalID string) error
	PlayVideo() error
	PauseVideo() error
	SeekTo(seconds float64) error

	SetVolume(volume int) error
	Mute() error
	Unmute() error

	PlayerState() (int, error)
	CurrentTime() (float64, error)
	Duration() (float64, error)

	// OnStateChange registers the raw lifecycle callback. Only one
	// subscriber is supported; the adapter owns it.
	OnStateChange(fn func(code int))
}
