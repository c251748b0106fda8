// Package player wraps the external embeddable video engine behind a
// single logical handle. The engine bootstraps asynchronously, binds to a
// concrete playback surface, and reports lifecycle through raw numeric
// codes; the adapter normalizes all of that into the event stream the
// playback store consumes, and shields the store from every engine fault.
package player

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	eventBufferSize = 16
	baselineVolume  = 100
)

var instanceOptions = InstanceOptions{
	DisableControls: true,
	DisableKeyboard: true,
	Inline:          true,
	SuppressRelated: true,
}

// Adapter presents one logical "current player" to the rest of the system.
// It never recreates the underlying instance on song changes: an in-place
// load avoids the audible gap and keeps the engine's audio-session
// registration, which background playback depends on.
type Adapter struct {
	mu      sync.Mutex
	engine  Engine
	logger  *log.Logger
	inst    Instance
	pending []func(Instance)
	mounted bool

	events chan Event
}

// NewAdapter creates an adapter over the given engine. Nothing happens
// until Mount is called.
func NewAdapter(engine Engine, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{
		engine: engine,
		logger: logger.With("component", "player"),
		events: make(chan Event, eventBufferSize),
	}
}

// Mount bootstraps the engine. Calling it again while bootstrap is pending
// or after readiness is safe: the engine chains ready callbacks, so mounts
// compose instead of clobbering each other. The optional onReady callback
// fires after the instance has been configured and set to the baseline
// volume, never before.
func (a *Adapter) Mount(onReady func()) {
	err := a.engine.Bootstrap(func(inst Instance) {
		a.handleReady(inst)
		if onReady != nil {
			onReady()
		}
	})
	if err != nil {
		a.logger.Error("engine bootstrap failed", "err", err)
	}
}

func (a *Adapter) handleReady(inst Instance) {
	a.mu.Lock()
	if a.mounted {
		// A later mount attempt re-delivered the same instance.
		a.mu.Unlock()
		return
	}
	a.inst = inst
	a.mounted = true
	queued := a.pending
	a.pending = nil
	a.mu.Unlock()

	inst.OnStateChange(a.handleStateChange)

	// Configure non-interactively and establish a known audio baseline
	// before anyone can issue commands.
	a.try("configure", func() error { return inst.Configure(instanceOptions) })
	a.try("unmute", inst.Unmute)
	a.try("set baseline volume", func() error { return inst.SetVolume(baselineVolume) })

	for _, op := range queued {
		op(inst)
	}
}

// Events returns the normalized lifecycle stream. Events are dropped, not
// blocked on, when the consumer lags.
func (a *Adapter) Events() <-chan Event {
	return a.events
}

func (a *Adapter) handleStateChange(code int) {
	ev := Event{State: normalizeState(code), Snapshot: a.snapshot()}
	select {
	case a.events <- ev:
	default:
		a.logger.Warn("event dropped, consumer lagging", "state", ev.State)
	}
}

// snapshot reads the engine clock, best effort. The engine may throw if
// queried mid-transition; that yields a zero snapshot, not an error.
func (a *Adapter) snapshot() Snapshot {
	snap := Snapshot{At: time.Now()}
	a.mu.Lock()
	inst := a.inst
	a.mu.Unlock()
	if inst == nil {
		return snap
	}
	if t, err := inst.CurrentTime(); err == nil {
		snap.CurrentTime = t
	}
	if d, err := inst.Duration(); err == nil {
		snap.Duration = d
	}
	return snap
}

// do runs op against the live instance, or queues it behind the ready
// callback when bootstrap has not completed. Engine failures are logged
// and swallowed: they never reach the store, and there is no retry. The
// usual cause is a transient state mismatch the next natural event clears.
func (a *Adapter) do(name string, op func(Instance) error) {
	a.mu.Lock()
	if !a.mounted {
		a.pending = append(a.pending, func(inst Instance) {
			a.runOp(name, inst, op)
		})
		a.mu.Unlock()
		return
	}
	inst := a.inst
	a.mu.Unlock()
	a.runOp(name, inst, op)
}

func (a *Adapter) runOp(name string, inst Instance, op func(Instance) error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("engine panicked", "op", name, "panic", r)
		}
	}()
	if err := op(inst); err != nil {
		a.logger.Warn("engine call failed", "op", name, "err", err)
	}
}

func (a *Adapter) try(name string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("engine panicked", "op", name, "panic", r)
		}
	}()
	if err := fn(); err != nil {
		a.logger.Warn("engine call failed", "op", name, "err", err)
	}
}

// LoadSong loads the given video into the live instance in place.
func (a *Adapter) LoadSong(externalID string) {
	a.do("load song", func(inst Instance) error {
		return inst.LoadVideoByID(externalID)
	})
}

// Play starts or resumes playback.
func (a *Adapter) Play() {
	a.do("play", Instance.PlayVideo)
}

// Pause pauses playback.
func (a *Adapter) Pause() {
	a.do("pause", Instance.PauseVideo)
}

// Seek moves the engine clock to the given position in seconds. Range
// validation is the store's job; the adapter forwards what it is given.
func (a *Adapter) Seek(seconds float64) {
	a.do("seek", func(inst Instance) error {
		return inst.SeekTo(seconds)
	})
}

// SetVolume sets the output level, 0-100.
func (a *Adapter) SetVolume(volume int) {
	a.do("set volume", func(inst Instance) error {
		return inst.SetVolume(volume)
	})
}

// Mute silences output without touching the stored level.
func (a *Adapter) Mute() {
	a.do("mute", Instance.Mute)
}

// Unmute restores output.
func (a *Adapter) Unmute() {
	a.do("unmute", Instance.Unmute)
}

// Status queries the engine's actual state. Unlike control operations this
// does return an error, so the store can fall back on its local flag when
// the engine cannot be asked.
func (a *Adapter) Status() (Status, error) {
	a.mu.Lock()
	inst := a.inst
	mounted := a.mounted
	a.mu.Unlock()
	if !mounted {
		return Status{}, ErrNotReady
	}

	code, err := inst.PlayerState()
	if err != nil {
		return Status{}, err
	}
	st := Status{
		Playing: normalizeState(code) == Playing,
		Ended:   normalizeState(code) == Ended,
	}
	if t, err := inst.CurrentTime(); err == nil {
		st.CurrentTime = t
	}
	if d, err := inst.Duration(); err == nil {
		st.Duration = d
	}
	return st, nil
}

// Ready reports whether the engine has delivered its instance.
func (a *Adapter) Ready() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mounted
}
