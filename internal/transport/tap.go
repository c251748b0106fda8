// Package transport is the UI-facing command layer: it translates user
// gestures into playback service operations, validates input, and
// de-duplicates touch and click deliveries of the same physical tap.
package transport

import (
	"sync"
	"time"
)

// TapThreshold bounds how long after a touch press its release still
// counts as the same tap, and how long a completed touch suppresses the
// synthesized click that terminals and pointer stacks deliver for it.
const TapThreshold = 500 * time.Millisecond

type pendingTap struct {
	fn func()
	at time.Time
}

// Arbiter guarantees at most one callback invocation per logical tap even
// when the input stack reports the gesture twice, once as a touch pair and
// once as a synthesized click.
type Arbiter struct {
	mu      sync.Mutex
	now     func() time.Time
	pending map[string]pendingTap
}

// NewArbiter creates a tap arbiter.
func NewArbiter() *Arbiter {
	return &Arbiter{
		now:     time.Now,
		pending: make(map[string]pendingTap),
	}
}

// Press records a touch press on the named control together with the
// action to run when the tap completes.
func (a *Arbiter) Press(control string, fn func()) {
	if fn == nil {
		return
	}
	a.mu.Lock()
	a.pending[control] = pendingTap{fn: fn, at: a.now()}
	a.mu.Unlock()
}

// Release completes a touch tap. The recorded action runs exactly once if
// the press is still within the threshold; a stale press is discarded.
// The consumed entry keeps suppressing click deliveries until it expires.
func (a *Arbiter) Release(control string) {
	a.mu.Lock()
	p, ok := a.pending[control]
	if !ok {
		a.mu.Unlock()
		return
	}
	if a.now().Sub(p.at) > TapThreshold {
		delete(a.pending, control)
		a.mu.Unlock()
		return
	}
	if p.fn == nil {
		// Already consumed; a repeated release changes nothing.
		a.mu.Unlock()
		return
	}
	fn := p.fn
	// Keep the entry with the action removed so the synthesized click
	// that follows the touch pair finds it and backs off.
	a.pending[control] = pendingTap{at: p.at}
	a.mu.Unlock()

	fn()
}

// Click handles a plain click on the named control. The action runs only
// when no touch sequence for that control is pending or freshly consumed;
// otherwise the click is the duplicate delivery of a tap already handled.
func (a *Arbiter) Click(control string, fn func()) {
	if fn == nil {
		return
	}
	a.mu.Lock()
	p, ok := a.pending[control]
	if ok && a.now().Sub(p.at) <= TapThreshold {
		a.mu.Unlock()
		return
	}
	if ok {
		delete(a.pending, control)
	}
	a.mu.Unlock()

	fn()
}
