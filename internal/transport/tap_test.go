package transport

import (
	"testing"
	"time"
)

func newTestArbiter(start time.Time) (*Arbiter, *time.Time) {
	clock := start
	a := NewArbiter()
	a.now = func() time.Time { return clock }
	return a, &clock
}

func TestArbiter_TouchPairFiresOnce(t *testing.T) {
	a, _ := newTestArbiter(time.Unix(0, 0))
	calls := 0

	a.Press("toggle", func() { calls++ })
	a.Release("toggle")

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestArbiter_SynthesizedClickAfterTouchSuppressed(t *testing.T) {
	a, clock := newTestArbiter(time.Unix(0, 0))
	calls := 0
	fn := func() { calls++ }

	a.Press("toggle", fn)
	*clock = clock.Add(50 * time.Millisecond)
	a.Release("toggle")
	*clock = clock.Add(10 * time.Millisecond)
	a.Click("toggle", fn)

	if calls != 1 {
		t.Errorf("calls = %d, want exactly 1 for one physical tap", calls)
	}
}

func TestArbiter_PlainClickFires(t *testing.T) {
	a, _ := newTestArbiter(time.Unix(0, 0))
	calls := 0

	a.Click("toggle", func() { calls++ })

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestArbiter_StalePressIsDiscarded(t *testing.T) {
	a, clock := newTestArbiter(time.Unix(0, 0))
	calls := 0

	a.Press("toggle", func() { calls++ })
	*clock = clock.Add(TapThreshold + time.Millisecond)
	a.Release("toggle")

	if calls != 0 {
		t.Errorf("calls = %d, want 0 for a release past the threshold", calls)
	}
}

func TestArbiter_ClickAfterThresholdFires(t *testing.T) {
	a, clock := newTestArbiter(time.Unix(0, 0))
	calls := 0
	fn := func() { calls++ }

	a.Press("toggle", fn)
	a.Release("toggle")
	*clock = clock.Add(TapThreshold + time.Millisecond)
	a.Click("toggle", fn)

	if calls != 2 {
		t.Errorf("calls = %d, want 2: a click this late is a new gesture", calls)
	}
}

func TestArbiter_ControlsAreIndependent(t *testing.T) {
	a, _ := newTestArbiter(time.Unix(0, 0))
	toggles, nexts := 0, 0

	a.Press("toggle", func() { toggles++ })
	a.Click("next", func() { nexts++ })
	a.Release("toggle")

	if toggles != 1 || nexts != 1 {
		t.Errorf("toggles/nexts = %d/%d, want 1/1", toggles, nexts)
	}
}

func TestArbiter_ReleaseWithoutPress(t *testing.T) {
	a, _ := newTestArbiter(time.Unix(0, 0))

	a.Release("toggle") // must not panic or fire anything
}

func TestArbiter_RepeatedReleaseFiresOnce(t *testing.T) {
	a, _ := newTestArbiter(time.Unix(0, 0))
	calls := 0

	a.Press("toggle", func() { calls++ })
	a.Release("toggle")
	a.Release("toggle")

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
