package player

import "sync"

// MockEngine is a test double for the external engine. Bootstrap does not
// complete until Deliver is called, which mirrors the asynchronous script
// injection of the real SDK and lets tests exercise the pending-operation
// queue.
type MockEngine struct {
	mu        sync.Mutex
	inst      *MockInstance
	ready     bool
	callbacks []func(Instance)
	bootCalls int
}

// NewMockEngine creates a mock engine that will hand out inst.
func NewMockEngine(inst *MockInstance) *MockEngine {
	return &MockEngine{inst: inst}
}

func (e *MockEngine) Bootstrap(ready func(Instance)) error {
	e.mu.Lock()
	e.bootCalls++
	if e.ready {
		inst := e.inst
		e.mu.Unlock()
		ready(inst)
		return nil
	}
	e.callbacks = append(e.callbacks, ready)
	e.mu.Unlock()
	return nil
}

// Deliver completes bootstrap, invoking every chained ready callback in
// registration order.
func (e *MockEngine) Deliver() {
	e.mu.Lock()
	e.ready = true
	cbs := e.callbacks
	e.callbacks = nil
	inst := e.inst
	e.mu.Unlock()
	for _, cb := range cbs {
		cb(inst)
	}
}

// BootstrapCalls returns how many times Bootstrap was invoked.
func (e *MockEngine) BootstrapCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bootCalls
}

// MockInstance is a recorded-call test double for one live player.
type MockInstance struct {
	mu sync.Mutex

	stateCode   int
	currentTime float64
	duration    float64
	volume      int
	muted       bool
	configured  InstanceOptions

	loadCalls   []string
	seekCalls   []float64
	playCalls   int
	pauseCalls  int
	volumeCalls []int

	queryErr error
	callErr  error

	onState func(code int)
}

// NewMockInstance creates an unstarted mock instance.
func NewMockInstance() *MockInstance {
	return &MockInstance{stateCode: rawUnstarted}
}

func (m *MockInstance) Configure(opts InstanceOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configured = opts
	return m.callErr
}

func (m *MockInstance) LoadVideoByID(externalID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, externalID)
	return m.callErr
}

func (m *MockInstance) PlayVideo() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	if m.callErr != nil {
		return m.callErr
	}
	m.stateCode = rawPlaying
	return nil
}

func (m *MockInstance) PauseVideo() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
	if m.callErr != nil {
		return m.callErr
	}
	m.stateCode = rawPaused
	return nil
}

func (m *MockInstance) SeekTo(seconds float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, seconds)
	if m.callErr != nil {
		return m.callErr
	}
	m.currentTime = seconds
	return nil
}

func (m *MockInstance) SetVolume(volume int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumeCalls = append(m.volumeCalls, volume)
	if m.callErr != nil {
		return m.callErr
	}
	m.volume = volume
	return nil
}

func (m *MockInstance) Mute() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.callErr != nil {
		return m.callErr
	}
	m.muted = true
	return nil
}

func (m *MockInstance) Unmute() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.callErr != nil {
		return m.callErr
	}
	m.muted = false
	return nil
}

func (m *MockInstance) PlayerState() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queryErr != nil {
		return 0, m.queryErr
	}
	return m.stateCode, nil
}

func (m *MockInstance) CurrentTime() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queryErr != nil {
		return 0, m.queryErr
	}
	return m.currentTime, nil
}

func (m *MockInstance) Duration() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queryErr != nil {
		return 0, m.queryErr
	}
	return m.duration, nil
}

func (m *MockInstance) OnStateChange(fn func(code int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onState = fn
}

// Test helpers

// EmitState fires the raw lifecycle callback with the given code.
func (m *MockInstance) EmitState(code int) {
	m.mu.Lock()
	m.stateCode = code
	fn := m.onState
	m.mu.Unlock()
	if fn != nil {
		fn(code)
	}
}

func (m *MockInstance) SetClock(currentTime, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = currentTime
	m.duration = duration
}

func (m *MockInstance) SetQueryError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryErr = err
}

func (m *MockInstance) SetCallError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callErr = err
}

func (m *MockInstance) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loadCalls...)
}

func (m *MockInstance) SeekCalls() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.seekCalls...)
}

func (m *MockInstance) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *MockInstance) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

func (m *MockInstance) Volume() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *MockInstance) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

func (m *MockInstance) Configured() InstanceOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.configured
}

// Verify the doubles satisfy the SDK contracts at compile time.
var (
	_ Engine   = (*MockEngine)(nil)
	_ Instance = (*MockInstance)(nil)
)
