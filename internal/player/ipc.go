package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const queryTimeout = 2 * time.Second

// IPCEngine reaches the embedded player's helper process over a unix
// socket speaking newline-delimited JSON. Bootstrap dials at most once per
// engine regardless of how many callers mount; later ready callbacks chain
// onto the pending connection instead of racing it.
type IPCEngine struct {
	socketPath string
	logger     *log.Logger

	mu        sync.Mutex
	dialed    bool
	inst      *ipcInstance
	callbacks []func(Instance)
}

// NewIPCEngine creates an engine that will connect to socketPath.
func NewIPCEngine(socketPath string, logger *log.Logger) *IPCEngine {
	if logger == nil {
		logger = log.Default()
	}
	return &IPCEngine{
		socketPath: socketPath,
		logger:     logger.With("component", "engine"),
	}
}

// Bootstrap implements Engine.
func (e *IPCEngine) Bootstrap(ready func(Instance)) error {
	e.mu.Lock()
	if e.inst != nil {
		inst := e.inst
		e.mu.Unlock()
		ready(inst)
		return nil
	}
	e.callbacks = append(e.callbacks, ready)
	if e.dialed {
		// A connection attempt is already in flight; this mount chains.
		e.mu.Unlock()
		return nil
	}
	e.dialed = true
	e.mu.Unlock()

	go e.connect()
	return nil
}

func (e *IPCEngine) connect() {
	conn, err := net.Dial("unix", e.socketPath)
	if err != nil {
		e.logger.Error("engine socket unreachable", "path", e.socketPath, "err", err)
		e.mu.Lock()
		e.dialed = false // allow a later mount to try again
		e.mu.Unlock()
		return
	}

	inst := newIPCInstance(conn, e.logger)
	go inst.readLoop()

	e.mu.Lock()
	e.inst = inst
	cbs := e.callbacks
	e.callbacks = nil
	e.mu.Unlock()

	for _, cb := range cbs {
		cb(inst)
	}
}

type ipcCommand struct {
	ID      int64    `json:"id,omitempty"`
	Op      string   `json:"op"`
	VideoID string   `json:"video_id,omitempty"`
	Seconds *float64 `json:"seconds,omitempty"`
	Level   *int     `json:"level,omitempty"`

	Controls *bool `json:"controls,omitempty"`
	Keyboard *bool `json:"keyboard,omitempty"`
	Inline   *bool `json:"inline,omitempty"`
	Related  *bool `json:"related,omitempty"`
}

type ipcMessage struct {
	ID       int64    `json:"id,omitempty"`
	Op       string   `json:"op,omitempty"`
	State    *int     `json:"state,omitempty"`
	Time     *float64 `json:"time,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
	Error    string   `json:"error,omitempty"`
}

type ipcInstance struct {
	logger *log.Logger

	writeMu sync.Mutex
	conn    net.Conn

	mu      sync.Mutex
	nextID  int64
	waiting map[int64]chan ipcMessage
	onState func(code int)
}

func newIPCInstance(conn net.Conn, logger *log.Logger) *ipcInstance {
	return &ipcInstance{
		logger:  logger,
		conn:    conn,
		waiting: make(map[int64]chan ipcMessage),
	}
}

func (i *ipcInstance) readLoop() {
	scanner := bufio.NewScanner(i.conn)
	for scanner.Scan() {
		var msg ipcMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			i.logger.Warn("malformed engine message", "err", err)
			continue
		}
		switch {
		case msg.ID != 0:
			i.mu.Lock()
			ch, ok := i.waiting[msg.ID]
			delete(i.waiting, msg.ID)
			i.mu.Unlock()
			if ok {
				ch <- msg
			}
		case msg.Op == "state" && msg.State != nil:
			i.mu.Lock()
			fn := i.onState
			i.mu.Unlock()
			if fn != nil {
				fn(*msg.State)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		i.logger.Warn("engine connection lost", "err", err)
	}
}

func (i *ipcInstance) send(cmd ipcCommand) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	i.writeMu.Lock()
	defer i.writeMu.Unlock()
	_, err = i.conn.Write(append(data, '\n'))
	return err
}

func (i *ipcInstance) query(op string) (ipcMessage, error) {
	i.mu.Lock()
	i.nextID++
	id := i.nextID
	ch := make(chan ipcMessage, 1)
	i.waiting[id] = ch
	i.mu.Unlock()

	if err := i.send(ipcCommand{ID: id, Op: op}); err != nil {
		i.mu.Lock()
		delete(i.waiting, id)
		i.mu.Unlock()
		return ipcMessage{}, err
	}

	select {
	case msg := <-ch:
		if msg.Error != "" {
			return ipcMessage{}, fmt.Errorf("engine: %s", msg.Error)
		}
		return msg, nil
	case <-time.After(queryTimeout):
		i.mu.Lock()
		delete(i.waiting, id)
		i.mu.Unlock()
		return ipcMessage{}, fmt.Errorf("engine: %s timed out", op)
	}
}

func (i *ipcInstance) Configure(opts InstanceOptions) error {
	controls := !opts.DisableControls
	keyboard := !opts.DisableKeyboard
	related := !opts.SuppressRelated
	return i.send(ipcCommand{
		Op:       "configure",
		Controls: &controls,
		Keyboard: &keyboard,
		Inline:   &opts.Inline,
		Related:  &related,
	})
}

func (i *ipcInstance) LoadVideoByID(externalID string) error {
	return i.send(ipcCommand{Op: "load", VideoID: externalID})
}

func (i *ipcInstance) PlayVideo() error {
	return i.send(ipcCommand{Op: "play"})
}

func (i *ipcInstance) PauseVideo() error {
	return i.send(ipcCommand{Op: "pause"})
}

func (i *ipcInstance) SeekTo(seconds float64) error {
	return i.send(ipcCommand{Op: "seek", Seconds: &seconds})
}

func (i *ipcInstance) SetVolume(volume int) error {
	return i.send(ipcCommand{Op: "volume", Level: &volume})
}

func (i *ipcInstance) Mute() error {
	return i.send(ipcCommand{Op: "mute"})
}

func (i *ipcInstance) Unmute() error {
	return i.send(ipcCommand{Op: "unmute"})
}

func (i *ipcInstance) PlayerState() (int, error) {
	msg, err := i.query("get_state")
	if err != nil {
		return rawUnstarted, err
	}
	if msg.State == nil {
		return rawUnstarted, fmt.Errorf("engine: state missing from response")
	}
	return *msg.State, nil
}

func (i *ipcInstance) CurrentTime() (float64, error) {
	msg, err := i.query("get_time")
	if err != nil {
		return 0, err
	}
	if msg.Time == nil {
		return 0, fmt.Errorf("engine: time missing from response")
	}
	return *msg.Time, nil
}

func (i *ipcInstance) Duration() (float64, error) {
	msg, err := i.query("get_duration")
	if err != nil {
		return 0, err
	}
	if msg.Duration == nil {
		return 0, fmt.Errorf("engine: duration missing from response")
	}
	return *msg.Duration, nil
}

func (i *ipcInstance) OnStateChange(fn func(code int)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.onState = fn
}

var (
	_ Engine   = (*IPCEngine)(nil)
	_ Instance = (*ipcInstance)(nil)
)
