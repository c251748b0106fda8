//go:build linux

// Package wakelock keeps the system from idling while playback is
// active, using a systemd-logind idle inhibitor.
package wakelock

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/godbus/dbus/v5"
)

const (
	login1Service = "org.freedesktop.login1"
	login1Path    = "/org/freedesktop/login1"
	inhibitMethod = "org.freedesktop.login1.Manager.Inhibit"
)

// Lock holds at most one idle inhibitor. Acquire and Release are
// idempotent: acquiring while held and releasing while not held are safe
// no-ops.
type Lock struct {
	mu     sync.Mutex
	conn   *dbus.Conn
	fd     *os.File
	logger *log.Logger
}

// New creates an unheld lock.
func New(logger *log.Logger) *Lock {
	if logger == nil {
		logger = log.Default()
	}
	return &Lock{logger: logger.With("component", "wakelock")}
}

// Acquire takes the idle inhibitor. Failures are logged and swallowed;
// playback never depends on the lock.
func (l *Lock) Acquire() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fd != nil {
		return
	}

	fd, err := l.inhibit()
	if err != nil {
		l.logger.Debug("could not acquire idle inhibitor", "err", err)
		return
	}
	l.fd = fd
}

// Release drops the inhibitor if held.
func (l *Lock) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fd == nil {
		return
	}
	// logind releases the inhibitor when its fd closes.
	_ = l.fd.Close()
	l.fd = nil
}

// Held reports whether the inhibitor is currently held.
func (l *Lock) Held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fd != nil
}

// Close releases the inhibitor and the D-Bus connection.
func (l *Lock) Close() {
	l.Release()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn != nil {
		_ = l.conn.Close()
		l.conn = nil
	}
}

// inhibit calls logind. Caller holds l.mu.
func (l *Lock) inhibit() (*os.File, error) {
	if l.conn == nil {
		conn, err := dbus.ConnectSystemBus()
		if err != nil {
			return nil, fmt.Errorf("connect system bus: %w", err)
		}
		l.conn = conn
	}

	var fd dbus.UnixFD
	obj := l.conn.Object(login1Service, login1Path)
	err := obj.Call(inhibitMethod, 0,
		"idle", "reverb", "Music video playing", "block").Store(&fd)
	if err != nil {
		return nil, fmt.Errorf("inhibit: %w", err)
	}
	return os.NewFile(uintptr(fd), "login1-inhibitor"), nil
}
