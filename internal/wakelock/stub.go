//go:build !linux

package wakelock

import "github.com/charmbracelet/log"

// Lock is a no-op on non-Linux platforms.
type Lock struct{}

// New returns a no-op lock on non-Linux platforms.
func New(_ *log.Logger) *Lock { return &Lock{} }

// Acquire is a no-op on non-Linux platforms.
func (l *Lock) Acquire() {}

// Release is a no-op on non-Linux platforms.
func (l *Lock) Release() {}

// Held always reports false on non-Linux platforms.
func (l *Lock) Held() bool { return false }

// Close is a no-op on non-Linux platforms.
func (l *Lock) Close() {}
