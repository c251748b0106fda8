//go:build !linux

package notify

// New returns a no-op Notifier on platforms without D-Bus.
func New() (Notifier, error) {
	return nopNotifier{}, nil
}

type nopNotifier struct{}

func (nopNotifier) Notify(_ Notification) (uint32, error) { return 0, nil }

func (nopNotifier) Close(_ uint32) error { return nil }
