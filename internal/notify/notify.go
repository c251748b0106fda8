// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"github.com/lbriand/reverb/internal/song"
)

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// SongChanges announces now-playing songs, replacing the previous
// notification so rapid skips do not stack popups.
type SongChanges struct {
	notifier Notifier
	lastID   uint32
}

// NewSongChanges wraps a Notifier for now-playing announcements.
func NewSongChanges(n Notifier) *SongChanges {
	return &SongChanges{notifier: n}
}

// Announce shows a notification for the given song.
func (sc *SongChanges) Announce(sg song.Song) {
	if sg.IsZero() {
		return
	}
	id, err := sc.notifier.Notify(Notification{
		Title:      sg.Title,
		Body:       song.PrimaryArtist(sg.Artist),
		Timeout:    5000,
		ReplacesID: sc.lastID,
		Urgency:    UrgencyLow,
	})
	if err == nil && id != 0 {
		sc.lastID = id
	}
}
