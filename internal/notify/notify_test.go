package notify

import (
	"testing"

	"github.com/lbriand/reverb/internal/song"
)

type recordNotifier struct {
	sent   []Notification
	nextID uint32
}

func (r *recordNotifier) Notify(n Notification) (uint32, error) {
	r.sent = append(r.sent, n)
	r.nextID++
	return r.nextID, nil
}

func (r *recordNotifier) Close(uint32) error { return nil }

func TestAnnounceReplacesPrevious(t *testing.T) {
	rec := &recordNotifier{}
	sc := NewSongChanges(rec)

	sc.Announce(song.Song{ExternalID: "a", Title: "First", Artist: "X"})
	sc.Announce(song.Song{ExternalID: "b", Title: "Second", Artist: "Y|Topic"})

	if len(rec.sent) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(rec.sent))
	}
	if rec.sent[0].ReplacesID != 0 {
		t.Errorf("first notification ReplacesID = %d, want 0", rec.sent[0].ReplacesID)
	}
	if rec.sent[1].ReplacesID != 1 {
		t.Errorf("second notification ReplacesID = %d, want 1", rec.sent[1].ReplacesID)
	}
	if rec.sent[1].Body != "Y" {
		t.Errorf("body = %q, want primary artist %q", rec.sent[1].Body, "Y")
	}
}

func TestAnnounceSkipsZeroSong(t *testing.T) {
	rec := &recordNotifier{}
	sc := NewSongChanges(rec)

	sc.Announce(song.Song{})
	if len(rec.sent) != 0 {
		t.Errorf("sent %d notifications, want 0", len(rec.sent))
	}
}
