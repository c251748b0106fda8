package playback

import (
	"context"

	"github.com/lbriand/reverb/internal/song"
)

// LoadLiked fetches the liked set from the gateway and seeds the local
// membership map. Call once at startup after authentication.
func (s *store) LoadLiked(ctx context.Context) error {
	songs, err := s.likes.LikedSongs(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.liked = make(map[string]bool, len(songs))
	for _, sg := range songs {
		if sg.ExternalID != "" {
			s.liked[sg.ExternalID] = true
		}
	}
	return nil
}

// IsLiked reports local liked-set membership.
func (s *store) IsLiked(externalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liked[externalID]
}

// ToggleLike flips the liked state optimistically and fires the gateway
// call in the background. Requests are serialized per song: a toggle while
// one is still in flight for the same song is dropped. A failed request is
// logged and surfaced as an error event but the local state is not rolled
// back; the next LoadLiked reconciles.
func (s *store) ToggleLike(sg song.Song) {
	id := sg.ExternalID
	if id == "" {
		return
	}

	s.mu.Lock()
	if s.likeBusy[id] {
		s.mu.Unlock()
		return
	}
	s.likeBusy[id] = true
	wasLiked := s.liked[id]
	s.liked[id] = !wasLiked
	s.mu.Unlock()

	s.emitLike(id, !wasLiked)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), likeTimeout)
		defer cancel()

		var err error
		if wasLiked {
			err = s.likes.Unlike(ctx, id)
		} else {
			err = s.likes.Like(ctx, sg)
		}

		s.mu.Lock()
		delete(s.likeBusy, id)
		s.mu.Unlock()

		if err != nil {
			s.logger.Error("like toggle failed", "song", id, "err", err)
			s.emitError("toggle like", err)
		}
	}()
}
