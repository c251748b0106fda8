package playback

import "github.com/lbriand/reverb/internal/song"

// resolveNextLocked computes the song that should play after the current
// one. Priority order: explicit queue head, then repeat-one, then the
// active context under the current shuffle and repeat settings. The second
// return is false when playback should stop. Caller holds s.mu.
func (s *store) resolveNextLocked() (song.Song, bool) {
	if head, ok := s.explicit.Pop(); ok {
		s.emitQueueLocked()
		return head, true
	}

	if s.repeat == RepeatOne {
		return s.current, !s.current.IsZero()
	}

	if s.ctx == nil || s.ctx.Len() == 0 {
		return song.Song{}, false
	}

	if s.shuffle {
		return s.resolveShuffleLocked()
	}

	next := s.ctx.CurrentIndex() + 1
	if next >= s.ctx.Len() {
		if s.repeat != RepeatAll {
			return song.Song{}, false
		}
		next = 0
	}
	s.ctx.SetIndex(next)
	sg, _ := s.ctx.Song(next)
	return sg, true
}

// resolveShuffleLocked picks a uniform random context song excluding the
// current index. A single-song context only repeats under repeat-all.
func (s *store) resolveShuffleLocked() (song.Song, bool) {
	n := s.ctx.Len()
	if n == 1 {
		if s.repeat == RepeatAll {
			sg, _ := s.ctx.Song(0)
			return sg, true
		}
		return song.Song{}, false
	}

	cur := s.ctx.CurrentIndex()
	i := s.rng.Intn(n - 1)
	if cur >= 0 && cur < n && i >= cur {
		i++
	}
	s.ctx.SetIndex(i)
	sg, _ := s.ctx.Song(i)
	return sg, true
}
