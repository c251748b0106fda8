package views

import (
	"context"
	"fmt"

	"github.com/lbriand/reverb/internal/playback"
	"github.com/lbriand/reverb/internal/song"
)

// Search holds hybrid search results. Search playback is contextless:
// picking a result plays it as a single song and leaves whatever context
// was active untouched.
type Search struct {
	gw      Gateway
	query   string
	results []song.Song
	err     string
}

// NewSearch creates an empty search view.
func NewSearch(gw Gateway) *Search {
	return &Search{gw: gw}
}

// Query returns the last executed query.
func (s *Search) Query() string { return s.query }

// Results returns the current result list in service order.
func (s *Search) Results() []song.Song { return s.results }

// Err returns the user-facing failure message of the last run.
func (s *Search) Err() string { return s.err }

// Run executes a hybrid search. An empty query clears the results.
func (s *Search) Run(ctx context.Context, query string) {
	s.query = query
	if query == "" {
		s.results = nil
		s.err = ""
		return
	}
	results, err := s.gw.HybridSearch(ctx, query)
	if err != nil {
		s.err = fmt.Sprintf("Search failed: %v", err)
		return
	}
	s.results = results
	s.err = ""
}

// PlayAt plays the result at index. A result that is not in the library
// yet is saved first so likes and playlists can reference it; the save
// result backfills provenance into the row.
func (s *Search) PlayAt(ctx context.Context, svc playback.Service, index int) {
	if index < 0 || index >= len(s.results) {
		return
	}
	picked := s.results[index]

	if !picked.InDatabase {
		saved, err := s.gw.SaveSong(ctx, picked)
		if err == nil {
			picked = saved
			s.results[index] = saved
		}
		// A failed save still plays; the song just stays external.
	}

	svc.PlaySong(picked)
}
