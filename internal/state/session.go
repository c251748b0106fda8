package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/lbriand/reverb/internal/db"
	"github.com/lbriand/reverb/internal/song"
)

// Session is the persisted slice of playback state: audio settings, the
// playback position and the explicit queue. Context and history are
// deliberately not saved; they are rebuilt from whatever view the user
// launches next.
type Session struct {
	Volume      int
	Muted       bool
	Shuffle     bool
	RepeatMode  int
	CurrentID   string
	CurrentTime float64
	Queue       []song.Song
}

func getSession(db *sql.DB) (*Session, error) {
	var s Session
	var currentID sql.NullString
	var currentTime sql.NullFloat64

	row := db.QueryRow(`
		SELECT volume, muted, shuffle, repeat_mode, current_external_id, current_time_seconds
		FROM session_state WHERE id = 1
	`)
	err := row.Scan(&s.Volume, &s.Muted, &s.Shuffle, &s.RepeatMode, &currentID, &currentTime)
	if errors.Is(err, sql.ErrNoRows) {
		return &Session{Volume: 100}, nil
	}
	if err != nil {
		return nil, err
	}
	s.CurrentID = dbutil.NullStringValue(currentID)
	s.CurrentTime = dbutil.NullFloat64Value(currentTime)

	rows, err := db.Query(`
		SELECT external_id, title, artist, thumbnail_url, duration_seconds,
		       source, channel_id, channel_name
		FROM queue_songs
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sg song.Song
		var artist, thumbnail, source, channelID, channelName sql.NullString
		var duration sql.NullFloat64

		err := rows.Scan(&sg.ExternalID, &sg.Title, &artist, &thumbnail,
			&duration, &source, &channelID, &channelName)
		if err != nil {
			return nil, err
		}

		sg.Artist = dbutil.NullStringValue(artist)
		sg.ThumbnailURL = dbutil.NullStringValue(thumbnail)
		sg.DurationSeconds = dbutil.NullFloat64Value(duration)
		sg.Source = song.Source(dbutil.NullStringValue(source))
		sg.ChannelID = dbutil.NullStringValue(channelID)
		sg.ChannelName = dbutil.NullStringValue(channelName)
		s.Queue = append(s.Queue, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &s, nil
}

func saveSession(sqlDB *sql.DB, s Session) error {
	return dbutil.WithTx(sqlDB, func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM queue_songs`)
		if err != nil {
			return err
		}

		var currentID any
		if s.CurrentID != "" {
			currentID = s.CurrentID
		}
		_, err = tx.Exec(`
			INSERT INTO session_state (id, volume, muted, shuffle, repeat_mode,
				current_external_id, current_time_seconds)
			VALUES (1, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				volume = excluded.volume,
				muted = excluded.muted,
				shuffle = excluded.shuffle,
				repeat_mode = excluded.repeat_mode,
				current_external_id = excluded.current_external_id,
				current_time_seconds = excluded.current_time_seconds
		`, s.Volume, s.Muted, s.Shuffle, s.RepeatMode, currentID, s.CurrentTime)
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO queue_songs (position, external_id, title, artist,
				thumbnail_url, duration_seconds, source, channel_id, channel_name)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, sg := range s.Queue {
			_, err = stmt.Exec(i, sg.ExternalID, sg.Title, sg.Artist,
				sg.ThumbnailURL, sg.DurationSeconds, string(sg.Source),
				sg.ChannelID, sg.ChannelName)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveNow writes the session immediately, bypassing the debounce. Used on
// shutdown paths that cannot wait.
func (m *Manager) SaveNow(s Session) error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.pending = nil
	m.saveMu.Unlock()
	return saveSession(m.db, s)
}
