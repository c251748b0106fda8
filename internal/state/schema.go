package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS session_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			volume INTEGER NOT NULL DEFAULT 100,
			muted INTEGER NOT NULL DEFAULT 0,
			shuffle INTEGER NOT NULL DEFAULT 0,
			repeat_mode INTEGER NOT NULL DEFAULT 0,
			current_external_id TEXT,
			current_time_seconds REAL
		);

		CREATE TABLE IF NOT EXISTS queue_songs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			position INTEGER NOT NULL,
			external_id TEXT NOT NULL,
			title TEXT NOT NULL,
			artist TEXT,
			thumbnail_url TEXT,
			duration_seconds REAL,
			source TEXT,
			channel_id TEXT,
			channel_name TEXT,
			UNIQUE(position)
		);

		CREATE INDEX IF NOT EXISTS idx_queue_songs_position ON queue_songs(position);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
