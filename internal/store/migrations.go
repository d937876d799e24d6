package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Activities, one row per imported record. The compound primary key
		// is the upsert conflict key: re-importing a file updates rows
		// instead of duplicating them.
		`CREATE TABLE IF NOT EXISTS activities (
			owner_id TEXT NOT NULL,
			id TEXT NOT NULL,
			date TEXT NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			distance_km REAL NOT NULL,
			elapsed_time INTEGER NOT NULL,
			moving_time INTEGER NOT NULL,
			elevation_gain REAL NOT NULL,
			avg_heart_rate INTEGER,
			max_heart_rate INTEGER,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (owner_id, id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activities_owner_date ON activities(owner_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_type ON activities(type)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
