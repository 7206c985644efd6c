package migrations

import "database/sql"

// AddStoreInfo creates the business profile table, one row per owner.
func AddStoreInfo(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS store_info (
			user_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			location TEXT,
			owner TEXT
		);
	`)
	return err
}
