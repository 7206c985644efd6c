package migrations

import "database/sql"

// AddTeamTables creates the fallback account store: user records, the team
// roster, role permission overrides and local identities. These mirror the
// cloud document layout for development without Firebase.
func AddTeamTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL,
			name TEXT,
			role TEXT,
			owner_id TEXT,
			owner_email TEXT,
			is_team_member BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS team_members (
			owner_id TEXT NOT NULL,
			member_id TEXT NOT NULL,
			email TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL,
			owner_email TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (owner_id, member_id)
		);`,
		`CREATE TABLE IF NOT EXISTS custom_permissions (
			owner_id TEXT NOT NULL,
			role TEXT NOT NULL,
			permissions TEXT NOT NULL,
			PRIMARY KEY (owner_id, role)
		);`,
		`CREATE TABLE IF NOT EXISTS identities (
			uid TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL
		);`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
