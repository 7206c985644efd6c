package migrations

import "database/sql"

// AddCheckPrinting creates the issued-check log, the per-owner check number
// sequence and the encrypted bank account details.
func AddCheckPrinting(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS checks (
			id TEXT PRIMARY KEY,
			number INTEGER NOT NULL,
			pay_to TEXT NOT NULL,
			amount REAL NOT NULL,
			amount_in_words TEXT NOT NULL,
			memo TEXT,
			expense_id TEXT,
			date DATETIME NOT NULL,
			issued_by TEXT NOT NULL,
			user_id TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS check_sequences (
			owner_id TEXT PRIMARY KEY,
			next_number INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS bank_accounts (
			user_id TEXT PRIMARY KEY,
			bank_name TEXT NOT NULL,
			account_name TEXT NOT NULL,
			account_number TEXT NOT NULL,
			routing_number TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_checks_user ON checks(user_id);`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
