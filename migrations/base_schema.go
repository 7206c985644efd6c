package migrations

import "database/sql"

// BaseSchema creates the ledger tables: expenses, income, petty cash and
// customers, all scoped to the data owner's user id.
func BaseSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS expenses (
			id TEXT PRIMARY KEY,
			amount REAL NOT NULL,
			description TEXT NOT NULL,
			category TEXT,
			date DATETIME NOT NULL,
			reimburse_to TEXT,
			reimbursed BOOLEAN NOT NULL DEFAULT 0,
			entered_by TEXT NOT NULL,
			user_id TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS income (
			id TEXT PRIMARY KEY,
			amount REAL NOT NULL,
			description TEXT NOT NULL,
			source TEXT,
			customer_id TEXT,
			date DATETIME NOT NULL,
			entered_by TEXT NOT NULL,
			user_id TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS petty_cash (
			id TEXT PRIMARY KEY,
			amount REAL NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('in', 'out')),
			description TEXT NOT NULL,
			date DATETIME NOT NULL,
			entered_by TEXT NOT NULL,
			user_id TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS customers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			address TEXT,
			notes TEXT,
			created_at DATETIME NOT NULL,
			user_id TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_user ON expenses(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_income_user ON income(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_petty_cash_user ON petty_cash(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_customers_user ON customers(user_id);`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
