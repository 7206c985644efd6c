package migrations

import (
	"database/sql"
	"log"
	"os"
)

// SeedDevData inserts a development owner account so the auth bypass has a
// working identity to resolve against. Skipped outside dev/PR environments.
func SeedDevData(db *sql.DB) error {
	isDev := os.Getenv("APP_ENV") != "production" && os.Getenv("ENV") != "production"
	isPR := os.Getenv("PR_DEPLOYMENT") == "true"
	if !isDev && !isPR {
		return nil
	}

	log.Println("Seeding development data...")

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM identities WHERE uid = ?", "dev-owner-1").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if _, err := db.Exec("INSERT INTO identities (uid, email) VALUES (?, ?)",
		"dev-owner-1", "owner@madebread.local"); err != nil {
		return err
	}

	// No users row on purpose: the resolver treats a missing account record
	// as a fresh owner, which is exactly the first-sign-in path.
	return nil
}
