package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// InitDB opens the local SQLite database. It backs the ledger tables and,
// when Firebase is not configured, the fallback account store.
func InitDB() error {
	var dsn string
	if os.Getenv("FLY_APP_NAME") != "" {
		// Running on Fly.io, use the mounted volume
		dsn = filepath.Join("/data", "madebread.db") + "?_journal=WAL&_timeout=10000&_busy_timeout=10000"
	} else if os.Getenv("TEST_DB") == "1" {
		// Tests run against an in-memory database. The shared cache keeps
		// every pooled connection on the same database.
		dsn = "file::memory:?cache=shared"
	} else {
		// Local development
		dsn = "./madebread.db?_journal=WAL&_timeout=10000&_busy_timeout=10000"
	}

	var err error
	DB, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(5)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(time.Minute * 5)

	if _, err = DB.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	if _, err = DB.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return err
	}
	if _, err = DB.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return err
	}

	return DB.Ping()
}
