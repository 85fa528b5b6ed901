package database

import (
	"database/sql"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the sqlite database and returns the handle. Callers pass it
// down explicitly; there is no package-level connection.
func Open(path string) (*sql.DB, error) {
	// Connection parameters to better handle concurrent readers
	dsn := path + "?_journal=WAL&_timeout=10000&_busy_timeout=10000&_foreign_keys=on"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if _, err = db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, err
	}
	if _, err = db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return nil, err
	}
	if _, err = db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Path resolves the database location from the environment.
func Path() string {
	if os.Getenv("TEST_DB") == "1" {
		return ":memory:"
	}
	if p := os.Getenv("GRANA_DB"); p != "" {
		return p
	}
	return "./grana.db"
}
