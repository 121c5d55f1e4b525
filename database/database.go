package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // Import the SQLite3 driver
)

// InitDB opens the SQLite database at dbPath, creating the file and
// its directory if needed, and ensures the seen-set schema exists.
func InitDB(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createSeenTable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create seen table: %w", err)
	}

	log.Println("Successfully connected to the database at", dbPath)
	return db, nil
}

// createSeenTable creates the per-account seen-set table. The primary
// key makes inserts idempotent together with INSERT OR IGNORE.
func createSeenTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS bili_dynamic (
        uid INTEGER NOT NULL,
        dynamic_id INTEGER NOT NULL,
        created_at INTEGER,
        PRIMARY KEY (uid, dynamic_id)
    );`
	_, err := db.Exec(query)
	return err
}
