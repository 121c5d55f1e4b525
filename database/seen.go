package database

import (
	"database/sql"
	"fmt"
	"time"
)

// ListKnownIDs retrieves every dynamic id already delivered for an
// account and returns them as a map for quick membership checks.
func ListKnownIDs(db *sql.DB, uid int64) (map[int64]bool, error) {
	rows, err := db.Query("SELECT dynamic_id FROM bili_dynamic WHERE uid = ?", uid)
	if err != nil {
		return nil, fmt.Errorf("failed to query known ids for uid %d: %w", uid, err)
	}
	defer rows.Close()

	known := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan dynamic id: %w", err)
		}
		known[id] = true
	}
	return known, rows.Err()
}

// InsertKnownID marks a dynamic as delivered for an account. The
// insert is idempotent: re-inserting an existing pair is a no-op, and
// pairs are never removed.
func InsertKnownID(db *sql.DB, uid, dynamicID int64) error {
	query := `INSERT OR IGNORE INTO bili_dynamic (uid, dynamic_id, created_at) VALUES (?, ?, ?)`

	stmt, err := db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for marking dynamic seen: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(uid, dynamicID, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to mark dynamic %d seen for uid %d: %w", dynamicID, uid, err)
	}
	return nil
}
