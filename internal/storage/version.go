package storage

import (
	"database/sql"
	"fmt"
)

// The schema version is a single persisted integer, stored apart from
// idea/block data. It records the highest migration step fully applied.

// ensureVersionTable creates the version table if it is absent.
func ensureVersionTable(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		version INTEGER NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// SchemaVersion returns the recorded schema version, or 0 if none was
// ever set. Used only by the migration engine.
func SchemaVersion(db *sql.DB) (int, error) {
	if err := ensureVersionTable(db); err != nil {
		return 0, err
	}

	var v int
	err := db.QueryRow("SELECT version FROM schema_version WHERE id = 1").Scan(&v)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

// setSchemaVersion persists n as the applied schema version.
func setSchemaVersion(db *sql.DB, n int) error {
	_, err := db.Exec(
		`INSERT INTO schema_version (id, version) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET version = excluded.version`,
		n,
	)
	if err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return nil
}
