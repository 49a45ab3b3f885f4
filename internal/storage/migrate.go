package storage

import (
	"database/sql"
	"fmt"
)

// targetSchemaVersion is the schema version this build of the
// application requires.
const targetSchemaVersion = 4

// migrationSteps maps a schema version to the step that brings the
// database up from the previous version. Every step is idempotent
// (guarded table creation, guarded column addition) so that recovery
// after a partial failure can safely re-run already-applied steps.
// Steps are additive only: no step drops or renames a column.
var migrationSteps = map[int]func(*sql.DB) error{
	1: migrateV1Ideas,
	2: migrateV2Blocks,
	3: migrateV3IdeaCategory,
	4: migrateV4BlockColor,
}

// Migrate brings the schema from its recorded version up to
// targetSchemaVersion. The version is recorded only after every step
// succeeds; a failed step aborts with ErrMigration and leaves the
// recorded version untouched, so a retry resumes from the same point.
// A version inside the range with no registered step is a hard error,
// never a silent skip: skipping would leave the schema permanently
// below its declared target.
func Migrate(db *sql.DB) error {
	current, err := SchemaVersion(db)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMigration, err)
	}
	if current >= targetSchemaVersion {
		return nil
	}

	for v := current + 1; v <= targetSchemaVersion; v++ {
		step, ok := migrationSteps[v]
		if !ok {
			return fmt.Errorf("%w: no step registered for version %d", ErrMigration, v)
		}
		if err := step(db); err != nil {
			return fmt.Errorf("%w: step %d: %v", ErrMigration, v, err)
		}
	}

	if err := setSchemaVersion(db, targetSchemaVersion); err != nil {
		return fmt.Errorf("%w: %v", ErrMigration, err)
	}
	return nil
}

func migrateV1Ideas(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ideas (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hint TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL,
			date_index TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_ideas_date ON ideas(date);`,
		`CREATE INDEX IF NOT EXISTS idx_ideas_date_index ON ideas(date_index);`,
	}
	return execAll(db, stmts)
}

func migrateV2Blocks(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS blocks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			block_id TEXT NOT NULL,
			idea_id INTEGER NOT NULL,
			type TEXT NOT NULL DEFAULT 'text',
			content TEXT NOT NULL DEFAULT '',
			order_index INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (idea_id, block_id),
			FOREIGN KEY (idea_id) REFERENCES ideas(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_blocks_idea_order ON blocks(idea_id, order_index);`,
	}
	return execAll(db, stmts)
}

func migrateV3IdeaCategory(db *sql.DB) error {
	return addColumnIfAbsent(db, "ideas", "category", "TEXT NOT NULL DEFAULT ''")
}

func migrateV4BlockColor(db *sql.DB) error {
	return addColumnIfAbsent(db, "blocks", "color", "TEXT NOT NULL DEFAULT ''")
}

func execAll(db *sql.DB, stmts []string) error {
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// addColumnIfAbsent guards ALTER TABLE ADD COLUMN, which SQLite
// rejects when the column already exists.
func addColumnIfAbsent(db *sql.DB, table, column, definition string) error {
	exists, err := columnExists(db, table, column)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	if err != nil {
		return fmt.Errorf("failed to add column %s.%s: %w", table, column, err)
	}
	return nil
}

func columnExists(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("failed to scan table info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("row iteration error: %w", err)
	}
	return false, nil
}
