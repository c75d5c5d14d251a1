// Package sqlite opens the SQLite backend of the storage layer.
//
// SQLite stores everything in a single file on disk: no network, no
// separate server process. The blank import of go-sqlite3 registers the
// "sqlite3" driver with database/sql.
//
// Every connection is opened with foreign keys enforced (SQLite leaves
// them off by default), a busy timeout and WAL journaling.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/school-records/internal/config"
	"github.com/aanand-mishra/school-records/internal/storage/sqlstore"
)

const dsnOptions = "_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"

// schema is idempotent: CREATE ... IF NOT EXISTS is safe to run on every
// startup.
var schema = `
	CREATE TABLE IF NOT EXISTS addresses (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		country  TEXT,
		city     TEXT,
		address  TEXT,
		zip_code INTEGER
	);

	CREATE TABLE IF NOT EXISTS schools (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		name     TEXT,
		location TEXT,
		CONSTRAINT schools_location_check CHECK (location IN (` + sqlstore.QuotedLocations() + `))
	);

	CREATE TABLE IF NOT EXISTS students (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT,
		email      TEXT NOT NULL UNIQUE,
		birth_date DATE,
		school_id  INTEGER REFERENCES schools(id),
		address_id INTEGER REFERENCES addresses(id)
	);

	CREATE TABLE IF NOT EXISTS student_phone_numbers (
		student_id   INTEGER NOT NULL REFERENCES students(id),
		position     INTEGER NOT NULL,
		phone_number TEXT    NOT NULL,
		PRIMARY KEY (student_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_students_school ON students(school_id);
	CREATE INDEX IF NOT EXISTS idx_students_address ON students(address_id);
	CREATE INDEX IF NOT EXISTS idx_students_name ON students(name);
`

// New opens the database file named by cfg.Storage.Path.
func New(ctx context.Context, cfg *config.Config, opts ...sqlstore.Option) (*sqlstore.Store, error) {
	return Open(ctx, cfg.Storage.Path, opts...)
}

// Open opens (creating if needed) the SQLite file at path, migrates the
// schema and returns a ready-to-use store.
func Open(ctx context.Context, path string, opts ...sqlstore.Option) (*sqlstore.Store, error) {
	if err := ensureDir(path); err != nil {
		return nil, fmt.Errorf("sqlite.Open: %w", err)
	}

	db, err := sql.Open(sqlstore.SQLite.Name(), dsn(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: open db: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.Open: %w", err)
	}

	return sqlstore.New(db, sqlstore.SQLite, opts...), nil
}

// Migrate creates the tables and indexes that do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// ensureDir creates the parent directory of a plain file path.
func ensureDir(path string) error {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

func dsn(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + dsnOptions
	}
	return path + "?" + dsnOptions
}
