// Package postgres opens the PostgreSQL backend of the storage layer
// through the pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/aanand-mishra/school-records/internal/config"
	"github.com/aanand-mishra/school-records/internal/storage/sqlstore"
)

var schema = `
	CREATE TABLE IF NOT EXISTS addresses (
		id       BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		country  TEXT,
		city     TEXT,
		address  TEXT,
		zip_code INTEGER
	);

	CREATE TABLE IF NOT EXISTS schools (
		id       BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		name     TEXT,
		location TEXT,
		CONSTRAINT schools_location_check CHECK (location IN (` + sqlstore.QuotedLocations() + `))
	);

	CREATE TABLE IF NOT EXISTS students (
		id         BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		name       TEXT,
		email      TEXT NOT NULL,
		birth_date DATE,
		school_id  BIGINT REFERENCES schools(id),
		address_id BIGINT REFERENCES addresses(id),
		CONSTRAINT students_email_key UNIQUE (email)
	);

	CREATE TABLE IF NOT EXISTS student_phone_numbers (
		student_id   BIGINT  NOT NULL REFERENCES students(id),
		position     INTEGER NOT NULL,
		phone_number TEXT    NOT NULL,
		PRIMARY KEY (student_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_students_school ON students(school_id);
	CREATE INDEX IF NOT EXISTS idx_students_address ON students(address_id);
	CREATE INDEX IF NOT EXISTS idx_students_name ON students(name);
`

// New connects to the database named by cfg.Storage.DSN.
func New(ctx context.Context, cfg *config.Config, opts ...sqlstore.Option) (*sqlstore.Store, error) {
	return Open(ctx, cfg.Storage.DSN, opts...)
}

// Open connects with a URL or keyword/value DSN, verifies the connection,
// migrates the schema and returns a ready-to-use store.
func Open(ctx context.Context, dsn string, opts ...sqlstore.Option) (*sqlstore.Store, error) {
	db, err := sql.Open(sqlstore.PostgreSQL.Name(), dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.Open: open db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres.Open: ping: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres.Open: %w", err)
	}

	return sqlstore.New(db, sqlstore.PostgreSQL, opts...), nil
}

// Migrate creates the tables and indexes that do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
