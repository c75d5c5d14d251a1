package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/school-records/internal/storage"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "sqlerr.db")+"?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE addresses (id INTEGER PRIMARY KEY AUTOINCREMENT, country TEXT);
		CREATE TABLE schools (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			location TEXT,
			CONSTRAINT schools_location_check CHECK (location IN ('BUDAPEST', 'MISKOLC'))
		);
		CREATE TABLE students (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			address_id INTEGER REFERENCES addresses(id)
		);
	`)
	require.NoError(t, err)
	return db
}

func TestTranslate_SQLite(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Exec(`INSERT INTO students (email) VALUES ('joe@cc.com')`)
	require.NoError(t, err)

	tests := []struct {
		name       string
		query      string
		wantKind   storage.ConstraintKind
		wantTable  string
		wantColumn string
		wantMsg    string
	}{
		{
			name:       "duplicate email",
			query:      `INSERT INTO students (email) VALUES ('joe@cc.com')`,
			wantKind:   storage.ConstraintUnique,
			wantTable:  "students",
			wantColumn: "email",
			wantMsg:    "A student with this email already exists",
		},
		{
			name:       "null email",
			query:      `INSERT INTO students (email) VALUES (NULL)`,
			wantKind:   storage.ConstraintNotNull,
			wantTable:  "students",
			wantColumn: "email",
			wantMsg:    "The Email of a student is required",
		},
		{
			name:     "dangling address",
			query:    `INSERT INTO students (email, address_id) VALUES ('x@cc.com', 999)`,
			wantKind: storage.ConstraintForeignKey,
		},
		{
			name:     "unknown location",
			query:    `INSERT INTO schools (location) VALUES ('VIENNA')`,
			wantKind: storage.ConstraintCheck,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, execErr := db.Exec(tt.query)
			require.Error(t, execErr)

			err := Translate(fmt.Errorf("insert: %w", execErr))
			assert.ErrorIs(t, err, storage.ErrConstraint)

			ce, ok := storage.AsConstraint(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, ce.Kind)
			assert.Equal(t, tt.wantTable, ce.Table)
			assert.Equal(t, tt.wantColumn, ce.Column)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, ce.Message)
			}
		})
	}
}

func TestTranslate_SQLiteOtherErrors(t *testing.T) {
	db := newTestDB(t)

	_, execErr := db.Exec(`INSERT INTO nowhere (id) VALUES (1)`)
	require.Error(t, execErr)

	err := Translate(execErr)
	assert.Equal(t, execErr, err)
	assert.NotErrorIs(t, err, storage.ErrConstraint)
}

func TestTranslate_Postgres(t *testing.T) {
	tests := []struct {
		name       string
		pgErr      *pgconn.PgError
		wantKind   storage.ConstraintKind
		wantColumn string
		wantMsg    string
	}{
		{
			name:       "unique violation",
			pgErr:      &pgconn.PgError{Code: "23505", TableName: "students", ConstraintName: "students_email_key"},
			wantKind:   storage.ConstraintUnique,
			wantColumn: "email",
			wantMsg:    "A student with this email already exists",
		},
		{
			name:       "not null violation",
			pgErr:      &pgconn.PgError{Code: "23502", TableName: "students", ColumnName: "email"},
			wantKind:   storage.ConstraintNotNull,
			wantColumn: "email",
			wantMsg:    "The Email of a student is required",
		},
		{
			name:       "foreign key violation",
			pgErr:      &pgconn.PgError{Code: "23503", TableName: "students", ConstraintName: "students_address_id_fkey"},
			wantKind:   storage.ConstraintForeignKey,
			wantColumn: "address_id",
			wantMsg:    "The student is still referenced or references a missing record",
		},
		{
			name:       "foreign key on a multi word table",
			pgErr:      &pgconn.PgError{Code: "23503", TableName: "student_phone_numbers", ConstraintName: "student_phone_numbers_student_id_fkey"},
			wantKind:   storage.ConstraintForeignKey,
			wantColumn: "student_id",
			wantMsg:    "The student phone number is still referenced or references a missing record",
		},
		{
			name:     "check violation",
			pgErr:    &pgconn.PgError{Code: "23514", TableName: "schools", ConstraintName: "schools_location_check"},
			wantKind: storage.ConstraintCheck,
			wantMsg:  "The value of a school does not meet required conditions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Translate(fmt.Errorf("exec: %w", tt.pgErr))

			ce, ok := storage.AsConstraint(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, ce.Kind)
			assert.Equal(t, tt.pgErr.TableName, ce.Table)
			assert.Equal(t, tt.wantColumn, ce.Column)
			assert.Equal(t, tt.wantMsg, ce.Message)
			assert.ErrorIs(t, err, tt.pgErr)
		})
	}
}

func TestTranslate_PassThrough(t *testing.T) {
	assert.NoError(t, Translate(nil))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, Translate(plain))

	syntax := &pgconn.PgError{Code: "42601"}
	assert.Equal(t, error(syntax), Translate(syntax))

	already := &storage.ConstraintError{Kind: storage.ConstraintUnique, Table: "students"}
	assert.Same(t, already, Translate(already))
}

func TestSplitQualifiedColumn(t *testing.T) {
	table, column := splitQualifiedColumn("UNIQUE constraint failed: students.email")
	assert.Equal(t, "students", table)
	assert.Equal(t, "email", column)

	table, column = splitQualifiedColumn("UNIQUE constraint failed: student_phone_numbers.student_id, student_phone_numbers.position")
	assert.Equal(t, "student_phone_numbers", table)
	assert.Equal(t, "student_id", column)

	table, column = splitQualifiedColumn("FOREIGN KEY constraint failed")
	assert.Empty(t, table)
	assert.Empty(t, column)
}

func TestEntityName(t *testing.T) {
	assert.Equal(t, "student", entityName("students"))
	assert.Equal(t, "address", entityName("addresses"))
	assert.Equal(t, "school", entityName("schools"))
	assert.Equal(t, "record", entityName(""))
}
