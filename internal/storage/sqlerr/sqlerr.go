// Package sqlerr translates database driver errors into storage errors.
//
// Both supported drivers report constraint violations in their own shape:
// go-sqlite3 returns sqlite3.Error with an extended result code and a
// "UNIQUE constraint failed: table.column" message, pgx returns
// *pgconn.PgError with a SQLSTATE code and the table/constraint names.
// Translate folds both into *storage.ConstraintError so callers can switch
// on the Kind without knowing which database is underneath.
package sqlerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jinzhu/inflection"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aanand-mishra/school-records/internal/storage"
)

// SQLSTATE codes of the integrity constraint violation class.
const (
	pgUniqueViolation     = "23505"
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// Translate returns a *storage.ConstraintError when err carries a
// constraint violation from either driver. Any other error, including nil,
// is returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := storage.AsConstraint(err); ok {
		return err
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fromSQLite(sqliteErr)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if ce := fromPostgres(pgErr); ce != nil {
			return ce
		}
	}

	return err
}

func fromSQLite(src sqlite3.Error) *storage.ConstraintError {
	var kind storage.ConstraintKind
	switch src.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		kind = storage.ConstraintUnique
	case sqlite3.ErrConstraintNotNull:
		kind = storage.ConstraintNotNull
	case sqlite3.ErrConstraintForeignKey:
		kind = storage.ConstraintForeignKey
	default:
		kind = storage.ConstraintCheck
	}

	table, column := splitQualifiedColumn(src.Error())
	return newConstraintError(kind, table, column, src)
}

func fromPostgres(src *pgconn.PgError) *storage.ConstraintError {
	var kind storage.ConstraintKind
	column := src.ColumnName
	switch src.Code {
	case pgUniqueViolation:
		kind = storage.ConstraintUnique
		if column == "" {
			column = columnFromConstraint(src.TableName, src.ConstraintName)
		}
	case pgNotNullViolation:
		kind = storage.ConstraintNotNull
	case pgForeignKeyViolation:
		kind = storage.ConstraintForeignKey
		if column == "" {
			column = columnFromConstraint(src.TableName, src.ConstraintName)
		}
	case pgCheckViolation:
		kind = storage.ConstraintCheck
	default:
		return nil
	}
	return newConstraintError(kind, src.TableName, column, src)
}

func newConstraintError(kind storage.ConstraintKind, table, column string, err error) *storage.ConstraintError {
	return &storage.ConstraintError{
		Kind:    kind,
		Table:   table,
		Column:  column,
		Message: friendlyMessage(kind, table, column),
		Err:     err,
	}
}

// splitQualifiedColumn extracts "table" and "column" from go-sqlite3
// messages such as "NOT NULL constraint failed: students.email". Messages
// without a qualified name (foreign keys) yield empty strings.
func splitQualifiedColumn(msg string) (table, column string) {
	_, detail, found := strings.Cut(msg, "constraint failed: ")
	if !found {
		return "", ""
	}
	// Composite unique keys are reported as "t.a, t.b"; the first one names the table.
	detail, _, _ = strings.Cut(detail, ",")
	table, column, found = strings.Cut(strings.TrimSpace(detail), ".")
	if !found {
		return "", ""
	}
	return table, column
}

var constraintSuffix = regexp.MustCompile(`_(?:key|ukey|fkey)$`)

// columnFromConstraint recovers the column from PostgreSQL's default
// constraint names: students_email_key, students_address_id_fkey.
func columnFromConstraint(table, name string) string {
	if table == "" || !strings.HasPrefix(name, table+"_") || !constraintSuffix.MatchString(name) {
		return ""
	}
	return constraintSuffix.ReplaceAllString(strings.TrimPrefix(name, table+"_"), "")
}

func friendlyMessage(kind storage.ConstraintKind, table, column string) string {
	entity := entityName(table)
	field := humanize(column)
	if field == "" {
		field = "value"
	}

	switch kind {
	case storage.ConstraintUnique:
		return fmt.Sprintf("A %s with this %s already exists", entity, strings.ToLower(field))
	case storage.ConstraintNotNull:
		return fmt.Sprintf("The %s of a %s is required", field, entity)
	case storage.ConstraintForeignKey:
		return fmt.Sprintf("The %s is still referenced or references a missing record", entity)
	default:
		return fmt.Sprintf("The %s of a %s does not meet required conditions", field, entity)
	}
}

// entityName turns a table name into a singular, lower-case noun:
// "students" -> "student", "addresses" -> "address".
func entityName(table string) string {
	if table == "" {
		return "record"
	}
	return strings.ReplaceAll(inflection.Singular(strings.ToLower(table)), "_", " ")
}

// humanize converts snake_case identifiers into Title Case.
func humanize(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}
