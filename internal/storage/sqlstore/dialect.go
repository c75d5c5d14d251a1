package sqlstore

import (
	"fmt"
	"strings"

	"github.com/aanand-mishra/school-records/internal/types"
)

// Dialect abstracts the SQL differences between the supported engines.
// Queries in this package are written with "?" placeholders and rebound
// for the target dialect before execution.
type Dialect interface {
	// Name is the database/sql driver name, e.g. "sqlite3" or "pgx".
	Name() string

	// Placeholder returns the bind parameter for the given 1-based index.
	// SQLite returns "?" regardless of index; PostgreSQL returns "$1", "$2", etc.
	Placeholder(index int) string
}

// SQLite is the Dialect for github.com/mattn/go-sqlite3.
var SQLite Dialect = sqliteDialect{}

// PostgreSQL is the Dialect for the pgx database/sql driver.
var PostgreSQL Dialect = postgresDialect{}

type sqliteDialect struct{}

func (sqliteDialect) Name() string             { return "sqlite3" }
func (sqliteDialect) Placeholder(_ int) string { return "?" }

type postgresDialect struct{}

func (postgresDialect) Name() string                 { return "pgx" }
func (postgresDialect) Placeholder(index int) string { return fmt.Sprintf("$%d", index) }

// bind rewrites every "?" in query into the dialect's placeholder.
// Queries in this package never contain a literal question mark.
func bind(d Dialect, query string) string {
	if d.Placeholder(1) == "?" {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(d.Placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// placeholders returns "?, ?, ?" with n entries, for IN lists.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// QuotedLocations renders the known school locations as a SQL list for the
// schema's CHECK constraint: 'BUDAPEST', 'MISKOLC', ...
func QuotedLocations() string {
	quoted := make([]string, 0, len(types.Locations()))
	for _, l := range types.Locations() {
		quoted = append(quoted, "'"+string(l)+"'")
	}
	return strings.Join(quoted, ", ")
}
