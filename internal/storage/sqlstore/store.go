// Package sqlstore implements the storage repositories on top of
// database/sql. It owns every query; the sqlite and postgres packages only
// open the database, create the schema and pick the Dialect.
//
// Each repository method runs inside one transaction opened by
// Store.transaction. Generated identities are written back onto the
// caller's records as rows are inserted and restored if the
// transaction rolls back, so a failed Create can be retried with the same
// values.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/storage/sqlerr"
)

// Store implements storage.Storage.
type Store struct {
	db      *sql.DB
	dialect Dialect
	log     zerolog.Logger

	addresses *AddressRepository
	students  *StudentRepository
	schools   *SchoolRepository
}

var _ storage.Storage = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithQueryLogger logs every statement at debug level. Bound values are
// never logged, only their count.
func WithQueryLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New wraps an open *sql.DB whose schema already exists.
func New(db *sql.DB, d Dialect, opts ...Option) *Store {
	s := &Store{
		db:      db,
		dialect: d,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.addresses = &AddressRepository{store: s}
	s.students = &StudentRepository{store: s}
	s.schools = &SchoolRepository{store: s}
	return s
}

func (s *Store) Addresses() storage.AddressRepository { return s.addresses }
func (s *Store) Students() storage.StudentRepository  { return s.students }
func (s *Store) Schools() storage.SchoolRepository    { return s.schools }

// DB returns the underlying connection pool.
func (s *Store) DB() *sql.DB { return s.db }

// Dialect returns the dialect the store was opened with.
func (s *Store) Dialect() Dialect { return s.dialect }

// Close closes the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// transaction executes fn within a transaction.
// If fn returns nil the transaction is committed.
// If fn returns an error or panics the transaction is rolled back and
// every identity assigned during fn is restored.
func (s *Store) transaction(ctx context.Context, fn func(c *conn) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	c := &conn{tx: tx, dialect: s.dialect, log: s.log}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			c.resetAssigned()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			c.resetAssigned()
		}
	}()

	if err = fn(c); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", sqlerr.Translate(err))
	}
	return nil
}

// conn is the transaction handed to repository code. It rebinds
// placeholders, logs statements and translates constraint violations.
type conn struct {
	tx      *sql.Tx
	dialect Dialect
	log     zerolog.Logger

	assigned []assignment
}

type assignment struct {
	field *int64
	prev  int64
}

func (c *conn) logQuery(query string, args []any) {
	c.log.Debug().
		Str("dialect", c.dialect.Name()).
		Str("query", query).
		Int("args", len(args)).
		Msg("sql")
}

func (c *conn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	query = bind(c.dialect, query)
	c.logQuery(query, args)

	res, err := c.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlerr.Translate(err)
	}
	return res, nil
}

func (c *conn) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	query = bind(c.dialect, query)
	c.logQuery(query, args)

	rows, err := c.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sqlerr.Translate(err)
	}
	return rows, nil
}

// insert runs an INSERT ... RETURNING id statement and writes the new
// identity into *id.
func (c *conn) insert(ctx context.Context, id *int64, query string, args ...any) error {
	query = bind(c.dialect, query+" RETURNING id")
	c.logQuery(query, args)

	var newID int64
	if err := c.tx.QueryRowContext(ctx, query, args...).Scan(&newID); err != nil {
		return sqlerr.Translate(err)
	}
	c.assign(id, newID)
	return nil
}

// assign sets *field and remembers it so a rollback can reset it.
func (c *conn) assign(field *int64, value int64) {
	if *field == value {
		return
	}
	c.assigned = append(c.assigned, assignment{field: field, prev: *field})
	*field = value
}

// resetAssigned restores assigned fields in reverse order.
func (c *conn) resetAssigned() {
	for i := len(c.assigned) - 1; i >= 0; i-- {
		*c.assigned[i].field = c.assigned[i].prev
	}
	c.assigned = nil
}

// execAffecting runs a statement that must touch at least one row and
// returns storage.ErrNotFound otherwise.
func (c *conn) execAffecting(ctx context.Context, query string, args ...any) error {
	res, err := c.exec(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
