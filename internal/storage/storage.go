// Package storage defines the repository contracts that any database
// backend must satisfy, one repository per record type, plus the typed
// errors those repositories return.
//
// Handlers and the seeding routine depend only on these interfaces. The
// sqlstore package implements them on top of database/sql; the sqlite and
// postgres packages open a concrete database and hand it to sqlstore.
//
// Every method runs in exactly one transaction. Cascades are explicit:
//
//   - StudentRepository.Create inserts an unsaved Address first,
//   - SchoolRepository.Create inserts every Student of the School,
//   - SchoolRepository.Delete deletes every Student of the School first.
//
// Nothing else cascades. In particular deleting or updating a Student never
// touches its Address row.
package storage

import (
	"context"

	"github.com/aanand-mishra/school-records/internal/types"
)

// USACountry is the value written by AddressRepository.UpdateAllToUSAByStudentName.
const USACountry = "USA"

// AddressRepository stores Address records.
type AddressRepository interface {
	// Create inserts a and sets a.ID.
	Create(ctx context.Context, a *types.Address) error

	// GetAll returns every address ordered by ID. Never nil.
	GetAll(ctx context.Context) ([]types.Address, error)

	// GetByID returns ErrNotFound when no address has the given id.
	GetByID(ctx context.Context, id int64) (types.Address, error)

	// Update overwrites every field of the address identified by a.ID.
	Update(ctx context.Context, a *types.Address) error

	// Delete removes the address. Fails with a ForeignKey ConstraintError
	// while a Student still points at it.
	Delete(ctx context.Context, id int64) error

	// UpdateAllToUSAByStudentName sets Country to USACountry on every
	// address owned by a Student whose name equals name, in one statement.
	// Returns the number of rows changed; zero matches is not an error.
	UpdateAllToUSAByStudentName(ctx context.Context, name string) (int64, error)
}

// StudentRepository stores Student records together with their phone
// numbers.
type StudentRepository interface {
	// Create inserts s (and s.Address when it is unsaved) and sets the
	// generated IDs.
	Create(ctx context.Context, s *types.Student) error

	// CreateAll inserts every student in one transaction: either all of
	// them are stored or none is.
	CreateAll(ctx context.Context, students []*types.Student) error

	// GetAll returns every student ordered by ID, with Address and phone
	// numbers loaded. Never nil.
	GetAll(ctx context.Context) ([]types.Student, error)

	// GetByID returns ErrNotFound when no student has the given id.
	GetByID(ctx context.Context, id int64) (types.Student, error)

	// Update overwrites the student's own columns and phone numbers. The
	// referenced Address row is never modified.
	Update(ctx context.Context, s *types.Student) error

	// Delete removes the student and its phone numbers but keeps its
	// Address.
	Delete(ctx context.Context, id int64) error

	// FindByNameStartingWithOrBirthDateBetween returns, once each, the
	// students whose name starts with prefix or whose birth date lies in
	// [start, end].
	FindByNameStartingWithOrBirthDateBetween(ctx context.Context, prefix string, start, end types.Date) ([]types.Student, error)

	// FindAllCountries returns the distinct non-null countries of the
	// students' addresses.
	FindAllCountries(ctx context.Context) ([]string, error)
}

// SchoolRepository stores School records.
type SchoolRepository interface {
	// Create inserts sc and every Student in sc.Students, setting each
	// Student's SchoolID.
	Create(ctx context.Context, sc *types.School) error

	// GetAll returns every school ordered by ID with its students loaded.
	GetAll(ctx context.Context) ([]types.School, error)

	// GetByID returns ErrNotFound when no school has the given id.
	GetByID(ctx context.Context, id int64) (types.School, error)

	// Update overwrites the school's name and location. A non-nil
	// sc.Students replaces the membership: listed students are inserted or
	// re-pointed and the school's other students are deleted. A nil
	// sc.Students leaves the students untouched.
	Update(ctx context.Context, sc *types.School) error

	// Delete removes the school and every student pointing at it.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every school and every student attending one.
	DeleteAll(ctx context.Context) error
}

// Storage groups the repositories of one database.
type Storage interface {
	Addresses() AddressRepository
	Students() StudentRepository
	Schools() SchoolRepository

	// Close releases the underlying connection pool.
	Close() error
}
