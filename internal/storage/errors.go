package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record has the requested identity.
	ErrNotFound = errors.New("record not found")

	// ErrConstraint matches every *ConstraintError with errors.Is.
	ErrConstraint = errors.New("constraint violation")

	// ErrUnsavedReference is returned when a record points at another
	// record that has not been inserted and the relationship does not
	// cascade.
	ErrUnsavedReference = errors.New("reference to unsaved record")
)

// ConstraintKind names the database rule that rejected a write.
type ConstraintKind string

const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintNotNull    ConstraintKind = "not_null"
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintCheck      ConstraintKind = "check"
)

// ConstraintError is a write rejected by a schema constraint (duplicate
// email, missing email, dangling reference, unknown location).
type ConstraintError struct {
	Kind   ConstraintKind
	Table  string
	Column string
	// Message is a human readable sentence, safe to show to API clients.
	Message string
	Err     error
}

func (e *ConstraintError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s constraint violated on %s.%s: %v", e.Kind, e.Table, e.Column, e.Err)
	}
	return fmt.Sprintf("%s constraint violated on %s: %v", e.Kind, e.Table, e.Err)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrConstraint) true for every ConstraintError.
func (e *ConstraintError) Is(target error) bool { return target == ErrConstraint }

// AsConstraint returns the ConstraintError in err's chain, if any.
func AsConstraint(err error) (*ConstraintError, bool) {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
