package sqlstore

import (
	"database/sql"

	"github.com/aanand-mishra/school-records/internal/types"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// An empty string, a zero number or a nil date is stored as NULL. This is
// what makes an empty Student.Email fail the NOT NULL constraint.

func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func intToNull(i int64) sql.NullInt64 {
	if i == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: i, Valid: true}
}

// dateArg returns the bind value of an optional date: NULL or its ISO
// string, which both drivers accept for a DATE parameter.
func dateArg(d *types.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func nullToDatePtr(nd sql.Null[types.Date]) *types.Date {
	if !nd.Valid {
		return nil
	}
	d := nd.V
	return &d
}

// ============================================================================
// Address Row Scanner
// ============================================================================

// addressColumns is the SELECT column list for address queries.
const addressColumns = `id, country, city, address, zip_code`

// addressRow holds the address columns. ID is nullable so the same row
// type can scan the LEFT JOINed address of a student.
type addressRow struct {
	ID      sql.NullInt64
	Country sql.NullString
	City    sql.NullString
	Address sql.NullString
	ZipCode sql.NullInt64
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match addressColumns order exactly.
func (r *addressRow) scanArgs() []any {
	return []any{
		&r.ID,      // 1
		&r.Country, // 2
		&r.City,    // 3
		&r.Address, // 4
		&r.ZipCode, // 5
	}
}

func (r *addressRow) toDomain() types.Address {
	return types.Address{
		ID:      r.ID.Int64,
		Country: nullToString(r.Country),
		City:    nullToString(r.City),
		Address: nullToString(r.Address),
		ZipCode: int(r.ZipCode.Int64),
	}
}

// addressArgs returns country, city, address, zip_code.
func addressArgs(a *types.Address) []any {
	return []any{
		stringToNull(a.Country),
		stringToNull(a.City),
		stringToNull(a.Address),
		intToNull(int64(a.ZipCode)),
	}
}

// ============================================================================
// Student Row Scanner
// ============================================================================

// studentColumns is the SELECT column list for student queries. It reads
// from studentsFrom, which joins the optional address.
const studentColumns = `s.id, s.name, s.email, s.birth_date, s.school_id,
	a.id, a.country, a.city, a.address, a.zip_code`

const studentsFrom = `students s LEFT JOIN addresses a ON a.id = s.address_id`

type studentRow struct {
	ID        int64
	Name      sql.NullString
	Email     sql.NullString
	BirthDate sql.Null[types.Date]
	SchoolID  sql.NullInt64
	Address   addressRow
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match studentColumns order exactly.
func (r *studentRow) scanArgs() []any {
	return append([]any{
		&r.ID,        // 1
		&r.Name,      // 2
		&r.Email,     // 3
		&r.BirthDate, // 4
		&r.SchoolID,  // 5
	}, r.Address.scanArgs()...) // 6-10
}

// toDomain converts the row. Age is derived, never stored, and therefore
// always zero here.
func (r *studentRow) toDomain() types.Student {
	s := types.Student{
		ID:        r.ID,
		Name:      nullToString(r.Name),
		Email:     nullToString(r.Email),
		BirthDate: nullToDatePtr(r.BirthDate),
		SchoolID:  r.SchoolID.Int64,
	}
	if r.Address.ID.Valid {
		a := r.Address.toDomain()
		s.Address = &a
	}
	return s
}

// ============================================================================
// School Row Scanner
// ============================================================================

const schoolColumns = `id, name, location`

type schoolRow struct {
	ID       int64
	Name     sql.NullString
	Location sql.NullString
}

func (r *schoolRow) scanArgs() []any {
	return []any{&r.ID, &r.Name, &r.Location}
}

func (r *schoolRow) toDomain() types.School {
	return types.School{
		ID:       r.ID,
		Name:     nullToString(r.Name),
		Location: types.Location(nullToString(r.Location)),
	}
}
