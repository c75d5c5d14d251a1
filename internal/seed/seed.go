// Package seed persists the bootstrap records: one school in Budapest with
// two students and their addresses.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/types"
)

// School builds the bootstrap graph in memory. Nothing in it is saved yet.
func School() *types.School {
	john := types.NewStudent("John", "johnny@cc.com")
	john.PhoneNumbers = []string{"555-6666", "361-3466", "512-2366"}
	john.BirthDate = date(1995, time.October, 10)
	john.Address = types.NewAddress("Hungary", "Budapest", "Nagymezo 44", 0)

	barbara := types.NewStudent("Barbara", "brb@cc.com")
	barbara.PhoneNumbers = []string{"111-6666", "111-3466"}
	barbara.BirthDate = date(1975, time.December, 3)
	barbara.Address = types.NewAddress("Hungary", "Miskolc", "Alkotmany 20", 0)

	school := types.NewSchool("Codecool BP", types.LocationBudapest)
	school.AddStudent(john)
	school.AddStudent(barbara)
	return school
}

// Run saves School() through schools in a single transaction. It is not
// idempotent: a second run fails on the students' unique emails, and the
// caller is expected to treat that as fatal.
func Run(ctx context.Context, schools storage.SchoolRepository, log zerolog.Logger) (*types.School, error) {
	school := School()
	if err := schools.Create(ctx, school); err != nil {
		return nil, fmt.Errorf("seed.Run: %w", err)
	}

	log.Info().
		Int64("school_id", school.ID).
		Int("students", len(school.Students)).
		Msg("bootstrap records saved")
	return school, nil
}

func date(year int, month time.Month, day int) *types.Date {
	d := types.NewDate(year, month, day)
	return &d
}
