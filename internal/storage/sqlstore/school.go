package sqlstore

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/types"
)

// SchoolRepository implements storage.SchoolRepository.
type SchoolRepository struct {
	store *Store
}

var _ storage.SchoolRepository = (*SchoolRepository)(nil)

// Create inserts the school, then each of its students with SchoolID
// pointing at it. Students that already exist are re-pointed instead of
// inserted again.
func (r *SchoolRepository) Create(ctx context.Context, sc *types.School) error {
	err := r.store.transaction(ctx, func(c *conn) error {
		err := c.insert(ctx, &sc.ID,
			`INSERT INTO schools (name, location) VALUES (?, ?)`,
			stringToNull(sc.Name), stringToNull(string(sc.Location)),
		)
		if err != nil {
			return fmt.Errorf("insert school: %w", err)
		}
		_, err = attachStudents(ctx, c, sc)
		return err
	})
	if err != nil {
		return fmt.Errorf("SchoolRepository.Create: %w", err)
	}
	return nil
}

func (r *SchoolRepository) GetAll(ctx context.Context) ([]types.School, error) {
	var schools []types.School
	err := r.store.transaction(ctx, func(c *conn) error {
		var err error
		schools, err = selectSchools(ctx, c, "")
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("SchoolRepository.GetAll: %w", err)
	}
	return schools, nil
}

func (r *SchoolRepository) GetByID(ctx context.Context, id int64) (types.School, error) {
	var schools []types.School
	err := r.store.transaction(ctx, func(c *conn) error {
		var err error
		schools, err = selectSchools(ctx, c, "id = ?", id)
		return err
	})
	if err != nil {
		return types.School{}, fmt.Errorf("SchoolRepository.GetByID: %w", err)
	}
	if len(schools) == 0 {
		return types.School{}, fmt.Errorf("SchoolRepository.GetByID: no school with id %d: %w", id, storage.ErrNotFound)
	}
	return schools[0], nil
}

// Update writes name and location. When sc.Students is non-nil it is the
// complete membership: new students are inserted, existing ones re-pointed
// and every other student of the school is deleted (orphan removal). A nil
// Students leaves membership unchanged.
func (r *SchoolRepository) Update(ctx context.Context, sc *types.School) error {
	err := r.store.transaction(ctx, func(c *conn) error {
		err := c.execAffecting(ctx,
			`UPDATE schools SET name = ?, location = ? WHERE id = ?`,
			stringToNull(sc.Name), stringToNull(string(sc.Location)), sc.ID,
		)
		if err != nil {
			return err
		}
		if sc.Students == nil {
			return nil
		}

		kept, err := attachStudents(ctx, c, sc)
		if err != nil {
			return err
		}

		where := "school_id = ?"
		args := []any{sc.ID}
		if len(kept) > 0 {
			where += " AND id NOT IN (" + placeholders(len(kept)) + ")"
			args = append(args, kept...)
		}
		return deleteStudentsOfSchools(ctx, c, where, args...)
	})
	if err != nil {
		return fmt.Errorf("SchoolRepository.Update: id %d: %w", sc.ID, err)
	}
	return nil
}

// Delete removes the school's students (phone numbers first), then the
// school itself. Addresses of the removed students stay.
func (r *SchoolRepository) Delete(ctx context.Context, id int64) error {
	err := r.store.transaction(ctx, func(c *conn) error {
		if err := deleteStudentsOfSchools(ctx, c, "school_id = ?", id); err != nil {
			return err
		}
		return c.execAffecting(ctx, `DELETE FROM schools WHERE id = ?`, id)
	})
	if err != nil {
		return fmt.Errorf("SchoolRepository.Delete: id %d: %w", id, err)
	}
	return nil
}

func (r *SchoolRepository) DeleteAll(ctx context.Context) error {
	err := r.store.transaction(ctx, func(c *conn) error {
		if err := deleteStudentsOfSchools(ctx, c, "school_id IS NOT NULL"); err != nil {
			return err
		}
		if _, err := c.exec(ctx, `DELETE FROM schools`); err != nil {
			return fmt.Errorf("delete schools: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("SchoolRepository.DeleteAll: %w", err)
	}
	return nil
}

// attachStudents points every student of sc at it, inserting the unsaved
// ones, and returns the ids of all of them. Nil entries are skipped.
func attachStudents(ctx context.Context, c *conn, sc *types.School) ([]any, error) {
	ids := make([]any, 0, len(sc.Students))
	for i, s := range sc.Students {
		if s == nil {
			continue
		}
		c.assign(&s.SchoolID, sc.ID)

		var err error
		if s.IsNew() {
			err = insertStudent(ctx, c, s)
		} else {
			err = c.execAffecting(ctx, `UPDATE students SET school_id = ? WHERE id = ?`, sc.ID, s.ID)
		}
		if err != nil {
			return nil, fmt.Errorf("student %d: %w", i, err)
		}
		ids = append(ids, s.ID)
	}
	return ids, nil
}

// deleteStudentsOfSchools deletes the students selected by where and
// their phone numbers.
func deleteStudentsOfSchools(ctx context.Context, c *conn, where string, args ...any) error {
	_, err := c.exec(ctx,
		`DELETE FROM student_phone_numbers WHERE student_id IN (SELECT id FROM students WHERE `+where+`)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("delete phone numbers: %w", err)
	}
	if _, err := c.exec(ctx, `DELETE FROM students WHERE `+where, args...); err != nil {
		return fmt.Errorf("delete students: %w", err)
	}
	return nil
}

// selectSchools loads the schools matching where with their students.
func selectSchools(ctx context.Context, c *conn, where string, args ...any) ([]types.School, error) {
	query := `SELECT ` + schoolColumns + ` FROM schools`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY id`

	schools, err := scanSchools(ctx, c, query, args...)
	if err != nil {
		return nil, err
	}
	if len(schools) == 0 {
		return schools, nil
	}

	index := make(map[int64]int, len(schools))
	ids := make([]any, 0, len(schools))
	for i, sc := range schools {
		index[sc.ID] = i
		ids = append(ids, sc.ID)
	}

	studentsWhere := `s.school_id IS NOT NULL`
	if where != "" {
		studentsWhere = `s.school_id IN (` + placeholders(len(ids)) + `)`
	} else {
		ids = nil
	}
	students, err := selectStudents(ctx, c, studentsWhere, ids...)
	if err != nil {
		return nil, err
	}
	for i := range students {
		sc := &schools[index[students[i].SchoolID]]
		sc.Students = append(sc.Students, &students[i])
	}
	return schools, nil
}

func scanSchools(ctx context.Context, c *conn, query string, args ...any) ([]types.School, error) {
	rows, err := c.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query schools: %w", err)
	}
	defer rows.Close()

	schools := make([]types.School, 0)
	for rows.Next() {
		var row schoolRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("scan school: %w", err)
		}
		schools = append(schools, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schools: %w", err)
	}
	return schools, nil
}
