package sqlstore

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/types"
)

// phoneBatchSize bounds the IN list used to load phone numbers.
const phoneBatchSize = 500

// StudentRepository implements storage.StudentRepository.
type StudentRepository struct {
	store *Store
}

var _ storage.StudentRepository = (*StudentRepository)(nil)

func (r *StudentRepository) Create(ctx context.Context, s *types.Student) error {
	err := r.store.transaction(ctx, func(c *conn) error {
		return insertStudent(ctx, c, s)
	})
	if err != nil {
		return fmt.Errorf("StudentRepository.Create: %w", err)
	}
	return nil
}

func (r *StudentRepository) CreateAll(ctx context.Context, students []*types.Student) error {
	err := r.store.transaction(ctx, func(c *conn) error {
		for i, s := range students {
			if s == nil {
				continue
			}
			if err := insertStudent(ctx, c, s); err != nil {
				return fmt.Errorf("student %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("StudentRepository.CreateAll: %w", err)
	}
	return nil
}

func (r *StudentRepository) GetAll(ctx context.Context) ([]types.Student, error) {
	var students []types.Student
	err := r.store.transaction(ctx, func(c *conn) error {
		var err error
		students, err = selectStudents(ctx, c, "")
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("StudentRepository.GetAll: %w", err)
	}
	return students, nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id int64) (types.Student, error) {
	var students []types.Student
	err := r.store.transaction(ctx, func(c *conn) error {
		var err error
		students, err = selectStudents(ctx, c, "s.id = ?", id)
		return err
	})
	if err != nil {
		return types.Student{}, fmt.Errorf("StudentRepository.GetByID: %w", err)
	}
	if len(students) == 0 {
		return types.Student{}, fmt.Errorf("StudentRepository.GetByID: no student with id %d: %w", id, storage.ErrNotFound)
	}
	return students[0], nil
}

// Update writes the student's columns and replaces its phone numbers. The
// Address is only re-pointed, never written; an unsaved Address is an
// error because the relationship cascades on insert only.
func (r *StudentRepository) Update(ctx context.Context, s *types.Student) error {
	if s.Address != nil && s.Address.IsNew() {
		return fmt.Errorf("StudentRepository.Update: id %d: address: %w", s.ID, storage.ErrUnsavedReference)
	}

	err := r.store.transaction(ctx, func(c *conn) error {
		err := c.execAffecting(ctx,
			`UPDATE students SET name = ?, email = ?, birth_date = ?, school_id = ?, address_id = ? WHERE id = ?`,
			append(studentArgs(s), s.ID)...,
		)
		if err != nil {
			return err
		}
		if _, err := c.exec(ctx, `DELETE FROM student_phone_numbers WHERE student_id = ?`, s.ID); err != nil {
			return fmt.Errorf("delete phone numbers: %w", err)
		}
		return insertPhoneNumbers(ctx, c, s.ID, s.PhoneNumbers)
	})
	if err != nil {
		return fmt.Errorf("StudentRepository.Update: id %d: %w", s.ID, err)
	}
	return nil
}

// Delete removes the student and its phone numbers. The Address row
// stays.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	err := r.store.transaction(ctx, func(c *conn) error {
		if _, err := c.exec(ctx, `DELETE FROM student_phone_numbers WHERE student_id = ?`, id); err != nil {
			return fmt.Errorf("delete phone numbers: %w", err)
		}
		return c.execAffecting(ctx, `DELETE FROM students WHERE id = ?`, id)
	})
	if err != nil {
		return fmt.Errorf("StudentRepository.Delete: id %d: %w", id, err)
	}
	return nil
}

// FindByNameStartingWithOrBirthDateBetween matches the prefix
// case-sensitively and literally: "%" and "_" in prefix are plain
// characters. Students without a name only match through the date range.
func (r *StudentRepository) FindByNameStartingWithOrBirthDateBetween(ctx context.Context, prefix string, start, end types.Date) ([]types.Student, error) {
	var students []types.Student
	err := r.store.transaction(ctx, func(c *conn) error {
		var err error
		students, err = selectStudents(ctx, c,
			`substr(s.name, 1, length(CAST(? AS TEXT))) = CAST(? AS TEXT)
			OR s.birth_date BETWEEN ? AND ?`,
			prefix, prefix, start.String(), end.String(),
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("StudentRepository.FindByNameStartingWithOrBirthDateBetween: %w", err)
	}
	return students, nil
}

func (r *StudentRepository) FindAllCountries(ctx context.Context) ([]string, error) {
	countries := make([]string, 0)
	err := r.store.transaction(ctx, func(c *conn) error {
		rows, err := c.query(ctx, `
			SELECT DISTINCT a.country
			FROM students s JOIN addresses a ON a.id = s.address_id
			WHERE a.country IS NOT NULL
			ORDER BY a.country`)
		if err != nil {
			return fmt.Errorf("query countries: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var country string
			if err := rows.Scan(&country); err != nil {
				return fmt.Errorf("scan country: %w", err)
			}
			countries = append(countries, country)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("StudentRepository.FindAllCountries: %w", err)
	}
	return countries, nil
}

// insertStudent inserts s, cascading to an unsaved Address first.
func insertStudent(ctx context.Context, c *conn, s *types.Student) error {
	if s.Address != nil && s.Address.IsNew() {
		if err := insertAddress(ctx, c, s.Address); err != nil {
			return err
		}
	}

	err := c.insert(ctx, &s.ID,
		`INSERT INTO students (name, email, birth_date, school_id, address_id) VALUES (?, ?, ?, ?, ?)`,
		studentArgs(s)...,
	)
	if err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return insertPhoneNumbers(ctx, c, s.ID, s.PhoneNumbers)
}

// studentArgs returns name, email, birth_date, school_id, address_id.
func studentArgs(s *types.Student) []any {
	var addressID int64
	if s.Address != nil {
		addressID = s.Address.ID
	}
	return []any{
		stringToNull(s.Name),
		stringToNull(s.Email),
		dateArg(s.BirthDate),
		intToNull(s.SchoolID),
		intToNull(addressID),
	}
}

func insertPhoneNumbers(ctx context.Context, c *conn, studentID int64, phoneNumbers []string) error {
	for position, phone := range phoneNumbers {
		_, err := c.exec(ctx,
			`INSERT INTO student_phone_numbers (student_id, position, phone_number) VALUES (?, ?, ?)`,
			studentID, position, phone,
		)
		if err != nil {
			return fmt.Errorf("insert phone number %d: %w", position, err)
		}
	}
	return nil
}

// selectStudents loads the students matching where (all of them when
// where is empty) ordered by ID, with address and phone numbers.
func selectStudents(ctx context.Context, c *conn, where string, args ...any) ([]types.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM ` + studentsFrom
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY s.id`

	students, err := scanStudents(ctx, c, query, args...)
	if err != nil {
		return nil, err
	}
	if err := loadPhoneNumbers(ctx, c, students); err != nil {
		return nil, err
	}
	return students, nil
}

func scanStudents(ctx context.Context, c *conn, query string, args ...any) ([]types.Student, error) {
	rows, err := c.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		var row studentRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return students, nil
}

// loadPhoneNumbers fills PhoneNumbers in position order.
func loadPhoneNumbers(ctx context.Context, c *conn, students []types.Student) error {
	index := make(map[int64]int, len(students))
	ids := make([]any, 0, len(students))
	for i, s := range students {
		index[s.ID] = i
		ids = append(ids, s.ID)
	}

	for len(ids) > 0 {
		batch := ids[:min(len(ids), phoneBatchSize)]
		ids = ids[len(batch):]

		err := func() error {
			rows, err := c.query(ctx, `
				SELECT student_id, phone_number FROM student_phone_numbers
				WHERE student_id IN (`+placeholders(len(batch))+`)
				ORDER BY student_id, position`,
				batch...,
			)
			if err != nil {
				return fmt.Errorf("query phone numbers: %w", err)
			}
			defer rows.Close()

			for rows.Next() {
				var (
					studentID int64
					phone     string
				)
				if err := rows.Scan(&studentID, &phone); err != nil {
					return fmt.Errorf("scan phone number: %w", err)
				}
				s := &students[index[studentID]]
				s.PhoneNumbers = append(s.PhoneNumbers, phone)
			}
			return rows.Err()
		}()
		if err != nil {
			return err
		}
	}
	return nil
}
