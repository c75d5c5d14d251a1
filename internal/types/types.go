// Package types holds the records shared by every layer of the application:
// addresses, schools and students. Keeping them in one place prevents import
// cycles: storage, handlers and the seeding routine all import types without
// depending on each other.
//
// Relationships are expressed the way the tables store them:
//
//   - a Student owns its ordered list of phone numbers,
//   - a Student points at one Address (inserted together with the Student),
//   - a Student points at one School through SchoolID,
//   - a School carries the Students that point at it.
package types

import "time"

// Address is a mailing address. Every field except ID is optional; an empty
// string or a zero ZipCode is stored as "no value".
type Address struct {
	ID      int64  `json:"id"`
	Country string `json:"country,omitempty" validate:"omitempty,max=100"`
	City    string `json:"city,omitempty"    validate:"omitempty,max=100"`
	Address string `json:"address,omitempty" validate:"omitempty,max=255"`
	ZipCode int    `json:"zip_code,omitempty" validate:"omitempty,gte=0"`
}

// NewAddress builds an unsaved Address.
func NewAddress(country, city, street string, zipCode int) *Address {
	return &Address{
		Country: country,
		City:    city,
		Address: street,
		ZipCode: zipCode,
	}
}

// IsNew reports whether the address has not been inserted yet.
func (a *Address) IsNew() bool { return a.ID == 0 }

// Location is the fixed set of cities a School can be located in.
type Location string

const (
	LocationBudapest Location = "BUDAPEST"
	LocationMiskolc  Location = "MISKOLC"
	LocationWarsaw   Location = "WARSAW"
	LocationKrakow   Location = "KRAKOW"
)

// Locations lists every valid Location in declaration order.
func Locations() []Location {
	return []Location{LocationBudapest, LocationMiskolc, LocationWarsaw, LocationKrakow}
}

// Valid reports whether l is one of the known locations. The empty
// location is valid: it means "not set".
func (l Location) Valid() bool {
	if l == "" {
		return true
	}
	for _, known := range Locations() {
		if l == known {
			return true
		}
	}
	return false
}

// School is a school and the Students attending it.
//
// Students is an unordered set; the relationship itself lives on the
// Student side (Student.SchoolID). Inserting a School inserts every
// Student in Students, and deleting a School deletes every Student that
// points at it.
type School struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name,omitempty"     validate:"omitempty,max=255"`
	Location Location   `json:"location,omitempty" validate:"location"`
	Students []*Student `json:"students,omitempty" validate:"omitempty,dive"`
}

// NewSchool builds an unsaved School with the given Students.
func NewSchool(name string, location Location, students ...*Student) *School {
	return &School{
		Name:     name,
		Location: location,
		Students: students,
	}
}

// AddStudent appends s to the school unless it is already present.
func (s *School) AddStudent(student *Student) {
	for _, existing := range s.Students {
		if existing == student {
			return
		}
	}
	s.Students = append(s.Students, student)
}

// Student is a person enrolled at (at most) one School.
//
// Email is the only required field and must be unique across all
// Students; both rules are enforced by the database, not here.
//
// Age is derived from BirthDate by CalculateAge and is never persisted:
// every Student read back from storage has Age == 0.
type Student struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name,omitempty"  validate:"omitempty,max=255"`
	Email        string   `json:"email"           validate:"required,email"`
	BirthDate    *Date    `json:"birth_date,omitempty"`
	Age          int64    `json:"age,omitempty"`
	PhoneNumbers []string `json:"phone_numbers,omitempty" validate:"omitempty,dive,required"`
	SchoolID     int64    `json:"school_id,omitempty"`
	Address      *Address `json:"address,omitempty"`
}

// NewStudent builds an unsaved Student. Optional fields (birth date, phone
// numbers, address, school) are set directly on the returned value.
func NewStudent(name, email string) *Student {
	return &Student{
		Name:  name,
		Email: email,
	}
}

// IsNew reports whether the student has not been inserted yet.
func (s *Student) IsNew() bool { return s.ID == 0 }

// CalculateAge sets Age to the number of whole years between BirthDate and
// now. Without a birth date Age is left untouched.
func (s *Student) CalculateAge(now time.Time) {
	if s.BirthDate == nil {
		return
	}
	s.Age = s.BirthDate.YearsUntil(now)
}
