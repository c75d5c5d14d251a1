// Package student contains all HTTP handlers related to the Student resource.
//
// Handler pattern used here: the closure / factory pattern.
// ────────────────────────────────────────────────────────────
// Each exported function accepts its dependencies and returns a handler
// with the exact signature the router needs:
//
//	router.HandleFunc("POST /api/students", student.New(st.Students()))
//	//                                                  ^^^^^^^^^^^^^^
//	//                         New(...) is called ONCE at startup.
//	//                         It returns a handler func which is called
//	//                         on EVERY incoming request.
//
// Handlers depend on storage.StudentRepository only, never on a concrete
// database. Ages are derived from the birth date on every response and
// are ignored on input.
package student

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/types"
	"github.com/aanand-mishra/school-records/internal/utils/request"
	"github.com/aanand-mishra/school-records/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
//
// Request body (JSON):
//
//	{ "name": "John", "email": "johnny@cc.com", "birth_date": "1995-10-10",
//	  "phone_numbers": ["555-6666"], "address": { "country": "Hungary" } }
//
// Success response (201 Created): the stored student, with generated ids.
//
// Error responses:
//
//	400 Bad Request: empty body, malformed JSON, or failed validation
//	409 Conflict: a student with this email already exists
// ─────────────────────────────────────────────────────────────────────────────
func New(students storage.StudentRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := zerolog.Ctx(r.Context())

		var s types.Student
		if err := request.DecodeJSON(r, &s); err != nil {
			response.Error(w, r, err)
			return
		}
		s.ID = 0
		s.Age = 0

		if err := students.Create(r.Context(), &s); err != nil {
			response.Error(w, r, err)
			return
		}

		log.Info().Int64("id", s.ID).Msg("student created")
		s.CalculateAge(time.Now())
		response.WriteJSON(w, http.StatusCreated, s)
	}
}

// GetByID handles GET /api/students/{id}
//
//	400 Bad Request: id is not a positive integer
//	404 Not Found: no student with this id
func GetByID(students storage.StudentRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ID(r)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		s, err := students.GetByID(r.Context(), id)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		s.CalculateAge(time.Now())
		response.WriteJSON(w, http.StatusOK, s)
	}
}

// GetList handles GET /api/students
// Returns an empty array [] (not null) when there are no students.
func GetList(students storage.StudentRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := students.GetAll(r.Context())
		if err != nil {
			response.Error(w, r, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, withAges(list, time.Now()))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces every column of the student and its phone numbers. The address
// is only re-pointed: it must already exist (have an id) or be omitted.
//
// Error responses:
//
//	400 Bad Request: invalid id or body, or an address without an id
//	404 Not Found: no student with this id
//	409 Conflict: the new email belongs to another student
// ─────────────────────────────────────────────────────────────────────────────
func Update(students storage.StudentRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := zerolog.Ctx(r.Context())

		id, err := request.ID(r)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		var s types.Student
		if err := request.DecodeJSON(r, &s); err != nil {
			response.Error(w, r, err)
			return
		}
		s.ID = id

		if err := students.Update(r.Context(), &s); err != nil {
			response.Error(w, r, err)
			return
		}

		updated, err := students.GetByID(r.Context(), id)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		log.Info().Int64("id", id).Msg("student updated")
		updated.CalculateAge(time.Now())
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /api/students/{id}
// The student's address is kept.
func Delete(students storage.StudentRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ID(r)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		if err := students.Delete(r.Context(), id); err != nil {
			response.Error(w, r, err)
			return
		}

		zerolog.Ctx(r.Context()).Info().Int64("id", id).Msg("student deleted")
		response.OK(w)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Search handles GET /api/students/search?prefix=J&from=2009-01-01&to=2011-01-01
// Returns the students whose name starts with prefix (case sensitive) OR
// whose birth date lies in [from, to]. prefix may be empty; from and to
// are required.
// ─────────────────────────────────────────────────────────────────────────────
func Search(students storage.StudentRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := request.Date(r, "from")
		if err != nil {
			response.Error(w, r, err)
			return
		}
		to, err := request.Date(r, "to")
		if err != nil {
			response.Error(w, r, err)
			return
		}

		prefix := r.URL.Query().Get("prefix")
		list, err := students.FindByNameStartingWithOrBirthDateBetween(r.Context(), prefix, from, to)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, withAges(list, time.Now()))
	}
}

// Countries handles GET /api/students/countries
// Returns the distinct countries of the students' addresses:
//
//	["Germany", "Hungary", "Poland"]
func Countries(students storage.StudentRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		countries, err := students.FindAllCountries(r.Context())
		if err != nil {
			response.Error(w, r, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, countries)
	}
}

func withAges(list []types.Student, now time.Time) []types.Student {
	for i := range list {
		list[i].CalculateAge(now)
	}
	return list
}
