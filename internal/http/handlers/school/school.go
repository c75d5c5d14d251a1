// Package school contains the HTTP handlers of the School resource.
//
// Same closure/factory pattern as package student: every function takes
// storage.SchoolRepository once at startup and returns the per-request
// handler.
package school

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
// New handles POST /api/schools
// Saves the school and, in the same transaction, every student listed in
// it (new students are inserted with their address, students with an id
// are moved to this school).
//
// Request body (JSON):
//
//	{ "name": "Codecool BP", "location": "BUDAPEST",
//	  "students": [ { "name": "John", "email": "johnny@cc.com" } ] }
//
// Error responses:
//
//	400 Bad Request: invalid body or unknown location
//	409 Conflict: a listed student's email is already taken
// ─────────────────────────────────────────────────────────────────────────────
func New(schools storage.SchoolRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sc types.School
		if err := request.DecodeJSON(r, &sc); err != nil {
			response.Error(w, r, err)
			return
		}
		sc.ID = 0

		if err := schools.Create(r.Context(), &sc); err != nil {
			response.Error(w, r, err)
			return
		}

		zerolog.Ctx(r.Context()).Info().
			Int64("id", sc.ID).
			Int("students", len(sc.Students)).
			Msg("school created")
		withAges(&sc, time.Now())
		response.WriteJSON(w, http.StatusCreated, sc)
	}
}

// GetByID handles GET /api/schools/{id}
func GetByID(schools storage.SchoolRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ID(r)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		sc, err := schools.GetByID(r.Context(), id)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		withAges(&sc, time.Now())
		response.WriteJSON(w, http.StatusOK, sc)
	}
}

// GetList handles GET /api/schools
func GetList(schools storage.SchoolRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := schools.GetAll(r.Context())
		if err != nil {
			response.Error(w, r, err)
			return
		}

		now := time.Now()
		for i := range list {
			withAges(&list[i], now)
		}
		response.WriteJSON(w, http.StatusOK, list)
	}
}

// Update handles PUT /api/schools/{id}
// Name and location are always written. When the body carries a
// "students" array it becomes the school's full membership and students
// missing from it are deleted; without the field the students are kept.
func Update(schools storage.SchoolRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ID(r)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		var sc types.School
		if err := request.DecodeJSON(r, &sc); err != nil {
			response.Error(w, r, err)
			return
		}
		sc.ID = id

		if err := schools.Update(r.Context(), &sc); err != nil {
			response.Error(w, r, err)
			return
		}

		updated, err := schools.GetByID(r.Context(), id)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		zerolog.Ctx(r.Context()).Info().Int64("id", id).Msg("school updated")
		withAges(&updated, time.Now())
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /api/schools/{id}
// Deletes every student of the school first; their addresses are kept.
func Delete(schools storage.SchoolRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ID(r)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		if err := schools.Delete(r.Context(), id); err != nil {
			response.Error(w, r, err)
			return
		}

		zerolog.Ctx(r.Context()).Info().Int64("id", id).Msg("school deleted")
		response.OK(w)
	}
}

func withAges(sc *types.School, now time.Time) {
	for _, s := range sc.Students {
		if s != nil {
			s.CalculateAge(now)
		}
	}
}
