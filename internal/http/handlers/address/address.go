// Package address contains the HTTP handlers of the Address resource.
package address

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/types"
	"github.com/aanand-mishra/school-records/internal/utils/request"
	"github.com/aanand-mishra/school-records/internal/utils/response"
)

// New handles POST /api/addresses
func New(addresses storage.AddressRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a types.Address
		if err := request.DecodeJSON(r, &a); err != nil {
			response.Error(w, r, err)
			return
		}
		a.ID = 0

		if err := addresses.Create(r.Context(), &a); err != nil {
			response.Error(w, r, err)
			return
		}

		zerolog.Ctx(r.Context()).Info().Int64("id", a.ID).Msg("address created")
		response.WriteJSON(w, http.StatusCreated, a)
	}
}

// GetByID handles GET /api/addresses/{id}
func GetByID(addresses storage.AddressRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ID(r)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		a, err := addresses.GetByID(r.Context(), id)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, a)
	}
}

// GetList handles GET /api/addresses
func GetList(addresses storage.AddressRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := addresses.GetAll(r.Context())
		if err != nil {
			response.Error(w, r, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, list)
	}
}

// Update handles PUT /api/addresses/{id}
func Update(addresses storage.AddressRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ID(r)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		var a types.Address
		if err := request.DecodeJSON(r, &a); err != nil {
			response.Error(w, r, err)
			return
		}
		a.ID = id

		if err := addresses.Update(r.Context(), &a); err != nil {
			response.Error(w, r, err)
			return
		}

		zerolog.Ctx(r.Context()).Info().Int64("id", id).Msg("address updated")
		response.WriteJSON(w, http.StatusOK, a)
	}
}

// Delete handles DELETE /api/addresses/{id}
//
//	409 Conflict: a student still points at the address
func Delete(addresses storage.AddressRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ID(r)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		if err := addresses.Delete(r.Context(), id); err != nil {
			response.Error(w, r, err)
			return
		}

		zerolog.Ctx(r.Context()).Info().Int64("id", id).Msg("address deleted")
		response.OK(w)
	}
}

// MoveToUSA handles POST /api/addresses/usa?student=<name>
// Sets the country of every address belonging to a student with exactly
// this name to "USA" and reports how many addresses changed:
//
//	{ "updated": 1 }
func MoveToUSA(addresses storage.AddressRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := request.String(r, "student")
		if err != nil {
			response.Error(w, r, err)
			return
		}

		updated, err := addresses.UpdateAllToUSAByStudentName(r.Context(), name)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		zerolog.Ctx(r.Context()).Info().
			Str("student", name).
			Int64("updated", updated).
			Msg("addresses moved to USA")
		response.WriteJSON(w, http.StatusOK, map[string]int64{"updated": updated})
	}
}
