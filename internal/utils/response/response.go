// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client. Success
// responses may be any JSON shape (a record, a list, a count); error
// responses always use the Response envelope.
//
// Error writes go through Error, which is the single place where storage
// and validation errors are mapped to HTTP status codes.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/types"
	"github.com/aanand-mishra/school-records/internal/utils/request"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases:
//
//	{ "status": "error", "error": "field Email is required" }
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Error  string `json:"error,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data as JSON with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK writes the {"status":"ok"} envelope, used by deletes.
func OK(w http.ResponseWriter) error {
	return WriteJSON(w, http.StatusOK, Response{Status: StatusOK})
}

// GeneralError wraps any Go error into the standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts validator field errors into a single
// human-readable Response:
//
//	{ "status": "error", "error": "field Email is required, field Location is invalid" }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		case "oneof":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be one of [%s]", e.Field(), e.Param()))
		case "location":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be one of %v", e.Field(), types.Locations()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// StatusFor maps an error returned by a handler dependency to its HTTP status:
//
//	malformed request, failed validation    → 400 Bad Request
//	storage.ErrNotFound                     → 404 Not Found
//	unique / foreign key violation          → 409 Conflict
//	not-null / check violation              → 400 Bad Request
//	storage.ErrUnsavedReference             → 400 Bad Request
//	anything else                           → 500 Internal Server Error
// ─────────────────────────────────────────────────────────────────────────────
func StatusFor(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs), request.IsBadRequest(err):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrUnsavedReference):
		return http.StatusBadRequest
	}

	if ce, ok := storage.AsConstraint(err); ok {
		switch ce.Kind {
		case storage.ConstraintUnique, storage.ConstraintForeignKey:
			return http.StatusConflict
		default:
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// Error writes err with the status chosen by StatusFor and logs it through
// the request's logger. Internal errors are logged in full but answered
// with a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	log := zerolog.Ctx(r.Context())

	var (
		validationErrs validator.ValidationErrors
		body           Response
	)
	switch {
	case errors.As(err, &validationErrs):
		body = ValidationError(validationErrs)
	case status == http.StatusInternalServerError:
		log.Error().Err(err).Msg("request failed")
		body = GeneralError(errors.New(http.StatusText(status)))
	default:
		if ce, ok := storage.AsConstraint(err); ok && ce.Message != "" {
			body = GeneralError(errors.New(ce.Message))
		} else {
			body = GeneralError(err)
		}
	}

	if status != http.StatusInternalServerError {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	if werr := WriteJSON(w, status, body); werr != nil {
		log.Error().Err(werr).Msg("write error response")
	}
}
