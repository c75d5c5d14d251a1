// Package request reads path parameters, query parameters and JSON bodies
// off incoming requests. Every failure it returns is a bad-request error:
// IsBadRequest reports true for it and the response package answers 400.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/school-records/internal/types"
)

// validate is shared by every handler; a Validate instance caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

// newValidator registers the "location" tag, which accepts the empty
// string and every types.Location.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.RegisterValidation("location", func(fl validator.FieldLevel) bool {
		return types.Location(fl.Field().String()).Valid()
	})
	if err != nil {
		panic(err)
	}
	return v
}

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

// BadRequest marks err as caused by the client.
func BadRequest(err error) error {
	return &badRequestError{err: err}
}

// IsBadRequest reports whether err was returned by this package or marked
// with BadRequest.
func IsBadRequest(err error) bool {
	var br *badRequestError
	return errors.As(err, &br)
}

// ID parses the {id} path segment, e.g. "GET /api/students/{id}".
func ID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, BadRequest(errors.New("invalid id: must be a positive integer"))
	}
	return id, nil
}

// DecodeJSON decodes the body into v and validates v's struct tags.
// Validation failures are returned as validator.ValidationErrors so the
// response can name each field.
func DecodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return BadRequest(ErrEmptyBody)
	}
	if err != nil {
		return BadRequest(fmt.Errorf("invalid JSON body: %w", err))
	}

	if err := validate.Struct(v); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validationErrs
		}
		return BadRequest(err)
	}
	return nil
}

// Date parses a required YYYY-MM-DD query parameter.
func Date(r *http.Request, key string) (types.Date, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return types.Date{}, BadRequest(fmt.Errorf("query parameter %q is required", key))
	}
	d, err := types.ParseDate(raw)
	if err != nil {
		return types.Date{}, BadRequest(fmt.Errorf("query parameter %q: %w", key, err))
	}
	return d, nil
}

// String returns a required query parameter.
func String(r *http.Request, key string) (string, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return "", BadRequest(fmt.Errorf("query parameter %q is required", key))
	}
	return v, nil
}
