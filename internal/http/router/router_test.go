package router_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/school-records/internal/http/middleware"
	"github.com/aanand-mishra/school-records/internal/http/router"
	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/storage/sqlite"
	"github.com/aanand-mishra/school-records/internal/types"
	"github.com/aanand-mishra/school-records/internal/utils/response"
)

type testAPI struct {
	handler http.Handler
	st      storage.Storage
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	st, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return &testAPI{handler: router.New(st, zerolog.Nop()), st: st}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func TestStudentLifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/students", `{
		"name": "John",
		"email": "johnny@cc.com",
		"birth_date": "1995-10-10",
		"age": 99,
		"phone_numbers": ["555-6666", "361-3466"],
		"address": {"country": "Hungary", "city": "Budapest"}
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[types.Student](t, rec)
	assert.Positive(t, created.ID)
	require.NotNil(t, created.Address)
	assert.Positive(t, created.Address.ID)
	assert.GreaterOrEqual(t, created.Age, int64(30))
	assert.Less(t, created.Age, int64(99))

	path := fmt.Sprintf("/api/students/%d", created.ID)

	rec = api.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[types.Student](t, rec)
	assert.Equal(t, []string{"555-6666", "361-3466"}, got.PhoneNumbers)
	assert.Equal(t, created.Age, got.Age)

	rec = api.do(t, http.MethodPut, path, fmt.Sprintf(
		`{"name": "Johnny", "email": "johnny@cc.com", "address": {"id": %d}}`, created.Address.ID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[types.Student](t, rec)
	assert.Equal(t, "Johnny", updated.Name)
	assert.Nil(t, updated.BirthDate)
	assert.Empty(t, updated.PhoneNumbers)
	require.NotNil(t, updated.Address)
	assert.Equal(t, "Hungary", updated.Address.Country, "update re-points the address without writing it")

	rec = api.do(t, http.MethodGet, "/api/students", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]types.Student](t, rec), 1)

	rec = api.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, response.StatusOK, decodeBody[response.Response](t, rec).Status)

	rec = api.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/addresses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]types.Address](t, rec), 1, "deleting a student keeps its address")
}

func TestStudentErrors(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/students", `{"name": "Joe", "email": "joe@cc.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"duplicate email", http.MethodPost, "/api/students", `{"name": "Joe2", "email": "joe@cc.com"}`,
			http.StatusConflict, "already exists"},
		{"missing email", http.MethodPost, "/api/students", `{"name": "Joe"}`,
			http.StatusBadRequest, "field Email is required"},
		{"invalid email", http.MethodPost, "/api/students", `{"email": "joe"}`,
			http.StatusBadRequest, "field Email must be a valid email address"},
		{"empty body", http.MethodPost, "/api/students", "",
			http.StatusBadRequest, "request body is empty"},
		{"malformed body", http.MethodPost, "/api/students", `{"email":`,
			http.StatusBadRequest, "invalid JSON body"},
		{"invalid birth date", http.MethodPost, "/api/students", `{"email": "x@cc.com", "birth_date": "10/10/1995"}`,
			http.StatusBadRequest, ""},
		{"invalid id", http.MethodGet, "/api/students/abc", "",
			http.StatusBadRequest, "invalid id"},
		{"missing student", http.MethodGet, "/api/students/999", "",
			http.StatusNotFound, "record not found"},
		{"update missing student", http.MethodPut, "/api/students/999", `{"email": "new@cc.com"}`,
			http.StatusNotFound, ""},
		{"update with unsaved address", http.MethodPut, "/api/students/1", `{"email": "joe@cc.com", "address": {"country": "Poland"}}`,
			http.StatusBadRequest, "unsaved"},
		{"delete missing student", http.MethodDelete, "/api/students/999", "",
			http.StatusNotFound, ""},
		{"search without dates", http.MethodGet, "/api/students/search?prefix=J", "",
			http.StatusBadRequest, `"from" is required`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, tt.method, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			body := decodeBody[response.Response](t, rec)
			assert.Equal(t, response.StatusError, body.Status)
			assert.Contains(t, body.Error, tt.wantError)
		})
	}
}

func TestStudentSearchAndCountries(t *testing.T) {
	api := newTestAPI(t)

	for _, body := range []string{
		`{"name": "John", "email": "john@cc.com", "address": {"country": "Hungary"}}`,
		`{"name": "Jane", "email": "jane@cc.com", "address": {"country": "Poland"}}`,
		`{"name": "Martha", "email": "martha@cc.com", "address": {"country": "Hungary"}}`,
		`{"email": "jack@cc.com", "birth_date": "2010-10-03"}`,
		`{"email": "steve@cc.com", "birth_date": "2011-12-05"}`,
	} {
		rec := api.do(t, http.MethodPost, "/api/students", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := api.do(t, http.MethodGet, "/api/students/search?prefix=J&from=2009-01-01&to=2011-01-01", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var found []string
	for _, s := range decodeBody[[]types.Student](t, rec) {
		found = append(found, s.Email)
	}
	assert.ElementsMatch(t, []string{"john@cc.com", "jane@cc.com", "jack@cc.com"}, found)

	rec = api.do(t, http.MethodGet, "/api/students/countries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.ElementsMatch(t, []string{"Hungary", "Poland"}, decodeBody[[]string](t, rec))
}

func TestSchoolLifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/schools", `{
		"name": "Codecool BP",
		"location": "BUDAPEST",
		"students": [
			{"name": "John", "email": "johnny@cc.com", "address": {"city": "Budapest"}},
			{"name": "Barbara", "email": "brb@cc.com", "birth_date": "1975-12-03"}
		]
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[types.School](t, rec)
	require.Len(t, created.Students, 2)
	for _, s := range created.Students {
		assert.Positive(t, s.ID)
		assert.Equal(t, created.ID, s.SchoolID)
	}

	path := fmt.Sprintf("/api/schools/%d", created.ID)

	rec = api.do(t, http.MethodPut, path, `{"name": "Codecool Miskolc", "location": "MISKOLC"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[types.School](t, rec)
	assert.Equal(t, types.LocationMiskolc, updated.Location)
	assert.Len(t, updated.Students, 2)

	john := updated.Students[0]
	rec = api.do(t, http.MethodPut, path, fmt.Sprintf(`{
		"name": "Codecool Miskolc",
		"location": "MISKOLC",
		"students": [{"id": %d, "email": %q}]
	}`, john.ID, john.Email))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated = decodeBody[types.School](t, rec)
	require.Len(t, updated.Students, 1)
	assert.Equal(t, john.ID, updated.Students[0].ID)

	rec = api.do(t, http.MethodGet, "/api/students", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]types.Student](t, rec), 1, "students left out of the update are deleted")

	rec = api.do(t, http.MethodGet, "/api/schools", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]types.School](t, rec), 1)

	rec = api.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/students", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]types.Student](t, rec))

	rec = api.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSchoolRejectsUnknownLocation(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/schools", `{"name": "Codecool VIE", "location": "VIENNA"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody[response.Response](t, rec).Error, "Location")
}

func TestAddresses(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/students",
		`{"name": "temp", "email": "temp@cc.com", "address": {"country": "Hungary"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	student := decodeBody[types.Student](t, rec)

	rec = api.do(t, http.MethodPost, "/api/addresses", `{"country": "Poland", "zip_code": 1065}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	standalone := decodeBody[types.Address](t, rec)

	rec = api.do(t, http.MethodPost, "/api/addresses/usa?student=temp", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, map[string]int64{"updated": 1}, decodeBody[map[string]int64](t, rec))

	rec = api.do(t, http.MethodGet, fmt.Sprintf("/api/addresses/%d", student.Address.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, storage.USACountry, decodeBody[types.Address](t, rec).Country)

	rec = api.do(t, http.MethodPost, "/api/addresses/usa", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodDelete, fmt.Sprintf("/api/addresses/%d", student.Address.ID), "")
	assert.Equal(t, http.StatusConflict, rec.Code, "a student still points at the address")

	rec = api.do(t, http.MethodPut, fmt.Sprintf("/api/addresses/%d", standalone.ID), `{"country": "Germany"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Germany", decodeBody[types.Address](t, rec).Country)

	rec = api.do(t, http.MethodDelete, fmt.Sprintf("/api/addresses/%d", standalone.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestID(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/students", "")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}
