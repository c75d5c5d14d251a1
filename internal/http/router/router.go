// Package router registers every HTTP route of the API.
//
// Route table:
//
//	POST   /api/students              → create a student (cascades its address)
//	GET    /api/students              → list students
//	GET    /api/students/search       → ?prefix=&from=&to=
//	GET    /api/students/countries    → distinct countries of student addresses
//	GET    /api/students/{id}         → get one student
//	PUT    /api/students/{id}         → update a student
//	DELETE /api/students/{id}         → delete a student
//
//	POST   /api/schools               → create a school with its students
//	GET    /api/schools               → list schools
//	GET    /api/schools/{id}          → get one school
//	PUT    /api/schools/{id}          → update name and location
//	DELETE /api/schools/{id}          → delete a school and its students
//
//	POST   /api/addresses             → create an address
//	GET    /api/addresses             → list addresses
//	POST   /api/addresses/usa         → ?student=<name>, move addresses to USA
//	GET    /api/addresses/{id}        → get one address
//	PUT    /api/addresses/{id}        → update an address
//	DELETE /api/addresses/{id}        → delete an unreferenced address
//
// Literal segments such as /search win over {id}: Go's ServeMux picks the
// most specific pattern.
package router

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aanand-mishra/school-records/internal/http/handlers/address"
	"github.com/aanand-mishra/school-records/internal/http/handlers/school"
	"github.com/aanand-mishra/school-records/internal/http/handlers/student"
	"github.com/aanand-mishra/school-records/internal/http/middleware"
	"github.com/aanand-mishra/school-records/internal/storage"
)

// New returns the API handler backed by st, wrapped with the request
// logger and panic recovery.
func New(st storage.Storage, log zerolog.Logger) http.Handler {
	router := http.NewServeMux()

	students := st.Students()
	router.HandleFunc("POST /api/students", student.New(students))
	router.HandleFunc("GET /api/students", student.GetList(students))
	router.HandleFunc("GET /api/students/search", student.Search(students))
	router.HandleFunc("GET /api/students/countries", student.Countries(students))
	router.HandleFunc("GET /api/students/{id}", student.GetByID(students))
	router.HandleFunc("PUT /api/students/{id}", student.Update(students))
	router.HandleFunc("DELETE /api/students/{id}", student.Delete(students))

	schools := st.Schools()
	router.HandleFunc("POST /api/schools", school.New(schools))
	router.HandleFunc("GET /api/schools", school.GetList(schools))
	router.HandleFunc("GET /api/schools/{id}", school.GetByID(schools))
	router.HandleFunc("PUT /api/schools/{id}", school.Update(schools))
	router.HandleFunc("DELETE /api/schools/{id}", school.Delete(schools))

	addresses := st.Addresses()
	router.HandleFunc("POST /api/addresses", address.New(addresses))
	router.HandleFunc("GET /api/addresses", address.GetList(addresses))
	router.HandleFunc("POST /api/addresses/usa", address.MoveToUSA(addresses))
	router.HandleFunc("GET /api/addresses/{id}", address.GetByID(addresses))
	router.HandleFunc("PUT /api/addresses/{id}", address.Update(addresses))
	router.HandleFunc("DELETE /api/addresses/{id}", address.Delete(addresses))

	return middleware.Chain(router,
		middleware.Logger(log),
		middleware.Recoverer,
	)
}
