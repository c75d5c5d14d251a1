// Package storagetest holds the repository contract tests shared by every
// storage backend. A backend's own test calls Run with a factory that
// returns an empty Storage.
package storagetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/types"
)

// Factory returns an empty Storage for a single test. It is responsible
// for cleaning up after the test.
type Factory func(t *testing.T) storage.Storage

// Run runs every contract test against storages built by newStorage.
func Run(t *testing.T, newStorage Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, st storage.Storage)
	}{
		{"SaveOneSimple", testSaveOneSimple},
		{"SaveUniqueEmailTwice", testSaveUniqueEmailTwice},
		{"EmailIsCaseSensitive", testEmailIsCaseSensitive},
		{"EmailShouldNotBeNull", testEmailShouldNotBeNull},
		{"AgeIsNotPersisted", testAgeIsNotPersisted},
		{"AddressIsPersistedWithStudent", testAddressIsPersistedWithStudent},
		{"StudentsArePersistedAndDeletedWithSchool", testStudentsArePersistedAndDeletedWithSchool},
		{"DeleteAllSchools", testDeleteAllSchools},
		{"FindByNameStartingWithOrBirthDateBetween", testFindByNameStartingWithOrBirthDateBetween},
		{"FindByNamePrefixIsLiteral", testFindByNamePrefixIsLiteral},
		{"FindAllCountries", testFindAllCountries},
		{"UpdateAllToUSAByStudentName", testUpdateAllToUSAByStudentName},
		{"UpdateAllToUSAWithoutMatch", testUpdateAllToUSAWithoutMatch},
		{"PhoneNumbersKeepOrder", testPhoneNumbersKeepOrder},
		{"StudentDeleteKeepsAddress", testStudentDeleteKeepsAddress},
		{"StudentUpdateDoesNotWriteAddress", testStudentUpdateDoesNotWriteAddress},
		{"AddressDeleteWhileReferenced", testAddressDeleteWhileReferenced},
		{"CreateAllIsAtomic", testCreateAllIsAtomic},
		{"CreateAllSkipsNil", testCreateAllSkipsNil},
		{"SchoolCRUD", testSchoolCRUD},
		{"SchoolUpdateRemovesOrphans", testSchoolUpdateRemovesOrphans},
		{"SchoolUpdateWithoutStudentsKeepsThem", testSchoolUpdateWithoutStudentsKeepsThem},
		{"SchoolRejectsUnknownLocation", testSchoolRejectsUnknownLocation},
		{"AddressCRUD", testAddressCRUD},
		{"NotFound", testNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStorage(t))
		})
	}
}

func date(year int, month time.Month, day int) *types.Date {
	d := types.NewDate(year, month, day)
	return &d
}

func emails(students []types.Student) []string {
	out := make([]string, 0, len(students))
	for _, s := range students {
		out = append(out, s.Email)
	}
	return out
}

func testSaveOneSimple(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	john := types.NewStudent("John", "john@cc.com")
	require.NoError(t, st.Students().Create(ctx, john))
	assert.Positive(t, john.ID)

	students, err := st.Students().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, *john, students[0])
}

func testSaveUniqueEmailTwice(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	require.NoError(t, st.Students().Create(ctx, types.NewStudent("Joe", "joe@cc.com")))

	joe2 := types.NewStudent("Joe2", "joe@cc.com")
	err := st.Students().Create(ctx, joe2)
	require.ErrorIs(t, err, storage.ErrConstraint)

	ce, ok := storage.AsConstraint(err)
	require.True(t, ok)
	assert.Equal(t, storage.ConstraintUnique, ce.Kind)
	assert.Equal(t, "email", ce.Column)
	assert.Zero(t, joe2.ID, "identity must be reset after rollback")

	students, err := st.Students().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Joe", students[0].Name)
}

func testEmailIsCaseSensitive(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	require.NoError(t, st.Students().Create(ctx, types.NewStudent("Joe", "joe@cc.com")))
	require.NoError(t, st.Students().Create(ctx, types.NewStudent("Joe", "JOE@cc.com")))

	students, err := st.Students().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 2)
}

func testEmailShouldNotBeNull(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	err := st.Students().Create(ctx, &types.Student{Name: "Joe"})
	require.ErrorIs(t, err, storage.ErrConstraint)

	ce, ok := storage.AsConstraint(err)
	require.True(t, ok)
	assert.Equal(t, storage.ConstraintNotNull, ce.Kind)

	students, err := st.Students().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)
}

func testAgeIsNotPersisted(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	joe := types.NewStudent("Joe", "joe@cc.com")
	joe.BirthDate = date(1990, time.October, 10)
	joe.CalculateAge(time.Now())
	assert.GreaterOrEqual(t, joe.Age, int64(28))

	require.NoError(t, st.Students().Create(ctx, joe))

	students, err := st.Students().GetAll(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, students)
	for _, s := range students {
		assert.Zero(t, s.Age)
	}

	reloaded, err := st.Students().GetByID(ctx, joe.ID)
	require.NoError(t, err)
	assert.Zero(t, reloaded.Age)
	assert.Equal(t, joe.BirthDate, reloaded.BirthDate)
}

func testAddressIsPersistedWithStudent(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	address := types.NewAddress("Hungary", "Budapest", "Nagymező street 44", 1065)
	student := types.NewStudent("", "xy@cc.com")
	student.Address = address

	require.NoError(t, st.Students().Create(ctx, student))

	addresses, err := st.Addresses().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.Positive(t, addresses[0].ID)
	assert.Equal(t, *address, addresses[0])

	reloaded, err := st.Students().GetByID(ctx, student.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Address)
	assert.Equal(t, *address, *reloaded.Address)
}

func newSchoolOfNine() *types.School {
	school := types.NewSchool("", types.LocationBudapest)
	for i := 1; i < 10; i++ {
		school.AddStudent(types.NewStudent("", fmt.Sprintf("student%d@cc.com", i)))
	}
	return school
}

func testStudentsArePersistedAndDeletedWithSchool(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	school := newSchoolOfNine()
	require.NoError(t, st.Schools().Create(ctx, school))

	students, err := st.Students().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, students, 9)
	assert.Contains(t, emails(students), "student9@cc.com")
	for _, s := range students {
		assert.Equal(t, school.ID, s.SchoolID)
	}

	require.NoError(t, st.Schools().Delete(ctx, school.ID))

	students, err = st.Students().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)

	_, err = st.Schools().GetByID(ctx, school.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testDeleteAllSchools(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	require.NoError(t, st.Schools().Create(ctx, newSchoolOfNine()))
	loner := types.NewStudent("Loner", "loner@cc.com")
	require.NoError(t, st.Students().Create(ctx, loner))

	require.NoError(t, st.Schools().DeleteAll(ctx))

	schools, err := st.Schools().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, schools)

	students, err := st.Students().GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"loner@cc.com"}, emails(students))
}

func testFindByNameStartingWithOrBirthDateBetween(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	john := types.NewStudent("John", "john@cc.com")
	jane := types.NewStudent("Jane", "jane@cc.com")
	martha := types.NewStudent("Martha", "martha@cc.com")
	peter := types.NewStudent("", "jack@cc.com")
	peter.BirthDate = date(2010, time.October, 3)
	steve := types.NewStudent("", "steve@cc.com")
	steve.BirthDate = date(2011, time.December, 5)

	require.NoError(t, st.Students().CreateAll(ctx, []*types.Student{john, jane, martha, steve, peter}))

	found, err := st.Students().FindByNameStartingWithOrBirthDateBetween(ctx, "J",
		types.NewDate(2009, time.January, 1),
		types.NewDate(2011, time.January, 1),
	)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"john@cc.com", "jane@cc.com", "jack@cc.com"}, emails(found))

	// Both bounds are inclusive and a student matching both predicates is returned once.
	found, err = st.Students().FindByNameStartingWithOrBirthDateBetween(ctx, "Ma",
		types.NewDate(2010, time.October, 3),
		types.NewDate(2011, time.December, 5),
	)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"martha@cc.com", "jack@cc.com", "steve@cc.com"}, emails(found))

	john.BirthDate = date(2010, time.January, 1)
	require.NoError(t, st.Students().Update(ctx, john))
	found, err = st.Students().FindByNameStartingWithOrBirthDateBetween(ctx, "Jo",
		types.NewDate(2009, time.January, 1),
		types.NewDate(2011, time.January, 1),
	)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"john@cc.com", "jack@cc.com"}, emails(found))
}

func testFindByNamePrefixIsLiteral(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	require.NoError(t, st.Students().CreateAll(ctx, []*types.Student{
		types.NewStudent("John", "john@cc.com"),
		types.NewStudent("50% off", "promo@cc.com"),
	}))
	far := types.NewDate(1900, time.January, 1)

	found, err := st.Students().FindByNameStartingWithOrBirthDateBetween(ctx, "j", far, far)
	require.NoError(t, err)
	assert.Empty(t, found, "prefix match is case sensitive")

	found, err = st.Students().FindByNameStartingWithOrBirthDateBetween(ctx, "%", far, far)
	require.NoError(t, err)
	assert.Empty(t, found, "wildcards are plain characters")

	found, err = st.Students().FindByNameStartingWithOrBirthDateBetween(ctx, "50%", far, far)
	require.NoError(t, err)
	assert.Equal(t, []string{"promo@cc.com"}, emails(found))
}

func testFindAllCountries(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	students := make([]*types.Student, 0, 5)
	for i, country := range []string{"Hungary", "Poland", "Germany", "Hungary", ""} {
		s := types.NewStudent("", fmt.Sprintf("s%d@cc.com", i))
		s.Address = types.NewAddress(country, "", "", 0)
		students = append(students, s)
	}
	require.NoError(t, st.Students().CreateAll(ctx, students))
	require.NoError(t, st.Addresses().Create(ctx, types.NewAddress("France", "", "", 0)))

	countries, err := st.Students().FindAllCountries(ctx)
	require.NoError(t, err)
	assert.Len(t, countries, 3)
	assert.ElementsMatch(t, []string{"Poland", "Hungary", "Germany"}, countries)
}

func testUpdateAllToUSAByStudentName(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	poland := types.NewAddress("Poland", "", "", 0)
	hungary := types.NewAddress("Hungary", "", "", 0)
	germany := types.NewAddress("Germany", "", "", 0)

	student := types.NewStudent("temp", "temp@cc.com")
	student.Address = hungary

	require.NoError(t, st.Addresses().Create(ctx, poland))
	require.NoError(t, st.Addresses().Create(ctx, germany))
	require.NoError(t, st.Students().Create(ctx, student))

	addresses, err := st.Addresses().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, addresses, 3)
	for _, a := range addresses {
		assert.NotEqual(t, storage.USACountry, a.Country)
	}

	updated, err := st.Addresses().UpdateAllToUSAByStudentName(ctx, "temp")
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	byID := map[int64]string{}
	addresses, err = st.Addresses().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, addresses, 3)
	for _, a := range addresses {
		byID[a.ID] = a.Country
	}
	assert.Equal(t, map[int64]string{
		poland.ID:  "Poland",
		hungary.ID: storage.USACountry,
		germany.ID: "Germany",
	}, byID)
}

func testUpdateAllToUSAWithoutMatch(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	s := types.NewStudent("temp", "temp@cc.com")
	s.Address = types.NewAddress("Poland", "", "", 0)
	require.NoError(t, st.Students().Create(ctx, s))
	require.NoError(t, st.Students().Create(ctx, types.NewStudent("nobody", "nobody@cc.com")))

	for _, name := range []string{"Temp", "nobody", "missing"} {
		updated, err := st.Addresses().UpdateAllToUSAByStudentName(ctx, name)
		require.NoError(t, err)
		assert.Zero(t, updated, name)
	}

	a, err := st.Addresses().GetByID(ctx, s.Address.ID)
	require.NoError(t, err)
	assert.Equal(t, "Poland", a.Country)
}

func testPhoneNumbersKeepOrder(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	john := types.NewStudent("John", "johnny@cc.com")
	john.PhoneNumbers = []string{"555-6666", "361-3466", "512-2366"}
	barbara := types.NewStudent("Barbara", "brb@cc.com")
	barbara.PhoneNumbers = []string{"111-6666", "111-3466"}
	require.NoError(t, st.Students().CreateAll(ctx, []*types.Student{john, barbara}))

	reloaded, err := st.Students().GetByID(ctx, john.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"555-6666", "361-3466", "512-2366"}, reloaded.PhoneNumbers)

	john.PhoneNumbers = []string{"512-2366"}
	require.NoError(t, st.Students().Update(ctx, john))

	all, err := st.Students().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []string{"512-2366"}, all[0].PhoneNumbers)
	assert.Equal(t, []string{"111-6666", "111-3466"}, all[1].PhoneNumbers)

	require.NoError(t, st.Students().Delete(ctx, john.ID))
	_, err = st.Students().GetByID(ctx, john.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testStudentDeleteKeepsAddress(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	s := types.NewStudent("John", "john@cc.com")
	s.Address = types.NewAddress("Hungary", "Miskolc", "", 0)
	require.NoError(t, st.Students().Create(ctx, s))

	require.NoError(t, st.Students().Delete(ctx, s.ID))

	addresses, err := st.Addresses().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.Equal(t, s.Address.ID, addresses[0].ID)
}

func testStudentUpdateDoesNotWriteAddress(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	s := types.NewStudent("John", "john@cc.com")
	s.Address = types.NewAddress("Hungary", "Miskolc", "", 0)
	require.NoError(t, st.Students().Create(ctx, s))

	s.Name = "Johnny"
	s.Address.Country = "Austria"
	require.NoError(t, st.Students().Update(ctx, s))

	reloaded, err := st.Students().GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Johnny", reloaded.Name)
	require.NotNil(t, reloaded.Address)
	assert.Equal(t, "Hungary", reloaded.Address.Country)

	s.Address = types.NewAddress("Poland", "", "", 0)
	err = st.Students().Update(ctx, s)
	assert.ErrorIs(t, err, storage.ErrUnsavedReference)

	addresses, err := st.Addresses().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, addresses, 1)
}

func testAddressDeleteWhileReferenced(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	s := types.NewStudent("John", "john@cc.com")
	s.Address = types.NewAddress("Hungary", "", "", 0)
	require.NoError(t, st.Students().Create(ctx, s))

	err := st.Addresses().Delete(ctx, s.Address.ID)
	ce, ok := storage.AsConstraint(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, storage.ConstraintForeignKey, ce.Kind)

	require.NoError(t, st.Students().Delete(ctx, s.ID))
	require.NoError(t, st.Addresses().Delete(ctx, s.Address.ID))
}

func testCreateAllIsAtomic(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	first := types.NewStudent("First", "dup@cc.com")
	first.Address = types.NewAddress("Hungary", "", "", 0)
	first.PhoneNumbers = []string{"555-0000"}
	second := types.NewStudent("Second", "dup@cc.com")

	err := st.Students().CreateAll(ctx, []*types.Student{first, second})
	require.ErrorIs(t, err, storage.ErrConstraint)

	assert.Zero(t, first.ID)
	assert.Zero(t, first.Address.ID)
	assert.Zero(t, second.ID)

	students, err := st.Students().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)
	addresses, err := st.Addresses().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, addresses)

	// The same values can be stored once the conflict is gone.
	second.Email = "second@cc.com"
	require.NoError(t, st.Students().CreateAll(ctx, []*types.Student{first, second}))
	assert.Positive(t, first.Address.ID)
}

func testCreateAllSkipsNil(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	a := types.NewStudent("A", "a@cc.com")
	require.NoError(t, st.Students().CreateAll(ctx, []*types.Student{nil, a, nil}))
	assert.Positive(t, a.ID)

	students, err := st.Students().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

func testSchoolCRUD(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	john := types.NewStudent("John", "johnny@cc.com")
	john.Address = types.NewAddress("Hungary", "Budapest", "Nagymezo 44", 0)
	john.PhoneNumbers = []string{"555-6666"}
	school := types.NewSchool("Codecool BP", types.LocationBudapest, john)
	require.NoError(t, st.Schools().Create(ctx, school))
	require.NoError(t, st.Schools().Create(ctx, types.NewSchool("Codecool KRK", types.LocationKrakow)))

	got, err := st.Schools().GetByID(ctx, school.ID)
	require.NoError(t, err)
	assert.Equal(t, "Codecool BP", got.Name)
	assert.Equal(t, types.LocationBudapest, got.Location)
	require.Len(t, got.Students, 1)
	assert.Equal(t, *john, *got.Students[0])

	school.Name = "Codecool Budapest"
	school.Location = types.LocationMiskolc
	require.NoError(t, st.Schools().Update(ctx, school))

	schools, err := st.Schools().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, schools, 2)
	assert.Equal(t, "Codecool Budapest", schools[0].Name)
	assert.Equal(t, types.LocationMiskolc, schools[0].Location)
	assert.Len(t, schools[0].Students, 1)
	assert.Empty(t, schools[1].Students)

	// An existing student joins a new school without being inserted again.
	moved := types.NewSchool("Codecool WAW", types.LocationWarsaw, john)
	require.NoError(t, st.Schools().Create(ctx, moved))
	reloaded, err := st.Students().GetByID(ctx, john.ID)
	require.NoError(t, err)
	assert.Equal(t, moved.ID, reloaded.SchoolID)
}

func testSchoolUpdateRemovesOrphans(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	a := types.NewStudent("A", "a@cc.com")
	b := types.NewStudent("B", "b@cc.com")
	b.Address = types.NewAddress("Hungary", "", "", 0)
	b.PhoneNumbers = []string{"555-0001"}
	school := types.NewSchool("Codecool BP", types.LocationBudapest, a, b)
	require.NoError(t, st.Schools().Create(ctx, school))

	c := types.NewStudent("C", "c@cc.com")
	school.Students = []*types.Student{a, c}
	require.NoError(t, st.Schools().Update(ctx, school))
	assert.Positive(t, c.ID)
	assert.Equal(t, school.ID, c.SchoolID)

	got, err := st.Schools().GetByID(ctx, school.ID)
	require.NoError(t, err)
	require.Len(t, got.Students, 2)
	assert.Equal(t, a.ID, got.Students[0].ID)
	assert.Equal(t, c.ID, got.Students[1].ID)

	_, err = st.Students().GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// The removed student's address is not owned by it.
	_, err = st.Addresses().GetByID(ctx, b.Address.ID)
	assert.NoError(t, err)

	// An empty list removes every student.
	school.Students = []*types.Student{}
	require.NoError(t, st.Schools().Update(ctx, school))
	students, err := st.Students().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)
}

func testSchoolUpdateWithoutStudentsKeepsThem(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	school := newSchoolOfNine()
	require.NoError(t, st.Schools().Create(ctx, school))

	school.Students = nil
	school.Name = "Renamed"
	require.NoError(t, st.Schools().Update(ctx, school))

	got, err := st.Schools().GetByID(ctx, school.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Len(t, got.Students, 9)
}

func testSchoolRejectsUnknownLocation(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	err := st.Schools().Create(ctx, types.NewSchool("Codecool VIE", types.Location("VIENNA")))
	ce, ok := storage.AsConstraint(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, storage.ConstraintCheck, ce.Kind)
}

func testAddressCRUD(t *testing.T, st storage.Storage) {
	ctx := context.Background()

	a := types.NewAddress("Hungary", "Budapest", "Nagymezo 44", 1065)
	require.NoError(t, st.Addresses().Create(ctx, a))

	a.City = "Miskolc"
	a.ZipCode = 0
	require.NoError(t, st.Addresses().Update(ctx, a))

	got, err := st.Addresses().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, *a, got)

	require.NoError(t, st.Addresses().Delete(ctx, a.ID))
	_, err = st.Addresses().GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testNotFound(t *testing.T, st storage.Storage) {
	ctx := context.Background()
	const missing = 4242

	_, err := st.Students().GetByID(ctx, missing)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = st.Schools().GetByID(ctx, missing)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = st.Addresses().GetByID(ctx, missing)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, st.Students().Update(ctx, &types.Student{ID: missing, Email: "x@cc.com"}), storage.ErrNotFound)
	assert.ErrorIs(t, st.Schools().Update(ctx, &types.School{ID: missing}), storage.ErrNotFound)
	assert.ErrorIs(t, st.Addresses().Update(ctx, &types.Address{ID: missing}), storage.ErrNotFound)

	assert.ErrorIs(t, st.Students().Delete(ctx, missing), storage.ErrNotFound)
	assert.ErrorIs(t, st.Schools().Delete(ctx, missing), storage.ErrNotFound)
	assert.ErrorIs(t, st.Addresses().Delete(ctx, missing), storage.ErrNotFound)
}
