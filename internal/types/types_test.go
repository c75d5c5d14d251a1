package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStudent_CalculateAge(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthDate *Date
		want      int64
	}{
		{name: "birthday already passed", birthDate: ptr(NewDate(1990, time.October, 10)), want: 36},
		{name: "birthday today", birthDate: ptr(NewDate(2000, time.October, 19)), want: 26},
		{name: "birthday later this year", birthDate: ptr(NewDate(1975, time.December, 3)), want: 50},
		{name: "born this year", birthDate: ptr(NewDate(2026, time.January, 1)), want: 0},
		{name: "no birth date", birthDate: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStudent("Joe", "joe@cc.com")
			s.BirthDate = tt.birthDate
			s.CalculateAge(now)
			assert.Equal(t, tt.want, s.Age)
		})
	}
}

func TestStudent_CalculateAgeKeepsValueWithoutBirthDate(t *testing.T) {
	s := &Student{Email: "x@cc.com", Age: 7}
	s.CalculateAge(time.Now())
	assert.Equal(t, int64(7), s.Age)
}

func TestSchool_AddStudent(t *testing.T) {
	john := NewStudent("John", "johnny@cc.com")
	barbara := NewStudent("Barbara", "brb@cc.com")

	school := NewSchool("Codecool BP", LocationBudapest, john)
	school.AddStudent(barbara)
	school.AddStudent(john)

	assert.Equal(t, []*Student{john, barbara}, school.Students)
}

func TestLocation_Valid(t *testing.T) {
	for _, l := range Locations() {
		assert.True(t, l.Valid(), l)
	}
	assert.True(t, Location("").Valid())
	assert.False(t, Location("VIENNA").Valid())
	assert.False(t, Location("budapest").Valid())
}

func TestIsNew(t *testing.T) {
	assert.True(t, NewStudent("", "a@cc.com").IsNew())
	assert.True(t, NewAddress("Hungary", "", "", 0).IsNew())
	assert.False(t, (&Student{ID: 3}).IsNew())
	assert.False(t, (&Address{ID: 3}).IsNew())
}

func ptr[T any](v T) *T { return &v }
