package roster_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-roster/roster"
)

func validEmployee() roster.Employee {
	return roster.Employee{
		FirstName: "Ana",
		LastName:  "López",
		Username:  "alopez",
		HireDate:  roster.Date(2020, 1, 15),
		Status:    roster.StatusActive,
		RoleID:    roster.RoleOperator,
	}
}

func TestEmployee_Validate(t *testing.T) {
	require.NoError(t, validEmployee().Validate())

	early := roster.Date(2019, 12, 31)
	tests := []struct {
		field  string
		mutate func(e *roster.Employee)
	}{
		{"nombres", func(e *roster.Employee) { e.FirstName = "  " }},
		{"apellidos", func(e *roster.Employee) { e.LastName = "" }},
		{"usuario", func(e *roster.Employee) { e.Username = "" }},
		{"fecha_ingreso", func(e *roster.Employee) { e.HireDate = time.Time{} }},
		{"rol_id", func(e *roster.Employee) { e.RoleID = 0 }},
		{"estado", func(e *roster.Employee) { e.Status = "baja" }},
		{"fecha_salida", func(e *roster.Employee) { e.TerminationDate = &early }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			e := validEmployee()
			tt.mutate(&e)

			var verr *roster.ValidationError
			require.ErrorAs(t, e.Validate(), &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestEmployee_BirthdayIn(t *testing.T) {
	e := validEmployee()
	_, ok := e.BirthdayIn(2024)
	assert.False(t, ok, "no birthday on file")

	b := roster.Date(1990, 5, 20)
	e.Birthday = &b
	got, ok := e.BirthdayIn(2024)
	require.True(t, ok)
	assert.Equal(t, roster.Date(2024, 5, 20), got)

	leap := roster.Date(1992, 2, 29)
	e.Birthday = &leap
	_, ok = e.BirthdayIn(2023)
	assert.False(t, ok)
	got, ok = e.BirthdayIn(2028)
	require.True(t, ok)
	assert.Equal(t, roster.Date(2028, 2, 29), got)
}

func TestEmployeePatch_Apply(t *testing.T) {
	e := validEmployee()
	phone := "600000000"
	hired := time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC)

	roster.EmployeePatch{Phone: &phone, HireDate: &hired}.Apply(&e)

	assert.Equal(t, phone, e.Phone)
	assert.Equal(t, roster.Date(2021, 6, 1), e.HireDate, "dates are truncated to the day")
	assert.Equal(t, "Ana", e.FirstName, "absent fields are kept")
}

func TestHoliday_On(t *testing.T) {
	h := roster.Holiday{DayMonth: "29/02"}
	_, ok := h.On(2023)
	assert.False(t, ok)

	d, ok := h.On(2024)
	require.True(t, ok)
	assert.Equal(t, roster.Date(2024, 2, 29), d)
}

func TestEntryPatch_Apply(t *testing.T) {
	e := roster.Entry{EmployeeID: 1, Date: roster.Date(2024, 5, 1), Code: roster.CodeMorning, AutoGenerated: true}
	code := roster.CodeRest
	off := false

	roster.EntryPatch{Code: &code, AutoGenerated: &off}.Apply(&e)

	assert.Equal(t, roster.CodeRest, e.Code)
	assert.False(t, e.AutoGenerated)
	assert.Equal(t, int64(1), e.EmployeeID)
}

func TestErrorCategories(t *testing.T) {
	assert.True(t, roster.IsConflict(roster.ErrDuplicateEntry))
	assert.True(t, roster.IsConflict(roster.ErrDuplicateUsername))
	assert.True(t, roster.IsValidation(roster.ErrInvalidPeriod))
	assert.True(t, roster.IsNotFound(&roster.NotFoundError{Kind: "employee", ID: 3}))
	assert.False(t, roster.IsNotFound(roster.ErrDuplicateHoliday))
}
