/*
Package roster provides the core model of the shift roster.

PURPOSE:
  Domain types shared by the assignment reconciler, the report aggregator,
  the storage implementations and the HTTP API. Nothing in this package
  talks to a database directly; persistence goes through the interfaces in
  store.go.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: a person on the roster, gated by role and status
  - Role: reference data deciding who participates in scheduling
  - Holiday: a recurring DD/MM definition tagged by jurisdiction
  - Entry: the single shift record of one employee on one day
  - *Patch: sparse updates, nil fields are left untouched

INVARIANT:
  At most one Entry per (EmployeeID, Date). Storage enforces it with a
  unique index; the assign package enforces it with upsert semantics.

SEE ALSO:
  - codes.go: Shift codes, hour values, countable and absence sets
  - store.go: Persistence interfaces
  - calendar.go: Holiday resolution
*/
package roster

import (
	"strings"
	"time"
)

// =============================================================================
// STATUS
// =============================================================================

// Status is the lifecycle flag shared by employees, holidays and entries.
type Status string

const (
	StatusActive   Status = "activo"
	StatusInactive Status = "inactivo"
)

func (s Status) Valid() bool { return s == StatusActive || s == StatusInactive }

// =============================================================================
// EMPLOYEE & ROLE
// =============================================================================

// Role ids seeded by the store.
const (
	RoleShiftLead int64 = 1
	RoleOperator  int64 = 2
)

// DefaultSchedulableRoles are the roles that take part in scheduling and reports.
var DefaultSchedulableRoles = []int64{RoleShiftLead, RoleOperator}

type Role struct {
	ID          int64
	Name        string
	Description string
}

type Employee struct {
	ID              int64
	FirstName       string
	LastName        string
	Username        string
	Birthday        *time.Time
	Phone           string
	HireDate        time.Time
	TerminationDate *time.Time
	Status          Status
	RoleID          int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FullName joins first and last name the way the reports print them.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// BirthdayIn returns the birthday in the given year. A 29 February birthday
// has no date in a non-leap year and reports false.
func (e Employee) BirthdayIn(year int) (time.Time, bool) {
	if e.Birthday == nil {
		return time.Time{}, false
	}
	b := *e.Birthday
	if !ValidDate(year, b.Month(), b.Day()) {
		return time.Time{}, false
	}
	return Date(year, b.Month(), b.Day()), true
}

// EmployeePatch is a sparse update. Nil fields are never cleared.
type EmployeePatch struct {
	FirstName       *string
	LastName        *string
	Username        *string
	Birthday        *time.Time
	Phone           *string
	HireDate        *time.Time
	TerminationDate *time.Time
	Status          *Status
	RoleID          *int64
}

func (p EmployeePatch) Apply(e *Employee) {
	if p.FirstName != nil {
		e.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		e.LastName = *p.LastName
	}
	if p.Username != nil {
		e.Username = *p.Username
	}
	if p.Birthday != nil {
		b := Day(*p.Birthday)
		e.Birthday = &b
	}
	if p.Phone != nil {
		e.Phone = *p.Phone
	}
	if p.HireDate != nil {
		e.HireDate = Day(*p.HireDate)
	}
	if p.TerminationDate != nil {
		t := Day(*p.TerminationDate)
		e.TerminationDate = &t
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.RoleID != nil {
		e.RoleID = *p.RoleID
	}
}

// Validate checks the fields every stored employee must have.
func (e Employee) Validate() error {
	switch {
	case strings.TrimSpace(e.FirstName) == "":
		return &ValidationError{Field: "nombres", Message: "required"}
	case strings.TrimSpace(e.LastName) == "":
		return &ValidationError{Field: "apellidos", Message: "required"}
	case strings.TrimSpace(e.Username) == "":
		return &ValidationError{Field: "usuario", Message: "required"}
	case e.HireDate.IsZero():
		return &ValidationError{Field: "fecha_ingreso", Message: "required"}
	case e.RoleID <= 0:
		return &ValidationError{Field: "rol_id", Message: "required"}
	case !e.Status.Valid():
		return &ValidationError{Field: "estado", Message: "must be activo or inactivo"}
	}
	if e.TerminationDate != nil && e.TerminationDate.Before(e.HireDate) {
		return &ValidationError{Field: "fecha_salida", Message: "before fecha_ingreso"}
	}
	return nil
}

// =============================================================================
// HOLIDAY
// =============================================================================

// Jurisdiction tags a holiday definition.
type Jurisdiction string

const (
	JurisdictionNational Jurisdiction = "national"
	JurisdictionRegional Jurisdiction = "regional"
)

func (j Jurisdiction) Valid() bool {
	return j == JurisdictionNational || j == JurisdictionRegional
}

// Holiday recurs every year on DayMonth ("DD/MM").
type Holiday struct {
	ID           int64
	DayMonth     string
	Description  string
	Jurisdiction Jurisdiction
	Status       Status
	CreatedAt    time.Time
}

// On returns the concrete date of the holiday in year, false when the
// day/month does not exist that year.
func (h Holiday) On(year int) (time.Time, bool) {
	day, month, err := ParseDayMonth(h.DayMonth)
	if err != nil || !ValidDate(year, month, day) {
		return time.Time{}, false
	}
	return Date(year, month, day), true
}

func (h Holiday) Validate() error {
	if _, _, err := ParseDayMonth(h.DayMonth); err != nil {
		return err
	}
	if strings.TrimSpace(h.Description) == "" {
		return &ValidationError{Field: "descripcion", Message: "required"}
	}
	if !h.Jurisdiction.Valid() {
		return &ValidationError{Field: "tipo", Message: "must be national or regional"}
	}
	if !h.Status.Valid() {
		return &ValidationError{Field: "estado", Message: "must be activo or inactivo"}
	}
	return nil
}

type HolidayPatch struct {
	DayMonth     *string
	Description  *string
	Jurisdiction *Jurisdiction
	Status       *Status
}

func (p HolidayPatch) Apply(h *Holiday) {
	if p.DayMonth != nil {
		h.DayMonth = *p.DayMonth
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Jurisdiction != nil {
		h.Jurisdiction = *p.Jurisdiction
	}
	if p.Status != nil {
		h.Status = *p.Status
	}
}

// =============================================================================
// ENTRY - One shift per employee per day
// =============================================================================

type Entry struct {
	ID               int64
	EmployeeID       int64
	Date             time.Time
	Code             Code
	OnCall           bool // retén
	AutoGenerated    bool
	ManuallyModified bool
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// EntryPatch is a sparse update of an entry.
type EntryPatch struct {
	EmployeeID    *int64
	Date          *time.Time
	Code          *Code
	OnCall        *bool
	AutoGenerated *bool
	Status        *Status
}

func (p EntryPatch) Apply(e *Entry) {
	if p.EmployeeID != nil {
		e.EmployeeID = *p.EmployeeID
	}
	if p.Date != nil {
		e.Date = Day(*p.Date)
	}
	if p.Code != nil {
		e.Code = *p.Code
	}
	if p.OnCall != nil {
		e.OnCall = *p.OnCall
	}
	if p.AutoGenerated != nil {
		e.AutoGenerated = *p.AutoGenerated
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
}
