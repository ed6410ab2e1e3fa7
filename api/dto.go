/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures of the HTTP contract. Field names follow the wire format
  the frontend already speaks (Spanish snake_case), so the domain types in
  roster/ stay free of JSON concerns.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Summary wrappers

VALIDATION:
  Request types carry `validate` tags checked with go-playground/validator
  before the handler calls into the domain. "daymonth" is a custom rule
  registered in validate.go. The domain re-checks its own invariants.

DATES:
  Calendar days are "YYYY-MM-DD"; holiday keys are "DD/MM"; timestamps are
  RFC 3339.

SEE ALSO:
  - handlers.go: Uses these types
  - validate.go: Validator setup
*/
package api

import (
	"time"

	"github.com/warp/shift-roster/roster"
)

// =============================================================================
// EMPLOYEES & ROLES
// =============================================================================

type RoleDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

type EmployeeDTO struct {
	ID              int64   `json:"id"`
	FirstName       string  `json:"nombres"`
	LastName        string  `json:"apellidos"`
	Username        string  `json:"usuario"`
	Birthday        *string `json:"cumple_anios"`
	Phone           string  `json:"telefono"`
	HireDate        string  `json:"fecha_ingreso"`
	TerminationDate *string `json:"fecha_salida"`
	Status          string  `json:"estado"`
	RoleID          int64   `json:"rol_id"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// EmployeeRequest creates or replaces an employee.
type EmployeeRequest struct {
	FirstName       string `json:"nombres" validate:"required,max=100"`
	LastName        string `json:"apellidos" validate:"required,max=100"`
	Username        string `json:"usuario" validate:"required,max=50"`
	Birthday        string `json:"cumple_anios" validate:"omitempty,datetime=2006-01-02"`
	Phone           string `json:"telefono" validate:"max=20"`
	HireDate        string `json:"fecha_ingreso" validate:"required,datetime=2006-01-02"`
	TerminationDate string `json:"fecha_salida" validate:"omitempty,datetime=2006-01-02"`
	Status          string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
	RoleID          int64  `json:"rol_id" validate:"required,gt=0"`
}

// PatchEmployeeRequest is a sparse update; absent or null fields are ignored.
type PatchEmployeeRequest struct {
	FirstName       *string `json:"nombres" validate:"omitempty,min=1,max=100"`
	LastName        *string `json:"apellidos" validate:"omitempty,min=1,max=100"`
	Username        *string `json:"usuario" validate:"omitempty,min=1,max=50"`
	Birthday        *string `json:"cumple_anios" validate:"omitempty,datetime=2006-01-02"`
	Phone           *string `json:"telefono" validate:"omitempty,max=20"`
	HireDate        *string `json:"fecha_ingreso" validate:"omitempty,datetime=2006-01-02"`
	TerminationDate *string `json:"fecha_salida" validate:"omitempty,datetime=2006-01-02"`
	Status          *string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
	RoleID          *int64  `json:"rol_id" validate:"omitempty,gt=0"`
}

// =============================================================================
// HOLIDAYS
// =============================================================================

type HolidayDTO struct {
	ID           int64  `json:"id"`
	DayMonth     string `json:"dia_mes"`
	Description  string `json:"descripcion"`
	Jurisdiction string `json:"tipo"`
	Status       string `json:"estado"`
	CreatedAt    string `json:"created_at"`
}

type CreateHolidayRequest struct {
	DayMonth     string `json:"dia_mes" validate:"required,daymonth"`
	Description  string `json:"descripcion" validate:"required,max=100"`
	Jurisdiction string `json:"tipo" validate:"required,oneof=national regional"`
	Status       string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

type PatchHolidayRequest struct {
	DayMonth     *string `json:"dia_mes" validate:"omitempty,daymonth"`
	Description  *string `json:"descripcion" validate:"omitempty,min=1,max=100"`
	Jurisdiction *string `json:"tipo" validate:"omitempty,oneof=national regional"`
	Status       *string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// =============================================================================
// SHIFT LEDGER
// =============================================================================

type EntryDTO struct {
	ID               int64  `json:"id"`
	EmployeeID       int64  `json:"usuario_id"`
	Date             string `json:"fecha"`
	Code             string `json:"turno"`
	OnCall           bool   `json:"es_reten"`
	AutoGenerated    bool   `json:"generado_automatico"`
	ManuallyModified bool   `json:"modificado_manual"`
	Status           string `json:"estado"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// AssignRequest is a single-day upsert.
type AssignRequest struct {
	EmployeeID    int64   `json:"usuario_id" validate:"required,gt=0"`
	Date          string  `json:"fecha" validate:"required,datetime=2006-01-02"`
	Code          string  `json:"turno" validate:"required,max=10"`
	OnCall        *bool   `json:"es_reten"`
	AutoGenerated *bool   `json:"generado_automatico"`
	Status        *string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// RangeRequest assigns an absence code to every day of a range.
type RangeRequest struct {
	EmployeeID int64  `json:"usuario_id" validate:"required,gt=0"`
	Start      string `json:"fecha_inicio" validate:"required,datetime=2006-01-02"`
	End        string `json:"fecha_fin" validate:"required,datetime=2006-01-02"`
	Code       string `json:"tipo" validate:"required,oneof=v b c"`
}

type RangeResponse struct {
	Updated int `json:"actualizados"`
	Created int `json:"creados"`
}

type BirthdayResponse struct {
	Created int `json:"creados"`
	Updated int `json:"actualizados"`
	Skipped int `json:"omitidos"`
}

type PatchEntryRequest struct {
	EmployeeID    *int64  `json:"usuario_id" validate:"omitempty,gt=0"`
	Date          *string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Code          *string `json:"turno" validate:"omitempty,min=1,max=10"`
	OnCall        *bool   `json:"es_reten"`
	AutoGenerated *bool   `json:"generado_automatico"`
	Status        *string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// =============================================================================
// REPORTS
// =============================================================================

// ReportRequest selects the window and, optionally, one employee.
type ReportRequest struct {
	Year       int    `json:"year" validate:"required,min=1,max=9999"`
	Month      *int   `json:"month" validate:"omitempty,min=1,max=12"`
	EmployeeID *int64 `json:"usuario_id" validate:"omitempty,gt=0"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toEmployeeDTO(e roster.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:              e.ID,
		FirstName:       e.FirstName,
		LastName:        e.LastName,
		Username:        e.Username,
		Birthday:        formatOptionalDate(e.Birthday),
		Phone:           e.Phone,
		HireDate:        e.HireDate.Format(roster.DateLayout),
		TerminationDate: formatOptionalDate(e.TerminationDate),
		Status:          string(e.Status),
		RoleID:          e.RoleID,
		CreatedAt:       formatTimestamp(e.CreatedAt),
		UpdatedAt:       formatTimestamp(e.UpdatedAt),
	}
}

func toHolidayDTO(h roster.Holiday) HolidayDTO {
	return HolidayDTO{
		ID:           h.ID,
		DayMonth:     h.DayMonth,
		Description:  h.Description,
		Jurisdiction: string(h.Jurisdiction),
		Status:       string(h.Status),
		CreatedAt:    formatTimestamp(h.CreatedAt),
	}
}

func toEntryDTO(e roster.Entry) EntryDTO {
	return EntryDTO{
		ID:               e.ID,
		EmployeeID:       e.EmployeeID,
		Date:             e.Date.Format(roster.DateLayout),
		Code:             string(e.Code),
		OnCall:           e.OnCall,
		AutoGenerated:    e.AutoGenerated,
		ManuallyModified: e.ManuallyModified,
		Status:           string(e.Status),
		CreatedAt:        formatTimestamp(e.CreatedAt),
		UpdatedAt:        formatTimestamp(e.UpdatedAt),
	}
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(roster.DateLayout)
	return &s
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
