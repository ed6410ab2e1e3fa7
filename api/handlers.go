/*
handlers.go - HTTP API handlers for the shift roster

PURPOSE:
  Exposes the roster via REST API. Handles HTTP request/response, JSON
  serialization and request validation, and delegates to the calendar, the
  reconciler and the report aggregator.

ENDPOINTS:
  Roles & employees:
    GET    /api/roles                    List roles
    GET    /api/usuarios                 List employees (?skip=&limit=)
    POST   /api/usuarios                 Create employee
    GET    /api/usuarios/{id}            Get employee
    PUT    /api/usuarios/{id}            Replace employee
    PATCH  /api/usuarios/{id}            Sparse update
    DELETE /api/usuarios/{id}            Delete employee and their shifts

  Holidays:
    GET    /api/festivos                 List definitions
    POST   /api/festivos                 Create definition
    POST   /api/festivos/defaults        Add missing national holidays
    GET    /api/festivos/{id}            Get definition
    PATCH  /api/festivos/{id}            Sparse update
    DELETE /api/festivos/{id}            Delete definition

  Shifts:
    POST   /api/turnos/asignar                       Single-day upsert
    POST   /api/turnos/ausencia/rango                Absence over a range
    POST   /api/turnos/cumpleanos/mes/{year}/{month} Birthday auto-assignment
    GET    /api/turnos/mes/{year}/{month}            Month ledger
    GET    /api/turnos/mes/{year}/{month}/export     Month roster (.xlsx)
    GET    /api/turnos/{id}                          Get entry
    PATCH  /api/turnos/{id}                          Sparse update

  Reports:
    POST   /api/reportes/trabajados      Worked days and hours
    POST   /api/reportes/turnos          Shift type distribution
    POST   /api/reportes/festivos        Holiday work (month only)
    POST   /api/reportes/vacaciones      Vacation balance
    GET    /api/reportes/years           Years with data

ERROR HANDLING:
  Domain errors are mapped in writeDomainError:
  - 400: Validation errors, invalid input
  - 404: Unknown id, or no eligible employee for a report
  - 409: Duplicate holiday, username or (employee, date)
  - 500: Internal errors

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/warp/shift-roster/assign"
	"github.com/warp/shift-roster/config"
	"github.com/warp/shift-roster/export"
	"github.com/warp/shift-roster/reports"
	"github.com/warp/shift-roster/roster"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      roster.TxStore
	Calendar   *roster.Calendar
	Reconciler *assign.Reconciler
	Reports    *reports.Aggregator
	Exporter   *export.Exporter

	validate *validator.Validate
	log      *slog.Logger
}

// NewHandler wires the domain services on top of store.
func NewHandler(store roster.TxStore, cfg config.RosterConfig, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	cal := roster.NewCalendar(store, log)
	return &Handler{
		Store:      store,
		Calendar:   cal,
		Reconciler: assign.NewReconciler(store, log),
		Reports: reports.NewAggregator(store, cal, reports.Config{
			SchedulableRoles: cfg.SchedulableRoles,
			VacationDays:     cfg.VacationDays,
		}, log),
		Exporter: export.NewExporter(store, cal, cfg.SchedulableRoles, log),
		validate: newValidator(),
		log:      log,
	}
}

// =============================================================================
// ROLE & EMPLOYEE HANDLERS
// =============================================================================

// ListRoles returns the role reference data.
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Store.ListRoles(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to list roles", err)
		return
	}
	dtos := make([]RoleDTO, len(roles))
	for i, role := range roles {
		dtos[i] = RoleDTO{ID: role.ID, Name: role.Name, Description: role.Description}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListEmployees returns employees ordered by id.
// GET /api/usuarios?skip=0&limit=100
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid skip", err)
		return
	}
	limit, err := queryInt(r, "limit", 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid limit", err)
		return
	}

	employees, err := h.Store.ListEmployees(r.Context(), roster.EmployeeFilter{Offset: skip, Limit: limit})
	if err != nil {
		h.writeDomainError(w, "Failed to list employees", err)
		return
	}
	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}
	emp, err := employeeFromRequest(req)
	if err != nil {
		h.writeDomainError(w, "Invalid employee", err)
		return
	}
	if err := h.saveEmployee(r.Context(), emp, h.Store.CreateEmployee); err != nil {
		h.writeDomainError(w, "Failed to create employee", err)
		return
	}
	h.log.Info("employee created", "id", emp.ID, "usuario", emp.Username)
	writeJSON(w, http.StatusCreated, toEmployeeDTO(*emp))
}

// ReplaceEmployee overwrites every field of an employee.
// PUT /api/usuarios/{id}
func (h *Handler) ReplaceEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req EmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if _, err := h.Store.GetEmployee(r.Context(), id); err != nil {
		h.writeDomainError(w, "Failed to get employee", err)
		return
	}
	emp, err := employeeFromRequest(req)
	if err != nil {
		h.writeDomainError(w, "Invalid employee", err)
		return
	}
	emp.ID = id
	if err := h.saveEmployee(r.Context(), emp, h.Store.UpdateEmployee); err != nil {
		h.writeDomainError(w, "Failed to update employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// PatchEmployee applies the fields present in the body.
// PATCH /api/usuarios/{id}
func (h *Handler) PatchEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req PatchEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}
	patch, err := employeePatchFromRequest(req)
	if err != nil {
		h.writeDomainError(w, "Invalid employee", err)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "Failed to get employee", err)
		return
	}
	patch.Apply(emp)
	if err := h.saveEmployee(r.Context(), emp, h.Store.UpdateEmployee); err != nil {
		h.writeDomainError(w, "Failed to update employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// DeleteEmployee removes an employee and, by cascade, their shifts.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		h.writeDomainError(w, "Failed to delete employee", err)
		return
	}
	h.log.Info("employee deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// saveEmployee validates emp, checks its role and stores it with save.
func (h *Handler) saveEmployee(ctx context.Context, emp *roster.Employee, save func(context.Context, *roster.Employee) error) error {
	if err := emp.Validate(); err != nil {
		return err
	}
	if _, err := h.Store.GetRole(ctx, emp.RoleID); err != nil {
		if roster.IsNotFound(err) {
			return &roster.ValidationError{Field: "rol_id", Message: fmt.Sprintf("unknown role %d", emp.RoleID)}
		}
		return err
	}
	return save(ctx, emp)
}

func employeeFromRequest(req EmployeeRequest) (*roster.Employee, error) {
	hire, err := roster.ParseDate(req.HireDate)
	if err != nil {
		return nil, err
	}
	emp := &roster.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Phone:     req.Phone,
		HireDate:  hire,
		Status:    roster.Status(req.Status),
		RoleID:    req.RoleID,
	}
	if emp.Status == "" {
		emp.Status = roster.StatusActive
	}
	if emp.Birthday, err = parseOptionalDate(req.Birthday); err != nil {
		return nil, err
	}
	if emp.TerminationDate, err = parseOptionalDate(req.TerminationDate); err != nil {
		return nil, err
	}
	return emp, nil
}

func employeePatchFromRequest(req PatchEmployeeRequest) (roster.EmployeePatch, error) {
	p := roster.EmployeePatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Phone:     req.Phone,
		RoleID:    req.RoleID,
	}
	if req.Status != nil {
		s := roster.Status(*req.Status)
		p.Status = &s
	}
	var err error
	if req.Birthday != nil {
		if p.Birthday, err = parseOptionalDate(*req.Birthday); err != nil {
			return p, err
		}
	}
	if req.HireDate != nil {
		if p.HireDate, err = parseOptionalDate(*req.HireDate); err != nil {
			return p, err
		}
	}
	if req.TerminationDate != nil {
		if p.TerminationDate, err = parseOptionalDate(*req.TerminationDate); err != nil {
			return p, err
		}
	}
	return p, nil
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns every definition, active or not.
// GET /api/festivos
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Calendar.List(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to list holidays", err)
		return
	}
	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = toHolidayDTO(hol)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday creates a new definition.
// POST /api/festivos
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if !h.decode(w, r, &req) {
		return
	}
	hol, err := h.Calendar.Create(r.Context(), roster.Holiday{
		DayMonth:     req.DayMonth,
		Description:  req.Description,
		Jurisdiction: roster.Jurisdiction(req.Jurisdiction),
		Status:       roster.Status(req.Status),
	})
	if err != nil {
		h.writeDomainError(w, "Failed to create holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, toHolidayDTO(*hol))
}

// GetHoliday returns one definition.
func (h *Handler) GetHoliday(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	hol, err := h.Calendar.Get(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "Failed to get holiday", err)
		return
	}
	writeJSON(w, http.StatusOK, toHolidayDTO(*hol))
}

// PatchHoliday applies the fields present in the body.
// PATCH /api/festivos/{id}
func (h *Handler) PatchHoliday(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req PatchHolidayRequest
	if !h.decode(w, r, &req) {
		return
	}
	patch := roster.HolidayPatch{DayMonth: req.DayMonth, Description: req.Description}
	if req.Jurisdiction != nil {
		j := roster.Jurisdiction(*req.Jurisdiction)
		patch.Jurisdiction = &j
	}
	if req.Status != nil {
		s := roster.Status(*req.Status)
		patch.Status = &s
	}

	hol, err := h.Calendar.Patch(r.Context(), id, patch)
	if err != nil {
		h.writeDomainError(w, "Failed to update holiday", err)
		return
	}
	writeJSON(w, http.StatusOK, toHolidayDTO(*hol))
}

// DeleteHoliday deletes a definition.
// DELETE /api/festivos/{id}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Calendar.Delete(r.Context(), id); err != nil {
		h.writeDomainError(w, "Failed to delete holiday", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}

// AddDefaultHolidays adds the fixed national holidays that are missing.
// POST /api/festivos/defaults
func (h *Handler) AddDefaultHolidays(w http.ResponseWriter, r *http.Request) {
	added, err := h.Calendar.AddDefaults(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to add default holidays", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"status": "created",
		"count":  added,
	})
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// AssignShift upserts one (employee, date).
// POST /api/turnos/asignar
func (h *Handler) AssignShift(w http.ResponseWriter, r *http.Request) {
	var req AssignRequest
	if !h.decode(w, r, &req) {
		return
	}
	day, err := roster.ParseDate(req.Date)
	if err != nil {
		h.writeDomainError(w, "Invalid date", err)
		return
	}
	a := assign.Assignment{
		EmployeeID:    req.EmployeeID,
		Date:          day,
		Code:          roster.Code(req.Code),
		OnCall:        req.OnCall,
		AutoGenerated: req.AutoGenerated,
	}
	if req.Status != nil {
		s := roster.Status(*req.Status)
		a.Status = &s
	}

	entry, err := h.Reconciler.Assign(r.Context(), a)
	if err != nil {
		h.writeDomainError(w, "Failed to assign shift", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(*entry))
}

// AssignAbsenceRange writes an absence code on every day of a range.
// POST /api/turnos/ausencia/rango
func (h *Handler) AssignAbsenceRange(w http.ResponseWriter, r *http.Request) {
	var req RangeRequest
	if !h.decode(w, r, &req) {
		return
	}
	start, err := roster.ParseDate(req.Start)
	if err != nil {
		h.writeDomainError(w, "Invalid fecha_inicio", err)
		return
	}
	end, err := roster.ParseDate(req.End)
	if err != nil {
		h.writeDomainError(w, "Invalid fecha_fin", err)
		return
	}

	res, err := h.Reconciler.AssignRange(r.Context(), req.EmployeeID, start, end, roster.Code(req.Code))
	if err != nil {
		h.writeDomainError(w, "Failed to assign absence", err)
		return
	}
	writeJSON(w, http.StatusOK, RangeResponse{Updated: res.Updated, Created: res.Created})
}

// AssignBirthdays runs birthday auto-assignment for a month.
// POST /api/turnos/cumpleanos/mes/{year}/{month}
func (h *Handler) AssignBirthdays(w http.ResponseWriter, r *http.Request) {
	year, month, ok := pathYearMonth(w, r)
	if !ok {
		return
	}
	res, err := h.Reconciler.AssignBirthdays(r.Context(), year, month)
	if err != nil {
		h.writeDomainError(w, "Failed to assign birthdays", err)
		return
	}
	writeJSON(w, http.StatusOK, BirthdayResponse{Created: res.Created, Updated: res.Updated, Skipped: res.Skipped})
}

// ListMonth returns every entry of a month.
// GET /api/turnos/mes/{year}/{month}
func (h *Handler) ListMonth(w http.ResponseWriter, r *http.Request) {
	year, month, ok := pathYearMonth(w, r)
	if !ok {
		return
	}
	entries, err := h.Store.ListEntries(r.Context(), roster.EntryFilter{Period: roster.MonthPeriod(year, month)})
	if err != nil {
		h.writeDomainError(w, "Failed to list shifts", err)
		return
	}
	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toEntryDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ExportMonth streams the month roster as an Excel workbook.
// GET /api/turnos/mes/{year}/{month}/export
func (h *Handler) ExportMonth(w http.ResponseWriter, r *http.Request) {
	year, month, ok := pathYearMonth(w, r)
	if !ok {
		return
	}
	f, err := h.Exporter.MonthWorkbook(r.Context(), year, month)
	if err != nil {
		h.writeDomainError(w, "Failed to build workbook", err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("turnos_%d_%02d.xlsx", year, int(month))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		h.log.Error("write workbook", "error", err)
	}
}

// GetEntry returns one ledger entry.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	e, err := h.Store.GetEntry(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "Failed to get shift", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(*e))
}

// PatchEntry applies the fields present in the body to one entry.
// PATCH /api/turnos/{id}
func (h *Handler) PatchEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req PatchEntryRequest
	if !h.decode(w, r, &req) {
		return
	}
	patch := roster.EntryPatch{
		EmployeeID:    req.EmployeeID,
		OnCall:        req.OnCall,
		AutoGenerated: req.AutoGenerated,
	}
	if req.Date != nil {
		d, err := roster.ParseDate(*req.Date)
		if err != nil {
			h.writeDomainError(w, "Invalid date", err)
			return
		}
		patch.Date = &d
	}
	if req.Code != nil {
		c := roster.Code(*req.Code)
		patch.Code = &c
	}
	if req.Status != nil {
		s := roster.Status(*req.Status)
		patch.Status = &s
	}

	e, err := h.Reconciler.PatchEntry(r.Context(), id, patch)
	if err != nil {
		h.writeDomainError(w, "Failed to update shift", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(*e))
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// WorkedReport - POST /api/reportes/trabajados
func (h *Handler) WorkedReport(w http.ResponseWriter, r *http.Request) {
	q, ok := h.reportQuery(w, r)
	if !ok {
		return
	}
	out, err := h.Reports.Worked(r.Context(), q)
	if err != nil {
		h.writeDomainError(w, "Failed to build report", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ShiftTypeReport - POST /api/reportes/turnos
func (h *Handler) ShiftTypeReport(w http.ResponseWriter, r *http.Request) {
	q, ok := h.reportQuery(w, r)
	if !ok {
		return
	}
	out, err := h.Reports.ShiftTypes(r.Context(), q)
	if err != nil {
		h.writeDomainError(w, "Failed to build report", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HolidayReport - POST /api/reportes/festivos
func (h *Handler) HolidayReport(w http.ResponseWriter, r *http.Request) {
	q, ok := h.reportQuery(w, r)
	if !ok {
		return
	}
	out, err := h.Reports.HolidayWork(r.Context(), q)
	if err != nil {
		h.writeDomainError(w, "Failed to build report", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// VacationReport - POST /api/reportes/vacaciones
func (h *Handler) VacationReport(w http.ResponseWriter, r *http.Request) {
	q, ok := h.reportQuery(w, r)
	if !ok {
		return
	}
	out, err := h.Reports.Vacation(r.Context(), q)
	if err != nil {
		h.writeDomainError(w, "Failed to build report", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ReportYears - GET /api/reportes/years
func (h *Handler) ReportYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.Reports.Years(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to list years", err)
		return
	}
	writeJSON(w, http.StatusOK, years)
}

func (h *Handler) reportQuery(w http.ResponseWriter, r *http.Request) (reports.Query, bool) {
	var req ReportRequest
	if !h.decode(w, r, &req) {
		return reports.Query{}, false
	}
	q := reports.Query{Year: req.Year}
	if req.Month != nil {
		q.Month = time.Month(*req.Month)
	}
	if req.EmployeeID != nil {
		q.EmployeeID = *req.EmployeeID
	}
	return q, true
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError picks the status from the error category.
func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case roster.IsValidation(err):
		writeError(w, http.StatusBadRequest, message, err)
	case roster.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case roster.IsConflict(err):
		writeError(w, http.StatusConflict, message, err)
	default:
		h.log.Error(message, "error", err)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

// decode reads the JSON body into dst and validates it. On failure the
// response is written and false returned.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "Validation failed",
			Fields: fieldErrors(err),
		})
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid "+name, err)
		return 0, false
	}
	return id, true
}

// pathYearMonth reads {year}/{month}; month is 1-12.
func pathYearMonth(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 || year > 9999 {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return 0, 0, false
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return 0, 0, false
	}
	return year, time.Month(month), true
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return n, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := roster.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
