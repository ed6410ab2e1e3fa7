/*
handlers_test.go - HTTP tests for the roster API

Tests for:
- Employee CRUD, request validation and error mapping
- Holiday calendar endpoints
- Shift assignment (single day, range, birthdays) and month listing
- Reports and the Excel export
*/
package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-roster/config"
	"github.com/warp/shift-roster/logger"
	"github.com/warp/shift-roster/store/sqlite"
	"github.com/xuri/excelize/v2"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := NewHandler(store, config.Default().Roster, logger.New(io.Discard, "error"))
	srv := httptest.NewServer(NewRouter(h, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

// call sends body as JSON and decodes the response into out when non-nil.
func call(t *testing.T, srv *httptest.Server, method, path string, body any, out any) int {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createEmployee(t *testing.T, srv *httptest.Server, username, birthday string) EmployeeDTO {
	t.Helper()
	var emp EmployeeDTO
	status := call(t, srv, http.MethodPost, "/api/usuarios", map[string]any{
		"nombres":       "Ana",
		"apellidos":     username,
		"usuario":       username,
		"cumple_anios":  birthday,
		"fecha_ingreso": "2020-01-15",
		"rol_id":        2,
	}, &emp)
	require.Equal(t, http.StatusCreated, status)
	return emp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/health", nil, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRoles_List(t *testing.T) {
	srv := newTestServer(t)

	var roles []RoleDTO
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/roles", nil, &roles))
	require.Len(t, roles, 2)
	assert.Equal(t, "Jefe de Turno", roles[0].Name)
	assert.Equal(t, "Operador", roles[1].Name)
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func TestEmployee_Lifecycle(t *testing.T) {
	srv := newTestServer(t)

	// GIVEN: A created employee
	emp := createEmployee(t, srv, "ana", "")
	assert.Equal(t, "activo", emp.Status)
	assert.Nil(t, emp.Birthday)

	// WHEN: Patching the phone only
	var patched EmployeeDTO
	status := call(t, srv, http.MethodPatch, "/api/usuarios/"+itoa(emp.ID), map[string]any{"telefono": "600123123"}, &patched)

	// THEN: Other fields are kept
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "600123123", patched.Phone)
	assert.Equal(t, "ana", patched.Username)

	// WHEN: Deleting
	var ok map[string]bool
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodDelete, "/api/usuarios/"+itoa(emp.ID), nil, &ok))
	assert.True(t, ok["ok"])

	// THEN: It is gone
	assert.Equal(t, http.StatusNotFound, call(t, srv, http.MethodGet, "/api/usuarios/"+itoa(emp.ID), nil, nil))
}

func TestEmployee_Replace(t *testing.T) {
	srv := newTestServer(t)
	emp := createEmployee(t, srv, "ana", "")

	var replaced EmployeeDTO
	status := call(t, srv, http.MethodPut, "/api/usuarios/"+itoa(emp.ID), map[string]any{
		"nombres":       "Ana María",
		"apellidos":     "López",
		"usuario":       "amlopez",
		"fecha_ingreso": "2021-03-01",
		"estado":        "inactivo",
		"rol_id":        1,
	}, &replaced)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, emp.ID, replaced.ID)
	assert.Equal(t, "amlopez", replaced.Username)
	assert.Equal(t, "inactivo", replaced.Status)
	assert.Equal(t, int64(1), replaced.RoleID)
}

func TestEmployee_ValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	// Missing required fields are reported per JSON field
	var resp ErrorResponse
	status := call(t, srv, http.MethodPost, "/api/usuarios", map[string]any{
		"apellidos":     "X",
		"usuario":       "x",
		"fecha_ingreso": "15/01/2020",
		"rol_id":        2,
	}, &resp)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "required", resp.Fields["nombres"])
	assert.Equal(t, "datetime=2006-01-02", resp.Fields["fecha_ingreso"])

	// Unknown role is a validation error, not a 500
	status = call(t, srv, http.MethodPost, "/api/usuarios", map[string]any{
		"nombres":       "A",
		"apellidos":     "B",
		"usuario":       "ab",
		"fecha_ingreso": "2020-01-15",
		"rol_id":        99,
	}, &resp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp.Details, "rol_id")
}

func TestEmployee_DuplicateUsername(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "ana", "")

	status := call(t, srv, http.MethodPost, "/api/usuarios", map[string]any{
		"nombres":       "Otra",
		"apellidos":     "Ana",
		"usuario":       "ana",
		"fecha_ingreso": "2020-01-15",
		"rol_id":        2,
	}, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestEmployee_ListPaging(t *testing.T) {
	srv := newTestServer(t)
	for _, u := range []string{"a", "b", "c"} {
		createEmployee(t, srv, u, "")
	}

	var page []EmployeeDTO
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/usuarios?skip=1&limit=1", nil, &page))
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].Username)

	assert.Equal(t, http.StatusBadRequest, call(t, srv, http.MethodGet, "/api/usuarios?limit=-1", nil, nil))
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func TestHoliday_CreatePatchDelete(t *testing.T) {
	srv := newTestServer(t)

	var hol HolidayDTO
	status := call(t, srv, http.MethodPost, "/api/festivos", map[string]any{
		"dia_mes":     "24/06",
		"descripcion": "San Juan",
		"tipo":        "regional",
	}, &hol)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "activo", hol.Status)

	// Same day and jurisdiction conflicts
	status = call(t, srv, http.MethodPost, "/api/festivos", map[string]any{
		"dia_mes":     "24/06",
		"descripcion": "Otra",
		"tipo":        "regional",
	}, nil)
	assert.Equal(t, http.StatusConflict, status)

	var patched HolidayDTO
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPatch, "/api/festivos/"+itoa(hol.ID), map[string]any{"estado": "inactivo"}, &patched))
	assert.Equal(t, "inactivo", patched.Status)
	assert.Equal(t, "24/06", patched.DayMonth)

	require.Equal(t, http.StatusOK, call(t, srv, http.MethodDelete, "/api/festivos/"+itoa(hol.ID), nil, nil))
	assert.Equal(t, http.StatusNotFound, call(t, srv, http.MethodGet, "/api/festivos/"+itoa(hol.ID), nil, nil))
}

func TestHoliday_InvalidDayMonth(t *testing.T) {
	srv := newTestServer(t)

	var resp ErrorResponse
	status := call(t, srv, http.MethodPost, "/api/festivos", map[string]any{
		"dia_mes":     "32/01",
		"descripcion": "Nope",
		"tipo":        "national",
	}, &resp)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "daymonth", resp.Fields["dia_mes"])
}

func TestHoliday_Defaults(t *testing.T) {
	srv := newTestServer(t)

	var first, second map[string]any
	require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/api/festivos/defaults", nil, &first))
	require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/api/festivos/defaults", nil, &second))

	assert.Equal(t, float64(9), first["count"])
	assert.Equal(t, float64(0), second["count"])

	var all []HolidayDTO
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/festivos", nil, &all))
	assert.Len(t, all, 9)
}

// =============================================================================
// SHIFTS
// =============================================================================

func TestShift_AssignAndListMonth(t *testing.T) {
	srv := newTestServer(t)
	emp := createEmployee(t, srv, "ana", "")

	// GIVEN: A manual assignment
	var entry EntryDTO
	status := call(t, srv, http.MethodPost, "/api/turnos/asignar", map[string]any{
		"usuario_id": emp.ID,
		"fecha":      "2024-05-02",
		"turno":      "M",
	}, &entry)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, entry.ManuallyModified)
	assert.False(t, entry.AutoGenerated)

	// WHEN: Re-assigning the same day
	var again EntryDTO
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/api/turnos/asignar", map[string]any{
		"usuario_id": emp.ID,
		"fecha":      "2024-05-02",
		"turno":      "FN1",
		"es_reten":   true,
	}, &again))

	// THEN: The same entry was overwritten
	assert.Equal(t, entry.ID, again.ID)
	assert.Equal(t, "FN1", again.Code)
	assert.True(t, again.OnCall)

	var month []EntryDTO
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/turnos/mes/2024/5", nil, &month))
	require.Len(t, month, 1)
	assert.Equal(t, "2024-05-02", month[0].Date)

	var june []EntryDTO
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/turnos/mes/2024/6", nil, &june))
	assert.Empty(t, june)
}

func TestShift_AssignErrors(t *testing.T) {
	srv := newTestServer(t)
	emp := createEmployee(t, srv, "ana", "")

	// Code longer than the column
	assert.Equal(t, http.StatusBadRequest, call(t, srv, http.MethodPost, "/api/turnos/asignar", map[string]any{
		"usuario_id": emp.ID,
		"fecha":      "2024-05-02",
		"turno":      "FM1-EXTENDED",
	}, nil))

	// Unknown employee
	assert.Equal(t, http.StatusNotFound, call(t, srv, http.MethodPost, "/api/turnos/asignar", map[string]any{
		"usuario_id": 999,
		"fecha":      "2024-05-02",
		"turno":      "M",
	}, nil))

	// Malformed body
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/turnos/asignar", bytes.NewBufferString("{"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestShift_AbsenceRange(t *testing.T) {
	srv := newTestServer(t)
	emp := createEmployee(t, srv, "ana", "")

	var res RangeResponse
	status := call(t, srv, http.MethodPost, "/api/turnos/ausencia/rango", map[string]any{
		"usuario_id":   emp.ID,
		"fecha_inicio": "2024-03-04",
		"fecha_fin":    "2024-03-08",
		"tipo":         "v",
	}, &res)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, RangeResponse{Created: 5}, res)

	// Non-absence code is rejected by the request validator
	var errResp ErrorResponse
	status = call(t, srv, http.MethodPost, "/api/turnos/ausencia/rango", map[string]any{
		"usuario_id":   emp.ID,
		"fecha_inicio": "2024-03-04",
		"fecha_fin":    "2024-03-08",
		"tipo":         "M",
	}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "oneof=v b c", errResp.Fields["tipo"])

	// End before start
	status = call(t, srv, http.MethodPost, "/api/turnos/ausencia/rango", map[string]any{
		"usuario_id":   emp.ID,
		"fecha_inicio": "2024-03-08",
		"fecha_fin":    "2024-03-04",
		"tipo":         "b",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestShift_Birthdays(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "ana", "1990-05-20")
	createEmployee(t, srv, "luis", "1985-07-01")

	var res BirthdayResponse
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/api/turnos/cumpleanos/mes/2024/5", nil, &res))
	assert.Equal(t, BirthdayResponse{Created: 1}, res)

	var month []EntryDTO
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/turnos/mes/2024/5", nil, &month))
	require.Len(t, month, 1)
	assert.Equal(t, "2024-05-20", month[0].Date)
	assert.Equal(t, "c", month[0].Code)
	assert.True(t, month[0].AutoGenerated)
}

func TestShift_InvalidMonthPath(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, call(t, srv, http.MethodGet, "/api/turnos/mes/2024/13", nil, nil))
	assert.Equal(t, http.StatusBadRequest, call(t, srv, http.MethodGet, "/api/turnos/mes/2024/0", nil, nil))
	assert.Equal(t, http.StatusBadRequest, call(t, srv, http.MethodPost, "/api/turnos/cumpleanos/mes/abc/5", nil, nil))
}

func TestShift_GetAndPatchEntry(t *testing.T) {
	srv := newTestServer(t)
	emp := createEmployee(t, srv, "ana", "")

	var entry EntryDTO
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/api/turnos/asignar", map[string]any{
		"usuario_id":          emp.ID,
		"fecha":               "2024-05-02",
		"turno":               "T",
		"generado_automatico": true,
	}, &entry))

	var patched EntryDTO
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPatch, "/api/turnos/"+itoa(entry.ID), map[string]any{"turno": "N"}, &patched))
	assert.Equal(t, "N", patched.Code)
	assert.True(t, patched.ManuallyModified)

	var got EntryDTO
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/turnos/"+itoa(entry.ID), nil, &got))
	assert.Equal(t, "N", got.Code)

	assert.Equal(t, http.StatusNotFound, call(t, srv, http.MethodGet, "/api/turnos/999", nil, nil))
	assert.Equal(t, http.StatusBadRequest, call(t, srv, http.MethodGet, "/api/turnos/abc", nil, nil))
}

func TestShift_ExportMonth(t *testing.T) {
	srv := newTestServer(t)
	emp := createEmployee(t, srv, "ana", "")
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/api/turnos/asignar", map[string]any{
		"usuario_id": emp.ID,
		"fecha":      "2024-05-01",
		"turno":      "M",
	}, nil))

	resp, err := http.Get(srv.URL + "/api/turnos/mes/2024/5/export")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "turnos_2024_05.xlsx")

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Mayo 2024", "C4")
	require.NoError(t, err)
	assert.Equal(t, "M", v)
}

// =============================================================================
// REPORTS
// =============================================================================

func TestReports_WorkedAndVacation(t *testing.T) {
	srv := newTestServer(t)
	emp := createEmployee(t, srv, "ana", "")
	require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/api/festivos/defaults", nil, nil))

	for _, a := range []struct{ date, code string }{
		{"2024-05-01", "M"},   // Labour Day
		{"2024-05-02", "FM1"}, // 12h
		{"2024-05-03", "d"},   // rest, not counted
	} {
		require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/api/turnos/asignar", map[string]any{
			"usuario_id": emp.ID, "fecha": a.date, "turno": a.code,
		}, nil))
	}
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/api/turnos/ausencia/rango", map[string]any{
		"usuario_id": emp.ID, "fecha_inicio": "2024-05-06", "fecha_fin": "2024-05-07", "tipo": "v",
	}, nil))

	var worked []map[string]any
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/api/reportes/trabajados", map[string]any{
		"year": 2024, "month": 5,
	}, &worked))
	require.Len(t, worked, 1)
	assert.Equal(t, float64(2), worked[0]["dias_trabajados"])
	assert.Equal(t, float64(1), worked[0]["dias_festivos"])
	assert.Equal(t, float64(20), worked[0]["horas_trabajadas"])
	assert.Equal(t, "Operador", worked[0]["rol"])

	var vacation []map[string]any
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/api/reportes/vacaciones", map[string]any{
		"year": 2024,
	}, &vacation))
	require.Len(t, vacation, 1)
	assert.Equal(t, float64(2), vacation[0]["vacaciones_tomadas"])
	assert.Equal(t, float64(29), vacation[0]["dias_restantes"])

	var holidays []map[string]any
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/api/reportes/festivos", map[string]any{
		"year": 2024, "month": 5, "usuario_id": emp.ID,
	}, &holidays))
	require.Len(t, holidays, 1)
	assert.Equal(t, []any{"2024-05-01"}, holidays[0]["festivos_trabajados"])

	var years []int
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/reportes/years", nil, &years))
	assert.Equal(t, []int{2024}, years)
}

func TestReports_Errors(t *testing.T) {
	srv := newTestServer(t)

	// No eligible employees
	assert.Equal(t, http.StatusNotFound, call(t, srv, http.MethodPost, "/api/reportes/turnos", map[string]any{"year": 2024}, nil))

	// Holiday report needs a month
	createEmployee(t, srv, "ana", "")
	assert.Equal(t, http.StatusBadRequest, call(t, srv, http.MethodPost, "/api/reportes/festivos", map[string]any{"year": 2024}, nil))

	// Month out of range
	var resp ErrorResponse
	assert.Equal(t, http.StatusBadRequest, call(t, srv, http.MethodPost, "/api/reportes/trabajados", map[string]any{"year": 2024, "month": 13}, &resp))
	assert.Equal(t, "max=12", resp.Fields["month"])
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
