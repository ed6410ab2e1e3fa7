// Package store provides an in-memory roster.TxStore.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/shift-roster/roster"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps every table in maps guarded by one mutex. WithTx works on a
// copy that replaces the live data only when fn succeeds.
type Memory struct {
	mu   sync.Mutex
	data *tables
}

var _ roster.TxStore = (*Memory)(nil)

type dayKey struct {
	EmployeeID int64
	Date       time.Time
}

type holidayKey struct {
	DayMonth     string
	Jurisdiction roster.Jurisdiction
}

type tables struct {
	entries   map[int64]roster.Entry
	byDay     map[dayKey]int64
	employees map[int64]roster.Employee
	roles     map[int64]roster.Role
	holidays  map[int64]roster.Holiday

	nextEntry, nextEmployee, nextHoliday int64
}

func NewMemory() *Memory {
	t := &tables{
		entries:   make(map[int64]roster.Entry),
		byDay:     make(map[dayKey]int64),
		employees: make(map[int64]roster.Employee),
		roles:     make(map[int64]roster.Role),
		holidays:  make(map[int64]roster.Holiday),
	}
	t.roles[roster.RoleShiftLead] = roster.Role{ID: roster.RoleShiftLead, Name: "Jefe de Turno"}
	t.roles[roster.RoleOperator] = roster.Role{ID: roster.RoleOperator, Name: "Operador"}
	return &Memory{data: t}
}

func (t *tables) clone() *tables {
	c := &tables{
		entries:      make(map[int64]roster.Entry, len(t.entries)),
		byDay:        make(map[dayKey]int64, len(t.byDay)),
		employees:    make(map[int64]roster.Employee, len(t.employees)),
		roles:        make(map[int64]roster.Role, len(t.roles)),
		holidays:     make(map[int64]roster.Holiday, len(t.holidays)),
		nextEntry:    t.nextEntry,
		nextEmployee: t.nextEmployee,
		nextHoliday:  t.nextHoliday,
	}
	for k, v := range t.entries {
		c.entries[k] = v
	}
	for k, v := range t.byDay {
		c.byDay[k] = v
	}
	for k, v := range t.employees {
		c.employees[k] = v
	}
	for k, v := range t.roles {
		c.roles[k] = v
	}
	for k, v := range t.holidays {
		c.holidays[k] = v
	}
	return c
}

// WithTx runs fn against a private copy and publishes it on success.
func (m *Memory) WithTx(ctx context.Context, fn func(roster.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.data.clone()
	if err := fn(work); err != nil {
		return err
	}
	m.data = work
	return nil
}

// =============================================================================
// LOCKED DELEGATES
// =============================================================================

func (m *Memory) CreateEntry(ctx context.Context, e *roster.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.CreateEntry(ctx, e)
}

func (m *Memory) GetEntry(ctx context.Context, id int64) (*roster.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.GetEntry(ctx, id)
}

func (m *Memory) FindEntry(ctx context.Context, employeeID int64, day time.Time) (*roster.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.FindEntry(ctx, employeeID, day)
}

func (m *Memory) UpdateEntry(ctx context.Context, e *roster.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.UpdateEntry(ctx, e)
}

func (m *Memory) ListEntries(ctx context.Context, f roster.EntryFilter) ([]roster.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.ListEntries(ctx, f)
}

func (m *Memory) EntryYears(ctx context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.EntryYears(ctx)
}

func (m *Memory) CreateEmployee(ctx context.Context, e *roster.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.CreateEmployee(ctx, e)
}

func (m *Memory) GetEmployee(ctx context.Context, id int64) (*roster.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.GetEmployee(ctx, id)
}

func (m *Memory) ListEmployees(ctx context.Context, f roster.EmployeeFilter) ([]roster.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.ListEmployees(ctx, f)
}

func (m *Memory) UpdateEmployee(ctx context.Context, e *roster.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.UpdateEmployee(ctx, e)
}

func (m *Memory) DeleteEmployee(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.DeleteEmployee(ctx, id)
}

func (m *Memory) ListRoles(ctx context.Context) ([]roster.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.ListRoles(ctx)
}

func (m *Memory) GetRole(ctx context.Context, id int64) (*roster.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.GetRole(ctx, id)
}

func (m *Memory) CreateHoliday(ctx context.Context, h *roster.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.CreateHoliday(ctx, h)
}

func (m *Memory) GetHoliday(ctx context.Context, id int64) (*roster.Holiday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.GetHoliday(ctx, id)
}

func (m *Memory) FindHoliday(ctx context.Context, dayMonth string, j roster.Jurisdiction) (*roster.Holiday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.FindHoliday(ctx, dayMonth, j)
}

func (m *Memory) ListHolidays(ctx context.Context, activeOnly bool) ([]roster.Holiday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.ListHolidays(ctx, activeOnly)
}

func (m *Memory) UpdateHoliday(ctx context.Context, h *roster.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.UpdateHoliday(ctx, h)
}

func (m *Memory) DeleteHoliday(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.DeleteHoliday(ctx, id)
}

// =============================================================================
// TABLES - Unlocked implementation shared by Memory and WithTx
// =============================================================================

func (t *tables) CreateEntry(_ context.Context, e *roster.Entry) error {
	e.Date = roster.Day(e.Date)
	k := dayKey{e.EmployeeID, e.Date}
	if _, taken := t.byDay[k]; taken {
		return roster.ErrDuplicateEntry
	}
	t.nextEntry++
	now := time.Now().UTC()
	e.ID = t.nextEntry
	e.CreatedAt, e.UpdatedAt = now, now
	t.entries[e.ID] = *e
	t.byDay[k] = e.ID
	return nil
}

func (t *tables) GetEntry(_ context.Context, id int64) (*roster.Entry, error) {
	e, ok := t.entries[id]
	if !ok {
		return nil, &roster.NotFoundError{Kind: "shift", ID: id}
	}
	return &e, nil
}

func (t *tables) FindEntry(_ context.Context, employeeID int64, day time.Time) (*roster.Entry, error) {
	id, ok := t.byDay[dayKey{employeeID, roster.Day(day)}]
	if !ok {
		return nil, nil
	}
	e := t.entries[id]
	return &e, nil
}

func (t *tables) UpdateEntry(_ context.Context, e *roster.Entry) error {
	old, ok := t.entries[e.ID]
	if !ok {
		return &roster.NotFoundError{Kind: "shift", ID: e.ID}
	}
	e.Date = roster.Day(e.Date)
	k := dayKey{e.EmployeeID, e.Date}
	if id, taken := t.byDay[k]; taken && id != e.ID {
		return roster.ErrDuplicateEntry
	}
	delete(t.byDay, dayKey{old.EmployeeID, old.Date})
	e.CreatedAt = old.CreatedAt
	e.UpdatedAt = time.Now().UTC()
	t.entries[e.ID] = *e
	t.byDay[k] = e.ID
	return nil
}

func (t *tables) ListEntries(_ context.Context, f roster.EntryFilter) ([]roster.Entry, error) {
	codes := make(map[roster.Code]bool, len(f.Codes))
	for _, c := range f.Codes {
		codes[c] = true
	}
	var out []roster.Entry
	for _, e := range t.entries {
		if f.EmployeeID != 0 && e.EmployeeID != f.EmployeeID {
			continue
		}
		if !f.Period.IsZero() && !f.Period.Contains(e.Date) {
			continue
		}
		if len(codes) > 0 && !codes[e.Code] {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}

func (t *tables) EntryYears(_ context.Context) ([]int, error) {
	seen := map[int]bool{}
	for _, e := range t.entries {
		seen[e.Date.Year()] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

func (t *tables) usernameTaken(username string, except int64) bool {
	for id, e := range t.employees {
		if id != except && e.Username == username {
			return true
		}
	}
	return false
}

func (t *tables) CreateEmployee(_ context.Context, e *roster.Employee) error {
	if t.usernameTaken(e.Username, 0) {
		return roster.ErrDuplicateUsername
	}
	t.nextEmployee++
	now := time.Now().UTC()
	e.ID = t.nextEmployee
	e.CreatedAt, e.UpdatedAt = now, now
	t.employees[e.ID] = *e
	return nil
}

func (t *tables) GetEmployee(_ context.Context, id int64) (*roster.Employee, error) {
	e, ok := t.employees[id]
	if !ok {
		return nil, &roster.NotFoundError{Kind: "employee", ID: id}
	}
	return &e, nil
}

func (t *tables) ListEmployees(_ context.Context, f roster.EmployeeFilter) ([]roster.Employee, error) {
	roles := make(map[int64]bool, len(f.RoleIDs))
	for _, r := range f.RoleIDs {
		roles[r] = true
	}
	var out []roster.Employee
	for _, e := range t.employees {
		if f.ID != 0 && e.ID != f.ID {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if len(roles) > 0 && !roles[e.RoleID] {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (t *tables) UpdateEmployee(_ context.Context, e *roster.Employee) error {
	old, ok := t.employees[e.ID]
	if !ok {
		return &roster.NotFoundError{Kind: "employee", ID: e.ID}
	}
	if t.usernameTaken(e.Username, e.ID) {
		return roster.ErrDuplicateUsername
	}
	e.CreatedAt = old.CreatedAt
	e.UpdatedAt = time.Now().UTC()
	t.employees[e.ID] = *e
	return nil
}

func (t *tables) DeleteEmployee(_ context.Context, id int64) error {
	if _, ok := t.employees[id]; !ok {
		return &roster.NotFoundError{Kind: "employee", ID: id}
	}
	delete(t.employees, id)
	for eid, e := range t.entries {
		if e.EmployeeID == id {
			delete(t.entries, eid)
			delete(t.byDay, dayKey{e.EmployeeID, e.Date})
		}
	}
	return nil
}

func (t *tables) ListRoles(_ context.Context) ([]roster.Role, error) {
	out := make([]roster.Role, 0, len(t.roles))
	for _, r := range t.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *tables) GetRole(_ context.Context, id int64) (*roster.Role, error) {
	r, ok := t.roles[id]
	if !ok {
		return nil, &roster.NotFoundError{Kind: "role", ID: id}
	}
	return &r, nil
}

func (t *tables) holidayTaken(k holidayKey, except int64) bool {
	for id, h := range t.holidays {
		if id != except && h.DayMonth == k.DayMonth && h.Jurisdiction == k.Jurisdiction {
			return true
		}
	}
	return false
}

func (t *tables) CreateHoliday(_ context.Context, h *roster.Holiday) error {
	if t.holidayTaken(holidayKey{h.DayMonth, h.Jurisdiction}, 0) {
		return roster.ErrDuplicateHoliday
	}
	t.nextHoliday++
	h.ID = t.nextHoliday
	h.CreatedAt = time.Now().UTC()
	t.holidays[h.ID] = *h
	return nil
}

func (t *tables) GetHoliday(_ context.Context, id int64) (*roster.Holiday, error) {
	h, ok := t.holidays[id]
	if !ok {
		return nil, &roster.NotFoundError{Kind: "holiday", ID: id}
	}
	return &h, nil
}

func (t *tables) FindHoliday(_ context.Context, dayMonth string, j roster.Jurisdiction) (*roster.Holiday, error) {
	for _, h := range t.holidays {
		if h.DayMonth == dayMonth && h.Jurisdiction == j {
			return &h, nil
		}
	}
	return nil, nil
}

func (t *tables) ListHolidays(_ context.Context, activeOnly bool) ([]roster.Holiday, error) {
	var out []roster.Holiday
	for _, h := range t.holidays {
		if activeOnly && h.Status != roster.StatusActive {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *tables) UpdateHoliday(_ context.Context, h *roster.Holiday) error {
	old, ok := t.holidays[h.ID]
	if !ok {
		return &roster.NotFoundError{Kind: "holiday", ID: h.ID}
	}
	if t.holidayTaken(holidayKey{h.DayMonth, h.Jurisdiction}, h.ID) {
		return roster.ErrDuplicateHoliday
	}
	h.CreatedAt = old.CreatedAt
	t.holidays[h.ID] = *h
	return nil
}

func (t *tables) DeleteHoliday(_ context.Context, id int64) error {
	if _, ok := t.holidays[id]; !ok {
		return &roster.NotFoundError{Kind: "holiday", ID: id}
	}
	delete(t.holidays, id)
	return nil
}
