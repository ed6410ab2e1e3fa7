/*
aggregator.go - Read-only reports over the shift ledger

PURPOSE:
  Reduces ledger entries (and resolved holidays) for a year or a month into
  per-employee summaries. Nothing here writes.

REPORTS:
  Worked       days and hours on countable codes, holiday days, histogram
  ShiftTypes   morning / afternoon / night distribution
  HolidayWork  countable shifts on resolved holidays (month only)
  Vacation     vacation days used and remaining allowance
  Years        years that have ledger data

ELIGIBILITY:
  Without an employee filter every active employee whose role is
  schedulable is reported. With a filter the employee must also be active
  and schedulable. No eligible employee is a not-found error.

HOURS:
  Raw hours add every countable entry. Consolidated hours take the highest
  value per calendar date and add those, so two entries on one date are
  never counted twice. Consolidated is the figure to trust; raw is kept to
  expose ledger anomalies.

SEE ALSO:
  - roster/codes.go: Countable set and hour values
  - roster/calendar.go: Holiday resolution
*/
package reports

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-roster/roster"
)

// DefaultVacationDays is the yearly vacation allowance.
const DefaultVacationDays = 31

// Query selects the report window and, optionally, one employee.
// A zero Month means the whole year.
type Query struct {
	Year       int
	Month      time.Month
	EmployeeID int64
}

func (q Query) Validate() error {
	if q.Year < 1 || q.Year > 9999 {
		return &roster.ValidationError{Field: "year", Message: "out of range"}
	}
	if q.Month < 0 || q.Month > time.December {
		return &roster.ValidationError{Field: "month", Message: "must be between 1 and 12"}
	}
	if q.EmployeeID < 0 {
		return &roster.ValidationError{Field: "usuario_id", Message: "must be positive"}
	}
	return nil
}

// Window is the month when one is given, otherwise the year.
func (q Query) Window() roster.Period {
	if q.Month != 0 {
		return roster.MonthPeriod(q.Year, q.Month)
	}
	return roster.YearPeriod(q.Year)
}

// Config tunes the aggregator. Zero values fall back to the defaults.
type Config struct {
	SchedulableRoles []int64
	VacationDays     int
}

// Aggregator builds reports from a ledger and a holiday calendar.
type Aggregator struct {
	store    roster.Store
	calendar *roster.Calendar
	roles    []int64
	vacation int
	log      *slog.Logger
}

func NewAggregator(store roster.Store, calendar *roster.Calendar, cfg Config, log *slog.Logger) *Aggregator {
	if log == nil {
		log = slog.Default()
	}
	if len(cfg.SchedulableRoles) == 0 {
		cfg.SchedulableRoles = roster.DefaultSchedulableRoles
	}
	if cfg.VacationDays <= 0 {
		cfg.VacationDays = DefaultVacationDays
	}
	return &Aggregator{
		store:    store,
		calendar: calendar,
		roles:    cfg.SchedulableRoles,
		vacation: cfg.VacationDays,
		log:      log,
	}
}

// =============================================================================
// REPORT RECORDS
// =============================================================================

// Person identifies the employee a record belongs to.
type Person struct {
	EmployeeID int64  `json:"usuario_id"`
	FirstName  string `json:"nombres"`
	LastName   string `json:"apellidos"`
	Role       string `json:"rol"`
}

type WorkedReport struct {
	Person
	DaysWorked           int                 `json:"dias_trabajados"`
	HolidaysWorked       int                 `json:"dias_festivos"`
	NonHolidayDaysWorked int                 `json:"dias_trabajados_no_festivo"`
	Hours                int64               `json:"horas_trabajadas"`
	RawHours             int64               `json:"horas_trabajadas_raw"`
	Codes                map[string]int      `json:"turnos_codigos"`
	Detail               map[string][]string `json:"dias_detalle"`
}

type ShiftTypeReport struct {
	Person
	Morning   int            `json:"mañana"`
	Afternoon int            `json:"tarde"`
	Night     int            `json:"noche"`
	Total     int            `json:"total"`
	Hours     int64          `json:"horas_trabajadas"`
	Codes     map[string]int `json:"turnos_codigos"`
}

// HolidayReport is per employee in single-employee mode. In global mode one
// record carries ByDay and Dates instead.
type HolidayReport struct {
	Person
	Worked []string         `json:"festivos_trabajados"`
	ByDay  map[int][]string `json:"festivos_detalle_dia,omitempty"`
	Dates  []string         `json:"festivos_fechas,omitempty"`
}

type VacationReport struct {
	Person
	VacationTaken int  `json:"vacaciones_tomadas"`
	BirthdayTaken bool `json:"cumpleaños_tomado"`
	DaysRemaining int  `json:"dias_restantes"`
}

// =============================================================================
// WORKED DAYS & HOURS
// =============================================================================

// Worked reports days and hours on countable codes.
func (a *Aggregator) Worked(ctx context.Context, q Query) ([]WorkedReport, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	employees, roles, err := a.eligible(ctx, q)
	if err != nil {
		return nil, err
	}

	holidays := roster.DaySet{}
	if q.Month != 0 {
		if holidays, err = a.calendar.Resolve(ctx, q.Year, q.Month); err != nil {
			return nil, err
		}
	}

	out := make([]WorkedReport, 0, len(employees))
	for _, emp := range employees {
		entries, err := a.countable(ctx, emp.ID, q.Window())
		if err != nil {
			return nil, err
		}

		t := Consolidate(entries)
		onHolidays := 0
		for _, day := range t.Days {
			if holidays.Has(day) {
				onHolidays++
			}
		}

		out = append(out, WorkedReport{
			Person:               person(emp, roles),
			DaysWorked:           len(t.Days),
			HolidaysWorked:       onHolidays,
			NonHolidayDaysWorked: len(t.Days) - onHolidays,
			Hours:                t.Hours.IntPart(),
			RawHours:             t.RawHours.IntPart(),
			Codes:                t.Codes,
			Detail:               t.Detail,
		})
	}
	return out, nil
}

// Totals is the reduction of a set of countable entries.
type Totals struct {
	Days     []time.Time // distinct dates, ascending
	Hours    decimal.Decimal
	RawHours decimal.Decimal
	Codes    map[string]int
	Detail   map[string][]string
}

// Consolidate reduces entries to distinct days and hours. Non-countable
// entries are ignored.
func Consolidate(entries []roster.Entry) Totals {
	t := Totals{
		Hours:    decimal.Zero,
		RawHours: decimal.Zero,
		Codes:    map[string]int{},
		Detail:   map[string][]string{},
	}
	perDay := map[time.Time]decimal.Decimal{}

	for _, e := range entries {
		if !e.Code.Countable() {
			continue
		}
		h := e.Code.Hours()
		day := roster.Day(e.Date)

		t.RawHours = t.RawHours.Add(h)
		t.Codes[string(e.Code)]++
		key := day.Format(roster.DateLayout)
		t.Detail[key] = append(t.Detail[key], string(e.Code))

		if prev, seen := perDay[day]; !seen || h.GreaterThan(prev) {
			perDay[day] = h
		}
	}

	for day, h := range perDay {
		t.Days = append(t.Days, day)
		t.Hours = t.Hours.Add(h)
	}
	sort.Slice(t.Days, func(i, j int) bool { return t.Days[i].Before(t.Days[j]) })
	return t
}

// =============================================================================
// SHIFT TYPE DISTRIBUTION
// =============================================================================

// ShiftTypes counts countable entries per shift family. Hours are raw: this
// view is about entries, not days.
func (a *Aggregator) ShiftTypes(ctx context.Context, q Query) ([]ShiftTypeReport, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	employees, roles, err := a.eligible(ctx, q)
	if err != nil {
		return nil, err
	}

	out := make([]ShiftTypeReport, 0, len(employees))
	for _, emp := range employees {
		entries, err := a.countable(ctx, emp.ID, q.Window())
		if err != nil {
			return nil, err
		}

		r := ShiftTypeReport{Person: person(emp, roles), Codes: map[string]int{}}
		hours := decimal.Zero
		for _, e := range entries {
			hours = hours.Add(e.Code.Hours())
			r.Codes[string(e.Code)]++
			switch e.Code.Family() {
			case roster.FamilyMorning:
				r.Morning++
			case roster.FamilyAfternoon:
				r.Afternoon++
			case roster.FamilyNight:
				r.Night++
			}
		}
		r.Total = r.Morning + r.Afternoon + r.Night
		r.Hours = hours.IntPart()
		out = append(out, r)
	}
	return out, nil
}

// =============================================================================
// HOLIDAY WORK
// =============================================================================

// Global-view identity, printed where an employee would be.
const (
	globalFirstName = "Todos"
	globalLastName  = "los usuarios"
	globalRole      = "Global"
)

// HolidayWork reports countable shifts that fall on resolved holidays. It
// needs a month. Without an employee filter it returns one global record.
func (a *Aggregator) HolidayWork(ctx context.Context, q Query) ([]HolidayReport, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if q.Month == 0 {
		return nil, &roster.ValidationError{Field: "month", Message: "this report is only available per month"}
	}
	employees, roles, err := a.eligible(ctx, q)
	if err != nil {
		return nil, err
	}
	holidays, err := a.calendar.Resolve(ctx, q.Year, q.Month)
	if err != nil {
		return nil, err
	}

	if q.EmployeeID != 0 {
		out := make([]HolidayReport, 0, len(employees))
		for _, emp := range employees {
			entries, err := a.countable(ctx, emp.ID, q.Window())
			if err != nil {
				return nil, err
			}
			worked := roster.DaySet{}
			for _, e := range entries {
				if holidays.Has(e.Date) {
					worked.Add(e.Date)
				}
			}
			out = append(out, HolidayReport{Person: person(emp, roles), Worked: formatDays(worked.Sorted())})
		}
		return out, nil
	}

	byDay := map[int][]string{}
	dates := roster.DaySet{}
	for _, emp := range employees {
		entries, err := a.countable(ctx, emp.ID, q.Window())
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !holidays.Has(e.Date) {
				continue
			}
			dates.Add(e.Date)
			day := e.Date.Day()
			byDay[day] = append(byDay[day], fmt.Sprintf("%s (%s)", emp.FullName(), e.Code))
		}
	}

	return []HolidayReport{{
		Person: Person{
			EmployeeID: 0,
			FirstName:  globalFirstName,
			LastName:   globalLastName,
			Role:       globalRole,
		},
		Worked: []string{},
		ByDay:  byDay,
		Dates:  formatDays(dates.Sorted()),
	}}, nil
}

// =============================================================================
// VACATION BALANCE
// =============================================================================

// Vacation counts vacation entries in the window, plus one day when the
// birthday falls in the window and holds a birthday-leave entry. No
// consolidation: this is a plain count.
func (a *Aggregator) Vacation(ctx context.Context, q Query) ([]VacationReport, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	employees, roles, err := a.eligible(ctx, q)
	if err != nil {
		return nil, err
	}
	window := q.Window()

	out := make([]VacationReport, 0, len(employees))
	for _, emp := range employees {
		vacation, err := a.store.ListEntries(ctx, roster.EntryFilter{
			EmployeeID: emp.ID,
			Period:     window,
			Codes:      []roster.Code{roster.CodeVacation},
		})
		if err != nil {
			return nil, fmt.Errorf("list vacation: %w", err)
		}

		birthdayTaken := false
		if day, ok := emp.BirthdayIn(q.Year); ok && window.Contains(day) {
			e, err := a.store.FindEntry(ctx, emp.ID, day)
			if err != nil {
				return nil, err
			}
			birthdayTaken = e != nil && e.Code == roster.CodeBirthday
		}

		used := len(vacation)
		if birthdayTaken {
			used++
		}
		out = append(out, VacationReport{
			Person:        person(emp, roles),
			VacationTaken: len(vacation),
			BirthdayTaken: birthdayTaken,
			DaysRemaining: max(0, a.vacation-used),
		})
	}
	return out, nil
}

// Years returns the years that have at least one ledger entry.
func (a *Aggregator) Years(ctx context.Context) ([]int, error) {
	return a.store.EntryYears(ctx)
}

// =============================================================================
// HELPERS
// =============================================================================

// eligible resolves the employees a query reports on, plus role names.
func (a *Aggregator) eligible(ctx context.Context, q Query) ([]roster.Employee, map[int64]string, error) {
	employees, err := a.store.ListEmployees(ctx, roster.EmployeeFilter{
		ID:      q.EmployeeID,
		Status:  roster.StatusActive,
		RoleIDs: a.roles,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("list employees: %w", err)
	}
	if len(employees) == 0 {
		if q.EmployeeID != 0 {
			return nil, nil, &roster.NotFoundError{Kind: "eligible employee", ID: q.EmployeeID}
		}
		return nil, nil, &roster.NotFoundError{Kind: "eligible employee"}
	}

	roles, err := a.store.ListRoles(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list roles: %w", err)
	}
	names := make(map[int64]string, len(roles))
	for _, r := range roles {
		names[r.ID] = r.Name
	}
	return employees, names, nil
}

func (a *Aggregator) countable(ctx context.Context, employeeID int64, window roster.Period) ([]roster.Entry, error) {
	entries, err := a.store.ListEntries(ctx, roster.EntryFilter{
		EmployeeID: employeeID,
		Period:     window,
		Codes:      roster.CountableCodes(),
	})
	if err != nil {
		return nil, fmt.Errorf("list shifts for employee %d: %w", employeeID, err)
	}
	return entries, nil
}

func person(e roster.Employee, roles map[int64]string) Person {
	return Person{
		EmployeeID: e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Role:       roles[e.RoleID],
	}
}

func formatDays(days []time.Time) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Format(roster.DateLayout)
	}
	return out
}
