package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-roster/assign"
	"github.com/warp/shift-roster/reports"
	"github.com/warp/shift-roster/roster"
	"github.com/warp/shift-roster/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type fixture struct {
	store    *sqlite.Store
	calendar *roster.Calendar
	rec      *assign.Reconciler
	agg      *reports.Aggregator
}

func newFixture(t *testing.T) *fixture {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cal := roster.NewCalendar(store, nil)
	return &fixture{
		store:    store,
		calendar: cal,
		rec:      assign.NewReconciler(store, nil),
		agg:      reports.NewAggregator(store, cal, reports.Config{}, nil),
	}
}

func (f *fixture) employee(t *testing.T, first, last string, role int64, birthday *time.Time) int64 {
	e := &roster.Employee{
		FirstName: first,
		LastName:  last,
		Username:  first + "." + last,
		Birthday:  birthday,
		HireDate:  roster.Date(2020, time.January, 1),
		Status:    roster.StatusActive,
		RoleID:    role,
	}
	require.NoError(t, f.store.CreateEmployee(context.Background(), e))
	return e.ID
}

func (f *fixture) shift(t *testing.T, employeeID int64, day time.Time, code roster.Code) {
	_, err := f.rec.Assign(context.Background(), assign.Assignment{EmployeeID: employeeID, Date: day, Code: code})
	require.NoError(t, err)
}

func (f *fixture) holiday(t *testing.T, dayMonth string, j roster.Jurisdiction) {
	_, err := f.calendar.Create(context.Background(), roster.Holiday{
		DayMonth: dayMonth, Description: "Festivo " + dayMonth, Jurisdiction: j,
	})
	require.NoError(t, err)
}

func day(m time.Month, d int) time.Time { return roster.Date(2024, m, d) }

// =============================================================================
// CONSOLIDATION
// =============================================================================

func TestConsolidate_TwoEntriesSameDate(t *testing.T) {
	// GIVEN: An 8h and a 12h entry on the same date (ledger anomaly)
	// THEN: Consolidated adds 12 for the date, raw adds 20

	entries := []roster.Entry{
		{EmployeeID: 1, Date: day(time.March, 4), Code: roster.CodeMorning},
		{EmployeeID: 1, Date: day(time.March, 4), Code: roster.CodeNightExt1},
		{EmployeeID: 1, Date: day(time.March, 5), Code: roster.CodeAfternoon},
		{EmployeeID: 1, Date: day(time.March, 6), Code: roster.CodeVacation},
	}

	tot := reports.Consolidate(entries)

	assert.Equal(t, int64(20), tot.Hours.IntPart())
	assert.Equal(t, int64(28), tot.RawHours.IntPart())
	assert.Len(t, tot.Days, 2)
	assert.Equal(t, map[string]int{"M": 1, "FN1": 1, "T": 1}, tot.Codes)
	assert.Equal(t, []string{"M", "FN1"}, tot.Detail["2024-03-04"])
}

func TestConsolidate_Empty(t *testing.T) {
	tot := reports.Consolidate(nil)
	assert.True(t, tot.Hours.IsZero())
	assert.True(t, tot.RawHours.IsZero())
	assert.Empty(t, tot.Days)
}

// =============================================================================
// WORKED
// =============================================================================

func TestWorked_MonthWithHoliday(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Ana", "García", roster.RoleOperator, nil)
	f.holiday(t, "01/05", roster.JurisdictionNational)

	f.shift(t, emp, day(time.May, 1), roster.CodeMorning)
	f.shift(t, emp, day(time.May, 2), roster.CodeNightExt2)
	f.shift(t, emp, day(time.May, 3), roster.CodeRest)
	f.shift(t, emp, day(time.June, 1), roster.CodeMorning)

	got, err := f.agg.Worked(ctx, reports.Query{Year: 2024, Month: time.May, EmployeeID: emp})
	require.NoError(t, err)
	require.Len(t, got, 1)

	r := got[0]
	assert.Equal(t, "Operador", r.Role)
	assert.Equal(t, 2, r.DaysWorked)
	assert.Equal(t, 1, r.HolidaysWorked)
	assert.Equal(t, 1, r.NonHolidayDaysWorked)
	assert.Equal(t, int64(20), r.Hours)
	assert.Equal(t, int64(20), r.RawHours)
	assert.Equal(t, map[string]int{"M": 1, "FN2": 1}, r.Codes)
}

func TestWorked_YearWindowSkipsHolidayCount(t *testing.T) {
	f := newFixture(t)
	emp := f.employee(t, "Ana", "García", roster.RoleShiftLead, nil)
	f.holiday(t, "01/05", roster.JurisdictionNational)
	f.shift(t, emp, day(time.May, 1), roster.CodeMorning)
	f.shift(t, emp, day(time.June, 1), roster.CodeMorning)

	got, err := f.agg.Worked(context.Background(), reports.Query{Year: 2024})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Jefe de Turno", got[0].Role)
	assert.Equal(t, 2, got[0].DaysWorked)
	assert.Zero(t, got[0].HolidaysWorked)
}

func TestReports_EligibilityNotFound(t *testing.T) {
	// GIVEN: Only an inactive employee
	// THEN: Every report is not-found, with or without a filter

	f := newFixture(t)
	ctx := context.Background()
	inactive := &roster.Employee{
		FirstName: "Ex", LastName: "Empleado", Username: "ex",
		HireDate: roster.Date(2020, 1, 1), Status: roster.StatusInactive, RoleID: roster.RoleOperator,
	}
	require.NoError(t, f.store.CreateEmployee(ctx, inactive))

	for _, q := range []reports.Query{
		{Year: 2024, Month: time.May},
		{Year: 2024, Month: time.May, EmployeeID: inactive.ID},
		{Year: 2024, Month: time.May, EmployeeID: 404},
	} {
		_, err := f.agg.Worked(ctx, q)
		assert.True(t, roster.IsNotFound(err))
		_, err = f.agg.ShiftTypes(ctx, q)
		assert.True(t, roster.IsNotFound(err))
		_, err = f.agg.HolidayWork(ctx, q)
		assert.True(t, roster.IsNotFound(err))
		_, err = f.agg.Vacation(ctx, q)
		assert.True(t, roster.IsNotFound(err))
	}
}

func TestReports_NonSchedulableRoleExcluded(t *testing.T) {
	f := newFixture(t)
	agg := reports.NewAggregator(f.store, f.calendar, reports.Config{SchedulableRoles: []int64{roster.RoleShiftLead}}, nil)
	f.employee(t, "Ana", "García", roster.RoleOperator, nil)

	_, err := agg.Worked(context.Background(), reports.Query{Year: 2024})
	assert.True(t, roster.IsNotFound(err))
}

func TestReports_InvalidQuery(t *testing.T) {
	f := newFixture(t)
	f.employee(t, "Ana", "García", roster.RoleOperator, nil)

	_, err := f.agg.Worked(context.Background(), reports.Query{Year: 2024, Month: 13})
	assert.True(t, roster.IsValidation(err))
	_, err = f.agg.Vacation(context.Background(), reports.Query{Year: 0})
	assert.True(t, roster.IsValidation(err))
}

// =============================================================================
// SHIFT TYPES
// =============================================================================

func TestShiftTypes_Buckets(t *testing.T) {
	f := newFixture(t)
	emp := f.employee(t, "Ana", "García", roster.RoleOperator, nil)
	codes := []roster.Code{
		roster.CodeMorning, roster.CodeMorningExt1, roster.CodeMorningExt2,
		roster.CodeAfternoon,
		roster.CodeNight, roster.CodeNightExt1,
		roster.CodeVacation, roster.CodeRest,
	}
	for i, c := range codes {
		f.shift(t, emp, day(time.March, i+1), c)
	}

	got, err := f.agg.ShiftTypes(context.Background(), reports.Query{Year: 2024, Month: time.March})
	require.NoError(t, err)
	require.Len(t, got, 1)

	r := got[0]
	assert.Equal(t, 3, r.Morning)
	assert.Equal(t, 1, r.Afternoon)
	assert.Equal(t, 2, r.Night)
	assert.Equal(t, 6, r.Total)
	assert.Equal(t, int64(8+12+12+8+8+12), r.Hours)
	assert.NotContains(t, r.Codes, "v")
}

// =============================================================================
// HOLIDAY WORK
// =============================================================================

func TestHolidayWork_SingleEmployee(t *testing.T) {
	// GIVEN: Active national holiday 01/05 and a morning shift on 2024-05-01
	// WHEN: Holiday-work report for May 2024, employee 2
	// THEN: festivos_trabajados = [2024-05-01]

	f := newFixture(t)
	f.employee(t, "Luis", "Pérez", roster.RoleOperator, nil)
	emp := f.employee(t, "Ana", "García", roster.RoleOperator, nil)
	require.Equal(t, int64(2), emp)
	f.holiday(t, "01/05", roster.JurisdictionNational)
	f.shift(t, emp, day(time.May, 1), roster.CodeMorning)
	f.shift(t, emp, day(time.May, 2), roster.CodeMorning)

	got, err := f.agg.HolidayWork(context.Background(), reports.Query{Year: 2024, Month: time.May, EmployeeID: emp})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"2024-05-01"}, got[0].Worked)
	assert.Nil(t, got[0].ByDay)
}

func TestHolidayWork_Global(t *testing.T) {
	f := newFixture(t)
	ana := f.employee(t, "Ana", "García", roster.RoleOperator, nil)
	luis := f.employee(t, "Luis", "Pérez", roster.RoleShiftLead, nil)
	f.holiday(t, "01/05", roster.JurisdictionNational)
	f.holiday(t, "15/05", roster.JurisdictionRegional)

	f.shift(t, ana, day(time.May, 1), roster.CodeMorning)
	f.shift(t, luis, day(time.May, 1), roster.CodeNightExt1)
	f.shift(t, luis, day(time.May, 15), roster.CodeVacation)
	f.shift(t, ana, day(time.May, 15), roster.CodeAfternoon)

	got, err := f.agg.HolidayWork(context.Background(), reports.Query{Year: 2024, Month: time.May})
	require.NoError(t, err)
	require.Len(t, got, 1)

	g := got[0]
	assert.Zero(t, g.EmployeeID)
	assert.Equal(t, "Todos", g.FirstName)
	assert.Equal(t, "los usuarios", g.LastName)
	assert.Equal(t, "Global", g.Role)
	assert.Empty(t, g.Worked)
	assert.ElementsMatch(t, []string{"Ana García (M)", "Luis Pérez (FN1)"}, g.ByDay[1])
	assert.Equal(t, []string{"Ana García (T)"}, g.ByDay[15])
	assert.Equal(t, []string{"2024-05-01", "2024-05-15"}, g.Dates)
}

func TestHolidayWork_RequiresMonth(t *testing.T) {
	f := newFixture(t)
	f.employee(t, "Ana", "García", roster.RoleOperator, nil)

	_, err := f.agg.HolidayWork(context.Background(), reports.Query{Year: 2024})
	assert.True(t, roster.IsValidation(err))
}

// =============================================================================
// VACATION
// =============================================================================

func TestVacation_MarchScenario(t *testing.T) {
	// GIVEN: Employee 1 takes vacation 2024-03-01..2024-03-05
	// THEN: vacaciones_tomadas = 5, dias_restantes = 26

	f := newFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Ana", "García", roster.RoleOperator, nil)
	require.Equal(t, int64(1), emp)

	res, err := f.rec.AssignRange(ctx, emp, day(time.March, 1), day(time.March, 5), roster.CodeVacation)
	require.NoError(t, err)
	require.Equal(t, 5, res.Created)

	got, err := f.agg.Vacation(ctx, reports.Query{Year: 2024, Month: time.March, EmployeeID: emp})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].VacationTaken)
	assert.False(t, got[0].BirthdayTaken)
	assert.Equal(t, 26, got[0].DaysRemaining)
}

func TestVacation_BirthdayCountsAndFloorAtZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	birthday := roster.Date(1990, time.April, 10)
	emp := f.employee(t, "Ana", "García", roster.RoleOperator, &birthday)

	_, err := f.rec.AssignBirthdays(ctx, 2024, time.April)
	require.NoError(t, err)
	_, err = f.rec.AssignRange(ctx, emp, day(time.July, 1), day(time.July, 3), roster.CodeVacation)
	require.NoError(t, err)

	year, err := f.agg.Vacation(ctx, reports.Query{Year: 2024, EmployeeID: emp})
	require.NoError(t, err)
	assert.Equal(t, 3, year[0].VacationTaken)
	assert.True(t, year[0].BirthdayTaken)
	assert.Equal(t, 27, year[0].DaysRemaining)

	// birthday outside the month window
	july, err := f.agg.Vacation(ctx, reports.Query{Year: 2024, Month: time.July, EmployeeID: emp})
	require.NoError(t, err)
	assert.False(t, july[0].BirthdayTaken)
	assert.Equal(t, 28, july[0].DaysRemaining)

	small := reports.NewAggregator(f.store, f.calendar, reports.Config{VacationDays: 2}, nil)
	floor, err := small.Vacation(ctx, reports.Query{Year: 2024, EmployeeID: emp})
	require.NoError(t, err)
	assert.Equal(t, 0, floor[0].DaysRemaining)
}

// =============================================================================
// YEARS
// =============================================================================

func TestYears(t *testing.T) {
	f := newFixture(t)
	emp := f.employee(t, "Ana", "García", roster.RoleOperator, nil)
	f.shift(t, emp, roster.Date(2023, time.December, 31), roster.CodeNight)
	f.shift(t, emp, day(time.January, 1), roster.CodeNight)

	years, err := f.agg.Years(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024}, years)
}
