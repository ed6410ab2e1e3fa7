// Package export renders the month roster as an Excel workbook.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/warp/shift-roster/reports"
	"github.com/warp/shift-roster/roster"
	"github.com/xuri/excelize/v2"
)

var weekdays = [...]string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}

var monthNames = [...]string{"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}

// Layout of the sheet: one row per day, one column per employee.
const (
	titleRow  = 1
	headerRow = 3
	firstRow  = 4
	firstCol  = 3 // A = date, B = weekday
)

// Exporter builds roster workbooks for the schedulable employees.
type Exporter struct {
	store    roster.Store
	calendar *roster.Calendar
	roles    []int64
	log      *slog.Logger
}

func NewExporter(store roster.Store, calendar *roster.Calendar, roles []int64, log *slog.Logger) *Exporter {
	if len(roles) == 0 {
		roles = roster.DefaultSchedulableRoles
	}
	if log == nil {
		log = slog.Default()
	}
	return &Exporter{store: store, calendar: calendar, roles: roles, log: log}
}

// SheetName is the name of the single sheet of a month workbook.
func SheetName(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", monthNames[month], year)
}

// WriteMonth writes the workbook for year/month to w.
func (x *Exporter) WriteMonth(ctx context.Context, w io.Writer, year int, month time.Month) error {
	f, err := x.MonthWorkbook(ctx, year, month)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			x.log.Warn("close workbook", "error", err)
		}
	}()
	return f.Write(w)
}

// MonthWorkbook lays out the ledger of year/month. Holidays and Sundays are
// highlighted; the last row holds consolidated hours per employee.
func (x *Exporter) MonthWorkbook(ctx context.Context, year int, month time.Month) (*excelize.File, error) {
	if month < time.January || month > time.December {
		return nil, &roster.ValidationError{Field: "month", Message: "must be between 1 and 12"}
	}

	employees, err := x.store.ListEmployees(ctx, roster.EmployeeFilter{Status: roster.StatusActive, RoleIDs: x.roles})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	period := roster.MonthPeriod(year, month)
	entries, err := x.store.ListEntries(ctx, roster.EntryFilter{Period: period})
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	holidays, err := x.calendar.Resolve(ctx, year, month)
	if err != nil {
		return nil, err
	}

	byEmployee := map[int64][]roster.Entry{}
	codes := map[int64]map[int]roster.Code{}
	for _, e := range entries {
		byEmployee[e.EmployeeID] = append(byEmployee[e.EmployeeID], e)
		if codes[e.EmployeeID] == nil {
			codes[e.EmployeeID] = map[int]roster.Code{}
		}
		codes[e.EmployeeID][e.Date.Day()] = e.Code
	}

	f := excelize.NewFile()
	sheet := SheetName(year, month)
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)

	styles, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	lastCol := firstCol + len(employees) - 1
	if lastCol < firstCol {
		lastCol = firstCol
	}
	lastColName, _ := excelize.ColumnNumberToName(lastCol)

	// Title
	f.SetCellValue(sheet, "A1", fmt.Sprintf("Cuadrante de turnos - %s", sheet))
	f.SetCellStyle(sheet, "A1", "A1", styles.title)
	f.MergeCell(sheet, "A1", fmt.Sprintf("%s%d", lastColName, titleRow))

	// Header
	f.SetCellValue(sheet, cell(1, headerRow), "Día")
	f.SetCellValue(sheet, cell(2, headerRow), "")
	for i, emp := range employees {
		f.SetCellValue(sheet, cell(firstCol+i, headerRow), emp.FullName())
	}
	f.SetCellStyle(sheet, cell(1, headerRow), cell(lastCol, headerRow), styles.header)

	// One row per day
	days := period.Days()
	for i, day := range days {
		row := firstRow + i
		f.SetCellValue(sheet, cell(1, row), day.Day())
		f.SetCellValue(sheet, cell(2, row), weekdays[day.Weekday()])

		style := styles.normal
		if holidays.Has(day) || day.Weekday() == time.Sunday {
			style = styles.holiday
		}
		f.SetCellStyle(sheet, cell(1, row), cell(2, row), style)

		for j, emp := range employees {
			if code, ok := codes[emp.ID][day.Day()]; ok {
				f.SetCellValue(sheet, cell(firstCol+j, row), string(code))
			}
		}
		if len(employees) > 0 {
			f.SetCellStyle(sheet, cell(firstCol, row), cell(lastCol, row), styles.normal)
		}
	}

	// Totals
	totalRow := firstRow + len(days)
	f.SetCellValue(sheet, cell(1, totalRow), "Horas")
	for j, emp := range employees {
		t := reports.Consolidate(byEmployee[emp.ID])
		f.SetCellValue(sheet, cell(firstCol+j, totalRow), t.Hours.IntPart())
	}
	f.SetCellStyle(sheet, cell(1, totalRow), cell(lastCol, totalRow), styles.header)

	f.SetColWidth(sheet, "A", "B", 6)
	if len(employees) > 0 {
		firstName, _ := excelize.ColumnNumberToName(firstCol)
		f.SetColWidth(sheet, firstName, lastColName, 18)
	}

	x.log.Debug("month workbook built", "year", year, "month", int(month), "employees", len(employees))
	return f, nil
}

type sheetStyles struct {
	title, header, normal, holiday int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	thin := []excelize.Border{
		{Type: "top", Color: "#D0D0D0", Style: 1},
		{Type: "bottom", Color: "#D0D0D0", Style: 1},
		{Type: "left", Color: "#D0D0D0", Style: 1},
		{Type: "right", Color: "#D0D0D0", Style: 1},
	}

	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Border:    thin,
		Alignment: center,
	}); err != nil {
		return s, err
	}
	if s.normal, err = f.NewStyle(&excelize.Style{Border: thin, Alignment: center}); err != nil {
		return s, err
	}
	if s.holiday, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FF0000"},
		Border:    thin,
		Alignment: center,
	}); err != nil {
		return s, err
	}
	return s, nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
