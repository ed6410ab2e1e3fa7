package roster

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of a calendar day.
const DateLayout = "2006-01-02"

// =============================================================================
// CALENDAR DAYS
// =============================================================================

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Day truncates t to its calendar day.
func Day(t time.Time) time.Time { return Date(t.Year(), t.Month(), t.Day()) }

// ValidDate reports whether year/month/day names a real day (no normalization).
func ValidDate(year int, month time.Month, day int) bool {
	if month < time.January || month > time.December || day < 1 {
		return false
	}
	return day <= DaysIn(year, month)
}

func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "fecha", Message: fmt.Sprintf("invalid date %q (use YYYY-MM-DD)", s)}
	}
	return t, nil
}

// ParseDayMonth parses a "DD/MM" holiday key. The pair must exist in a leap
// year, so 29/02 is accepted and 30/02 is not.
func ParseDayMonth(s string) (int, time.Month, error) {
	invalid := &ValidationError{Field: "dia_mes", Message: fmt.Sprintf("invalid day/month %q (use DD/MM)", s)}
	if len(s) != 5 || s[2] != '/' {
		return 0, 0, invalid
	}
	d, err1 := strconv.Atoi(s[:2])
	m, err2 := strconv.Atoi(s[3:])
	if err1 != nil || err2 != nil || strings.ContainsAny(s, "+-") {
		return 0, 0, invalid
	}
	if !ValidDate(2024, time.Month(m), d) {
		return 0, 0, invalid
	}
	return d, time.Month(m), nil
}

// FormatDayMonth is the inverse of ParseDayMonth.
func FormatDayMonth(day int, month time.Month) string {
	return fmt.Sprintf("%02d/%02d", day, int(month))
}

// =============================================================================
// PERIOD - Inclusive range of days
// =============================================================================

// Period is the inclusive day range [Start, End].
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod normalizes both ends to days and rejects End before Start.
func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: Day(start), End: Day(end)}
	if p.End.Before(p.Start) {
		return Period{}, ErrInvalidPeriod
	}
	return p, nil
}

func MonthPeriod(year int, month time.Month) Period {
	return Period{Start: Date(year, month, 1), End: Date(year, month, DaysIn(year, month))}
}

func YearPeriod(year int) Period {
	return Period{Start: Date(year, time.January, 1), End: Date(year, time.December, 31)}
}

// Contains returns true if the day is within the period [Start, End].
func (p Period) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Days returns all days in the period.
func (p Period) Days() []time.Time {
	var days []time.Time
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (p Period) IsZero() bool { return p.Start.IsZero() && p.End.IsZero() }

func (p Period) String() string {
	return "[" + p.Start.Format(DateLayout) + ", " + p.End.Format(DateLayout) + "]"
}
