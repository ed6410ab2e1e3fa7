package roster

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SHIFT CODES
// =============================================================================

// Code is the short token stored on a ledger entry.
type Code string

const (
	CodeMorning   Code = "M"
	CodeAfternoon Code = "T"
	CodeNight     Code = "N"

	// 12-hour variants
	CodeMorningExt1 Code = "FM1"
	CodeMorningExt2 Code = "FM2"
	CodeNightExt1   Code = "FN1"
	CodeNightExt2   Code = "FN2"

	CodeVacation Code = "v"
	CodeLeave    Code = "b"
	CodeBirthday Code = "c"
	CodeRest     Code = "d"
)

// MaxCodeLength is the width of the code column.
const MaxCodeLength = 10

var (
	baseShiftHours     = decimal.NewFromInt(8)
	extendedShiftHours = decimal.NewFromInt(12)
)

// countable codes and the hours each one is worth
var shiftHours = map[Code]decimal.Decimal{
	CodeMorning:     baseShiftHours,
	CodeAfternoon:   baseShiftHours,
	CodeNight:       baseShiftHours,
	CodeMorningExt1: extendedShiftHours,
	CodeMorningExt2: extendedShiftHours,
	CodeNightExt1:   extendedShiftHours,
	CodeNightExt2:   extendedShiftHours,
}

var absenceCodes = map[Code]bool{
	CodeVacation: true,
	CodeLeave:    true,
	CodeBirthday: true,
}

// Hours is the worked time a code stands for; zero for anything not countable.
func (c Code) Hours() decimal.Decimal {
	if h, ok := shiftHours[c]; ok {
		return h
	}
	return decimal.Zero
}

// Countable reports whether the code counts toward worked days and hours.
func (c Code) Countable() bool {
	_, ok := shiftHours[c]
	return ok
}

// IsAbsence reports whether the code may be used for a range absence.
func (c Code) IsAbsence() bool { return absenceCodes[c] }

func (c Code) Validate() error {
	if c == "" {
		return &ValidationError{Field: "turno", Message: "required"}
	}
	if len(c) > MaxCodeLength {
		return &ValidationError{Field: "turno", Message: "longer than 10 characters"}
	}
	return nil
}

// ShiftFamily buckets countable codes for the distribution report.
type ShiftFamily int

const (
	FamilyNone ShiftFamily = iota
	FamilyMorning
	FamilyAfternoon
	FamilyNight
)

func (c Code) Family() ShiftFamily {
	switch c {
	case CodeMorning, CodeMorningExt1, CodeMorningExt2:
		return FamilyMorning
	case CodeAfternoon:
		return FamilyAfternoon
	case CodeNight, CodeNightExt1, CodeNightExt2:
		return FamilyNight
	}
	return FamilyNone
}

// CountableCodes returns the countable set in a stable order.
func CountableCodes() []Code {
	return sortedCodes(shiftHours)
}

// AbsenceCodes returns the range-absence set in a stable order.
func AbsenceCodes() []Code {
	return sortedCodes(absenceCodes)
}

func sortedCodes[V any](m map[Code]V) []Code {
	codes := make([]Code, 0, len(m))
	for c := range m {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
