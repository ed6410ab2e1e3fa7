/*
reconciler.go - Writes to the shift ledger

PURPOSE:
  Turns the three kinds of write intent into ledger mutations while keeping
  at most one entry per (employee, date):

    Assign           one day, any code, manual edit
    AssignRange      vacation / leave / birthday-leave over [start, end]
    AssignBirthdays  birthday-leave for everyone born in a month

UPSERT RULE:
  Look up (employee, date). Missing: create. Present: overwrite the code and
  the provided flags. Every manual path forces modificado_manual = true; the
  birthday path writes generado_automatico = true, modificado_manual = false.
  The latest write decides the code for the day.

TRANSACTIONS:
  Each operation is one unit of work. A range either lands completely or not
  at all.

RACE HANDLING:
  When the store reports ErrDuplicateEntry (another writer inserted the same
  (employee, date) between our lookup and insert), the unit of work runs once
  more. The rerun finds the row and updates it. A second failure is returned.

SEE ALSO:
  - roster/store.go: TxStore
  - reports/aggregator.go: Read side of the ledger
*/
package assign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/warp/shift-roster/roster"
)

// Reconciler applies assignment requests to the ledger.
type Reconciler struct {
	store roster.TxStore
	log   *slog.Logger
}

func NewReconciler(store roster.TxStore, log *slog.Logger) *Reconciler {
	if log == nil {
		log = slog.Default()
	}
	return &Reconciler{store: store, log: log}
}

// Assignment is a single-day write. Nil flags keep the stored value on an
// existing entry and default to false (Status: activo) on a new one.
type Assignment struct {
	EmployeeID    int64
	Date          time.Time
	Code          roster.Code
	OnCall        *bool
	AutoGenerated *bool
	Status        *roster.Status
}

// RangeResult counts the entries written by AssignRange.
type RangeResult struct {
	Created int
	Updated int
}

// BirthdayResult counts the outcome of AssignBirthdays. Skipped entries had
// another code on the birthday and were left alone.
type BirthdayResult struct {
	Created int
	Updated int
	Skipped int
}

// =============================================================================
// SINGLE DAY
// =============================================================================

// Assign upserts the entry of a.EmployeeID on a.Date.
func (r *Reconciler) Assign(ctx context.Context, a Assignment) (*roster.Entry, error) {
	if err := a.Code.Validate(); err != nil {
		return nil, err
	}
	if a.Status != nil && !a.Status.Valid() {
		return nil, &roster.ValidationError{Field: "estado", Message: "must be activo or inactivo"}
	}
	if a.Date.IsZero() {
		return nil, &roster.ValidationError{Field: "fecha", Message: "required"}
	}
	if _, err := r.store.GetEmployee(ctx, a.EmployeeID); err != nil {
		return nil, err
	}

	var result *roster.Entry
	err := r.withRetry(ctx, "assign", func(tx roster.Store) error {
		e, _, err := upsert(ctx, tx, a.EmployeeID, a.Date, func(e *roster.Entry) {
			e.Code = a.Code
			if a.OnCall != nil {
				e.OnCall = *a.OnCall
			}
			if a.AutoGenerated != nil {
				e.AutoGenerated = *a.AutoGenerated
			}
			if a.Status != nil {
				e.Status = *a.Status
			}
			e.ManuallyModified = true
		})
		result = e
		return err
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("shift assigned",
		"usuario_id", result.EmployeeID,
		"fecha", result.Date.Format(roster.DateLayout),
		"turno", result.Code)
	return result, nil
}

// =============================================================================
// RANGE ABSENCE
// =============================================================================

// AssignRange writes code on every day of [start, end]. The code must be an
// absence code; it overrides whatever the days held before.
func (r *Reconciler) AssignRange(ctx context.Context, employeeID int64, start, end time.Time, code roster.Code) (RangeResult, error) {
	if !code.IsAbsence() {
		return RangeResult{}, &roster.ValidationError{
			Field:   "tipo",
			Message: fmt.Sprintf("%q is not an absence code (allowed: %v)", code, roster.AbsenceCodes()),
		}
	}
	period, err := roster.NewPeriod(start, end)
	if err != nil {
		return RangeResult{}, err
	}
	if _, err := r.store.GetEmployee(ctx, employeeID); err != nil {
		return RangeResult{}, err
	}

	var res RangeResult
	err = r.withRetry(ctx, "assign_range", func(tx roster.Store) error {
		res = RangeResult{}
		for _, day := range period.Days() {
			_, created, err := upsert(ctx, tx, employeeID, day, func(e *roster.Entry) {
				e.Code = code
				e.AutoGenerated = false
				e.ManuallyModified = true
			})
			if err != nil {
				return fmt.Errorf("%s: %w", day.Format(roster.DateLayout), err)
			}
			if created {
				res.Created++
			} else {
				res.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return RangeResult{}, err
	}

	r.log.Info("absence range assigned",
		"usuario_id", employeeID,
		"periodo", period.String(),
		"tipo", code,
		"created", res.Created,
		"updated", res.Updated)
	return res, nil
}

// =============================================================================
// BIRTHDAYS
// =============================================================================

// AssignBirthdays gives every active employee born in month a birthday-leave
// entry on their birthday in year. Existing birthday entries are refreshed;
// any other code on that day is kept.
func (r *Reconciler) AssignBirthdays(ctx context.Context, year int, month time.Month) (BirthdayResult, error) {
	if month < time.January || month > time.December {
		return BirthdayResult{}, &roster.ValidationError{Field: "month", Message: "must be between 1 and 12"}
	}
	if year < 1 || year > 9999 {
		return BirthdayResult{}, &roster.ValidationError{Field: "year", Message: "out of range"}
	}

	employees, err := r.store.ListEmployees(ctx, roster.EmployeeFilter{Status: roster.StatusActive})
	if err != nil {
		return BirthdayResult{}, fmt.Errorf("list employees: %w", err)
	}

	var res BirthdayResult
	err = r.withRetry(ctx, "assign_birthdays", func(tx roster.Store) error {
		res = BirthdayResult{}
		for _, emp := range employees {
			if emp.Birthday == nil || emp.Birthday.Month() != month {
				continue
			}
			day, ok := emp.BirthdayIn(year)
			if !ok {
				r.log.Debug("birthday does not exist this year", "usuario_id", emp.ID, "year", year)
				continue
			}

			existing, err := tx.FindEntry(ctx, emp.ID, day)
			if err != nil {
				return err
			}
			switch {
			case existing == nil:
				e := &roster.Entry{
					EmployeeID:    emp.ID,
					Date:          day,
					Code:          roster.CodeBirthday,
					AutoGenerated: true,
					Status:        roster.StatusActive,
				}
				if err := tx.CreateEntry(ctx, e); err != nil {
					return err
				}
				res.Created++
			case existing.Code == roster.CodeBirthday:
				existing.AutoGenerated = true
				existing.ManuallyModified = false
				if err := tx.UpdateEntry(ctx, existing); err != nil {
					return err
				}
				res.Updated++
			default:
				res.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return BirthdayResult{}, err
	}

	r.log.Info("birthdays assigned",
		"year", year,
		"month", int(month),
		"created", res.Created,
		"updated", res.Updated,
		"skipped", res.Skipped)
	return res, nil
}

// =============================================================================
// PATCH BY ID
// =============================================================================

// PatchEntry applies the non-nil fields of p to entry id. The result is
// always marked as manually modified.
func (r *Reconciler) PatchEntry(ctx context.Context, id int64, p roster.EntryPatch) (*roster.Entry, error) {
	if p.Code != nil {
		if err := p.Code.Validate(); err != nil {
			return nil, err
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return nil, &roster.ValidationError{Field: "estado", Message: "must be activo or inactivo"}
	}

	var result *roster.Entry
	err := r.store.WithTx(ctx, func(tx roster.Store) error {
		e, err := tx.GetEntry(ctx, id)
		if err != nil {
			return err
		}
		if p.EmployeeID != nil && *p.EmployeeID != e.EmployeeID {
			if _, err := tx.GetEmployee(ctx, *p.EmployeeID); err != nil {
				return err
			}
		}
		p.Apply(e)
		e.ManuallyModified = true
		if err := tx.UpdateEntry(ctx, e); err != nil {
			return err
		}
		result = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("shift patched", "id", id, "turno", result.Code)
	return result, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// upsert finds the entry of (employeeID, day), lets set modify it, and
// writes it back. New entries start active with every flag false.
func upsert(ctx context.Context, s roster.Store, employeeID int64, day time.Time, set func(*roster.Entry)) (*roster.Entry, bool, error) {
	day = roster.Day(day)
	existing, err := s.FindEntry(ctx, employeeID, day)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		set(existing)
		if err := s.UpdateEntry(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	e := &roster.Entry{EmployeeID: employeeID, Date: day, Status: roster.StatusActive}
	set(e)
	if err := s.CreateEntry(ctx, e); err != nil {
		return nil, false, err
	}
	return e, true, nil
}

// withRetry runs fn in a transaction and runs it once more if the first
// attempt lost an (employee, date) insert race.
func (r *Reconciler) withRetry(ctx context.Context, op string, fn func(roster.Store) error) error {
	err := r.store.WithTx(ctx, fn)
	if err == nil || !errors.Is(err, roster.ErrDuplicateEntry) {
		return err
	}

	r.log.Warn("duplicate shift on insert, retrying as update", "op", op)
	if err := r.store.WithTx(ctx, fn); err != nil {
		r.log.Error("retry failed", "op", op, "error", err)
		return err
	}
	return nil
}
