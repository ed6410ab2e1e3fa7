package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// =============================================================================
// HOLIDAY CALENDAR
// =============================================================================

// DaySet is a set of calendar days.
type DaySet map[time.Time]struct{}

func (s DaySet) Has(t time.Time) bool {
	_, ok := s[Day(t)]
	return ok
}

func (s DaySet) Add(t time.Time) { s[Day(t)] = struct{}{} }

// Sorted returns the days in ascending order.
func (s DaySet) Sorted() []time.Time {
	days := make([]time.Time, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// Calendar manages holiday definitions and resolves them to concrete dates.
type Calendar struct {
	store HolidayStore
	log   *slog.Logger
}

func NewCalendar(store HolidayStore, log *slog.Logger) *Calendar {
	if log == nil {
		log = slog.Default()
	}
	return &Calendar{store: store, log: log}
}

// ListActive returns every active definition.
func (c *Calendar) ListActive(ctx context.Context) ([]Holiday, error) {
	return c.store.ListHolidays(ctx, true)
}

func (c *Calendar) List(ctx context.Context) ([]Holiday, error) {
	return c.store.ListHolidays(ctx, false)
}

func (c *Calendar) Get(ctx context.Context, id int64) (*Holiday, error) {
	return c.store.GetHoliday(ctx, id)
}

// Resolve returns the concrete holiday dates of year/month. Definitions that
// do not exist that year (29/02 outside leap years) are skipped.
func (c *Calendar) Resolve(ctx context.Context, year int, month time.Month) (DaySet, error) {
	holidays, err := c.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	days := DaySet{}
	for _, h := range holidays {
		_, m, err := ParseDayMonth(h.DayMonth)
		if err != nil || m != month {
			continue
		}
		if d, ok := h.On(year); ok {
			days.Add(d)
		}
	}
	return days, nil
}

// Create stores a new definition. A definition for the same day/month and
// jurisdiction is a conflict.
func (c *Calendar) Create(ctx context.Context, h Holiday) (*Holiday, error) {
	if h.Status == "" {
		h.Status = StatusActive
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	existing, err := c.store.FindHoliday(ctx, h.DayMonth, h.Jurisdiction)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateHoliday
	}
	if err := c.store.CreateHoliday(ctx, &h); err != nil {
		return nil, err
	}
	c.log.Info("holiday created", "id", h.ID, "dia_mes", h.DayMonth, "tipo", h.Jurisdiction)
	return &h, nil
}

// Patch applies the non-nil fields of p and re-validates the result.
func (c *Calendar) Patch(ctx context.Context, id int64, p HolidayPatch) (*Holiday, error) {
	h, err := c.store.GetHoliday(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(h)
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if err := c.store.UpdateHoliday(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (c *Calendar) Delete(ctx context.Context, id int64) error {
	if _, err := c.store.GetHoliday(ctx, id); err != nil {
		return err
	}
	return c.store.DeleteHoliday(ctx, id)
}

// DefaultNationalHolidays are the fixed-date national holidays.
var DefaultNationalHolidays = []Holiday{
	{DayMonth: "01/01", Description: "Año Nuevo"},
	{DayMonth: "06/01", Description: "Epifanía del Señor"},
	{DayMonth: "01/05", Description: "Fiesta del Trabajo"},
	{DayMonth: "15/08", Description: "Asunción de la Virgen"},
	{DayMonth: "12/10", Description: "Fiesta Nacional de España"},
	{DayMonth: "01/11", Description: "Todos los Santos"},
	{DayMonth: "06/12", Description: "Día de la Constitución Española"},
	{DayMonth: "08/12", Description: "Inmaculada Concepción"},
	{DayMonth: "25/12", Description: "Natividad del Señor"},
}

// AddDefaults creates the missing DefaultNationalHolidays and returns how
// many were added.
func (c *Calendar) AddDefaults(ctx context.Context) (int, error) {
	added := 0
	for _, d := range DefaultNationalHolidays {
		d.Jurisdiction = JurisdictionNational
		_, err := c.Create(ctx, d)
		if errors.Is(err, ErrDuplicateHoliday) {
			continue
		}
		if err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
