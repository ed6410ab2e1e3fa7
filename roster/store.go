/*
store.go - Persistence interfaces for the roster

PURPOSE:
  Defines the boundary between the domain logic and the database. The
  reconciler and the aggregator only see these interfaces; the concrete
  implementations are store/sqlite (production) and roster/store (memory,
  for tests).

KEY INTERFACES:
  EntryStore:    The shift ledger (one entry per employee per day)
  EmployeeStore: Employee directory
  RoleStore:     Role reference data
  HolidayStore:  Recurring holiday definitions
  TxStore:       All of the above plus WithTx for units of work

LOOKUP CONVENTIONS:
  Get*  returns a *NotFoundError when the id does not exist.
  Find* returns (nil, nil) when nothing matches.

UNIQUENESS:
  CreateEntry/UpdateEntry return ErrDuplicateEntry when the (employee, date)
  pair is taken. CreateHoliday/UpdateHoliday return ErrDuplicateHoliday for a
  repeated (day/month, jurisdiction).

SEE ALSO:
  - store/sqlite/sqlite.go: SQLite implementation
  - roster/store/memory.go: In-memory implementation
*/
package roster

import (
	"context"
	"time"
)

// EntryFilter selects ledger entries. Zero values mean "any".
type EntryFilter struct {
	EmployeeID int64
	Period     Period
	Codes      []Code
}

type EntryStore interface {
	// CreateEntry assigns e.ID on success.
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, id int64) (*Entry, error)
	FindEntry(ctx context.Context, employeeID int64, day time.Time) (*Entry, error)
	UpdateEntry(ctx context.Context, e *Entry) error

	// ListEntries returns matches ordered by date, then employee.
	ListEntries(ctx context.Context, f EntryFilter) ([]Entry, error)

	// EntryYears returns the distinct years present in the ledger, ascending.
	EntryYears(ctx context.Context) ([]int, error)
}

// EmployeeFilter selects employees. Zero values mean "any".
type EmployeeFilter struct {
	ID      int64
	Status  Status
	RoleIDs []int64
	Offset  int
	Limit   int
}

type EmployeeStore interface {
	CreateEmployee(ctx context.Context, e *Employee) error
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	ListEmployees(ctx context.Context, f EmployeeFilter) ([]Employee, error)
	UpdateEmployee(ctx context.Context, e *Employee) error

	// DeleteEmployee also removes the employee's ledger entries.
	DeleteEmployee(ctx context.Context, id int64) error
}

type RoleStore interface {
	ListRoles(ctx context.Context) ([]Role, error)
	GetRole(ctx context.Context, id int64) (*Role, error)
}

type HolidayStore interface {
	CreateHoliday(ctx context.Context, h *Holiday) error
	GetHoliday(ctx context.Context, id int64) (*Holiday, error)
	FindHoliday(ctx context.Context, dayMonth string, j Jurisdiction) (*Holiday, error)
	ListHolidays(ctx context.Context, activeOnly bool) ([]Holiday, error)
	UpdateHoliday(ctx context.Context, h *Holiday) error
	DeleteHoliday(ctx context.Context, id int64) error
}

type Store interface {
	EntryStore
	EmployeeStore
	RoleStore
	HolidayStore
}

// TxStore wraps Store with transaction support.
// If fn returns error, the unit of work is rolled back; otherwise committed.
type TxStore interface {
	Store
	WithTx(ctx context.Context, fn func(Store) error) error
}
