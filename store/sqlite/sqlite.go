/*
Package sqlite provides a SQLite-backed implementation of roster.TxStore.

PURPOSE:
  Persists roles, employees, holiday definitions and the shift ledger.
  The same SQL runs on PostgreSQL with minor dialect changes.

KEY TABLES:
  roles:             Reference data, seeded with ids 1 and 2
  usuarios:          Employee directory
  festivos:          Recurring DD/MM holiday definitions
  turnos_asignados:  The shift ledger

INDEXES:
  - uq_usuario_fecha:      Enforces one entry per (employee, date)
  - idx_festivos_unique:   One definition per (dia_mes, tipo)
  - idx_turnos_fecha:      Month/year window scans (report hot path)
  - idx_usuarios_estado:   Eligible-employee resolution

CONCURRENCY:
  The pool is capped at one connection, so SQLite sees a single writer.
  WithTx holds the write mutex for the whole unit of work; queries inside
  fn run on the *sql.Tx and never touch the pool.

ERRORS:
  Unique violations are detected through sqlite3.Error extended codes and
  translated to roster.ErrDuplicateEntry / ErrDuplicateHoliday /
  ErrDuplicateUsername.

MIGRATION:
  Schema is created on New() with CREATE ... IF NOT EXISTS. For versioned
  migrations use a dedicated tool.

USAGE:
  store, err := sqlite.New("./data/roster.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - roster/store.go: Interface definitions
  - roster/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/warp/shift-roster/roster"
)

// Store implements roster.TxStore using SQLite.
type Store struct {
	conn
	db *sql.DB
	mu sync.Mutex
}

var _ roster.TxStore = (*Store)(nil)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn holds every query; Store runs it on the pool, WithTx on a transaction.
type conn struct {
	q queryer
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection: a single writer, and ":memory:" stays one database
	db.SetMaxOpenConns(1)

	store := &Store{conn: conn{q: db}, db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS roles (
		id INTEGER PRIMARY KEY,
		nombre TEXT NOT NULL UNIQUE,
		descripcion TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS usuarios (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nombres TEXT NOT NULL,
		apellidos TEXT NOT NULL,
		usuario TEXT NOT NULL UNIQUE,
		cumple_anios TEXT,
		telefono TEXT NOT NULL DEFAULT '',
		fecha_ingreso TEXT NOT NULL,
		fecha_salida TEXT,
		estado TEXT NOT NULL DEFAULT 'activo',
		rol_id INTEGER NOT NULL REFERENCES roles(id),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_usuarios_estado
		ON usuarios(estado, rol_id);

	CREATE TABLE IF NOT EXISTS festivos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		dia_mes TEXT NOT NULL,
		descripcion TEXT NOT NULL,
		tipo TEXT NOT NULL,
		estado TEXT NOT NULL DEFAULT 'activo',
		created_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_festivos_unique
		ON festivos(dia_mes, tipo);

	-- The shift ledger
	CREATE TABLE IF NOT EXISTS turnos_asignados (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		usuario_id INTEGER NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
		fecha TEXT NOT NULL,
		turno TEXT NOT NULL CHECK (length(turno) <= 10),
		generado_automatico BOOLEAN NOT NULL DEFAULT FALSE,
		modificado_manual BOOLEAN NOT NULL DEFAULT FALSE,
		es_reten BOOLEAN NOT NULL DEFAULT FALSE,
		estado TEXT NOT NULL DEFAULT 'activo',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- CRITICAL: one entry per employee per day
	CREATE UNIQUE INDEX IF NOT EXISTS uq_usuario_fecha
		ON turnos_asignados(usuario_id, fecha);

	CREATE INDEX IF NOT EXISTS idx_turnos_fecha
		ON turnos_asignados(fecha);

	INSERT OR IGNORE INTO roles (id, nombre, descripcion, created_at) VALUES
		(1, 'Jefe de Turno', 'Responsable del turno', datetime('now')),
		(2, 'Operador', 'Operador de turno', datetime('now'));
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TRANSACTIONAL STORE (roster.TxStore interface)
// =============================================================================

// WithTx executes fn within a database transaction.
func (s *Store) WithTx(ctx context.Context, fn func(roster.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&conn{q: sqlTx}); err != nil {
		return err
	}

	return sqlTx.Commit()
}

// =============================================================================
// SHIFT LEDGER (roster.EntryStore interface)
// =============================================================================

const entryColumns = `id, usuario_id, fecha, turno, generado_automatico, modificado_manual,
	es_reten, estado, created_at, updated_at`

// CreateEntry inserts a ledger entry and sets its ID.
func (c *conn) CreateEntry(ctx context.Context, e *roster.Entry) error {
	now := time.Now().UTC()
	e.Date = roster.Day(e.Date)

	res, err := c.q.ExecContext(ctx, `
		INSERT INTO turnos_asignados
		(usuario_id, fecha, turno, generado_automatico, modificado_manual, es_reten, estado, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.EmployeeID,
		e.Date.Format(roster.DateLayout),
		string(e.Code),
		e.AutoGenerated,
		e.ManuallyModified,
		e.OnCall,
		string(e.Status),
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	if err != nil {
		return translate(err, "failed to create shift")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read shift id: %w", err)
	}
	e.ID = id
	e.CreatedAt, e.UpdatedAt = now, now
	return nil
}

// GetEntry retrieves an entry by ID.
func (c *conn) GetEntry(ctx context.Context, id int64) (*roster.Entry, error) {
	row := c.q.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM turnos_asignados WHERE id = ?", id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &roster.NotFoundError{Kind: "shift", ID: id}
	}
	return e, err
}

// FindEntry returns the entry of employeeID on day, or nil.
func (c *conn) FindEntry(ctx context.Context, employeeID int64, day time.Time) (*roster.Entry, error) {
	row := c.q.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM turnos_asignados WHERE usuario_id = ? AND fecha = ?",
		employeeID, roster.Day(day).Format(roster.DateLayout))
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

// UpdateEntry overwrites every mutable column of the entry.
func (c *conn) UpdateEntry(ctx context.Context, e *roster.Entry) error {
	now := time.Now().UTC()
	e.Date = roster.Day(e.Date)

	res, err := c.q.ExecContext(ctx, `
		UPDATE turnos_asignados SET
			usuario_id = ?, fecha = ?, turno = ?, generado_automatico = ?,
			modificado_manual = ?, es_reten = ?, estado = ?, updated_at = ?
		WHERE id = ?
	`,
		e.EmployeeID,
		e.Date.Format(roster.DateLayout),
		string(e.Code),
		e.AutoGenerated,
		e.ManuallyModified,
		e.OnCall,
		string(e.Status),
		now.Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return translate(err, "failed to update shift")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &roster.NotFoundError{Kind: "shift", ID: e.ID}
	}
	e.UpdatedAt = now
	return nil
}

// ListEntries returns entries matching the filter, ordered by date.
func (c *conn) ListEntries(ctx context.Context, f roster.EntryFilter) ([]roster.Entry, error) {
	var where []string
	var args []any

	if f.EmployeeID != 0 {
		where = append(where, "usuario_id = ?")
		args = append(args, f.EmployeeID)
	}
	if !f.Period.IsZero() {
		where = append(where, "fecha >= ? AND fecha <= ?")
		args = append(args, f.Period.Start.Format(roster.DateLayout), f.Period.End.Format(roster.DateLayout))
	}
	if len(f.Codes) > 0 {
		where = append(where, "turno IN ("+placeholders(len(f.Codes))+")")
		for _, code := range f.Codes {
			args = append(args, string(code))
		}
	}

	query := "SELECT " + entryColumns + " FROM turnos_asignados"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY fecha ASC, usuario_id ASC"

	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var entries []roster.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// EntryYears returns the distinct years that have at least one entry.
func (c *conn) EntryYears(ctx context.Context) ([]int, error) {
	rows, err := c.q.QueryContext(ctx, `
		SELECT DISTINCT CAST(substr(fecha, 1, 4) AS INTEGER) AS y
		FROM turnos_asignados
		ORDER BY y ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	years := []int{}
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*roster.Entry, error) {
	var e roster.Entry
	var date, code, status, createdAt, updatedAt string

	err := row.Scan(&e.ID, &e.EmployeeID, &date, &code, &e.AutoGenerated, &e.ManuallyModified,
		&e.OnCall, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	e.Date, err = time.Parse(roster.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("corrupt shift date %q: %w", date, err)
	}
	e.Code = roster.Code(code)
	e.Status = roster.Status(status)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &e, nil
}

// =============================================================================
// EMPLOYEE DIRECTORY (roster.EmployeeStore interface)
// =============================================================================

const employeeColumns = `id, nombres, apellidos, usuario, cumple_anios, telefono, fecha_ingreso,
	fecha_salida, estado, rol_id, created_at, updated_at`

// CreateEmployee inserts an employee and sets its ID.
func (c *conn) CreateEmployee(ctx context.Context, e *roster.Employee) error {
	now := time.Now().UTC()

	res, err := c.q.ExecContext(ctx, `
		INSERT INTO usuarios
		(nombres, apellidos, usuario, cumple_anios, telefono, fecha_ingreso, fecha_salida, estado, rol_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.FirstName,
		e.LastName,
		e.Username,
		nullDate(e.Birthday),
		e.Phone,
		e.HireDate.Format(roster.DateLayout),
		nullDate(e.TerminationDate),
		string(e.Status),
		e.RoleID,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	if err != nil {
		return translate(err, "failed to create employee")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read employee id: %w", err)
	}
	e.ID = id
	e.CreatedAt, e.UpdatedAt = now, now
	return nil
}

// GetEmployee retrieves an employee by ID.
func (c *conn) GetEmployee(ctx context.Context, id int64) (*roster.Employee, error) {
	row := c.q.QueryRowContext(ctx, "SELECT "+employeeColumns+" FROM usuarios WHERE id = ?", id)
	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &roster.NotFoundError{Kind: "employee", ID: id}
	}
	return e, err
}

// ListEmployees returns employees matching the filter, ordered by ID.
func (c *conn) ListEmployees(ctx context.Context, f roster.EmployeeFilter) ([]roster.Employee, error) {
	var where []string
	var args []any

	if f.ID != 0 {
		where = append(where, "id = ?")
		args = append(args, f.ID)
	}
	if f.Status != "" {
		where = append(where, "estado = ?")
		args = append(args, string(f.Status))
	}
	if len(f.RoleIDs) > 0 {
		where = append(where, "rol_id IN ("+placeholders(len(f.RoleIDs))+")")
		for _, r := range f.RoleIDs {
			args = append(args, r)
		}
	}

	query := "SELECT " + employeeColumns + " FROM usuarios"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id ASC"
	if f.Limit > 0 || f.Offset > 0 {
		limit := f.Limit
		if limit <= 0 {
			limit = -1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, f.Offset)
	}

	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []roster.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

// UpdateEmployee overwrites every mutable column of the employee.
func (c *conn) UpdateEmployee(ctx context.Context, e *roster.Employee) error {
	now := time.Now().UTC()

	res, err := c.q.ExecContext(ctx, `
		UPDATE usuarios SET
			nombres = ?, apellidos = ?, usuario = ?, cumple_anios = ?, telefono = ?,
			fecha_ingreso = ?, fecha_salida = ?, estado = ?, rol_id = ?, updated_at = ?
		WHERE id = ?
	`,
		e.FirstName,
		e.LastName,
		e.Username,
		nullDate(e.Birthday),
		e.Phone,
		e.HireDate.Format(roster.DateLayout),
		nullDate(e.TerminationDate),
		string(e.Status),
		e.RoleID,
		now.Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return translate(err, "failed to update employee")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &roster.NotFoundError{Kind: "employee", ID: e.ID}
	}
	e.UpdatedAt = now
	return nil
}

// DeleteEmployee removes an employee; ON DELETE CASCADE removes the ledger rows.
func (c *conn) DeleteEmployee(ctx context.Context, id int64) error {
	res, err := c.q.ExecContext(ctx, "DELETE FROM usuarios WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &roster.NotFoundError{Kind: "employee", ID: id}
	}
	return nil
}

func scanEmployee(row scanner) (*roster.Employee, error) {
	var e roster.Employee
	var birthday, termination sql.NullString
	var hireDate, status, createdAt, updatedAt string

	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Username, &birthday, &e.Phone,
		&hireDate, &termination, &status, &e.RoleID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	e.HireDate, _ = time.Parse(roster.DateLayout, hireDate)
	e.Birthday = parseNullDate(birthday)
	e.TerminationDate = parseNullDate(termination)
	e.Status = roster.Status(status)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &e, nil
}

// =============================================================================
// ROLES (roster.RoleStore interface)
// =============================================================================

func (c *conn) ListRoles(ctx context.Context) ([]roster.Role, error) {
	rows, err := c.q.QueryContext(ctx, "SELECT id, nombre, descripcion FROM roles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []roster.Role
	for rows.Next() {
		var r roster.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.Description); err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

func (c *conn) GetRole(ctx context.Context, id int64) (*roster.Role, error) {
	var r roster.Role
	err := c.q.QueryRowContext(ctx,
		"SELECT id, nombre, descripcion FROM roles WHERE id = ?", id,
	).Scan(&r.ID, &r.Name, &r.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &roster.NotFoundError{Kind: "role", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// =============================================================================
// HOLIDAY DEFINITIONS (roster.HolidayStore interface)
// =============================================================================

// CreateHoliday inserts a definition and sets its ID.
func (c *conn) CreateHoliday(ctx context.Context, h *roster.Holiday) error {
	now := time.Now().UTC()

	res, err := c.q.ExecContext(ctx, `
		INSERT INTO festivos (dia_mes, descripcion, tipo, estado, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, h.DayMonth, h.Description, string(h.Jurisdiction), string(h.Status), now.Format(time.RFC3339))
	if err != nil {
		return translate(err, "failed to create holiday")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read holiday id: %w", err)
	}
	h.ID = id
	h.CreatedAt = now
	return nil
}

func (c *conn) GetHoliday(ctx context.Context, id int64) (*roster.Holiday, error) {
	row := c.q.QueryRowContext(ctx,
		"SELECT id, dia_mes, descripcion, tipo, estado, created_at FROM festivos WHERE id = ?", id)
	h, err := scanHoliday(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &roster.NotFoundError{Kind: "holiday", ID: id}
	}
	return h, err
}

// FindHoliday returns the definition for dayMonth and jurisdiction, or nil.
func (c *conn) FindHoliday(ctx context.Context, dayMonth string, j roster.Jurisdiction) (*roster.Holiday, error) {
	row := c.q.QueryRowContext(ctx,
		"SELECT id, dia_mes, descripcion, tipo, estado, created_at FROM festivos WHERE dia_mes = ? AND tipo = ?",
		dayMonth, string(j))
	h, err := scanHoliday(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return h, err
}

// ListHolidays returns all definitions, or only active ones.
func (c *conn) ListHolidays(ctx context.Context, activeOnly bool) ([]roster.Holiday, error) {
	query := "SELECT id, dia_mes, descripcion, tipo, estado, created_at FROM festivos"
	var args []any
	if activeOnly {
		query += " WHERE estado = ?"
		args = append(args, string(roster.StatusActive))
	}
	query += " ORDER BY id ASC"

	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []roster.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, *h)
	}
	return holidays, rows.Err()
}

func (c *conn) UpdateHoliday(ctx context.Context, h *roster.Holiday) error {
	res, err := c.q.ExecContext(ctx, `
		UPDATE festivos SET dia_mes = ?, descripcion = ?, tipo = ?, estado = ?
		WHERE id = ?
	`, h.DayMonth, h.Description, string(h.Jurisdiction), string(h.Status), h.ID)
	if err != nil {
		return translate(err, "failed to update holiday")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &roster.NotFoundError{Kind: "holiday", ID: h.ID}
	}
	return nil
}

func (c *conn) DeleteHoliday(ctx context.Context, id int64) error {
	res, err := c.q.ExecContext(ctx, "DELETE FROM festivos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &roster.NotFoundError{Kind: "holiday", ID: id}
	}
	return nil
}

func scanHoliday(row scanner) (*roster.Holiday, error) {
	var h roster.Holiday
	var jurisdiction, status, createdAt string
	if err := row.Scan(&h.ID, &h.DayMonth, &h.Description, &jurisdiction, &status, &createdAt); err != nil {
		return nil, err
	}
	h.Jurisdiction = roster.Jurisdiction(jurisdiction)
	h.Status = roster.Status(status)
	h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &h, nil
}

// Helper functions

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(roster.DateLayout), Valid: true}
}

func parseNullDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(roster.DateLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// translate maps constraint violations to roster errors and wraps the rest.
func translate(err error, msg string) error {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	switch se.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		text := se.Error()
		switch {
		case strings.Contains(text, "turnos_asignados."):
			return roster.ErrDuplicateEntry
		case strings.Contains(text, "festivos."):
			return roster.ErrDuplicateHoliday
		case strings.Contains(text, "usuarios.usuario"):
			return roster.ErrDuplicateUsername
		}
	case sqlite3.ErrConstraintForeignKey:
		return &roster.ValidationError{Message: "referenced employee or role does not exist"}
	case sqlite3.ErrConstraintCheck:
		return &roster.ValidationError{Field: "turno", Message: "longer than 10 characters"}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
