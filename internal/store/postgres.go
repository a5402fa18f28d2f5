// ABOUTME: PostgreSQL implementation of the Store interface using pgx
// ABOUTME: Provides employee/leave-request persistence with goose-managed schema

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations
const uniqueViolation = "23505"

// PostgresStore implements the Store interface on a pgx connection pool
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresStore connects to the database at dsn and runs pending
// schema migrations before returning.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	logger := slog.Default().With("component", "store")

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &PostgresStore{
		pool:   pool,
		logger: logger,
	}

	if err := s.migrate(ctx, dsn); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Info("postgres store initialized")
	return s, nil
}

// migrate applies embedded goose migrations through a plain database/sql
// handle; pgxpool itself stays on the native protocol.
func (s *PostgresStore) migrate(ctx context.Context, dsn string) error {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("parsing dsn: %w", err)
	}

	db := stdlib.OpenDB(*cfg)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, "migrations")
}

// Close releases the connection pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const employeeColumns = `id, username, hashed_password, email, phone_number,
	dep, sub_dep, first_name, second_name, third_name,
	position, tab_no, registered_on, is_admin, competence`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var e Employee
	err := row.Scan(
		&e.ID, &e.Username, &e.HashedPassword, &e.Email, &e.PhoneNumber,
		&e.Department, &e.SubDepartment, &e.FirstName, &e.SecondName, &e.ThirdName,
		&e.Position, &e.TabNumber, &e.RegisteredOn, &e.IsAdmin, &e.Competence,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning employee: %w", err)
	}
	return &e, nil
}

// FindByUsername looks up an employee by username
func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE username = $1`
	return scanEmployee(s.pool.QueryRow(ctx, query, username))
}

// CreateEmployee inserts a new employee record and fills in the generated ID
func (s *PostgresStore) CreateEmployee(ctx context.Context, e *Employee) error {
	query := `
		INSERT INTO employees (username, hashed_password, email, phone_number,
			dep, sub_dep, first_name, second_name, third_name,
			position, tab_no, registered_on, is_admin, competence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`

	err := s.pool.QueryRow(ctx, query,
		e.Username, e.HashedPassword, e.Email, e.PhoneNumber,
		e.Department, e.SubDepartment, e.FirstName, e.SecondName, e.ThirdName,
		e.Position, e.TabNumber, e.RegisteredOn, e.IsAdmin, e.Competence,
	).Scan(&e.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting employee: %w", err)
	}
	return nil
}

// GetEmployee fetches an employee by ID
func (s *PostgresStore) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(s.pool.QueryRow(ctx, query, id))
}

// ListEmployees returns employees ordered by ID with offset/limit paging
func (s *PostgresStore) ListEmployees(ctx context.Context, offset, limit int) ([]*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY id OFFSET $1 LIMIT $2`

	rows, err := s.pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// UpdateEmployee applies a partial update and returns the updated record.
// The update runs in a transaction so a concurrent delete cannot produce
// a half-applied row.
func (s *PostgresStore) UpdateEmployee(ctx context.Context, id int64, upd EmployeeUpdate) (*Employee, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := scanEmployee(tx.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}

	applyEmployeeUpdate(current, upd)

	query := `
		UPDATE employees SET username = $1, hashed_password = $2, email = $3,
			phone_number = $4, dep = $5, sub_dep = $6, first_name = $7,
			second_name = $8, third_name = $9, position = $10, tab_no = $11,
			is_admin = $12, competence = $13
		WHERE id = $14`

	_, err = tx.Exec(ctx, query,
		current.Username, current.HashedPassword, current.Email,
		current.PhoneNumber, current.Department, current.SubDepartment, current.FirstName,
		current.SecondName, current.ThirdName, current.Position, current.TabNumber,
		current.IsAdmin, current.Competence, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("updating employee: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing update: %w", err)
	}
	return current, nil
}

func applyEmployeeUpdate(e *Employee, upd EmployeeUpdate) {
	if upd.Username != nil {
		e.Username = *upd.Username
	}
	if upd.HashedPassword != nil {
		e.HashedPassword = *upd.HashedPassword
	}
	if upd.Email != nil {
		e.Email = *upd.Email
	}
	if upd.PhoneNumber != nil {
		e.PhoneNumber = *upd.PhoneNumber
	}
	if upd.Department != nil {
		e.Department = *upd.Department
	}
	if upd.SubDepartment != nil {
		e.SubDepartment = *upd.SubDepartment
	}
	if upd.FirstName != nil {
		e.FirstName = *upd.FirstName
	}
	if upd.SecondName != nil {
		e.SecondName = *upd.SecondName
	}
	if upd.ThirdName != nil {
		e.ThirdName = *upd.ThirdName
	}
	if upd.Position != nil {
		e.Position = *upd.Position
	}
	if upd.TabNumber != nil {
		e.TabNumber = *upd.TabNumber
	}
	if upd.IsAdmin != nil {
		e.IsAdmin = *upd.IsAdmin
	}
	if upd.Competence != nil {
		e.Competence = *upd.Competence
	}
}

// DeleteEmployee removes an employee; their leave requests cascade
func (s *PostgresStore) DeleteEmployee(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateLeaveRequest inserts a leave request and fills in the generated ID
func (s *PostgresStore) CreateLeaveRequest(ctx context.Context, lr *LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (employee_id, shift_worked, day_off, submission_day)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := s.pool.QueryRow(ctx, query,
		lr.EmployeeID, lr.ShiftWorked, lr.DayOff, lr.SubmissionDay,
	).Scan(&lr.ID)
	if err != nil {
		return fmt.Errorf("inserting leave request: %w", err)
	}
	return nil
}

// ListLeaveRequests returns an employee's requests, newest first
func (s *PostgresStore) ListLeaveRequests(ctx context.Context, employeeID int64) ([]*LeaveRequest, error) {
	query := `
		SELECT id, employee_id, shift_worked, day_off, submission_day
		FROM leave_requests
		WHERE employee_id = $1
		ORDER BY submission_day DESC, id DESC`

	rows, err := s.pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("listing leave requests: %w", err)
	}
	defer rows.Close()

	var requests []*LeaveRequest
	for rows.Next() {
		var lr LeaveRequest
		if err := rows.Scan(&lr.ID, &lr.EmployeeID, &lr.ShiftWorked, &lr.DayOff, &lr.SubmissionDay); err != nil {
			return nil, fmt.Errorf("scanning leave request: %w", err)
		}
		requests = append(requests, &lr)
	}
	return requests, rows.Err()
}
