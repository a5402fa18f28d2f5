// ABOUTME: Store interfaces and data types for paperdesk persistence
// ABOUTME: Defines Employee, LeaveRequest and the store interfaces for database operations

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint is violated
// (username, email, phone number or tab number already taken)
var ErrDuplicate = errors.New("duplicate record")

// Employee is a personnel record. Username and HashedPassword drive
// authentication; the rest fills the generated leave-request forms.
type Employee struct {
	ID             int64
	Username       string
	HashedPassword string
	Email          string
	PhoneNumber    string
	Department     string
	SubDepartment  string
	FirstName      string
	SecondName     string
	ThirdName      string
	Position       string
	TabNumber      int
	RegisteredOn   time.Time
	IsAdmin        bool
	Competence     string
}

// EmployeeUpdate carries a partial update. Nil fields are left unchanged.
// HashedPassword, when set, is the already-hashed replacement.
type EmployeeUpdate struct {
	Username       *string
	HashedPassword *string
	Email          *string
	PhoneNumber    *string
	Department     *string
	SubDepartment  *string
	FirstName      *string
	SecondName     *string
	ThirdName      *string
	Position       *string
	TabNumber      *int
	IsAdmin        *bool
	Competence     *string
}

// LeaveRequest is a submitted day-off request: the employee worked
// ShiftWorked and asks for DayOff in exchange.
type LeaveRequest struct {
	ID            int64
	EmployeeID    int64
	ShiftWorked   time.Time
	DayOff        time.Time
	SubmissionDay time.Time
}

// UserDirectory is the read-only lookup the auth pipeline depends on.
// The auth core never writes through this interface.
type UserDirectory interface {
	FindByUsername(ctx context.Context, username string) (*Employee, error)
}

// EmployeeStore provides full CRUD over personnel records
type EmployeeStore interface {
	UserDirectory

	CreateEmployee(ctx context.Context, e *Employee) error
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	ListEmployees(ctx context.Context, offset, limit int) ([]*Employee, error)
	UpdateEmployee(ctx context.Context, id int64, upd EmployeeUpdate) (*Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

// LeaveStore persists leave requests
type LeaveStore interface {
	CreateLeaveRequest(ctx context.Context, lr *LeaveRequest) error
	ListLeaveRequests(ctx context.Context, employeeID int64) ([]*LeaveRequest, error)
}

// Store combines every persistence concern of the server
type Store interface {
	EmployeeStore
	LeaveStore

	Close() error
}
