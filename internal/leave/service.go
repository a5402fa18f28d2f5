// ABOUTME: Day-off request workflow: validation, persistence, confirmation mail
// ABOUTME: Mail goes out in the background after the database write commits

package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/2389/paperdesk/internal/store"
)

// ErrEmptyDates is returned when a submission is missing either date.
// Handlers map it to the incomplete-form notice page.
var ErrEmptyDates = errors.New("shift worked and day off dates are required")

// mailTimeout bounds the background confirmation send.
const mailTimeout = 30 * time.Second

// Sender delivers the confirmation for a stored submission.
type Sender interface {
	SendLeaveConfirmation(ctx context.Context, e *store.Employee, lr *store.LeaveRequest) error
}

// Store is the slice of persistence the workflow needs.
type Store interface {
	store.UserDirectory
	store.LeaveStore
}

// Service runs the day-off request workflow.
type Service struct {
	store  Store
	sender Sender
	logger *slog.Logger

	// now is swapped out in tests
	now func() time.Time
}

// NewService creates the workflow service. sender may be nil, in which
// case submissions are stored without a confirmation mail.
func NewService(st Store, sender Sender) *Service {
	return &Service{
		store:  st,
		sender: sender,
		logger: slog.Default().With("component", "leave"),
		now:    time.Now,
	}
}

// Submit validates and stores a day-off request for the named employee,
// then fires the confirmation mail in the background. The submission day
// is today in UTC. The HTTP response never waits on mail delivery and
// cannot fail because of it.
func (s *Service) Submit(ctx context.Context, username string, shiftWorked, dayOff time.Time) (*store.LeaveRequest, error) {
	if shiftWorked.IsZero() || dayOff.IsZero() {
		return nil, ErrEmptyDates
	}

	employee, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("resolving employee: %w", err)
	}

	lr := &store.LeaveRequest{
		EmployeeID:    employee.ID,
		ShiftWorked:   shiftWorked,
		DayOff:        dayOff,
		SubmissionDay: s.now().UTC().Truncate(24 * time.Hour),
	}
	if err := s.store.CreateLeaveRequest(ctx, lr); err != nil {
		return nil, fmt.Errorf("storing leave request: %w", err)
	}

	s.logger.Info("leave request stored",
		"employee", employee.Username, "day_off", lr.DayOff.Format(time.DateOnly))

	if s.sender != nil {
		// Detached from the request context: the response must not
		// wait for SMTP.
		go func() {
			sendCtx, cancel := context.WithTimeout(context.Background(), mailTimeout)
			defer cancel()
			if err := s.sender.SendLeaveConfirmation(sendCtx, employee, lr); err != nil {
				s.logger.Error("leave confirmation failed",
					"employee", employee.Username, "error", err)
			}
		}()
	}

	return lr, nil
}

// History returns the named employee's previous submissions, newest first.
func (s *Service) History(ctx context.Context, username string) ([]*store.LeaveRequest, error) {
	employee, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("resolving employee: %w", err)
	}
	return s.store.ListLeaveRequests(ctx, employee.ID)
}
