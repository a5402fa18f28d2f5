// ABOUTME: Mock Store implementation for testing
// ABOUTME: Allows tests to run without PostgreSQL

package store

import (
	"context"
	"sort"
	"sync"
)

// MockStore is an in-memory Store implementation for testing.
type MockStore struct {
	mu        sync.RWMutex
	nextID    int64
	employees map[int64]*Employee       // keyed by employee ID
	byName    map[string]int64          // username -> employee ID
	leaves    map[int64][]*LeaveRequest // keyed by employee ID
	leaveID   int64

	// FindErr, when set, is returned by every directory lookup. Lets
	// tests simulate an unavailable database.
	FindErr error
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		employees: make(map[int64]*Employee),
		byName:    make(map[string]int64),
		leaves:    make(map[int64][]*LeaveRequest),
	}
}

// FindByUsername retrieves an employee by username.
func (m *MockStore) FindByUsername(ctx context.Context, username string) (*Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.FindErr != nil {
		return nil, m.FindErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byName[username]
	if !ok {
		return nil, ErrNotFound
	}
	result := *m.employees[id]
	return &result, nil
}

// CreateEmployee stores a new employee and assigns an ID.
func (m *MockStore) CreateEmployee(ctx context.Context, e *Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byName[e.Username]; exists {
		return ErrDuplicate
	}
	for _, other := range m.employees {
		if other.Email == e.Email || other.PhoneNumber == e.PhoneNumber || other.TabNumber == e.TabNumber {
			return ErrDuplicate
		}
	}

	m.nextID++
	e.ID = m.nextID

	// Store a copy to avoid external modification
	cp := *e
	m.employees[e.ID] = &cp
	m.byName[e.Username] = e.ID
	return nil
}

// GetEmployee retrieves an employee by ID.
func (m *MockStore) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	result := *e
	return &result, nil
}

// ListEmployees returns employees ordered by ID with offset/limit paging.
func (m *MockStore) ListEmployees(ctx context.Context, offset, limit int) ([]*Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*Employee, 0, len(m.employees))
	for _, e := range m.employees {
		cp := *e
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// UpdateEmployee applies a partial update.
func (m *MockStore) UpdateEmployee(ctx context.Context, id int64, upd EmployeeUpdate) (*Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.employees[id]
	if !ok {
		return nil, ErrNotFound
	}

	if upd.Username != nil && *upd.Username != e.Username {
		if _, taken := m.byName[*upd.Username]; taken {
			return nil, ErrDuplicate
		}
		delete(m.byName, e.Username)
		m.byName[*upd.Username] = id
	}
	applyEmployeeUpdate(e, upd)

	result := *e
	return &result, nil
}

// DeleteEmployee removes an employee and their leave requests.
func (m *MockStore) DeleteEmployee(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.employees[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.byName, e.Username)
	delete(m.employees, id)
	delete(m.leaves, id)
	return nil
}

// CreateLeaveRequest stores a leave request and assigns an ID.
func (m *MockStore) CreateLeaveRequest(ctx context.Context, lr *LeaveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.employees[lr.EmployeeID]; !ok {
		return ErrNotFound
	}

	m.leaveID++
	lr.ID = m.leaveID
	cp := *lr
	m.leaves[lr.EmployeeID] = append([]*LeaveRequest{&cp}, m.leaves[lr.EmployeeID]...)
	return nil
}

// ListLeaveRequests returns an employee's requests, newest first.
func (m *MockStore) ListLeaveRequests(ctx context.Context, employeeID int64) ([]*LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	requests := m.leaves[employeeID]
	result := make([]*LeaveRequest, len(requests))
	for i, lr := range requests {
		cp := *lr
		result[i] = &cp
	}
	return result, nil
}

// Close is a no-op for the mock.
func (m *MockStore) Close() error {
	return nil
}
