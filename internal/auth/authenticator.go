// ABOUTME: Credential authentication against the user directory
// ABOUTME: Distinguishes unknown-user from wrong-password failures

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/2389/paperdesk/internal/store"
)

// Authentication errors. The two kinds map to different HTTP statuses on
// the login path (404 vs 401), so they stay separate sentinels.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
)

// Authenticator checks a username/password pair against the directory.
type Authenticator struct {
	directory store.UserDirectory
}

// NewAuthenticator creates an Authenticator backed by the given directory.
func NewAuthenticator(directory store.UserDirectory) *Authenticator {
	return &Authenticator{directory: directory}
}

// Authenticate looks the user up and verifies the password against the
// stored hash. An unknown username yields ErrUserNotFound; a hash
// mismatch yields ErrWrongPassword. Any other directory error is an
// infrastructure failure and is returned wrapped, never conflated with
// the two authentication kinds.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*store.Employee, error) {
	employee, err := a.directory.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("directory lookup: %w", err)
	}

	if !VerifyPassword(password, employee.HashedPassword) {
		return nil, ErrWrongPassword
	}
	return employee, nil
}
