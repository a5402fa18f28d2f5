// ABOUTME: Token verification: decode, subject extraction, directory lookup
// ABOUTME: Collapses expired/malformed into ErrTokenInvalid at this layer

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/2389/paperdesk/internal/store"
)

// ErrTokenInvalid means a token was present but failed its signature,
// structure, or expiry check, or carried no subject claim.
var ErrTokenInvalid = errors.New("token invalid")

// Identity is the principal a verified token resolves to. It is a
// transient view over an employee record, valid for one request.
type Identity struct {
	Username string
}

// Verifier validates transported tokens and maps them back to live
// employee records.
type Verifier struct {
	codec     *Codec
	directory store.UserDirectory
}

// NewVerifier creates a Verifier using the given codec and directory.
func NewVerifier(codec *Codec, directory store.UserDirectory) *Verifier {
	return &Verifier{codec: codec, directory: directory}
}

// Verify decodes and validates a token and resolves its subject to an
// identity.
//
// The codec's expired/malformed distinction is deliberately collapsed
// here into ErrTokenInvalid: callers of Verify react to both the same
// way, while callers that need the split (a future silent-refresh path)
// use the Codec directly. A subject that no longer resolves yields
// ErrUserNotFound; a directory outage or timeout is returned wrapped as
// an infrastructure failure. Verification is read-only, so cancellation
// mid-lookup leaves nothing to roll back.
func (v *Verifier) Verify(ctx context.Context, token string) (*Identity, error) {
	claims, err := v.codec.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrTokenInvalid)
	}

	employee, err := v.directory.FindByUsername(ctx, sub)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("directory lookup: %w", err)
	}

	return &Identity{Username: employee.Username}, nil
}
