// ABOUTME: Session token issuance for authenticated identities
// ABOUTME: Builds sub-claim tokens with a configurable default lifetime

package auth

import "time"

// DefaultTokenTTL is the token lifetime used when the caller does not
// specify one.
const DefaultTokenTTL = 15 * time.Minute

// Issuer mints signed session tokens for authenticated identities.
type Issuer struct {
	codec      *Codec
	defaultTTL time.Duration
}

// NewIssuer creates an Issuer. A non-positive defaultTTL falls back to
// DefaultTokenTTL.
func NewIssuer(codec *Codec, defaultTTL time.Duration) *Issuer {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTokenTTL
	}
	return &Issuer{codec: codec, defaultTTL: defaultTTL}
}

// Issue produces a signed token asserting the given username as subject.
// A non-positive ttl uses the issuer's default. Pure function of its
// inputs plus the current time.
func (i *Issuer) Issue(username string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = i.defaultTTL
	}
	return i.codec.Encode(map[string]any{"sub": username}, ttl)
}
