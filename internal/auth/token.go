// ABOUTME: Signed token codec on top of golang-jwt with HMAC signing
// ABOUTME: Decode splits failures into exactly expired vs malformed

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec errors. Decode returns exactly one of these two kinds so callers
// can treat a stale-but-genuine token differently from a corrupt one.
var (
	// ErrTokenExpired means the signature checked out but the expiry
	// instant has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed covers everything else: bad signature,
	// structural corruption, or a signing algorithm mismatch.
	ErrTokenMalformed = errors.New("token malformed")
)

// signingMethods maps the configured algorithm name to a jwt method.
var signingMethods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// MinSecretLength is the shortest signing secret the codec accepts.
const MinSecretLength = 32

// Codec encodes and decodes signed, expiring tokens. The secret and
// method are fixed at construction and never change afterwards, so a
// single Codec is safe for concurrent use.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
}

// NewCodec builds a Codec for the given shared secret and algorithm name
// (HS256, HS384 or HS512).
func NewCodec(secret []byte, algorithm string) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("signing secret must be at least %d bytes, got %d", MinSecretLength, len(secret))
	}
	method, ok := signingMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &Codec{secret: secret, method: method}, nil
}

// Encode serializes the claims plus an exp field ttl from now, signs,
// and returns the compact encoded token.
func (c *Codec) Encode(claims map[string]any, ttl time.Duration) (string, error) {
	mapClaims := jwt.MapClaims{}
	for k, v := range claims {
		mapClaims[k] = v
	}
	mapClaims["exp"] = jwt.NewNumericDate(time.Now().UTC().Add(ttl))

	token := jwt.NewWithClaims(c.method, mapClaims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry atomically and returns the
// claims. Failures are partitioned into ErrTokenExpired and
// ErrTokenMalformed; no other error kinds escape.
func (c *Codec) Decode(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
