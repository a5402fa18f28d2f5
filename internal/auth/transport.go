// ABOUTME: Token extraction from inbound HTTP requests
// ABOUTME: Authorization header takes precedence; cookie fallback only when the header is absent

package auth

import (
	"errors"
	"net/http"
	"strings"
)

// TokenCookieName is the cookie that carries the session token between
// page loads.
const TokenCookieName = "access-token"

// ErrNoToken means the request carried no usable token: the header and
// cookie were both absent, or the header was present with a scheme other
// than Bearer.
var ErrNoToken = errors.New("no token in request")

// ExtractToken pulls the candidate token string out of a request.
//
// The Authorization header wins when present: it must be
// "Bearer <token>" (scheme case-insensitive). A present-but-malformed
// header fails closed; it does NOT fall through to the cookie. The
// cookie is consulted only when the header is entirely absent.
func ExtractToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return "", ErrNoToken
		}
		return token, nil
	}

	cookie, err := r.Cookie(TokenCookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoToken
	}
	return cookie.Value, nil
}
