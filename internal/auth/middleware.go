// ABOUTME: HTTP guard middleware for protected endpoints
// ABOUTME: Failure policy (401 challenge vs redirect) is chosen per route

package auth

import (
	"errors"
	"fmt"
	"net/http"
)

// challengeHeader is returned with every 401 so clients know which
// scheme the server expects.
const challengeHeader = "WWW-Authenticate"

// FailurePolicy decides what an endpoint does when a request carries no
// valid identity. API routes challenge with a 401; page routes redirect
// to the login page.
type FailurePolicy func(w http.ResponseWriter, r *http.Request, err error)

// ChallengeJSON is the API policy: 401 with a Bearer challenge and a
// small JSON body. Infrastructure failures surface as 502 instead.
func ChallengeJSON() FailurePolicy {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		if isInfrastructure(err) {
			writeJSONError(w, http.StatusBadGateway, "directory unavailable")
			return
		}
		w.Header().Set(challengeHeader, "Bearer")
		writeJSONError(w, http.StatusUnauthorized, "not authenticated")
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q}`+"\n", message)
}

// RedirectTo is the page policy: send the browser to the login page.
// Expired and malformed tokens both land here, never on a 500.
func RedirectTo(location string) FailurePolicy {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		if isInfrastructure(err) {
			http.Error(w, "service unavailable", http.StatusBadGateway)
			return
		}
		http.Redirect(w, r, location, http.StatusSeeOther)
	}
}

// isInfrastructure reports whether err is outside the authentication
// taxonomy (directory outage, timeout) and must not be answered 401.
func isInfrastructure(err error) bool {
	return !errors.Is(err, ErrNoToken) &&
		!errors.Is(err, ErrTokenInvalid) &&
		!errors.Is(err, ErrUserNotFound)
}

// RequireAuth guards a handler: extract, verify, then run the wrapped
// handler with the identity in the request context. Any failure
// short-circuits through the route's policy.
func RequireAuth(verifier *Verifier, onFail FailurePolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractToken(r)
			if err != nil {
				onFail(w, r, err)
				return
			}

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				onFail(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}
