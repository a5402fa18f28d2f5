// ABOUTME: Session boundary endpoints: login, token, and logout
// ABOUTME: Sets and clears the access-token cookie; tokens themselves are stateless

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2389/paperdesk/internal/auth"
	"github.com/2389/paperdesk/internal/pagecopy"
)

// isAuthFailure reports whether err belongs to the authentication
// taxonomy; everything else is an infrastructure failure.
func isAuthFailure(err error) bool {
	return errors.Is(err, auth.ErrNoToken) ||
		errors.Is(err, auth.ErrTokenInvalid) ||
		errors.Is(err, auth.ErrUserNotFound) ||
		errors.Is(err, auth.ErrWrongPassword)
}

// issueSession authenticates the credentials and mints a token.
func (s *Server) issueSession(r *http.Request) (string, error) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	employee, err := s.authenticator.Authenticate(r.Context(), username, password)
	if err != nil {
		return "", err
	}
	return s.issuer.Issue(employee.Username, s.tokenTTL)
}

// setTokenCookie installs the session cookie on the response.
func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
	})
}

// handleLogin processes the login form. Success installs the token as
// both a response header and the session cookie, then redirects to the
// signed-in page.
//
// Failure statuses preserve a long-standing asymmetry: an unknown
// username answers 404 here, while the token verification path answers
// 401 for the same condition.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	token, err := s.issueSession(r)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			w.Header().Set("WWW-Authenticate", "Bearer")
			s.renderError404(w)
		case errors.Is(err, auth.ErrWrongPassword):
			s.renderError401(w)
		default:
			s.logger.Error("login failed", "error", err)
			http.Error(w, "service unavailable", http.StatusBadGateway)
		}
		return
	}

	setTokenCookie(w, token)
	w.Header().Set("Authorization", "Bearer "+token)
	http.Redirect(w, r, "/suc_auth", http.StatusSeeOther)
}

// handleToken is the API flavor of login: it returns the bearer token as
// JSON instead of installing a cookie.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	token, err := s.issueSession(r)
	if err != nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			http.Error(w, `{"error":"user not found"}`, http.StatusNotFound)
		case errors.Is(err, auth.ErrWrongPassword):
			http.Error(w, `{"error":"not authenticated"}`, http.StatusUnauthorized)
		default:
			s.logger.Error("token issuance failed", "error", err)
			http.Error(w, `{"error":"service unavailable"}`, http.StatusBadGateway)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// handleLogout clears the session cookie and shows the signed-out page.
// The token is not revoked server-side: it stays valid until expiry, the
// browser just no longer holds it.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
	s.renderNotice(w, r, pagecopy.PageLogout)
}
