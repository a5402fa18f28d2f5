// ABOUTME: Tests for the session boundary: login, token endpoint, logout
// ABOUTME: Covers the 404/401 split and the cookie lifecycle

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/paperdesk/internal/auth"
)

func postForm(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func loginForm(username, password string) url.Values {
	return url.Values{"username": {username}, "password": {password}}
}

// responseCookie finds a Set-Cookie by name, nil when absent.
func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginSuccess(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, postForm("/login", loginForm("alice", testPassword)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/suc_auth", rec.Header().Get("Location"))

	cookie := responseCookie(rec, auth.TokenCookieName)
	require.NotNil(t, cookie, "login must set the session cookie")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)

	header := rec.Header().Get("Authorization")
	assert.Equal(t, "Bearer "+cookie.Value, header)

	// The minted token actually verifies.
	identity, err := srv.verifier.Verify(t.Context(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, postForm("/login", loginForm("alice", "wrong")))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, responseCookie(rec, auth.TokenCookieName))
}

func TestLoginUnknownUser(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, postForm("/login", loginForm("ghost", testPassword)))

	// Unknown usernames answer 404 on login, unlike the 401 the
	// verification path gives for the same condition.
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestLoginDirectoryOutage(t *testing.T) {
	srv, mock := newTestServer(t)
	mock.FindErr = errors.New("connection refused")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, postForm("/login", loginForm("alice", testPassword)))

	assert.Equal(t, http.StatusBadGateway, rec.Code,
		"an unreachable directory is not an authentication failure")
}

func TestTokenEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, postForm("/token", loginForm("alice", testPassword)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bearer", body.TokenType)

	identity, err := srv.verifier.Verify(t.Context(), body.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)

	// No cookie on the API flavor.
	assert.Nil(t, responseCookie(rec, auth.TokenCookieName))
}

func TestTokenEndpointFailures(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		password   string
		wantStatus int
	}{
		{"wrong password", "alice", "wrong", http.StatusUnauthorized},
		{"unknown user", "ghost", testPassword, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t)

			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, postForm("/token", loginForm(tt.username, tt.password)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	srv, _ := newTestServer(t)
	token := sessionToken(t, srv, "alice")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, withCookie(httptest.NewRequest(http.MethodGet, "/exit", nil), token))

	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := responseCookie(rec, auth.TokenCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)

	// Logout only clears the browser's copy. The token itself stays
	// valid until it expires.
	identity, err := srv.verifier.Verify(t.Context(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
}
