// ABOUTME: Shared test harness for the web package
// ABOUTME: Builds a full server on MockStore plus router-level route tests

package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/paperdesk/internal/auth"
	"github.com/2389/paperdesk/internal/leave"
	"github.com/2389/paperdesk/internal/pagecopy"
	"github.com/2389/paperdesk/internal/store"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testPassword = "correct horse"
)

// newTestServer builds a server on an in-memory store seeded with one
// employee (alice). The returned mock lets tests add records or
// simulate a directory outage.
func newTestServer(t *testing.T) (*Server, *store.MockStore) {
	t.Helper()

	mock := store.NewMockStore()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	require.NoError(t, mock.CreateEmployee(context.Background(), &store.Employee{
		Username:       "alice",
		HashedPassword: hash,
		Email:          "alice@example.com",
		PhoneNumber:    "+100000001",
		Department:     "engineering",
		FirstName:      "Alice",
		SecondName:     "Ivanova",
		ThirdName:      "Petrovna",
		Position:       "engineer",
		TabNumber:      104,
		RegisteredOn:   time.Now().UTC(),
	}))

	codec, err := auth.NewCodec([]byte(testSecret), "HS256")
	require.NoError(t, err)

	srv := New("127.0.0.1:0", Options{
		Store:         mock,
		Authenticator: auth.NewAuthenticator(mock),
		Issuer:        auth.NewIssuer(codec, auth.DefaultTokenTTL),
		Verifier:      auth.NewVerifier(codec, mock),
		Leave:         leave.NewService(mock, nil),
		Copy:          pagecopy.Static{},
		TokenTTL:      auth.DefaultTokenTTL,
	})
	return srv, mock
}

// sessionToken mints a valid token for the named user through the
// server's own issuer.
func sessionToken(t *testing.T, srv *Server, username string) string {
	t.Helper()
	token, err := srv.issuer.Issue(username, 0)
	require.NoError(t, err)
	return token
}

// expiredToken mints a token for alice that expired a minute ago.
func expiredToken(t *testing.T) string {
	t.Helper()
	codec, err := auth.NewCodec([]byte(testSecret), "HS256")
	require.NoError(t, err)
	token, err := codec.Encode(map[string]any{"sub": "alice"}, -time.Minute)
	require.NoError(t, err)
	return token
}

func withCookie(r *http.Request, token string) *http.Request {
	r.AddCookie(&http.Cookie{Name: auth.TokenCookieName, Value: token})
	return r
}

func TestUnknownRouteRenders404Page(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/page", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not found")
}

func TestStaticFilesServed(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static_files/style.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}

func TestResponsesCarryProcessTime(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Process-Time"))
}
