// ABOUTME: Unit tests for token extraction from HTTP requests
// ABOUTME: Verifies header precedence and the no-fallback-on-malformed-header rule

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractToken_BearerHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "canonical scheme", header: "Bearer abc123", want: "abc123"},
		{name: "lowercase scheme", header: "bearer abc123", want: "abc123"},
		{name: "uppercase scheme", header: "BEARER abc123", want: "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", tt.header)

			got, err := ExtractToken(req)
			if err != nil {
				t.Fatalf("ExtractToken() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractToken_MalformedHeaderDoesNotFallThrough(t *testing.T) {
	// A present-but-unsupported Authorization header must fail closed
	// even when a perfectly good cookie is sitting right there.
	tests := []string{
		"Basic dXNlcjpwYXNz",
		"Bearer",
		"Bearer ",
		"Token abc123",
	}

	for _, header := range tests {
		t.Run(header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", header)
			req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "cookie-token"})

			_, err := ExtractToken(req)
			if !errors.Is(err, ErrNoToken) {
				t.Errorf("ExtractToken() error = %v, want ErrNoToken", err)
			}
		})
	}
}

func TestExtractToken_CookieFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "cookie-token"})

	got, err := ExtractToken(req)
	if err != nil {
		t.Fatalf("ExtractToken() error = %v", err)
	}
	if got != "cookie-token" {
		t.Errorf("ExtractToken() = %q, want %q", got, "cookie-token")
	}
}

func TestExtractToken_Nothing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := ExtractToken(req)
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("ExtractToken() error = %v, want ErrNoToken", err)
	}
}

func TestExtractToken_EmptyCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: ""})

	_, err := ExtractToken(req)
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("ExtractToken() error = %v, want ErrNoToken", err)
	}
}
