// ABOUTME: Page copy source: titles and notice text for rendered pages
// ABOUTME: Backed by Redis hashes with built-in defaults as fallback

package pagecopy

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Fields stored per page.
const (
	FieldTitle   = "title"
	FieldMessage = "message"
)

// Page keys. Each key addresses a Redis hash with title/message fields.
const (
	PageIndex          = "index_page"
	PageAuth           = "oauth_page"
	PageAuthSuccess    = "suc_oauth_page"
	PageLogout         = "log_out_page"
	PageSubmitLeave    = "submit_nvo_page"
	PageSubmitSuccess  = "suc_submit_page"
	PageEmptyDataError = "empty_data_sent_error_page"
)

// defaults is the built-in copy used when the cache has no value for a
// page field. Page rendering never fails on missing copy.
var defaults = map[string]map[string]string{
	PageIndex: {
		FieldTitle: "Personal Document Workflow",
	},
	PageAuth: {
		FieldTitle: "Sign In",
	},
	PageAuthSuccess: {
		FieldTitle:   "Signed In",
		FieldMessage: "You are signed in. You can now submit documents.",
	},
	PageLogout: {
		FieldTitle:   "Signed Out",
		FieldMessage: "Your session cookie has been cleared.",
	},
	PageSubmitLeave: {
		FieldTitle: "Day-Off Request",
	},
	PageSubmitSuccess: {
		FieldTitle:   "Request Submitted",
		FieldMessage: "Your request was saved and a confirmation was sent by email.",
	},
	PageEmptyDataError: {
		FieldTitle:   "Incomplete Form",
		FieldMessage: "Some required fields were empty. Please fill the form and try again.",
	},
}

// Source yields page copy by page key and field.
type Source interface {
	Get(ctx context.Context, page, field string) string
}

// Static serves only the built-in defaults. Used in tests and when no
// Redis address is configured.
type Static struct{}

// Get returns the built-in copy for the page field, or "" when none exists.
func (Static) Get(_ context.Context, page, field string) string {
	return defaults[page][field]
}

// RedisSource reads page copy from Redis hashes, falling back to the
// built-in defaults on a miss or an unreachable cache.
type RedisSource struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisSource connects a copy source to the given Redis instance.
func NewRedisSource(addr, password string, db int) *RedisSource {
	return &RedisSource{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		logger: slog.Default().With("component", "pagecopy"),
	}
}

// Get returns HGET page field, degrading to the default copy on miss or error.
func (s *RedisSource) Get(ctx context.Context, page, field string) string {
	val, err := s.client.HGet(ctx, page, field).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("page copy lookup failed", "page", page, "field", field, "error", err)
		}
		return defaults[page][field]
	}
	return val
}

// Ping verifies the Redis connection at startup.
func (s *RedisSource) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the Redis client.
func (s *RedisSource) Close() error {
	return s.client.Close()
}
