// ABOUTME: HTTP middleware: request logging with timing and request IDs
// ABOUTME: Adds the X-Process-Time header consumers already depend on

package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// statusWriter captures the response status and size for the access log
// and stamps X-Process-Time just before headers are flushed.
type statusWriter struct {
	http.ResponseWriter
	start  time.Time
	status int
	size   int
}

func (w *statusWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
		w.Header().Set("X-Process-Time", fmt.Sprintf("%.6f", time.Since(w.start).Seconds()))
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// requestLogging logs every request with method, path, status, size and
// duration, tagging each line with a request id.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			sw := &statusWriter{ResponseWriter: w, start: time.Now()}

			next.ServeHTTP(sw, r)

			if sw.status == 0 {
				sw.status = http.StatusOK
			}
			logger.Info("request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", sw.status,
				"size", sw.size,
				"duration", time.Since(sw.start).String(),
			)
		})
	}
}
