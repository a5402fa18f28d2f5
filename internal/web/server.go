// ABOUTME: HTTP server wiring: routes, middleware, graceful shutdown
// ABOUTME: Per-route guard policies: pages redirect, API routes challenge

package web

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/2389/paperdesk/internal/auth"
	"github.com/2389/paperdesk/internal/leave"
	"github.com/2389/paperdesk/internal/pagecopy"
	"github.com/2389/paperdesk/internal/store"
)

// Server hosts the page and API endpoints.
type Server struct {
	store         store.Store
	authenticator *auth.Authenticator
	issuer        *auth.Issuer
	verifier      *auth.Verifier
	leave         *leave.Service
	copy          pagecopy.Source
	tokenTTL      time.Duration
	logger        *slog.Logger

	httpServer *http.Server
}

// Options carries the collaborators the server composes.
type Options struct {
	Store         store.Store
	Authenticator *auth.Authenticator
	Issuer        *auth.Issuer
	Verifier      *auth.Verifier
	Leave         *leave.Service
	Copy          pagecopy.Source
	TokenTTL      time.Duration
}

// New assembles the server and its router.
func New(addr string, opts Options) *Server {
	s := &Server{
		store:         opts.Store,
		authenticator: opts.Authenticator,
		issuer:        opts.Issuer,
		verifier:      opts.Verifier,
		leave:         opts.Leave,
		copy:          opts.Copy,
		tokenTTL:      opts.TokenTTL,
		logger:        slog.Default().With("component", "web"),
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the route table. Exposed so tests can drive the full
// stack through httptest without binding a socket.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogging(s.logger))

	// Page routes redirect to the login page when the session is bad.
	pageGuard := auth.RequireAuth(s.verifier, auth.RedirectTo("/auth"))
	// Form-submission routes answer with the 401 error page instead of
	// bouncing a POST through a redirect.
	challengePage := auth.RequireAuth(s.verifier, s.challengeHTML())
	// API routes answer with a JSON 401 challenge.
	apiGuard := auth.RequireAuth(s.verifier, auth.ChallengeJSON())

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	// Session boundary
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/token", s.handleToken).Methods(http.MethodPost)
	r.HandleFunc("/exit", s.handleLogout).Methods(http.MethodGet)

	// Pages
	r.Handle("/", pageGuard(http.HandlerFunc(s.handleIndex))).Methods(http.MethodGet)
	r.HandleFunc("/auth", s.handleAuthPage).Methods(http.MethodGet)
	r.HandleFunc("/suc_auth", s.handleAuthSuccessPage).Methods(http.MethodGet)
	r.Handle("/submit/docs", pageGuard(http.HandlerFunc(s.handleSubmitDocs))).Methods(http.MethodPost)
	r.Handle("/submit/docs/nvo", challengePage(http.HandlerFunc(s.handleSubmitLeave))).Methods(http.MethodPost)

	// Employee records
	r.HandleFunc("/reg", s.handleCreateEmployee).Methods(http.MethodPost)
	r.HandleFunc("/users", s.handleListEmployees).Methods(http.MethodGet)
	r.Handle("/users/{id:[0-9]+}", apiGuard(http.HandlerFunc(s.handleUpdateEmployee))).Methods(http.MethodPatch)
	r.Handle("/users/{id:[0-9]+}", apiGuard(http.HandlerFunc(s.handleDeleteEmployee))).Methods(http.MethodDelete)

	// Static assets
	staticRoot, _ := fs.Sub(staticFS, "static")
	r.PathPrefix("/static_files/").Handler(
		http.StripPrefix("/static_files/", http.FileServer(http.FS(staticRoot))))

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.renderError404(w)
	})

	return r
}

// challengeHTML is the guard policy for browser form posts: the 401
// error page with a Bearer challenge, or a 502 when the directory is
// down.
func (s *Server) challengeHTML() auth.FailurePolicy {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		if !isAuthFailure(err) {
			http.Error(w, "service unavailable", http.StatusBadGateway)
			return
		}
		s.renderError401(w)
	}
}

// handleHealth answers ok when the server and its store are reachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.ListEmployees(r.Context(), 0, 1); err != nil {
		s.logger.Error("health check failed", "error", err)
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Start serves until the context is cancelled, then drains connections.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
