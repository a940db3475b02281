// Package httpapi is the HTTP surface: routing, middleware, and the JSON
// response envelope.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"

	"campuscore.org/internal/audit"
	"campuscore.org/internal/auth"
	"campuscore.org/internal/obs"
	"campuscore.org/internal/registry"
)

const maxBodyBytes = 1 << 20

// ReadyProbe checks downstream readiness; with no DB configured it always
// passes.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Config carries the API's collaborators and tunables.
type Config struct {
	Auth       *auth.Service
	Tokens     *auth.TokenCodec
	Students   *registry.Service
	Trail      *audit.Trail
	Ready      ReadyProbe
	Version    string
	RateBurst  int
	RatePerSec int
}

// API is the HTTP layer.
type API struct {
	mux      *http.ServeMux
	svc      *auth.Service
	tokens   *auth.TokenCodec
	students *registry.Service
	trail    *audit.Trail
	ready    ReadyProbe
	version  string
	burst    int
	perSec   int
}

func New(cfg Config) *API {
	a := &API{
		mux:      http.NewServeMux(),
		svc:      cfg.Auth,
		tokens:   cfg.Tokens,
		students: cfg.Students,
		trail:    cfg.Trail,
		ready:    cfg.Ready,
		version:  cfg.Version,
		burst:    cfg.RateBurst,
		perSec:   cfg.RatePerSec,
	}
	if a.burst <= 0 {
		a.burst = 20
	}
	if a.perSec <= 0 {
		a.perSec = 10
	}

	a.mux.HandleFunc("/healthz", a.handleHealthz)
	a.mux.HandleFunc("/readyz", a.handleReady)
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/api/v1/auth/login", a.handleLogin)
	a.mux.HandleFunc("/api/v1/auth/logout", a.handleLogout)
	a.mux.HandleFunc("/api/v1/users", a.handleCreateUser)
	a.mux.HandleFunc("/api/v1/users/", a.handleUserSubroutes)
	a.mux.HandleFunc("/api/v1/students", a.handleEnrollStudent)
	a.mux.HandleFunc("/api/v1/students/export", a.handleExportStudents)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, codeNotFound, "not found")
	})

	return a
}

// Handler assembles the middleware chain around the mux. Order matters:
// metrics wrap everything, the request id must exist before logging and
// audit provenance, and authentication runs last so rejected requests are
// still rate limited and logged.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = a.withAuth(h)
	h = RateLimit(h, a.burst, a.perSec)
	h = MaxBodyBytes(h, maxBodyBytes)
	h = CORS(h)
	h = SecurityHeaders(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeOK(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "campus-core",
		"version": a.version,
	})
}

func (a *API) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := a.ready.Check(r.Context()); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, codeInternal, "not ready")
		return
	}
	writeOK(w, r, http.StatusOK, map[string]any{"status": "ready"})
}
