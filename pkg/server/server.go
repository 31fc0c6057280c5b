// Package server exposes the chart pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz     liveness probe
//	GET  /version     build information
//	POST /v1/layout   tree in, normalized geometry JSON out
//	POST /v1/render   tree in, one rendered artifact out
//
// Request bodies carry a tree encoded as JSON, YAML or HCL, chosen by
// Content-Type. Chart options are read from query parameters and default
// to the options the server was started with.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sunburst/pkg/buildinfo"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// Config holds transport limits.
type Config struct {
	// Rate is the steady request rate allowed per client IP. Zero disables
	// rate limiting.
	Rate float64
	// Burst is the number of requests a client may make at once.
	Burst int
	// MaxBodyBytes caps the request body size.
	MaxBodyBytes int64
	// Timeout bounds request handling.
	Timeout time.Duration
}

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	runner   *pipeline.Runner
	defaults pipeline.Options
	cfg      Config
	logger   *log.Logger
}

// New creates a server that runs requests through runner. defaults are
// applied before query parameters.
func New(runner *pipeline.Runner, defaults pipeline.Options, cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:   runner,
		defaults: defaults,
		cfg:      cfg,
		logger:   logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Group(func(r chi.Router) {
		if s.cfg.Rate > 0 {
			r.Use(newRateLimiter(s.cfg.Rate, s.cfg.Burst).Middleware)
		}
		if s.cfg.Timeout > 0 {
			r.Use(middleware.Timeout(s.cfg.Timeout))
		}
		r.Post("/v1/layout", s.handleLayout)
		r.Post("/v1/render", s.handleRender)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}
