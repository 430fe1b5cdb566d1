package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/serialform/internal/config"
	"github.com/dgallion1/serialform/internal/pipeline"
	"github.com/dgallion1/serialform/internal/render"
)

// Source supplies the Generator for each request.
type Source interface {
	Current() *pipeline.Generator
}

// Server is the HTTP preview server for the serialized-form page.
type Server struct {
	router  chi.Router
	src     Source
	metrics http.Handler
	html    render.HTMLOptions
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server. metrics may be nil, in
// which case /metrics is not mounted.
func NewServer(src Source, metrics http.Handler, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		src:     src,
		metrics: metrics,
		html:    render.HTMLOptions{Stylesheet: cfg.Stylesheet},
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Get("/serialized-form.html", s.handlePage(render.FormatHTML))
		r.Get("/serialized-form.docx", s.handlePage(render.FormatDOCX))
		r.Get("/api/classes/{name}/visible", s.handleClassVisible)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
