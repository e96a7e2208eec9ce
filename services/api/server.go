package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"kwestendorf/scopeworker/internal/orchestrator"
	"kwestendorf/scopeworker/internal/reticle"
	"kwestendorf/scopeworker/internal/scope"
	"kwestendorf/scopeworker/logger"
)

// Server exposes the scope datasets and the reticle catalog over HTTP.
type Server struct {
	orch    *orchestrator.Orchestrator
	catalog reticle.Catalog
	log     *logger.Logger
	http    *http.Server
}

// NewServer creates an API server listening on addr.
func NewServer(addr string, orch *orchestrator.Orchestrator, catalog reticle.Catalog) *Server {
	s := &Server{
		orch:    orch,
		catalog: catalog,
		log:     logger.ForAPI(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/scopes", s.handleAllScopes)
	r.Get("/api/scopes/{source}", s.handleScopes)
	r.Post("/api/scopes/{source}/refresh", s.handleRefresh)
	r.Get("/api/reticles", s.handleReticles)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks serving HTTP until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("API server listening")
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("Request handled")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAllScopes serves every source's dataset keyed by source name,
// initializing sources that have never been loaded.
func (s *Server) handleAllScopes(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]map[string]scope.Record)
	for _, name := range s.orch.Sources() {
		records, err := s.orch.Records(r.Context(), name)
		if err != nil {
			s.log.Error().Err(err).Str("source", name).Msg("Failed to read dataset")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read scope data"})
			return
		}
		out[name] = records
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleScopes(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "source")

	records, err := s.orch.Records(r.Context(), name)
	if errors.Is(err, orchestrator.ErrUnknownSource) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown source: " + name})
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("source", name).Msg("Failed to read dataset")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read scope data"})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "source")

	err := s.orch.Refresh(r.Context(), name)
	switch {
	case errors.Is(err, orchestrator.ErrUnknownSource):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown source: " + name})
	case errors.Is(err, orchestrator.ErrCoolingDown):
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "refresh cooling down, try again later"})
	case err != nil:
		s.log.Error().Err(err).Str("source", name).Msg("Refresh failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "refresh failed"})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "scope data refreshed"})
	}
}

func (s *Server) handleReticles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.List())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers already sent; nothing left to do
		logger.ForAPI().Debug().Err(err).Msg("Failed to encode response")
	}
}
