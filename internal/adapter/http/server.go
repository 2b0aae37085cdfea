package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/quake-feed-service/internal/domain"
	"github.com/couchcryptid/quake-feed-service/internal/store"
)

// maxFilterBody bounds PATCH /api/filters payloads.
const maxFilterBody = 4 << 10

// EarthquakeStore is the read surface and mutators the API exposes.
type EarthquakeStore interface {
	sharedobs.ReadinessChecker
	Fetch(ctx context.Context) error
	Earthquakes() []domain.Earthquake
	Filtered() []domain.Earthquake
	Filters() domain.Preferences
	UpdateFilters(ctx context.Context, u domain.FilterUpdate) domain.Preferences
	Snapshot() store.State
}

// Server exposes the earthquake API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	store      EarthquakeStore
	location   *time.Location
	logger     *slog.Logger
}

// NewServer creates an HTTP server. Times in the filtered view are formatted
// in loc.
func NewServer(addr string, st EarthquakeStore, loc *time.Location, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		store:    st,
		location: loc,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(st))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/earthquakes", s.handleEarthquakes)
	mux.HandleFunc("GET /api/earthquakes/filtered", s.handleFiltered)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/filters", s.handleGetFilters)
	mux.HandleFunc("PATCH /api/filters", s.handlePatchFilters)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleEarthquakes(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.store.Earthquakes())
}

func (s *Server) handleFiltered(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, domain.DecorateAll(s.store.Filtered(), s.location))
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleGetFilters(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.store.Filters())
}

func (s *Server) handlePatchFilters(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFilterBody))
	dec.DisallowUnknownFields()

	var u domain.FilterUpdate
	if err := dec.Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter update: "+err.Error())
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid filter update: trailing data after JSON object")
		return
	}

	prefs := s.store.UpdateFilters(r.Context(), u)
	s.logger.Info("filters updated",
		"magnitude_min", prefs.MagnitudeMin,
		"magnitude_max", prefs.MagnitudeMax,
		"location_text", prefs.LocationText,
	)
	sharedobs.WriteJSON(w, http.StatusOK, prefs)
}

// handleRefresh runs one fetch and returns the resulting state. The fetch is
// detached from the request so a client hang-up does not record a failure.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	err := s.store.Fetch(context.WithoutCancel(r.Context()))
	status := http.StatusOK
	if err != nil {
		status = http.StatusBadGateway
	}
	sharedobs.WriteJSON(w, status, s.store.Snapshot())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}

// IsServerClosed reports whether err is the normal result of Shutdown.
func IsServerClosed(err error) bool {
	return errors.Is(err, http.ErrServerClosed)
}
