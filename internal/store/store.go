package store

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/quake-feed-service/internal/domain"
	"github.com/couchcryptid/quake-feed-service/internal/observability"
)

// FetchErrorMessage is the user-visible error set when a fetch fails. The
// cause goes to the log, never to consumers.
const FetchErrorMessage = "Failed to fetch earthquake data"

// FeedSource reads the current earthquake feed.
type FeedSource interface {
	FetchFeed(ctx context.Context) ([]domain.Earthquake, error)
}

// Publisher receives every collection that replaces the store's contents.
type Publisher interface {
	Publish(ctx context.Context, quakes []domain.Earthquake, fetchedAt time.Time) error
}

// Store owns the fetched collection, request state, filter preferences and
// the filtered view derived from them. It is safe for concurrent use.
type Store struct {
	source    FeedSource
	slot      PreferenceSlot
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics

	mu          sync.RWMutex
	earthquakes []domain.Earthquake
	filters     domain.Preferences
	inFlight    int
	errMsg      string
	fetchedAt   time.Time

	// seq numbers fetches in call order; applied is the highest seq whose
	// result has been written. Completions with seq <= applied are stale.
	seq     uint64
	applied uint64

	// Versions are bumped on every change to the collection or the filters.
	// The filtered view is cached against the pair it was computed from.
	dataVersion   uint64
	filterVersion uint64
	view          derivedView

	// persistMu serializes slot writes so the last write is always the
	// latest preferences.
	persistMu sync.Mutex

	ready atomic.Bool
}

type derivedView struct {
	valid         bool
	dataVersion   uint64
	filterVersion uint64
	quakes        []domain.Earthquake
}

// New creates a Store and loads the initial preferences from slot. Storage
// failures fall back to defaults. Pass a nil publisher to disable publication.
func New(ctx context.Context, source FeedSource, slot PreferenceSlot, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Store {
	s := &Store{
		source:      source,
		slot:        slot,
		publisher:   publisher,
		logger:      logger,
		metrics:     metrics,
		earthquakes: []domain.Earthquake{},
	}
	s.filters = loadPreferences(ctx, slot, logger, metrics)
	return s
}

// CheckReadiness returns nil once a fetch has succeeded, or an error
// describing why the service is not yet ready.
func (s *Store) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no earthquake data fetched yet")
	}
	return nil
}

// Fetch reads the feed once and replaces the whole collection on success. On
// failure the collection is left as it was and the error message is set.
// Loading is true from entry until the last overlapping Fetch returns.
//
// The returned error is the underlying cause; consumers that only read state
// may ignore it.
func (s *Store) Fetch(ctx context.Context) error {
	fetchID := uuid.NewString()
	seq := s.begin()
	defer s.finish()

	start := time.Now()
	quakes, err := s.source.FetchFeed(ctx)
	s.metrics.FetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if s.applyFailure(seq) {
			s.metrics.FetchRequests.WithLabelValues("error").Inc()
		} else {
			s.metrics.FetchRequests.WithLabelValues("stale").Inc()
		}
		s.logger.Error("fetch earthquakes failed", "fetch_id", fetchID, "error", err)
		return err
	}

	fetchedAt, ok := s.applySuccess(seq, quakes)
	if !ok {
		s.metrics.FetchRequests.WithLabelValues("stale").Inc()
		s.logger.Debug("discarding stale fetch result", "fetch_id", fetchID, "seq", seq)
		return nil
	}
	s.metrics.FetchRequests.WithLabelValues("success").Inc()
	s.metrics.Earthquakes.Set(float64(len(quakes)))
	s.logger.Info("earthquakes fetched", "fetch_id", fetchID, "count", len(quakes))

	s.publish(ctx, fetchID, quakes, fetchedAt)
	return nil
}

// begin marks a fetch as in flight, clears the error and returns the
// fetch's sequence number.
func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.inFlight++
	s.errMsg = ""
	s.metrics.FetchInFlight.Inc()
	return s.seq
}

func (s *Store) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	s.metrics.FetchInFlight.Dec()
}

func (s *Store) applySuccess(seq uint64, quakes []domain.Earthquake) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied {
		return time.Time{}, false
	}
	s.applied = seq
	if quakes == nil {
		quakes = []domain.Earthquake{}
	}
	s.earthquakes = quakes
	s.errMsg = ""
	s.fetchedAt = domain.Now()
	s.dataVersion++
	s.ready.Store(true)
	return s.fetchedAt, true
}

func (s *Store) applyFailure(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied {
		return false
	}
	s.applied = seq
	s.errMsg = FetchErrorMessage
	return true
}

func (s *Store) publish(ctx context.Context, fetchID string, quakes []domain.Earthquake, fetchedAt time.Time) {
	if s.publisher == nil || len(quakes) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, quakes, fetchedAt); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Warn("publish earthquakes failed", "fetch_id", fetchID, "error", err)
		return
	}
	s.metrics.MessagesPublished.Add(float64(len(quakes)))
}

// UpdateFilters merges u into the current preferences, persists the result
// and returns it. Persistence is best-effort: a failed write is logged and
// the in-memory preferences stay authoritative.
func (s *Store) UpdateFilters(ctx context.Context, u domain.FilterUpdate) domain.Preferences {
	s.mu.Lock()
	s.filters = s.filters.Merge(u)
	s.filterVersion++
	prefs := s.filters
	s.mu.Unlock()

	s.persist(ctx)
	return prefs
}

// persist writes the latest preferences, whatever update triggered it.
func (s *Store) persist(ctx context.Context) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	prefs := s.filters
	s.mu.RUnlock()

	savePreferences(ctx, s.slot, prefs, s.logger, s.metrics)
}

// Filtered returns the records matching the current preferences. The view is
// recomputed only when the collection or the filters changed since the last
// call.
func (s *Store) Filtered() []domain.Earthquake {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.filteredLocked())
}

// filteredLocked returns the cached view, recomputing it if stale. s.mu must
// be held for writing.
func (s *Store) filteredLocked() []domain.Earthquake {
	v := &s.view
	if !v.valid || v.dataVersion != s.dataVersion || v.filterVersion != s.filterVersion {
		v.quakes = s.filters.Filter(s.earthquakes)
		v.dataVersion = s.dataVersion
		v.filterVersion = s.filterVersion
		v.valid = true
		s.metrics.Filtered.Set(float64(len(v.quakes)))
	}
	return v.quakes
}

// Earthquakes returns the full collection from the last successful fetch.
func (s *Store) Earthquakes() []domain.Earthquake {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.earthquakes)
}

// Loading reports whether at least one fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

// LastError returns the user-visible error message and whether one is set.
func (s *Store) LastError() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg, s.errMsg != ""
}

// Filters returns the current preferences.
func (s *Store) Filters() domain.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// FetchedAt returns when the current collection was fetched, or the zero
// time if no fetch has succeeded.
func (s *Store) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

// State is a consistent summary of the store for consumers.
type State struct {
	Loading       bool               `json:"loading"`
	Error         *string            `json:"error"`
	Filters       domain.Preferences `json:"filters"`
	Count         int                `json:"count"`
	FilteredCount int                `json:"filteredCount"`
	FetchedAt     *time.Time         `json:"fetchedAt,omitempty"`
}

// Snapshot returns the request state, filters and counts taken together.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Loading:       s.inFlight > 0,
		Filters:       s.filters,
		Count:         len(s.earthquakes),
		FilteredCount: len(s.filteredLocked()),
	}
	if s.errMsg != "" {
		msg := s.errMsg
		st.Error = &msg
	}
	if !s.fetchedAt.IsZero() {
		at := s.fetchedAt
		st.FetchedAt = &at
	}
	return st
}
