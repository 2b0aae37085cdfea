package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/couchcryptid/quake-feed-service/internal/domain"
	"github.com/couchcryptid/quake-feed-service/internal/observability"
)

// PreferencesSlotName names the slot holding the filter preferences.
const PreferencesSlotName = "earthquake-filters"

// PreferenceSlot is durable storage for one serialized preference set.
type PreferenceSlot interface {
	// Load returns the stored bytes, or nil with no error when the slot is empty.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the stored bytes.
	Save(ctx context.Context, data []byte) error
}

// loadPreferences reads the initial preferences. Any read or decode failure
// is logged and yields the defaults; fields missing from the stored object
// keep their default values.
func loadPreferences(ctx context.Context, slot PreferenceSlot, logger *slog.Logger, metrics *observability.Metrics) domain.Preferences {
	defaults := domain.DefaultPreferences()
	if slot == nil {
		return defaults
	}

	data, err := slot.Load(ctx)
	if err != nil {
		metrics.PreferenceOps.WithLabelValues("load", "error").Inc()
		logger.Warn("failed to load filter preferences, using defaults", "error", err)
		return defaults
	}
	if len(data) == 0 {
		metrics.PreferenceOps.WithLabelValues("load", "empty").Inc()
		return defaults
	}

	prefs := defaults
	if err := json.Unmarshal(data, &prefs); err != nil {
		metrics.PreferenceOps.WithLabelValues("load", "error").Inc()
		logger.Warn("failed to parse filter preferences, using defaults", "error", err)
		return defaults
	}

	metrics.PreferenceOps.WithLabelValues("load", "success").Inc()
	logger.Debug("filter preferences loaded",
		"magnitude_min", prefs.MagnitudeMin,
		"magnitude_max", prefs.MagnitudeMax,
		"location_text", prefs.LocationText,
	)
	return prefs
}

// savePreferences writes the full preference set. Failures are logged only.
func savePreferences(ctx context.Context, slot PreferenceSlot, prefs domain.Preferences, logger *slog.Logger, metrics *observability.Metrics) {
	if slot == nil {
		return
	}

	data, err := json.Marshal(prefs)
	if err != nil {
		metrics.PreferenceOps.WithLabelValues("save", "error").Inc()
		logger.Warn("failed to encode filter preferences", "error", err)
		return
	}
	if err := slot.Save(ctx, data); err != nil {
		metrics.PreferenceOps.WithLabelValues("save", "error").Inc()
		logger.Warn("failed to save filter preferences", "error", err)
		return
	}
	metrics.PreferenceOps.WithLabelValues("save", "success").Inc()
}
