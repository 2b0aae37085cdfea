// Package prefs stores serialized filter preferences in a named slot on disk
// or in Postgres.
package prefs

import (
	"context"
	"io"

	"github.com/couchcryptid/quake-feed-service/internal/config"
)

// Slot is a named, durable byte slot.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the slot named name on the backend selected by
// cfg.PrefsBackend. The returned closer releases the backend's resources.
func Open(ctx context.Context, cfg *config.Config, name string) (Slot, io.Closer, error) {
	if cfg.PrefsBackend == config.PrefsBackendPostgres {
		db, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		slot := NewPostgresSlot(db, name)
		if err := slot.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return slot, db, nil
	}

	slot, err := NewFileSlot(cfg.PrefsDir, name)
	if err != nil {
		return nil, nil, err
	}
	return slot, nopCloser{}, nil
}
