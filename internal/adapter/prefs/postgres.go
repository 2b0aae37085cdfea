package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // postgres driver
)

// OpenPostgres opens and pings a Postgres connection pool.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// PostgresSlot stores one slot as a row of the preference_slots table.
type PostgresSlot struct {
	db   *sql.DB
	name string
}

// NewPostgresSlot returns the slot named name. Call Migrate before first use.
func NewPostgresSlot(db *sql.DB, name string) *PostgresSlot {
	return &PostgresSlot{db: db, name: name}
}

// Migrate creates the preference_slots table if it does not exist.
func (p *PostgresSlot) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS preference_slots (
			slot        TEXT PRIMARY KEY,
			value       JSONB NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`
	_, err := p.db.ExecContext(ctx, query)
	return err
}

// Load returns the slot value, or nil when no row exists.
func (p *PostgresSlot) Load(ctx context.Context) ([]byte, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx,
		"SELECT value FROM preference_slots WHERE slot = $1",
		p.name,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load preference slot %q: %w", p.name, err)
	}
	return value, nil
}

// Save upserts the slot value and bumps updated_at.
func (p *PostgresSlot) Save(ctx context.Context, data []byte) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO preference_slots (slot, value) VALUES ($1, $2)
		ON CONFLICT (slot) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		p.name, data,
	)
	if err != nil {
		return fmt.Errorf("save preference slot %q: %w", p.name, err)
	}
	return nil
}
