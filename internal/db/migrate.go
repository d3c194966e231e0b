package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// RunMigrations creates the flat key-value table everything persists into.
// The layout mirrors the frontend's original localStorage: one row per
// key, JSON text values.
func RunMigrations(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS storage (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	_, err := db.ExecContext(context.Background(), schema)
	return err
}
