package pg

import (
	"context"
	"fmt"
)

const createMaterialsTable = `
CREATE TABLE IF NOT EXISTS materials (
	key          TEXT PRIMARY KEY,
	value        BYTEA NOT NULL,
	stored_at    TIMESTAMPTZ NOT NULL,
	retain_until TIMESTAMPTZ,
	expired      BOOLEAN NOT NULL DEFAULT FALSE
);
`

// Migrate создаёт таблицу materials, если её ещё нет.
func Migrate(ctx context.Context, db *DB) error {
	if _, err := db.ExecContext(ctx, createMaterialsTable); err != nil {
		return fmt.Errorf("pg migrate: %w", err)
	}
	return nil
}
