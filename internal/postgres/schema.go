package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id          TEXT PRIMARY KEY,
		sku         TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		section     TEXT NOT NULL DEFAULT '',
		price_cents INTEGER NOT NULL CHECK (price_cents > 0),
		available   BOOLEAN NOT NULL DEFAULT TRUE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_archive (
		session_id     TEXT NOT NULL,
		order_id       BIGINT NOT NULL,
		customer       TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		status         TEXT NOT NULL,
		total          NUMERIC(12,2) NOT NULL,
		ordered_at     TIMESTAMPTZ NOT NULL,
		archived_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (session_id, order_id)
	)`,
	`CREATE INDEX IF NOT EXISTS order_archive_customer_idx ON order_archive (customer, ordered_at)`,
	`CREATE TABLE IF NOT EXISTS order_archive_items (
		session_id TEXT NOT NULL,
		order_id   BIGINT NOT NULL,
		position   INTEGER NOT NULL,
		name       TEXT NOT NULL,
		price      NUMERIC(12,2) NOT NULL,
		PRIMARY KEY (session_id, order_id, position),
		FOREIGN KEY (session_id, order_id) REFERENCES order_archive (session_id, order_id) ON DELETE CASCADE
	)`,
}

// Migrate creates the catalog and archive tables if they are missing.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i, err)
		}
	}
	return nil
}
