package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	// Single call: postgres runs the whole DDL in one implicit
	// transaction, and IF NOT EXISTS keeps reruns idempotent.
	ddl := `
CREATE TABLE IF NOT EXISTS snapshots (
    id          UUID PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    frame       INTEGER NOT NULL DEFAULT 0,
    controllers INTEGER NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    pose        JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots (created_at);
`
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring snapshot schema: %w", err)
	}
	return nil
}
