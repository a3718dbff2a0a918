package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"posecraft/internal/pose"
	"posecraft/internal/snapshot"
)

func newRow(name string, frame int, p *pose.Pose) (*snapshot.Snapshot, []byte, error) {
	data, err := snapshot.EncodePose(p)
	if err != nil {
		return nil, nil, err
	}
	snap := &snapshot.Snapshot{
		ID:    uuid.NewString(),
		Name:  name,
		Frame: frame,
		// timestamptz keeps microseconds; truncate so the snapshot we
		// return matches the one a later Get reads back.
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		Pose:      p.Clone(),
	}
	return snap, data, nil
}

func (c *Client) Save(ctx context.Context, name string, frame int, p *pose.Pose) (*snapshot.Snapshot, error) {
	snap, data, err := newRow(name, frame, p)
	if err != nil {
		return nil, err
	}

	query := `
INSERT INTO snapshots (id, name, frame, controllers, created_at, pose)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (name) DO NOTHING
`
	tag, err := c.pool.Exec(ctx, query,
		snap.ID, snap.Name, snap.Frame, snap.Pose.Len(), snap.CreatedAt, data)
	if err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, snapshot.ErrDuplicateName
	}
	return snap, nil
}

func (c *Client) Overwrite(ctx context.Context, name string, frame int, p *pose.Pose) (*snapshot.Snapshot, error) {
	snap, data, err := newRow(name, frame, p)
	if err != nil {
		return nil, err
	}

	query := `
INSERT INTO snapshots (id, name, frame, controllers, created_at, pose)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (name) DO UPDATE SET
    id = EXCLUDED.id,
    frame = EXCLUDED.frame,
    controllers = EXCLUDED.controllers,
    created_at = EXCLUDED.created_at,
    pose = EXCLUDED.pose
`
	if _, err := c.pool.Exec(ctx, query,
		snap.ID, snap.Name, snap.Frame, snap.Pose.Len(), snap.CreatedAt, data); err != nil {
		return nil, fmt.Errorf("overwriting snapshot: %w", err)
	}
	return snap, nil
}

func (c *Client) Get(ctx context.Context, name string) (*snapshot.Snapshot, error) {
	query := `SELECT id, name, frame, created_at, pose FROM snapshots WHERE name = $1`

	var (
		snap snapshot.Snapshot
		data []byte
	)
	err := c.pool.QueryRow(ctx, query, name).Scan(
		&snap.ID, &snap.Name, &snap.Frame, &snap.CreatedAt, &data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, snapshot.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}

	snap.CreatedAt = snap.CreatedAt.UTC()
	snap.Pose, err = snapshot.DecodePose(data)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) List(ctx context.Context) ([]snapshot.Info, error) {
	query := `
SELECT id, name, frame, controllers, created_at
FROM snapshots
ORDER BY created_at, id
`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var infos []snapshot.Info
	for rows.Next() {
		var info snapshot.Info
		if err := rows.Scan(&info.ID, &info.Name, &info.Frame, &info.Controllers, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		info.CreatedAt = info.CreatedAt.UTC()
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot rows: %w", err)
	}
	return infos, nil
}

func (c *Client) Delete(ctx context.Context, name string) error {
	tag, err := c.pool.Exec(ctx, `DELETE FROM snapshots WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return snapshot.ErrNotFound
	}
	return nil
}
