package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"posecraft/internal/pose"
	"posecraft/internal/snapshot"
)

func newRow(name string, frame int, p *pose.Pose) (*snapshot.Snapshot, []byte, error) {
	data, err := snapshot.EncodePose(p)
	if err != nil {
		return nil, nil, err
	}
	snap := &snapshot.Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		Frame:     frame,
		CreatedAt: time.Now().UTC(),
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
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (name) DO NOTHING
	`
	res, err := c.db.ExecContext(ctx, query,
		snap.ID, snap.Name, snap.Frame, snap.Pose.Len(),
		snap.CreatedAt.Format(time.RFC3339Nano), data)
	if err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}
	if affected == 0 {
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
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (name) DO UPDATE SET
		id = excluded.id,
		frame = excluded.frame,
		controllers = excluded.controllers,
		created_at = excluded.created_at,
		pose = excluded.pose
	`
	_, err = c.db.ExecContext(ctx, query,
		snap.ID, snap.Name, snap.Frame, snap.Pose.Len(),
		snap.CreatedAt.Format(time.RFC3339Nano), data)
	if err != nil {
		return nil, fmt.Errorf("overwriting snapshot: %w", err)
	}
	return snap, nil
}

func (c *Client) Get(ctx context.Context, name string) (*snapshot.Snapshot, error) {
	query := `SELECT id, name, frame, created_at, pose FROM snapshots WHERE name = ?`

	var (
		snap      snapshot.Snapshot
		createdAt string
		data      []byte
	)
	err := c.db.QueryRowContext(ctx, query, name).Scan(
		&snap.ID, &snap.Name, &snap.Frame, &createdAt, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, snapshot.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}

	snap.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
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
	ORDER BY created_at, rowid
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var infos []snapshot.Info
	for rows.Next() {
		var (
			info      snapshot.Info
			createdAt string
		)
		if err := rows.Scan(&info.ID, &info.Name, &info.Frame, &info.Controllers, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		info.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot rows: %w", err)
	}
	return infos, nil
}

func (c *Client) Delete(ctx context.Context, name string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	if affected == 0 {
		return snapshot.ErrNotFound
	}
	return nil
}
