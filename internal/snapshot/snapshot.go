package snapshot

import (
	"context"
	"errors"
	"time"

	"posecraft/internal/pose"
)

var (
	ErrNotFound      = errors.New("snapshot not found")
	ErrDuplicateName = errors.New("snapshot name already exists")
)

// Snapshot is a named, immutable-once-saved pose. Stores hand out copies:
// mutating a returned snapshot never touches stored state.
type Snapshot struct {
	ID        string
	Name      string
	Frame     int
	CreatedAt time.Time
	Pose      *pose.Pose
}

func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.Pose = s.Pose.Clone()
	return &out
}

// Info is the listing view of a snapshot.
type Info struct {
	ID          string
	Name        string
	Frame       int
	CreatedAt   time.Time
	Controllers int
}

// Store manages named snapshots. Save refuses an existing name with
// ErrDuplicateName; Overwrite is the explicit replace-or-create operation
// and always produces a fresh ID and creation time. Get and Delete fail
// with ErrNotFound for absent names; List is recomputed per call, ordered
// by creation time.
type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	Save(ctx context.Context, name string, frame int, p *pose.Pose) (*Snapshot, error)
	Overwrite(ctx context.Context, name string, frame int, p *pose.Pose) (*Snapshot, error)
	Get(ctx context.Context, name string) (*Snapshot, error)
	List(ctx context.Context) ([]Info, error)
	Delete(ctx context.Context, name string) error
}
