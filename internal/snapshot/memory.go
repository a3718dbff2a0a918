package snapshot

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"posecraft/internal/pose"
)

var _ Store = (*Memory)(nil)

// Memory is a session-scoped store. All mutation is mutex-serialized; the
// stored snapshots are deep copies in both directions.
type Memory struct {
	mu    sync.Mutex
	order []string
	snaps map[string]*Snapshot
}

func NewMemory() *Memory {
	return &Memory{snaps: make(map[string]*Snapshot)}
}

func (m *Memory) Close(ctx context.Context) error { return nil }

func (m *Memory) EnsureSchema(ctx context.Context) error { return nil }

func (m *Memory) Save(ctx context.Context, name string, frame int, p *pose.Pose) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snaps[name]; ok {
		return nil, ErrDuplicateName
	}
	snap := m.put(name, frame, p)
	return snap.Clone(), nil
}

func (m *Memory) Overwrite(ctx context.Context, name string, frame int, p *pose.Pose) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := m.put(name, frame, p)
	return snap.Clone(), nil
}

func (m *Memory) put(name string, frame int, p *pose.Pose) *Snapshot {
	snap := &Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		Frame:     frame,
		CreatedAt: time.Now().UTC(),
		Pose:      p.Clone(),
	}
	if _, ok := m.snaps[name]; !ok {
		m.order = append(m.order, name)
	}
	m.snaps[name] = snap
	return snap
}

func (m *Memory) Get(ctx context.Context, name string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snaps[name]
	if !ok {
		return nil, ErrNotFound
	}
	return snap.Clone(), nil
}

func (m *Memory) List(ctx context.Context) ([]Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]Info, 0, len(m.order))
	for _, name := range m.order {
		snap := m.snaps[name]
		infos = append(infos, Info{
			ID:          snap.ID,
			Name:        snap.Name,
			Frame:       snap.Frame,
			CreatedAt:   snap.CreatedAt,
			Controllers: snap.Pose.Len(),
		})
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos, nil
}

func (m *Memory) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snaps[name]; !ok {
		return ErrNotFound
	}
	delete(m.snaps, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
