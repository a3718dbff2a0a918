package scene

import (
	"context"
	"sync"

	"posecraft/internal/pose"
)

// Memory is an in-process scene for tests and embedded callers. Writing to
// a controller that was never added fails with ErrControllerNotFound, the
// same way a stale reference fails against a real host.
type Memory struct {
	mu    sync.Mutex
	order []string
	state map[string]pose.State
}

func NewMemory() *Memory {
	return &Memory{state: make(map[string]pose.State)}
}

// Add creates or replaces a controller and its state.
func (m *Memory) Add(name string, st pose.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.state[name]; !ok {
		m.order = append(m.order, name)
	}
	m.state[name] = st.Clone()
}

// Remove deletes a controller, leaving stale references behind.
func (m *Memory) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.state[name]; !ok {
		return
	}
	delete(m.state, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *Memory) Names(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.order...), nil
}

func (m *Memory) State(ctx context.Context, name string) (pose.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.state[name]
	if !ok {
		return pose.State{}, ErrControllerNotFound
	}
	return st.Clone(), nil
}

func (m *Memory) SetState(ctx context.Context, name string, st pose.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.state[name]; !ok {
		return ErrControllerNotFound
	}
	m.state[name] = st.Clone()
	return nil
}
