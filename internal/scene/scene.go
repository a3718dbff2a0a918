package scene

import (
	"context"
	"errors"

	"posecraft/internal/pose"
)

var ErrControllerNotFound = errors.New("controller not found in scene")

// StateProvider reads a controller's current state from the host scene.
type StateProvider interface {
	State(ctx context.Context, name string) (pose.State, error)
}

// StateWriter writes a controller's state back to the host scene.
type StateWriter interface {
	SetState(ctx context.Context, name string, st pose.State) error
}

// Enumerator lists the controller names the host exported, in the host's
// order. Names are raw; classification happens in the rig layer.
type Enumerator interface {
	Names(ctx context.Context) ([]string, error)
}

// Scene is the full read/write surface a host integration provides.
type Scene interface {
	StateProvider
	StateWriter
	Enumerator
}
