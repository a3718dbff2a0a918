package pose

import (
	"context"
	"fmt"

	"posecraft/internal/rig"
)

// StateProvider reads one controller's current state from the host scene.
type StateProvider interface {
	State(ctx context.Context, name string) (State, error)
}

// CaptureError reports the controller that made a capture abort.
type CaptureError struct {
	Name string
	Err  error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capturing %s: %v", e.Name, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// Capture reads every controller in order through src. The first read that
// fails aborts the whole capture; no partial pose escapes.
func Capture(ctx context.Context, src StateProvider, ids []rig.ControllerID) (*Pose, error) {
	p := &Pose{}
	for _, id := range ids {
		st, err := src.State(ctx, id.Name)
		if err != nil {
			return nil, &CaptureError{Name: id.Name, Err: err}
		}
		p.Set(id, st.Clone())
	}
	return p, nil
}
