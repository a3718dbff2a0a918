package pose

import (
	"context"
	"fmt"
)

// StateWriter writes one controller's state back to the host scene.
type StateWriter interface {
	SetState(ctx context.Context, name string, st State) error
}

// RestoreError reports one controller that could not be written back.
type RestoreError struct {
	Name string
	Err  error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("restoring %s: %v", e.Name, e.Err)
}

func (e *RestoreError) Unwrap() error { return e.Err }

type RestoreResult struct {
	Applied  []string
	Failures []*RestoreError
}

func (r *RestoreResult) AllApplied() bool {
	return len(r.Failures) == 0
}

// Restore writes every controller of the pose through dst in pose order.
// A failed write is collected, not fatal: the rest of the pose still
// applies.
func Restore(ctx context.Context, dst StateWriter, p *Pose) *RestoreResult {
	res := &RestoreResult{}
	for _, e := range p.Entries {
		if err := dst.SetState(ctx, e.ID.Name, e.State.Clone()); err != nil {
			res.Failures = append(res.Failures, &RestoreError{Name: e.ID.Name, Err: err})
			continue
		}
		res.Applied = append(res.Applied, e.ID.Name)
	}
	return res
}

// RestoreBlended eases the scene toward p instead of snapping to it: each
// controller's live state is read from src and lerped toward the target by
// t before writing back. Controllers whose live state cannot be read are
// applied at full strength. t of 1 is a plain Restore.
func RestoreBlended(ctx context.Context, src StateProvider, dst StateWriter, p *Pose, t float64) *RestoreResult {
	if t >= 1 {
		return Restore(ctx, dst, p)
	}

	live := &Pose{}
	for _, e := range p.Entries {
		st, err := src.State(ctx, e.ID.Name)
		if err != nil {
			continue
		}
		live.Set(e.ID, st)
	}
	return Restore(ctx, dst, Lerp(p, live, 1-t))
}
