package pose

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"posecraft/internal/rig"
)

var errNoController = errors.New("no such controller")

type fakeScene struct {
	states     map[string]State
	writes     []string
	readFailOn map[string]error
}

func (f *fakeScene) State(ctx context.Context, name string) (State, error) {
	if err, ok := f.readFailOn[name]; ok {
		return State{}, err
	}
	st, ok := f.states[name]
	if !ok {
		return State{}, errNoController
	}
	return st.Clone(), nil
}

func (f *fakeScene) SetState(ctx context.Context, name string, st State) error {
	if _, ok := f.states[name]; !ok {
		return errNoController
	}
	f.states[name] = st.Clone()
	f.writes = append(f.writes, name)
	return nil
}

func classify(t *testing.T, names ...string) []rig.ControllerID {
	t.Helper()
	conv := rig.DefaultConvention()
	ids := make([]rig.ControllerID, 0, len(names))
	for _, name := range names {
		ids = append(ids, conv.Classify(name))
	}
	return ids
}

func TestCapture(t *testing.T) {
	scene := &fakeScene{states: map[string]State{
		"Arm_L_IK": {Channels: []Channel{{Name: "position.x", Value: 1.25}, {Name: "rotation.y", Value: 30}}},
		"Arm_R_IK": {Channels: []Channel{{Name: "position.x", Value: -1.25}, {Name: "rotation.y", Value: -30}}},
		"Spine_01": {Channels: []Channel{{Name: "rotation.z", Value: 5}}},
	}}
	ids := classify(t, "Arm_L_IK", "Arm_R_IK", "Spine_01")

	p, err := Capture(context.Background(), scene, ids)
	if err != nil {
		t.Fatalf("capturing: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", p.Len())
	}
	if got := p.Names(); !reflect.DeepEqual(got, []string{"Arm_L_IK", "Arm_R_IK", "Spine_01"}) {
		t.Fatalf("unexpected capture order: %v", got)
	}

	st, ok := p.Get("Arm_L_IK")
	if !ok {
		t.Fatalf("expected Arm_L_IK in pose")
	}
	if v, _ := st.Get("position.x"); v != 1.25 {
		t.Fatalf("expected 1.25, got %v", v)
	}

	// The pose must be a copy, not a view of the scene.
	scene.states["Spine_01"] = State{Channels: []Channel{{Name: "rotation.z", Value: 99}}}
	st, _ = p.Get("Spine_01")
	if v, _ := st.Get("rotation.z"); v != 5 {
		t.Fatalf("pose aliases scene state: %v", v)
	}
}

func TestCapture_AbortsOnMissingController(t *testing.T) {
	scene := &fakeScene{states: map[string]State{
		"Arm_L_IK": {Channels: []Channel{{Name: "position.x", Value: 1}}},
	}}
	ids := classify(t, "Arm_L_IK", "Hand_L")

	p, err := Capture(context.Background(), scene, ids)
	if err == nil {
		t.Fatalf("expected capture to fail")
	}
	if p != nil {
		t.Fatalf("expected no partial pose, got %d entries", p.Len())
	}

	var ce *CaptureError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CaptureError, got %T", err)
	}
	if ce.Name != "Hand_L" {
		t.Fatalf("expected failing controller Hand_L, got %q", ce.Name)
	}
	if !errors.Is(err, errNoController) {
		t.Fatalf("expected wrapped scene error")
	}
}
