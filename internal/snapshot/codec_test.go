package snapshot

import (
	"math"
	"reflect"
	"testing"

	"posecraft/internal/pose"
	"posecraft/internal/rig"
)

func TestPoseCodec(t *testing.T) {
	conv := rig.DefaultConvention()

	p := &pose.Pose{}
	p.Set(conv.Classify("Arm_R_IK"), pose.State{Channels: []pose.Channel{
		{Name: "position.x", Value: -10.5},
		{Name: "rotation.z", Value: 0.1 + 0.2}, // not representable exactly; must survive as-is
		{Name: "twist", Value: math.Pi},
	}})
	p.Set(conv.Classify("Spine_01"), pose.State{Channels: []pose.Channel{
		{Name: "rotation.z", Value: 5},
	}})

	data, err := EncodePose(p)
	if err != nil {
		t.Fatalf("encoding: %v", err)
	}
	got, err := DecodePose(data)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}

	if !reflect.DeepEqual(got, p) {
		t.Fatalf("pose did not round-trip:\n  in:  %+v\n  out: %+v", p, got)
	}

	// Classification must survive storage: the decoded controllers keep
	// side and base key without re-running the resolver.
	e, _ := got.Entry("Arm_R_IK")
	if e.ID.Side != rig.SideRight || e.ID.Base != "Arm_IK" {
		t.Fatalf("controller identity lost: %+v", e.ID)
	}
}
