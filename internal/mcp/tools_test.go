package mcp

import (
	"context"
	"errors"
	"testing"

	"posecraft/internal/config"
	"posecraft/internal/pose"
	"posecraft/internal/scene"
	"posecraft/internal/snapshot"
)

func testScene() *scene.Memory {
	scn := scene.NewMemory()

	var left pose.State
	left.Set("position.x", 10)
	left.Set("rotation.y", 30)
	left.Set("twist", 0.5)
	scn.Add("Arm_L_IK", left)

	var right pose.State
	right.Set("position.x", -4)
	right.Set("rotation.y", -15)
	right.Set("twist", -0.25)
	scn.Add("Arm_R_IK", right)

	var leg pose.State
	leg.Set("position.y", 3)
	scn.Add("Leg_L_FK", leg)

	var spine pose.State
	spine.Set("rotation.z", 5)
	scn.Add("Spine_01", spine)

	return scn
}

func newTestServer(t *testing.T) (*Server, *scene.Memory) {
	t.Helper()
	scn := testScene()
	return NewServer(config.DefaultRigProfile(), scn, snapshot.NewMemory(), "test"), scn
}

func TestCheckSetup(t *testing.T) {
	server, _ := newTestServer(t)

	_, output, err := server.handleCheckSetup(context.Background(), nil, CheckSetupInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Status != "ok" {
		t.Fatalf("unexpected status: %q", output.Status)
	}
	if len(output.Pairs) != 2 {
		t.Fatalf("unexpected pairs: %+v", output.Pairs)
	}
	arm := output.Pairs[0]
	if arm.Base != "Arm_IK" || arm.Status != "ok" || arm.Left != "Arm_L_IK" || arm.Right != "Arm_R_IK" {
		t.Fatalf("unexpected arm pair: %+v", arm)
	}
	leg := output.Pairs[1]
	if leg.Base != "Leg_FK" || leg.Status != "unpaired" || len(leg.Controllers) != 1 {
		t.Fatalf("unexpected leg pair: %+v", leg)
	}
	if len(output.Issues) != 2 {
		t.Fatalf("unexpected issues: %+v", output.Issues)
	}
	if output.Issues[0].Code != "side_unpaired" || output.Issues[1].Code != "side_unsided" {
		t.Fatalf("unexpected issue codes: %+v", output.Issues)
	}
}

func TestCheckSetup_Blocked(t *testing.T) {
	server, _ := newTestServer(t)

	_, output, err := server.handleCheckSetup(context.Background(), nil, CheckSetupInput{
		Controllers: []string{"Arm_L_IK", "Arm_IK_L", "Arm_R_IK"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Status != "blocked" {
		t.Fatalf("unexpected status: %q", output.Status)
	}

	if _, _, err := server.handleCapturePose(context.Background(), nil, CapturePoseInput{}); err == nil {
		t.Fatalf("expected capture to fail on blocked setup")
	}
}

func TestCapturePose_RequiresCheck(t *testing.T) {
	server, _ := newTestServer(t)

	if _, _, err := server.handleCapturePose(context.Background(), nil, CapturePoseInput{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCapturePose(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()

	if _, _, err := server.handleCheckSetup(ctx, nil, CheckSetupInput{}); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	_, output, err := server.handleCapturePose(ctx, nil, CapturePoseInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Controllers != 4 || output.Channels != 8 {
		t.Fatalf("unexpected capture output: %+v", output)
	}
}

func TestSaveSnapshot(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()

	if _, _, err := server.handleSaveSnapshot(ctx, nil, SaveSnapshotInput{Name: "rest"}); err == nil {
		t.Fatalf("expected error before capture")
	}

	mustCapture(t, server)

	_, info, err := server.handleSaveSnapshot(ctx, nil, SaveSnapshotInput{Name: "rest", Frame: 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ID == "" || info.Name != "rest" || info.Frame != 42 || info.Controllers != 4 {
		t.Fatalf("unexpected snapshot info: %+v", info)
	}

	if _, _, err := server.handleSaveSnapshot(ctx, nil, SaveSnapshotInput{Name: "rest"}); !errors.Is(err, snapshot.ErrDuplicateName) {
		t.Fatalf("expected duplicate name error, got %v", err)
	}
	if _, _, err := server.handleSaveSnapshot(ctx, nil, SaveSnapshotInput{Name: "rest", Overwrite: true}); err != nil {
		t.Fatalf("unexpected overwrite error: %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()

	mustCapture(t, server)
	if _, _, err := server.handleSaveSnapshot(ctx, nil, SaveSnapshotInput{Name: "rest", Frame: 7}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	_, listing, err := server.handleListSnapshots(ctx, nil, ListSnapshotsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listing.Snapshots) != 1 || listing.Snapshots[0].Name != "rest" {
		t.Fatalf("unexpected listing: %+v", listing)
	}

	_, snap, err := server.handleGetSnapshot(ctx, nil, GetSnapshotInput{Name: "rest"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Frame != 7 || len(snap.Controllers) != 4 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	arm := snap.Controllers[0]
	if arm.Name != "Arm_L_IK" || arm.Side != "left" || arm.Base != "Arm_IK" {
		t.Fatalf("unexpected controller: %+v", arm)
	}
	if len(arm.Channels) != 3 || arm.Channels[0].Name != "position.x" || arm.Channels[0].Value != 10 {
		t.Fatalf("unexpected channels: %+v", arm.Channels)
	}

	_, deleted, err := server.handleDeleteSnapshot(ctx, nil, DeleteSnapshotInput{Name: "rest"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted.Name != "rest" {
		t.Fatalf("unexpected delete output: %+v", deleted)
	}
	if _, _, err := server.handleGetSnapshot(ctx, nil, GetSnapshotInput{Name: "rest"}); !errors.Is(err, snapshot.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMirrorPose(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()

	mustCapture(t, server)

	_, output, err := server.handleMirrorPose(ctx, nil, MirrorPoseInput{SaveAs: "mirrored"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Controllers != 4 || output.Changed != 2 {
		t.Fatalf("unexpected mirror output: %+v", output)
	}
	if output.Snapshot == nil || output.Snapshot.Name != "mirrored" {
		t.Fatalf("expected saved snapshot, got %+v", output.Snapshot)
	}

	_, snap, err := server.handleGetSnapshot(ctx, nil, GetSnapshotInput{Name: "mirrored"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arm := snap.Controllers[0]
	if arm.Name != "Arm_L_IK" {
		t.Fatalf("unexpected controller order: %+v", snap.Controllers)
	}
	want := map[string]float64{"position.x": 4, "rotation.y": -15, "twist": -0.25}
	for _, ch := range arm.Channels {
		if ch.Value != want[ch.Name] {
			t.Fatalf("unexpected %s: got %v want %v", ch.Name, ch.Value, want[ch.Name])
		}
	}
}

func TestMirrorPose_ScopedUnpairedFails(t *testing.T) {
	server, _ := newTestServer(t)

	mustCapture(t, server)

	if _, _, err := server.handleMirrorPose(context.Background(), nil, MirrorPoseInput{Keys: []string{"Leg_FK"}}); err == nil {
		t.Fatalf("expected error for unpaired key")
	}
}

func TestMirrorPose_FromSnapshot(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()

	mustCapture(t, server)
	if _, _, err := server.handleSaveSnapshot(ctx, nil, SaveSnapshotInput{Name: "rest", Frame: 3}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	_, output, err := server.handleMirrorPose(ctx, nil, MirrorPoseInput{Snapshot: "rest", SaveAs: "rest_flipped"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Snapshot == nil || output.Snapshot.Frame != 3 {
		t.Fatalf("expected frame carried over, got %+v", output.Snapshot)
	}
}

func TestDiffPoses(t *testing.T) {
	server, scn := newTestServer(t)
	ctx := context.Background()

	mustCapture(t, server)
	if _, _, err := server.handleSaveSnapshot(ctx, nil, SaveSnapshotInput{Name: "rest"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	st, err := scn.State(ctx, "Arm_L_IK")
	if err != nil {
		t.Fatalf("reading state: %v", err)
	}
	st.Set("position.x", 12)
	if err := scn.SetState(ctx, "Arm_L_IK", st); err != nil {
		t.Fatalf("writing state: %v", err)
	}
	mustCapture(t, server)

	_, output, err := server.handleDiffPoses(ctx, nil, DiffPosesInput{B: "rest"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Equal || len(output.Controllers) != 1 {
		t.Fatalf("unexpected diff: %+v", output)
	}
	cd := output.Controllers[0]
	if cd.Name != "Arm_L_IK" || len(cd.Changed) != 1 {
		t.Fatalf("unexpected controller diff: %+v", cd)
	}
	delta := cd.Changed[0]
	if delta.Channel != "position.x" || delta.A != 12 || delta.B != 10 || delta.Delta != -2 {
		t.Fatalf("unexpected delta: %+v", delta)
	}

	if _, _, err := server.handleDiffPoses(ctx, nil, DiffPosesInput{}); err == nil {
		t.Fatalf("expected error without b")
	}
}

func TestDiffPoses_TwoSnapshots(t *testing.T) {
	server, scn := newTestServer(t)
	ctx := context.Background()

	mustCapture(t, server)
	if _, _, err := server.handleSaveSnapshot(ctx, nil, SaveSnapshotInput{Name: "rest"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	st, err := scn.State(ctx, "Spine_01")
	if err != nil {
		t.Fatalf("reading state: %v", err)
	}
	st.Set("rotation.z", 9)
	if err := scn.SetState(ctx, "Spine_01", st); err != nil {
		t.Fatalf("writing state: %v", err)
	}
	mustCapture(t, server)
	if _, _, err := server.handleSaveSnapshot(ctx, nil, SaveSnapshotInput{Name: "bent"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	_, output, err := server.handleDiffPoses(ctx, nil, DiffPosesInput{A: "rest", B: "bent"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Equal || len(output.Controllers) != 1 || output.Controllers[0].Name != "Spine_01" {
		t.Fatalf("unexpected diff: %+v", output)
	}
}

func TestRestorePose(t *testing.T) {
	server, scn := newTestServer(t)
	ctx := context.Background()

	mustCapture(t, server)
	if _, _, err := server.handleSaveSnapshot(ctx, nil, SaveSnapshotInput{Name: "rest"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	st, err := scn.State(ctx, "Arm_L_IK")
	if err != nil {
		t.Fatalf("reading state: %v", err)
	}
	st.Set("position.x", 99)
	if err := scn.SetState(ctx, "Arm_L_IK", st); err != nil {
		t.Fatalf("writing state: %v", err)
	}

	_, output, err := server.handleRestorePose(ctx, nil, RestorePoseInput{Snapshot: "rest"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Applied) != 4 || len(output.Failures) != 0 {
		t.Fatalf("unexpected restore output: %+v", output)
	}

	st, err = scn.State(ctx, "Arm_L_IK")
	if err != nil {
		t.Fatalf("reading state: %v", err)
	}
	if v, _ := st.Get("position.x"); v != 10 {
		t.Fatalf("expected restored value, got %v", v)
	}
}

func TestRestorePose_Blend(t *testing.T) {
	server, scn := newTestServer(t)
	ctx := context.Background()

	mustCapture(t, server)
	if _, _, err := server.handleSaveSnapshot(ctx, nil, SaveSnapshotInput{Name: "rest"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	st, err := scn.State(ctx, "Arm_L_IK")
	if err != nil {
		t.Fatalf("reading state: %v", err)
	}
	st.Set("position.x", 20)
	if err := scn.SetState(ctx, "Arm_L_IK", st); err != nil {
		t.Fatalf("writing state: %v", err)
	}

	if _, _, err := server.handleRestorePose(ctx, nil, RestorePoseInput{Snapshot: "rest", Blend: 0.5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st, err = scn.State(ctx, "Arm_L_IK")
	if err != nil {
		t.Fatalf("reading state: %v", err)
	}
	if v, _ := st.Get("position.x"); v != 15 {
		t.Fatalf("expected blended value, got %v", v)
	}
}

func mustCapture(t *testing.T, server *Server) {
	t.Helper()
	ctx := context.Background()
	if _, _, err := server.handleCheckSetup(ctx, nil, CheckSetupInput{}); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if _, _, err := server.handleCapturePose(ctx, nil, CapturePoseInput{}); err != nil {
		t.Fatalf("capture failed: %v", err)
	}
}
