package mcp

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"posecraft/internal/mirror"
	"posecraft/internal/pose"
	"posecraft/internal/rig"
	"posecraft/internal/snapshot"
)

type CheckSetupInput struct {
	Controllers []string `json:"controllers,omitempty" jsonschema:"controller names to check; defaults to every controller in the scene"`
}

type CapturePoseInput struct{}

type SaveSnapshotInput struct {
	Name      string `json:"name" jsonschema:"snapshot name"`
	Frame     int    `json:"frame,omitempty" jsonschema:"frame the pose belongs to"`
	Overwrite bool   `json:"overwrite,omitempty" jsonschema:"replace an existing snapshot with the same name"`
}

type ListSnapshotsInput struct{}

type GetSnapshotInput struct {
	Name string `json:"name" jsonschema:"snapshot name"`
}

type DeleteSnapshotInput struct {
	Name string `json:"name" jsonschema:"snapshot name"`
}

type MirrorPoseInput struct {
	Snapshot string   `json:"snapshot,omitempty" jsonschema:"mirror this stored snapshot instead of the captured pose"`
	Axis     string   `json:"axis,omitempty" jsonschema:"mirror axis x, y, or z; defaults to the rig profile"`
	Rule     string   `json:"rule,omitempty" jsonschema:"rotation rule aligned or orthogonal; defaults to the rig profile"`
	Keys     []string `json:"keys,omitempty" jsonschema:"base keys to mirror; defaults to every paired controller"`
	Blend    float64  `json:"blend,omitempty" jsonschema:"blend between the source and mirrored pose, 0 to 1; defaults to 1"`
	SaveAs   string   `json:"save_as,omitempty" jsonschema:"store the result as a snapshot with this name"`
}

type DiffPosesInput struct {
	A string `json:"a,omitempty" jsonschema:"first snapshot name; defaults to the captured pose"`
	B string `json:"b" jsonschema:"second snapshot name"`
}

type RestorePoseInput struct {
	Snapshot string  `json:"snapshot,omitempty" jsonschema:"restore this stored snapshot instead of the captured pose"`
	Blend    float64 `json:"blend,omitempty" jsonschema:"how far to move the scene toward the pose, 0 to 1; defaults to 1"`
}

type CheckSetupOutput struct {
	Status string        `json:"status"`
	Pairs  []PairOutput  `json:"pairs"`
	Issues []IssueOutput `json:"issues"`
}

type PairOutput struct {
	Base        string   `json:"base"`
	Status      string   `json:"status"`
	Left        string   `json:"left,omitempty"`
	Right       string   `json:"right,omitempty"`
	Controllers []string `json:"controllers,omitempty"`
}

type IssueOutput struct {
	Severity    string   `json:"severity"`
	Code        string   `json:"code"`
	Base        string   `json:"base,omitempty"`
	Controllers []string `json:"controllers,omitempty"`
	Message     string   `json:"message"`
}

type CapturePoseOutput struct {
	Controllers int `json:"controllers"`
	Channels    int `json:"channels"`
}

type SnapshotInfoOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Frame       int    `json:"frame"`
	CreatedAt   string `json:"created_at"`
	Controllers int    `json:"controllers"`
}

type ListSnapshotsOutput struct {
	Snapshots []SnapshotInfoOutput `json:"snapshots"`
}

type SnapshotOutput struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Frame       int                `json:"frame"`
	CreatedAt   string             `json:"created_at"`
	Controllers []ControllerOutput `json:"controllers"`
}

type ControllerOutput struct {
	Name     string          `json:"name"`
	Side     string          `json:"side"`
	Base     string          `json:"base"`
	Channels []ChannelOutput `json:"channels"`
}

type ChannelOutput struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type DeleteSnapshotOutput struct {
	Name string `json:"name"`
}

type MirrorPoseOutput struct {
	Controllers int                 `json:"controllers"`
	Changed     int                 `json:"changed"`
	Snapshot    *SnapshotInfoOutput `json:"snapshot,omitempty"`
}

type DiffPosesOutput struct {
	Equal       bool                   `json:"equal"`
	Controllers []ControllerDiffOutput `json:"controllers,omitempty"`
	OnlyInA     []string               `json:"only_in_a,omitempty"`
	OnlyInB     []string               `json:"only_in_b,omitempty"`
}

type ControllerDiffOutput struct {
	Name    string               `json:"name"`
	Changed []ChannelDeltaOutput `json:"changed,omitempty"`
	OnlyInA []string             `json:"only_in_a,omitempty"`
	OnlyInB []string             `json:"only_in_b,omitempty"`
}

type ChannelDeltaOutput struct {
	Channel string  `json:"channel"`
	A       float64 `json:"a"`
	B       float64 `json:"b"`
	Delta   float64 `json:"delta"`
}

type RestorePoseOutput struct {
	Applied  []string        `json:"applied"`
	Failures []FailureOutput `json:"failures,omitempty"`
}

type FailureOutput struct {
	Controller string `json:"controller"`
	Error      string `json:"error"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "check_setup",
		Description: "Validate controller naming and side pairing",
	}, s.handleCheckSetup)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "capture_pose",
		Description: "Capture the current pose of the validated controllers",
	}, s.handleCapturePose)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "save_snapshot",
		Description: "Save the captured pose as a named snapshot",
	}, s.handleSaveSnapshot)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_snapshots",
		Description: "List stored snapshots",
	}, s.handleListSnapshots)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_snapshot",
		Description: "Retrieve a snapshot and its channel values",
	}, s.handleGetSnapshot)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "delete_snapshot",
		Description: "Delete a stored snapshot",
	}, s.handleDeleteSnapshot)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "mirror_pose",
		Description: "Mirror a pose across the rig's symmetry axis",
	}, s.handleMirrorPose)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "diff_poses",
		Description: "Compare two poses channel by channel",
	}, s.handleDiffPoses)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "restore_pose",
		Description: "Write a pose back to the scene",
	}, s.handleRestorePose)
}

func (s *Server) handleCheckSetup(ctx context.Context, req *sdk.CallToolRequest, input CheckSetupInput) (*sdk.CallToolResult, CheckSetupOutput, error) {
	names := input.Controllers
	if len(names) == 0 {
		var err error
		names, err = s.scene.Names(ctx)
		if err != nil {
			return nil, CheckSetupOutput{}, err
		}
	}
	if len(names) == 0 {
		return nil, CheckSetupOutput{}, fmt.Errorf("no controllers to check")
	}

	conv := s.profile.Convention()
	ids := make([]rig.ControllerID, 0, len(names))
	for _, name := range names {
		ids = append(ids, conv.Classify(name))
	}
	return nil, checkSetupOutputFromReport(s.sess.Validate(ids)), nil
}

func (s *Server) handleCapturePose(ctx context.Context, req *sdk.CallToolRequest, input CapturePoseInput) (*sdk.CallToolResult, CapturePoseOutput, error) {
	p, err := s.sess.Capture(ctx, s.scene)
	if err != nil {
		return nil, CapturePoseOutput{}, err
	}

	channels := 0
	for _, e := range p.Entries {
		channels += len(e.State.Channels)
	}
	return nil, CapturePoseOutput{Controllers: p.Len(), Channels: channels}, nil
}

func (s *Server) handleSaveSnapshot(ctx context.Context, req *sdk.CallToolRequest, input SaveSnapshotInput) (*sdk.CallToolResult, SnapshotInfoOutput, error) {
	if input.Name == "" {
		return nil, SnapshotInfoOutput{}, fmt.Errorf("name is required")
	}
	p, ok := s.sess.Captured()
	if !ok {
		return nil, SnapshotInfoOutput{}, fmt.Errorf("no captured pose to save")
	}

	var snap *snapshot.Snapshot
	var err error
	if input.Overwrite {
		snap, err = s.store.Overwrite(ctx, input.Name, input.Frame, p)
	} else {
		snap, err = s.store.Save(ctx, input.Name, input.Frame, p)
	}
	if err != nil {
		return nil, SnapshotInfoOutput{}, err
	}
	return nil, snapshotInfoOutputFromSnapshot(snap), nil
}

func (s *Server) handleListSnapshots(ctx context.Context, req *sdk.CallToolRequest, input ListSnapshotsInput) (*sdk.CallToolResult, ListSnapshotsOutput, error) {
	infos, err := s.store.List(ctx)
	if err != nil {
		return nil, ListSnapshotsOutput{}, err
	}

	output := make([]SnapshotInfoOutput, 0, len(infos))
	for _, info := range infos {
		output = append(output, snapshotInfoOutput(info))
	}
	return nil, ListSnapshotsOutput{Snapshots: output}, nil
}

func (s *Server) handleGetSnapshot(ctx context.Context, req *sdk.CallToolRequest, input GetSnapshotInput) (*sdk.CallToolResult, SnapshotOutput, error) {
	if input.Name == "" {
		return nil, SnapshotOutput{}, fmt.Errorf("name is required")
	}
	snap, err := s.store.Get(ctx, input.Name)
	if err != nil {
		return nil, SnapshotOutput{}, err
	}
	return nil, snapshotOutputFromSnapshot(snap), nil
}

func (s *Server) handleDeleteSnapshot(ctx context.Context, req *sdk.CallToolRequest, input DeleteSnapshotInput) (*sdk.CallToolResult, DeleteSnapshotOutput, error) {
	if input.Name == "" {
		return nil, DeleteSnapshotOutput{}, fmt.Errorf("name is required")
	}
	if err := s.store.Delete(ctx, input.Name); err != nil {
		return nil, DeleteSnapshotOutput{}, err
	}
	return nil, DeleteSnapshotOutput{Name: input.Name}, nil
}

func (s *Server) handleMirrorPose(ctx context.Context, req *sdk.CallToolRequest, input MirrorPoseInput) (*sdk.CallToolResult, MirrorPoseOutput, error) {
	axis := s.profile.Axis()
	if input.Axis != "" {
		axis = pose.Axis(input.Axis)
	}
	rule := s.profile.Rule()
	if input.Rule != "" {
		rule = mirror.RotationRule(input.Rule)
	}
	opts := mirror.Options{Rule: rule, Keys: input.Keys}

	var src, flipped *pose.Pose
	frame := 0
	if input.Snapshot != "" {
		snap, err := s.store.Get(ctx, input.Snapshot)
		if err != nil {
			return nil, MirrorPoseOutput{}, err
		}
		src = snap.Pose
		frame = snap.Frame
		flipped, err = mirror.Mirror(src, rig.BuildPairing(src.IDs()), axis, opts)
		if err != nil {
			return nil, MirrorPoseOutput{}, err
		}
	} else {
		var ok bool
		src, ok = s.sess.Captured()
		if !ok {
			return nil, MirrorPoseOutput{}, fmt.Errorf("no captured pose to mirror")
		}
		var err error
		flipped, err = s.sess.MirrorPose(axis, opts)
		if err != nil {
			return nil, MirrorPoseOutput{}, err
		}
	}

	blend := input.Blend
	if blend == 0 {
		blend = 1
	}
	if blend < 1 {
		flipped = pose.Lerp(src, flipped, blend)
	}

	output := MirrorPoseOutput{
		Controllers: flipped.Len(),
		Changed:     len(pose.Compare(src, flipped).Controllers),
	}
	if input.SaveAs != "" {
		snap, err := s.store.Save(ctx, input.SaveAs, frame, flipped)
		if err != nil {
			return nil, MirrorPoseOutput{}, err
		}
		info := snapshotInfoOutputFromSnapshot(snap)
		output.Snapshot = &info
	}
	return nil, output, nil
}

func (s *Server) handleDiffPoses(ctx context.Context, req *sdk.CallToolRequest, input DiffPosesInput) (*sdk.CallToolResult, DiffPosesOutput, error) {
	if input.B == "" {
		return nil, DiffPosesOutput{}, fmt.Errorf("b is required")
	}
	snapB, err := s.store.Get(ctx, input.B)
	if err != nil {
		return nil, DiffPosesOutput{}, err
	}

	var diff *pose.Diff
	if input.A == "" {
		diff, err = s.sess.DiffAgainst(snapB.Pose)
		if err != nil {
			return nil, DiffPosesOutput{}, err
		}
	} else {
		snapA, err := s.store.Get(ctx, input.A)
		if err != nil {
			return nil, DiffPosesOutput{}, err
		}
		diff = pose.Compare(snapA.Pose, snapB.Pose)
	}
	return nil, diffPosesOutput(diff), nil
}

func (s *Server) handleRestorePose(ctx context.Context, req *sdk.CallToolRequest, input RestorePoseInput) (*sdk.CallToolResult, RestorePoseOutput, error) {
	blend := input.Blend
	if blend == 0 {
		blend = 1
	}

	var result *pose.RestoreResult
	if input.Snapshot != "" {
		snap, err := s.store.Get(ctx, input.Snapshot)
		if err != nil {
			return nil, RestorePoseOutput{}, err
		}
		result = pose.RestoreBlended(ctx, s.scene, s.scene, snap.Pose, blend)
	} else if blend < 1 {
		p, ok := s.sess.Captured()
		if !ok {
			return nil, RestorePoseOutput{}, fmt.Errorf("no captured pose to restore")
		}
		result = pose.RestoreBlended(ctx, s.scene, s.scene, p, blend)
	} else {
		var err error
		result, err = s.sess.Restore(ctx, s.scene)
		if err != nil {
			return nil, RestorePoseOutput{}, err
		}
	}

	if f, ok := s.scene.(interface{ Flush() error }); ok && len(result.Applied) > 0 {
		if err := f.Flush(); err != nil {
			return nil, RestorePoseOutput{}, err
		}
	}
	return nil, restorePoseOutput(result), nil
}

func checkSetupOutputFromReport(report *rig.Report) CheckSetupOutput {
	output := CheckSetupOutput{
		Status: "ok",
		Pairs:  []PairOutput{},
		Issues: []IssueOutput{},
	}
	if report.Blocking() {
		output.Status = "blocked"
	}

	for _, pair := range report.Pairing.Pairs() {
		po := PairOutput{Base: pair.Base, Status: string(pair.Status)}
		if pair.Status == rig.PairOK {
			po.Left = pair.Left().Name
			po.Right = pair.Right().Name
		} else {
			for _, id := range pair.Lefts {
				po.Controllers = append(po.Controllers, id.Name)
			}
			for _, id := range pair.Rights {
				po.Controllers = append(po.Controllers, id.Name)
			}
		}
		output.Pairs = append(output.Pairs, po)
	}

	for _, issue := range report.Issues {
		output.Issues = append(output.Issues, IssueOutput{
			Severity:    string(issue.Severity),
			Code:        issue.Code,
			Base:        issue.Base,
			Controllers: append([]string{}, issue.Controllers...),
			Message:     issue.Message,
		})
	}
	return output
}

func snapshotInfoOutput(info snapshot.Info) SnapshotInfoOutput {
	return SnapshotInfoOutput{
		ID:          info.ID,
		Name:        info.Name,
		Frame:       info.Frame,
		CreatedAt:   info.CreatedAt.UTC().Format(time.RFC3339Nano),
		Controllers: info.Controllers,
	}
}

func snapshotInfoOutputFromSnapshot(snap *snapshot.Snapshot) SnapshotInfoOutput {
	return SnapshotInfoOutput{
		ID:          snap.ID,
		Name:        snap.Name,
		Frame:       snap.Frame,
		CreatedAt:   snap.CreatedAt.UTC().Format(time.RFC3339Nano),
		Controllers: snap.Pose.Len(),
	}
}

func snapshotOutputFromSnapshot(snap *snapshot.Snapshot) SnapshotOutput {
	output := SnapshotOutput{
		ID:          snap.ID,
		Name:        snap.Name,
		Frame:       snap.Frame,
		CreatedAt:   snap.CreatedAt.UTC().Format(time.RFC3339Nano),
		Controllers: make([]ControllerOutput, 0, snap.Pose.Len()),
	}
	for _, e := range snap.Pose.Entries {
		co := ControllerOutput{
			Name:     e.ID.Name,
			Side:     string(e.ID.Side),
			Base:     e.ID.Base,
			Channels: make([]ChannelOutput, 0, len(e.State.Channels)),
		}
		for _, ch := range e.State.Channels {
			co.Channels = append(co.Channels, ChannelOutput{Name: ch.Name, Value: ch.Value})
		}
		output.Controllers = append(output.Controllers, co)
	}
	return output
}

func diffPosesOutput(diff *pose.Diff) DiffPosesOutput {
	output := DiffPosesOutput{
		Equal:   diff.Equal(),
		OnlyInA: append([]string{}, diff.OnlyInA...),
		OnlyInB: append([]string{}, diff.OnlyInB...),
	}
	for _, cd := range diff.Controllers {
		cdo := ControllerDiffOutput{
			Name:    cd.Name,
			OnlyInA: append([]string{}, cd.OnlyInA...),
			OnlyInB: append([]string{}, cd.OnlyInB...),
		}
		for _, delta := range cd.Changed {
			cdo.Changed = append(cdo.Changed, ChannelDeltaOutput{
				Channel: delta.Channel,
				A:       delta.A,
				B:       delta.B,
				Delta:   delta.Delta(),
			})
		}
		output.Controllers = append(output.Controllers, cdo)
	}
	return output
}

func restorePoseOutput(result *pose.RestoreResult) RestorePoseOutput {
	output := RestorePoseOutput{Applied: append([]string{}, result.Applied...)}
	for _, failure := range result.Failures {
		output.Failures = append(output.Failures, FailureOutput{
			Controller: failure.Name,
			Error:      failure.Err.Error(),
		})
	}
	return output
}
