package main

import (
	"context"
	"fmt"

	"posecraft/internal/config"
	"posecraft/internal/pose"
	"posecraft/internal/rig"
	"posecraft/internal/scene"
)

func loadProfile(cfg *config.ProjectConfig) (*config.RigProfile, error) {
	if cfg.RigFile == "" {
		return config.DefaultRigProfile(), nil
	}
	return config.LoadRigProfile(cfg.RigFile)
}

func classifyScene(ctx context.Context, scn scene.Scene, conv rig.Convention) ([]rig.ControllerID, error) {
	names, err := scn.Names(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("scene has no controllers")
	}

	ids := make([]rig.ControllerID, 0, len(names))
	for _, name := range names {
		ids = append(ids, conv.Classify(name))
	}
	return ids, nil
}

// captureScene classifies, checks, and captures in one go. A blocking
// check report fails the capture before any state is read.
func captureScene(ctx context.Context, scn scene.Scene, conv rig.Convention) (*pose.Pose, *rig.Report, error) {
	ids, err := classifyScene(ctx, scn, conv)
	if err != nil {
		return nil, nil, err
	}

	report := rig.Check(ids)
	if report.Blocking() {
		return nil, report, fmt.Errorf("setup has blocking naming issues; run posecraft check")
	}

	p, err := pose.Capture(ctx, scn, ids)
	if err != nil {
		return nil, report, err
	}
	return p, report, nil
}
