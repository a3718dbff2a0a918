package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"posecraft/internal/config"
	"posecraft/internal/mirror"
	"posecraft/internal/pose"
	"posecraft/internal/rig"
	"posecraft/internal/scene"
	"posecraft/internal/snapshot"
)

type mirrorOptions struct {
	snapshot  string
	axis      string
	rule      string
	keys      []string
	blend     float64
	out       string
	apply     bool
	scenePath string
}

func mirrorCmd() *cobra.Command {
	var opts mirrorOptions
	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Mirror a pose across the rig's symmetry axis",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMirror(opts)
		},
	}
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "Mirror this stored snapshot instead of the scene's pose")
	cmd.Flags().StringVar(&opts.axis, "axis", "", "Mirror axis x, y, or z (defaults to the rig profile)")
	cmd.Flags().StringVar(&opts.rule, "rule", "", "Rotation rule aligned or orthogonal (defaults to the rig profile)")
	cmd.Flags().StringSliceVar(&opts.keys, "keys", nil, "Base keys to mirror (defaults to every paired controller)")
	cmd.Flags().Float64Var(&opts.blend, "blend", 1, "Blend between the source and mirrored pose (0 to 1)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Save the result as a snapshot with this name")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Write the result back into the scene document")
	cmd.Flags().StringVar(&opts.scenePath, "scene", "scene.json", "Scene document path")
	return cmd
}

func runMirror(opts mirrorOptions) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig("posecraft.yaml")
	if err != nil {
		return err
	}
	profile, err := loadProfile(cfg)
	if err != nil {
		return err
	}

	axis := profile.Axis()
	if opts.axis != "" {
		axis = pose.Axis(opts.axis)
	}
	rule := profile.Rule()
	if opts.rule != "" {
		rule = mirror.RotationRule(opts.rule)
	}

	var store snapshot.Store
	if opts.snapshot != "" || opts.out != "" {
		store, err = openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close(ctx)
	}

	var scn *scene.File
	if opts.snapshot == "" || opts.apply {
		scn, err = scene.OpenFile(opts.scenePath)
		if err != nil {
			return err
		}
	}

	var src *pose.Pose
	var pairing *rig.SidePairing
	frame := 0
	if opts.snapshot != "" {
		snap, err := store.Get(ctx, opts.snapshot)
		if errors.Is(err, snapshot.ErrNotFound) {
			return fmt.Errorf("snapshot %q not found", opts.snapshot)
		}
		if err != nil {
			return err
		}
		src = snap.Pose
		frame = snap.Frame
		pairing = rig.BuildPairing(src.IDs())
	} else {
		var report *rig.Report
		src, report, err = captureScene(ctx, scn, profile.Convention())
		if err != nil {
			return err
		}
		frame = scn.Document().Frame
		pairing = report.Pairing
	}

	flipped, err := mirror.Mirror(src, pairing, axis, mirror.Options{Rule: rule, Keys: opts.keys})
	if err != nil {
		return err
	}
	if opts.blend < 1 {
		flipped = pose.Lerp(src, flipped, opts.blend)
	}

	changed := len(pose.Compare(src, flipped).Controllers)
	fmt.Fprintf(os.Stdout, "Mirrored %d controllers across %s: %d changed.\n", flipped.Len(), axis, changed)

	if opts.out != "" {
		snap, err := store.Save(ctx, opts.out, frame, flipped)
		if errors.Is(err, snapshot.ErrDuplicateName) {
			return fmt.Errorf("snapshot %q already exists", opts.out)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Saved snapshot %q.\n", snap.Name)
	}

	if opts.apply {
		result := pose.Restore(ctx, scn, flipped)
		if err := scn.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Applied %d controllers to %s.\n", len(result.Applied), opts.scenePath)
		printRestoreFailures(result)
	}
	return nil
}
