package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"posecraft/internal/config"
	"posecraft/internal/pose"
	"posecraft/internal/scene"
	"posecraft/internal/snapshot"
)

func diffCmd() *cobra.Command {
	var scenePath string
	cmd := &cobra.Command{
		Use:   "diff <snapshot> [snapshot]",
		Short: "Compare the scene's pose, or two snapshots, channel by channel",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args, scenePath)
		},
	}
	cmd.Flags().StringVar(&scenePath, "scene", "scene.json", "Scene document path")
	return cmd
}

func runDiff(args []string, scenePath string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig("posecraft.yaml")
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	var a *pose.Pose
	aLabel := "scene"
	bName := args[0]
	if len(args) == 2 {
		snap, err := store.Get(ctx, args[0])
		if errors.Is(err, snapshot.ErrNotFound) {
			return fmt.Errorf("snapshot %q not found", args[0])
		}
		if err != nil {
			return err
		}
		a = snap.Pose
		aLabel = args[0]
		bName = args[1]
	} else {
		profile, err := loadProfile(cfg)
		if err != nil {
			return err
		}
		scn, err := scene.OpenFile(scenePath)
		if err != nil {
			return err
		}
		a, _, err = captureScene(ctx, scn, profile.Convention())
		if err != nil {
			return err
		}
	}

	snapB, err := store.Get(ctx, bName)
	if errors.Is(err, snapshot.ErrNotFound) {
		return fmt.Errorf("snapshot %q not found", bName)
	}
	if err != nil {
		return err
	}

	diff := pose.Compare(a, snapB.Pose)
	if diff.Equal() {
		fmt.Fprintln(os.Stdout, "Poses match.")
		return nil
	}

	for _, cd := range diff.Controllers {
		fmt.Fprintf(os.Stdout, "%s:\n", cd.Name)
		for _, delta := range cd.Changed {
			fmt.Fprintf(os.Stdout, "  %s: %v -> %v\n", delta.Channel, delta.A, delta.B)
		}
		for _, ch := range cd.OnlyInA {
			fmt.Fprintf(os.Stdout, "  %s: only in %s\n", ch, aLabel)
		}
		for _, ch := range cd.OnlyInB {
			fmt.Fprintf(os.Stdout, "  %s: only in %s\n", ch, bName)
		}
	}
	if len(diff.OnlyInA) > 0 {
		fmt.Fprintf(os.Stdout, "Only in %s: %s\n", aLabel, strings.Join(diff.OnlyInA, ", "))
	}
	if len(diff.OnlyInB) > 0 {
		fmt.Fprintf(os.Stdout, "Only in %s: %s\n", bName, strings.Join(diff.OnlyInB, ", "))
	}
	return nil
}
