package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"posecraft/internal/config"
	"posecraft/internal/pose"
	"posecraft/internal/scene"
	"posecraft/internal/snapshot"
)

func restoreCmd() *cobra.Command {
	var blend float64
	var scenePath string
	cmd := &cobra.Command{
		Use:   "restore <snapshot>",
		Short: "Write a snapshot's pose back into the scene document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(args[0], blend, scenePath)
		},
	}
	cmd.Flags().Float64Var(&blend, "blend", 1, "How far to move the scene toward the pose (0 to 1)")
	cmd.Flags().StringVar(&scenePath, "scene", "scene.json", "Scene document path")
	return cmd
}

func runRestore(name string, blend float64, scenePath string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig("posecraft.yaml")
	if err != nil {
		return err
	}
	scn, err := scene.OpenFile(scenePath)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	snap, err := store.Get(ctx, name)
	if errors.Is(err, snapshot.ErrNotFound) {
		return fmt.Errorf("snapshot %q not found", name)
	}
	if err != nil {
		return err
	}

	result := pose.RestoreBlended(ctx, scn, scn, snap.Pose, blend)
	if len(result.Applied) > 0 {
		if err := scn.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "Restored %d of %d controllers to %s.\n", len(result.Applied), snap.Pose.Len(), scenePath)
	printRestoreFailures(result)

	if len(result.Applied) == 0 {
		return fmt.Errorf("no controllers restored")
	}
	return nil
}

func printRestoreFailures(result *pose.RestoreResult) {
	if result.AllApplied() {
		return
	}
	fmt.Fprintf(os.Stdout, "Failed (%d):\n", len(result.Failures))
	for _, failure := range result.Failures {
		fmt.Fprintf(os.Stdout, "  - %s: %v\n", failure.Name, failure.Err)
	}
}
