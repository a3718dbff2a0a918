package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"posecraft/internal/config"
	"posecraft/internal/scene"
	"posecraft/internal/snapshot"
)

func captureCmd() *cobra.Command {
	var name string
	var frame int
	var overwrite bool
	var scenePath string
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture the scene's pose and save it as a snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			return runCapture(name, frame, overwrite, scenePath)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Snapshot name")
	cmd.Flags().IntVar(&frame, "frame", -1, "Frame to record on the snapshot (defaults to the scene's frame)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing snapshot with the same name")
	cmd.Flags().StringVar(&scenePath, "scene", "scene.json", "Scene document path")
	return cmd
}

func runCapture(name string, frame int, overwrite bool, scenePath string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig("posecraft.yaml")
	if err != nil {
		return err
	}
	profile, err := loadProfile(cfg)
	if err != nil {
		return err
	}
	scn, err := scene.OpenFile(scenePath)
	if err != nil {
		return err
	}

	p, _, err := captureScene(ctx, scn, profile.Convention())
	if err != nil {
		return err
	}
	if frame < 0 {
		frame = scn.Document().Frame
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	var snap *snapshot.Snapshot
	if overwrite {
		snap, err = store.Overwrite(ctx, name, frame, p)
	} else {
		snap, err = store.Save(ctx, name, frame, p)
	}
	if errors.Is(err, snapshot.ErrDuplicateName) {
		return fmt.Errorf("snapshot %q already exists (use --overwrite)", name)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Saved snapshot %q: %d controllers at frame %d.\n", snap.Name, snap.Pose.Len(), snap.Frame)
	return nil
}
