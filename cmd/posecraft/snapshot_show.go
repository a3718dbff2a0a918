package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"posecraft/internal/config"
	"posecraft/internal/rig"
	"posecraft/internal/snapshot"
)

func snapshotShowCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Display a snapshot and its channel values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotShow(args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the snapshot as JSON")
	return cmd
}

func runSnapshotShow(name string, asJSON bool) error {
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

	snap, err := store.Get(ctx, name)
	if errors.Is(err, snapshot.ErrNotFound) {
		return fmt.Errorf("snapshot %q not found", name)
	}
	if err != nil {
		return err
	}

	if asJSON {
		raw, err := snapshot.EncodePose(snap.Pose)
		if err != nil {
			return err
		}
		payload := struct {
			ID        string          `json:"id"`
			Name      string          `json:"name"`
			Frame     int             `json:"frame"`
			CreatedAt string          `json:"created_at"`
			Pose      json.RawMessage `json:"pose"`
		}{
			ID:        snap.ID,
			Name:      snap.Name,
			Frame:     snap.Frame,
			CreatedAt: snap.CreatedAt.UTC().Format(time.RFC3339Nano),
			Pose:      raw,
		}
		encoded, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding snapshot: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(encoded))
		return nil
	}

	fmt.Fprintf(os.Stdout, "Name: %s\n", snap.Name)
	fmt.Fprintf(os.Stdout, "ID: %s\n", snap.ID)
	fmt.Fprintf(os.Stdout, "Frame: %d\n", snap.Frame)
	fmt.Fprintf(os.Stdout, "Created: %s\n", snap.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintln(os.Stdout, "Controllers:")
	for _, e := range snap.Pose.Entries {
		if e.ID.Side == rig.SideUnsided {
			fmt.Fprintf(os.Stdout, "  %s:\n", e.ID.Name)
		} else {
			fmt.Fprintf(os.Stdout, "  %s (%s):\n", e.ID.Name, e.ID.Side)
		}
		for _, ch := range e.State.Channels {
			fmt.Fprintf(os.Stdout, "    %s: %v\n", ch.Name, ch.Value)
		}
	}
	return nil
}
