package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"posecraft/internal/config"
	"posecraft/internal/snapshot"
)

func snapshotDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored snapshot",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotDelete(args[0])
		},
	}
	return cmd
}

func runSnapshotDelete(name string) error {
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

	if err := store.Delete(ctx, name); err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			return fmt.Errorf("snapshot %q not found", name)
		}
		return err
	}

	fmt.Fprintf(os.Stdout, "Deleted %q.\n", name)
	return nil
}
