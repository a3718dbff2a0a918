package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"posecraft/internal/config"
)

func snapshotListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotList()
		},
	}
	return cmd
}

func runSnapshotList() error {
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

	infos, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintln(os.Stdout, "No snapshots found.")
		return nil
	}

	for _, info := range infos {
		fmt.Fprintf(os.Stdout, "%s (frame %d, %d controllers) %s\n",
			info.Name, info.Frame, info.Controllers, info.CreatedAt.UTC().Format(time.RFC3339))
	}
	return nil
}
