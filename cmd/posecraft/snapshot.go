package main

import "github.com/spf13/cobra"

func snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage stored pose snapshots",
	}
	cmd.AddCommand(snapshotListCmd())
	cmd.AddCommand(snapshotShowCmd())
	cmd.AddCommand(snapshotDeleteCmd())
	return cmd
}
