package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "posecraft",
		Short: "Pose snapshot and mirroring toolkit for rigged scenes",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(initCmd())
	root.AddCommand(checkCmd())
	root.AddCommand(captureCmd())
	root.AddCommand(snapshotCmd())
	root.AddCommand(mirrorCmd())
	root.AddCommand(diffCmd())
	root.AddCommand(restoreCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
