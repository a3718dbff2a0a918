package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var projectName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new posecraft project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	return cmd
}

func runInit(projectName string) error {
	configPath := "posecraft.yaml"
	rigPath := "rig.yaml"
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}
	if _, err := os.Stat(rigPath); err == nil {
		return fmt.Errorf("%s already exists", rigPath)
	}

	configContents := fmt.Sprintf("project: %s\nversion: 1\n\nstore:\n  backend: sqlite\n  dsn: sqlite://posecraft.db\n\nrig: rig.yaml\n", projectName)
	rigContents := "naming:\n  left: _L\n  right: _R\n  separator: _\n\nmirror:\n  axis: x\n  rule: aligned\n\nrotation_order: xyz\n"

	if err := os.WriteFile(configPath, []byte(configContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}
	if err := os.WriteFile(rigPath, []byte(rigContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", rigPath, err)
	}

	return nil
}
