package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"posecraft/internal/config"
	"posecraft/internal/rig"
	"posecraft/internal/scene"
)

func checkCmd() *cobra.Command {
	var scenePath string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate controller naming and side pairing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(scenePath)
		},
	}
	cmd.Flags().StringVar(&scenePath, "scene", "scene.json", "Scene document path")
	return cmd
}

func runCheck(scenePath string) error {
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

	ids, err := classifyScene(ctx, scn, profile.Convention())
	if err != nil {
		return err
	}
	report := rig.Check(ids)

	okPairs := 0
	for _, pair := range report.Pairing.Pairs() {
		if pair.Status == rig.PairOK {
			okPairs++
		}
	}
	fmt.Fprintf(os.Stdout, "%d controllers, %d mirrorable pairs.\n", len(ids), okPairs)

	if len(report.Issues) == 0 {
		fmt.Fprintln(os.Stdout, "No issues found.")
		return nil
	}

	errorIssues := report.IssuesBySeverity(rig.SeverityError)
	warnIssues := report.IssuesBySeverity(rig.SeverityWarn)
	infoIssues := report.IssuesBySeverity(rig.SeverityInfo)

	if len(errorIssues) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(errorIssues))
		printIssues(os.Stdout, errorIssues)
	}
	if len(warnIssues) > 0 {
		fmt.Fprintf(os.Stdout, "\nWarnings (%d):\n", len(warnIssues))
		printIssues(os.Stdout, warnIssues)
	}
	if len(infoIssues) > 0 {
		fmt.Fprintf(os.Stdout, "\nInfo (%d):\n", len(infoIssues))
		printIssues(os.Stdout, infoIssues)
	}

	if report.Blocking() {
		return fmt.Errorf("setup check found errors")
	}
	return nil
}

func printIssues(out *os.File, issues []rig.Issue) {
	for _, issue := range issues {
		fmt.Fprintf(out, "  - %s (%s)\n", issue.Message, issue.Code)
	}
}
