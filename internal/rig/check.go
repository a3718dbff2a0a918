package rig

import (
	"fmt"
	"strings"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
	SeverityInfo  Severity = "info"
)

const (
	CodeAmbiguous = "side_ambiguous"
	CodeUnpaired  = "side_unpaired"
	CodeUnsided   = "side_unsided"
)

type Issue struct {
	Severity    Severity
	Code        string
	Base        string
	Controllers []string
	Message     string
}

type Report struct {
	Pairing *SidePairing
	Issues  []Issue
}

// Check classifies nothing itself; it takes already-classified controllers,
// builds their side pairing, and reports every base key that is not cleanly
// mirrorable. Unsided controllers are reported as informational only.
func Check(controllers []ControllerID) *Report {
	pairing := BuildPairing(controllers)
	report := &Report{Pairing: pairing}

	for _, pair := range pairing.Pairs() {
		names := pairNames(pair)
		switch pair.Status {
		case PairAmbiguous:
			report.Issues = append(report.Issues, Issue{
				Severity:    SeverityError,
				Code:        CodeAmbiguous,
				Base:        pair.Base,
				Controllers: names,
				Message:     fmt.Sprintf("more than one controller per side for %s: %s", pair.Base, strings.Join(names, ", ")),
			})
		case PairUnpaired:
			side := "right"
			if len(pair.Lefts) == 0 {
				side = "left"
			}
			report.Issues = append(report.Issues, Issue{
				Severity:    SeverityWarn,
				Code:        CodeUnpaired,
				Base:        pair.Base,
				Controllers: names,
				Message:     fmt.Sprintf("no %s-side controller for %s", side, pair.Base),
			})
		}
	}

	for _, id := range pairing.Unsided() {
		report.Issues = append(report.Issues, Issue{
			Severity:    SeverityInfo,
			Code:        CodeUnsided,
			Base:        id.Base,
			Controllers: []string{id.Name},
			Message:     fmt.Sprintf("%s has no side marker and will not be mirrored", id.Name),
		})
	}

	return report
}

// Blocking reports whether any issue should gate pose tools; warnings and
// informational entries do not block.
func (r *Report) Blocking() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (r *Report) IssuesBySeverity(severity Severity) []Issue {
	var issues []Issue
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			issues = append(issues, issue)
		}
	}
	return issues
}

func pairNames(pair Pair) []string {
	names := make([]string, 0, len(pair.Lefts)+len(pair.Rights))
	for _, id := range pair.Lefts {
		names = append(names, id.Name)
	}
	for _, id := range pair.Rights {
		names = append(names, id.Name)
	}
	return names
}
