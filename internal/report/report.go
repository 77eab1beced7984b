// Package report merges per-tool results into one ordered report, derives
// the process exit code, and renders the report as JSON, text, or SARIF.
package report

import (
	"sort"

	"github.com/Sena-ops/lintmux/internal/model"
)

// Exit codes. The three-way distinction (usage vs findings vs tool failure)
// is part of the CLI contract; automation branches on it.
const (
	ExitOK          = 0
	ExitUsage       = 1 // path not found, unknown tool, bad flags
	ExitFindings    = 2 // at least one error-severity issue
	ExitToolFailure = 3 // at least one failed tool, no error-severity issues
)

// Build folds all tool results into a Report. Issues get their Tool field
// stamped here (adapters stay agnostic of their own registration name) and
// are sorted by file, then line, then tool, stable for ties.
func Build(results []model.ToolResult) model.Report {
	rep := model.Report{
		Issues:      []model.Issue{},
		FailedTools: []string{},
	}

	for _, r := range results {
		if r.Failed() {
			rep.FailedTools = append(rep.FailedTools, r.Tool)
			continue
		}
		for _, issue := range r.Issues {
			issue.Tool = r.Tool
			rep.Issues = append(rep.Issues, issue)
		}
	}

	sort.SliceStable(rep.Issues, func(i, j int) bool {
		a, b := rep.Issues[i], rep.Issues[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Tool < b.Tool
	})

	for _, issue := range rep.Issues {
		switch issue.Severity {
		case model.SevError:
			rep.Summary.Error++
		case model.SevWarning:
			rep.Summary.Warning++
		case model.SevInfo:
			rep.Summary.Info++
		}
	}

	return rep
}

// ExitCode derives the process exit status from a built report. Findings
// take precedence over tool failures when both hold.
func ExitCode(rep model.Report) int {
	if rep.Summary.Error > 0 {
		return ExitFindings
	}
	if len(rep.FailedTools) > 0 {
		return ExitToolFailure
	}
	return ExitOK
}
