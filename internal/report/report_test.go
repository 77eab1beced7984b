package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sena-ops/lintmux/internal/model"
	"github.com/Sena-ops/lintmux/internal/report"
)

func issue(file string, line int, tool, rule string, sev model.Severity) model.Issue {
	return model.Issue{File: file, Line: line, Rule: rule, Message: "m", Severity: sev, Tool: tool}
}

func TestBuildStampsToolAndSorts(t *testing.T) {
	results := []model.ToolResult{
		{Tool: "ruff", Issues: []model.Issue{
			{File: "b.py", Line: 3, Rule: "E501", Message: "m", Severity: model.SevWarning},
			{File: "a.py", Line: 9, Rule: "F401", Message: "m", Severity: model.SevError},
		}},
		{Tool: "bandit", Issues: []model.Issue{
			{File: "a.py", Line: 9, Rule: "B105", Message: "m", Severity: model.SevInfo},
			{File: "a.py", Line: 2, Rule: "B102", Message: "m", Severity: model.SevWarning},
		}},
	}

	rep := report.Build(results)
	require.Len(t, rep.Issues, 4)

	// file, then line, then tool.
	require.Equal(t, issue("a.py", 2, "bandit", "B102", model.SevWarning), rep.Issues[0])
	require.Equal(t, issue("a.py", 9, "bandit", "B105", model.SevInfo), rep.Issues[1])
	require.Equal(t, issue("a.py", 9, "ruff", "F401", model.SevError), rep.Issues[2])
	require.Equal(t, issue("b.py", 3, "ruff", "E501", model.SevWarning), rep.Issues[3])

	require.Equal(t, model.Summary{Error: 1, Warning: 2, Info: 1}, rep.Summary)
	require.Empty(t, rep.FailedTools)
}

func TestBuildSortIsStableForTies(t *testing.T) {
	// Same file/line/tool: input order must be preserved.
	results := []model.ToolResult{
		{Tool: "ruff", Issues: []model.Issue{
			{File: "a.py", Line: 1, Rule: "first", Message: "m", Severity: model.SevInfo},
			{File: "a.py", Line: 1, Rule: "second", Message: "m", Severity: model.SevInfo},
		}},
	}
	rep := report.Build(results)
	require.Equal(t, "first", rep.Issues[0].Rule)
	require.Equal(t, "second", rep.Issues[1].Rule)
}

func TestBuildCollectsFailedTools(t *testing.T) {
	results := []model.ToolResult{
		{Tool: "ruff", Issues: []model.Issue{{File: "a.py", Line: 1, Rule: "E1", Message: "m", Severity: model.SevError}}},
		{Tool: "bandit", Failure: &model.Failure{Kind: model.ToolUnavailable, Detail: "not installed"}},
	}

	rep := report.Build(results)
	require.Len(t, rep.Issues, 1)
	require.Equal(t, []string{"bandit"}, rep.FailedTools)
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		rep      model.Report
		expected int
	}{
		{
			"clean",
			model.Report{},
			report.ExitOK,
		},
		{
			"warnings_only",
			model.Report{Summary: model.Summary{Warning: 3, Info: 1}},
			report.ExitOK,
		},
		{
			"error_findings",
			model.Report{Summary: model.Summary{Error: 1}},
			report.ExitFindings,
		},
		{
			"tool_failure",
			model.Report{FailedTools: []string{"bandit"}},
			report.ExitToolFailure,
		},
		{
			// Findings take precedence when both conditions hold.
			"error_findings_and_tool_failure",
			model.Report{Summary: model.Summary{Error: 2}, FailedTools: []string{"bandit"}},
			report.ExitFindings,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, report.ExitCode(tt.rep))
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	results := []model.ToolResult{
		{Tool: "ruff", Issues: []model.Issue{
			{File: "a.py", Line: 5, Column: 2, Rule: "E501", Message: "Line too long", Severity: model.SevWarning},
		}},
		{Tool: "osv-scanner", Failure: &model.Failure{Kind: model.Timeout, Detail: "deadline exceeded"}},
	}
	rep := report.Build(results)

	var buf bytes.Buffer
	require.NoError(t, report.JSONFormatter{}.Format(&buf, rep))

	var parsed model.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Equal(t, rep, parsed)
}

func TestJSONOutputIsReproducible(t *testing.T) {
	results := []model.ToolResult{
		{Tool: "bandit", Issues: []model.Issue{
			{File: "x.py", Line: 1, Rule: "B101", Message: "m", Severity: model.SevInfo},
		}},
	}

	var first, second bytes.Buffer
	require.NoError(t, report.JSONFormatter{}.Format(&first, report.Build(results)))
	require.NoError(t, report.JSONFormatter{}.Format(&second, report.Build(results)))
	require.Equal(t, first.Bytes(), second.Bytes())
}

func TestTextFormatter(t *testing.T) {
	rep := report.Build([]model.ToolResult{
		{Tool: "ruff", Issues: []model.Issue{
			{File: "a.py", Line: 5, Column: 2, Rule: "E501", Message: "Line too long", Severity: model.SevError},
		}},
		{Tool: "bandit", Failure: &model.Failure{Kind: model.ToolUnavailable, Detail: "not installed"}},
	})

	var buf bytes.Buffer
	require.NoError(t, report.TextFormatter{}.Format(&buf, rep))
	out := buf.String()

	require.Contains(t, out, "a.py:5:2")
	require.Contains(t, out, "Line too long")
	require.Contains(t, out, "ruff/E501")
	require.Contains(t, out, "1 error(s), 0 warning(s), 0 info")
	require.Contains(t, out, "Failed tools: bandit")
}

func TestTextFormatterNoIssues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.TextFormatter{}.Format(&buf, report.Build(nil)))
	require.Contains(t, buf.String(), "No issues found.")
}
