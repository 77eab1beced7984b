package model

import (
	"fmt"
	"strings"
)

// Severity is the canonical three-tier classification every native tool
// severity is mapped onto. Raw tool vocabularies never leak past an adapter.
type Severity string

const (
	SevError   Severity = "error"
	SevWarning Severity = "warning"
	SevInfo    Severity = "info"
)

// ParseSeverity converts a string to a canonical Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SevError, nil
	case "warning":
		return SevWarning, nil
	case "info":
		return SevInfo, nil
	default:
		return "", fmt.Errorf("unknown severity: %q", s)
	}
}

// Issue is one normalized finding from one tool.
type Issue struct {
	File     string   `json:"file"`             // tool-native path, relative to scan root when the tool supports it
	Line     int      `json:"line"`             // 1-based; 0 when the tool has no line granularity
	Column   int      `json:"column,omitempty"` // optional
	Rule     string   `json:"rule"`             // tool-specific rule/check id
	Message  string   `json:"message"`          // tool-native text, trimmed only
	Severity Severity `json:"severity"`
	Tool     string   `json:"tool"` // stamped by the aggregator, never by an adapter
}

// FailureKind classifies why a tool produced no issues.
type FailureKind string

const (
	// ToolUnavailable: the tool binary is missing, not executable, or exited
	// with a status that is not a documented findings signal.
	ToolUnavailable FailureKind = "tool_unavailable"
	// MalformedOutput: the tool ran but its adapter could not parse the output.
	MalformedOutput FailureKind = "malformed_output"
	// Timeout: the per-tool deadline elapsed before the tool finished.
	Timeout FailureKind = "timeout"
)

// Failure records a per-tool failure without aborting the run.
type Failure struct {
	Kind   FailureKind
	Detail string
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
}

// ToolResult is the outcome of one tool invocation. Exactly one of Issues
// and Failure is populated.
type ToolResult struct {
	Tool    string
	Issues  []Issue
	Failure *Failure
}

// Failed reports whether the tool did not produce a usable issue list.
func (r ToolResult) Failed() bool {
	return r.Failure != nil
}

// Summary holds per-severity issue counts.
type Summary struct {
	Error   int `json:"error"`
	Warning int `json:"warning"`
	Info    int `json:"info"`
}

// Report is the merged, ordered outcome of one full run. Built once by the
// aggregator and immutable afterwards.
type Report struct {
	Issues      []Issue  `json:"issues"`
	Summary     Summary  `json:"summary"`
	FailedTools []string `json:"failedTools"`
}
