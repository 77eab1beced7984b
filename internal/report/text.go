package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Sena-ops/lintmux/internal/model"
	"github.com/Sena-ops/lintmux/internal/target"
)

// TextFormatter emits a human-readable summary: issues grouped in canonical
// order, per-severity counts, and the tools that failed to run.
type TextFormatter struct {
	// Census optionally annotates the header with a file-kind breakdown of
	// the scan target.
	Census map[target.SourceKind]int
}

func (f TextFormatter) Format(w io.Writer, rep model.Report) error {
	var b strings.Builder

	b.WriteString("Scan results")
	if len(f.Census) > 0 {
		var parts []string
		for _, kind := range []target.SourceKind{target.Python, target.Manifest, target.Other} {
			if n := f.Census[kind]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s file(s)", n, kind))
			}
		}
		if len(parts) > 0 {
			b.WriteString(" (" + strings.Join(parts, ", ") + ")")
		}
	}
	b.WriteString("\n\n")

	if len(rep.Issues) == 0 {
		b.WriteString("No issues found.\n")
	}
	for _, issue := range rep.Issues {
		loc := issue.File
		if issue.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, issue.Line)
			if issue.Column > 0 {
				loc = fmt.Sprintf("%s:%d", loc, issue.Column)
			}
		}
		fmt.Fprintf(&b, "%-7s %s %s [%s/%s]\n", issue.Severity, loc, issue.Message, issue.Tool, issue.Rule)
	}

	fmt.Fprintf(&b, "\n%d error(s), %d warning(s), %d info\n",
		rep.Summary.Error, rep.Summary.Warning, rep.Summary.Info)

	if len(rep.FailedTools) > 0 {
		fmt.Fprintf(&b, "Failed tools: %s\n", strings.Join(rep.FailedTools, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
