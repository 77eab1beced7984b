package report

import (
	"encoding/json"
	"io"

	"github.com/Sena-ops/lintmux/internal/model"
)

// Formatter renders a built report to a writer.
type Formatter interface {
	Format(w io.Writer, rep model.Report) error
}

// JSONFormatter emits the report envelope:
// {"issues": [...], "summary": {"error": n, "warning": n, "info": n},
// "failedTools": [...]}.
type JSONFormatter struct{}

func (JSONFormatter) Format(w io.Writer, rep model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
