package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Sena-ops/lintmux/internal/model"
)

// Native schema of `ruff check --output-format json`: a flat array of
// findings. The fix descriptor is absent when ruff has no fix for the rule.
type ruffFinding struct {
	Filename string `json:"filename"`
	Location struct {
		Row    int `json:"row"`
		Column int `json:"column"`
	} `json:"location"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Fix     *struct {
		Applicability string `json:"applicability"`
	} `json:"fix"`
}

// RuffAdapter parses ruff's JSON output.
type RuffAdapter struct{}

func (a *RuffAdapter) Parse(raw []byte) ([]model.Issue, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []model.Issue{}, nil
	}

	var findings []ruffFinding
	if err := json.Unmarshal(raw, &findings); err != nil {
		return nil, fmt.Errorf("%w: ruff: %v", ErrMalformedOutput, err)
	}

	out := make([]model.Issue, 0, len(findings))
	for _, f := range findings {
		if f.Filename == "" || f.Code == "" {
			continue
		}
		fix := ""
		if f.Fix != nil {
			fix = f.Fix.Applicability
		}
		out = append(out, model.Issue{
			File:     f.Filename,
			Line:     f.Location.Row,
			Column:   f.Location.Column,
			Rule:     f.Code,
			Message:  strings.TrimSpace(f.Message),
			Severity: ruffSeverity(fix),
		})
	}
	return out, nil
}

// A finding ruff can fix on its own is a warning; anything that needs a
// human stays an error. Ruff has called the auto-applicable marker both
// "automatic" (pre-0.1) and "safe"; both are honored.
func ruffSeverity(applicability string) model.Severity {
	switch strings.ToLower(strings.TrimSpace(applicability)) {
	case "automatic", "safe":
		return model.SevWarning
	default:
		return model.SevError
	}
}
