package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Sena-ops/lintmux/internal/model"
)

// Native schema of `bandit -f json` (top-level object, findings under
// "results").
type banditJSON struct {
	Results []struct {
		Filename      string `json:"filename"`
		LineNumber    int    `json:"line_number"`
		ColOffset     int    `json:"col_offset"`
		TestID        string `json:"test_id"`
		TestName      string `json:"test_name"`
		IssueText     string `json:"issue_text"`
		IssueSeverity string `json:"issue_severity"`
	} `json:"results"`
}

// BanditAdapter parses bandit's JSON output.
type BanditAdapter struct{}

func (a *BanditAdapter) Parse(raw []byte) ([]model.Issue, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []model.Issue{}, nil
	}

	var doc banditJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: bandit: %v", ErrMalformedOutput, err)
	}

	out := make([]model.Issue, 0, len(doc.Results))
	for _, r := range doc.Results {
		if r.Filename == "" || r.TestID == "" {
			continue
		}
		msg := strings.TrimSpace(r.IssueText)
		if msg == "" {
			msg = r.TestName
		}
		out = append(out, model.Issue{
			File:     r.Filename,
			Line:     r.LineNumber,
			Column:   r.ColOffset,
			Rule:     r.TestID,
			Message:  msg,
			Severity: banditSeverity(r.IssueSeverity),
		})
	}
	return out, nil
}

// Total mapping of bandit's severity labels. Unknown values classify as
// error so novel findings are never silently downgraded.
func banditSeverity(s string) model.Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH":
		return model.SevError
	case "MEDIUM":
		return model.SevWarning
	case "LOW":
		return model.SevInfo
	default:
		return model.SevError
	}
}
