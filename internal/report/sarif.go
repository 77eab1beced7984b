package report

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/Sena-ops/lintmux/internal/model"
)

// ToolVersion is the version reported in the SARIF driver block.
var ToolVersion = "0.1.0"

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"` // error, warning, note
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// SARIFFormatter emits SARIF 2.1.0 so CI systems and editors can ingest the
// merged report directly.
type SARIFFormatter struct{}

func (SARIFFormatter) Format(w io.Writer, rep model.Report) error {
	results := make([]sarifResult, 0, len(rep.Issues))
	for _, issue := range rep.Issues {
		uri := toURI(issue.File)
		if uri == "" {
			uri = "UNKNOWN"
		}
		// SARIF regions are 1-based; line-less findings floor at 1.
		start := issue.Line
		if start <= 0 {
			start = 1
		}
		results = append(results, sarifResult{
			RuleID: issue.Tool + "/" + issue.Rule,
			Level:  sevToLevel(issue.Severity),
			Message: sarifMessage{
				Text: strings.TrimSpace(issue.Message),
			},
			Locations: []sarifLocation{
				{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: uri},
						Region:           sarifRegion{StartLine: start},
					},
				},
			},
		})
	}

	log := sarifLog{
		Version: "2.1.0",
		Schema:  "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    "lintmux",
						Version: ToolVersion,
					},
				},
				Results: results,
			},
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func sevToLevel(s model.Severity) string {
	switch s {
	case model.SevError:
		return "error"
	case model.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func toURI(p string) string {
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, "\\", "/")
	for strings.HasPrefix(p, "../") {
		p = strings.TrimPrefix(p, "../")
	}
	return strings.TrimPrefix(p, "./")
}
