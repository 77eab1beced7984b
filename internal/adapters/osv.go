package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Sena-ops/lintmux/internal/model"
)

// Native schema of `osv-scanner --format json`: one result per scanned
// lockfile/manifest, vulnerabilities grouped under each package.
type osvJSON struct {
	Results []struct {
		Source struct {
			Path string `json:"path"`
		} `json:"source"`
		Packages []struct {
			Package struct {
				Name    string `json:"name"`
				Version string `json:"version"`
			} `json:"package"`
			Vulnerabilities []struct {
				ID               string `json:"id"`
				Summary          string `json:"summary"`
				Details          string `json:"details"`
				DatabaseSpecific struct {
					Severity string `json:"severity"`
				} `json:"database_specific"`
			} `json:"vulnerabilities"`
		} `json:"packages"`
	} `json:"results"`
}

// OSVAdapter parses osv-scanner's JSON output. Dependency findings have no
// line granularity; Line stays 0 and File points at the manifest/lockfile.
type OSVAdapter struct{}

func (a *OSVAdapter) Parse(raw []byte) ([]model.Issue, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []model.Issue{}, nil
	}

	var doc osvJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: osv-scanner: %v", ErrMalformedOutput, err)
	}

	var out []model.Issue
	for _, r := range doc.Results {
		if r.Source.Path == "" {
			continue
		}
		for _, p := range r.Packages {
			for _, v := range p.Vulnerabilities {
				if v.ID == "" {
					continue
				}
				msg := strings.TrimSpace(v.Summary)
				if msg == "" {
					msg = strings.TrimSpace(v.Details)
				}
				if p.Package.Name != "" {
					msg = fmt.Sprintf("%s %s: %s", p.Package.Name, p.Package.Version, msg)
				}
				out = append(out, model.Issue{
					File:     r.Source.Path,
					Rule:     v.ID,
					Message:  msg,
					Severity: osvSeverity(v.DatabaseSpecific.Severity),
				})
			}
		}
	}
	return out, nil
}

// OSV advisories carry GitHub-style labels when they carry anything at all.
// Absent or unrecognized labels classify as error.
func osvSeverity(s string) model.Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL", "HIGH":
		return model.SevError
	case "MODERATE", "MEDIUM":
		return model.SevWarning
	case "LOW":
		return model.SevInfo
	default:
		return model.SevError
	}
}
