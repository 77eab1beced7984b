// Package adapters translates each tool's native output into canonical
// issues. Adapters are stateless and side-effect-free: they operate purely
// on the bytes handed to them and never touch the filesystem or network.
package adapters

import (
	"errors"
	"sort"

	"github.com/Sena-ops/lintmux/internal/model"
)

// ErrMalformedOutput is wrapped by every adapter when non-empty input cannot
// be parsed. Callers match it with errors.Is.
var ErrMalformedOutput = errors.New("malformed tool output")

// Adapter parses one tool's raw output into zero or more issues.
//
// Empty input means "no findings" and parses to an empty list, not an error.
// Adapters leave Issue.Tool unset; the aggregator stamps it.
type Adapter interface {
	Parse(raw []byte) ([]model.Issue, error)
}

// Registration is static: the supported tool set is fixed per build.
var registry = map[string]Adapter{
	"ruff":        &RuffAdapter{},
	"bandit":      &BanditAdapter{},
	"osv-scanner": &OSVAdapter{},
}

// Get returns the adapter registered for a tool name.
func Get(name string) (Adapter, bool) {
	a, ok := registry[name]
	return a, ok
}

// Names returns all registered tool names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
