// Package target validates the scan target before any tool runs and
// classifies its files for the human-readable report header.
package target

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathNotFound is returned when the scan target does not exist or cannot
// be accessed. It is fatal for the whole run.
var ErrPathNotFound = errors.New("path not found")

// Validate confirms the scan target exists and is accessible. It must run
// before any tool is invoked.
func Validate(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	return nil
}

// SourceKind is a coarse classification of a file in the scan target.
type SourceKind string

const (
	Python   SourceKind = "python"
	Manifest SourceKind = "manifest" // dependency manifests and lockfiles
	Other    SourceKind = "other"
)

var manifestNames = map[string]bool{
	"requirements.txt":  true,
	"pipfile.lock":      true,
	"poetry.lock":       true,
	"pyproject.toml":    true,
	"package-lock.json": true,
	"go.mod":            true,
}

// Census walks the target and counts files per source kind. A single-file
// target yields a census of one. Walk errors on individual entries are
// skipped; the census is informational, not a gate.
func Census(root string) (map[SourceKind]int, error) {
	counts := map[SourceKind]int{}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, root)
	}
	if !info.IsDir() {
		counts[classify(root)]++
		return counts, nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		counts[classify(path)]++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func classify(path string) SourceKind {
	name := strings.ToLower(filepath.Base(path))
	if manifestNames[name] {
		return Manifest
	}
	if strings.HasSuffix(name, ".py") {
		return Python
	}
	return Other
}
