// Package config loads the optional .lintmux.yml configuration file and
// carries the built-in invocation defaults for every registered tool.
// Configuration is read once at startup and never re-read mid-run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so yaml values like "30s" decode.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("timeout must be a duration string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// ToolConfig describes how one tool is invoked. Args is the full argv
// (binary first); the scan path is appended as the last argument.
type ToolConfig struct {
	Args []string `yaml:"args,omitempty"`
	// FindingsExitCodes are exit statuses that mean "ran fine, findings
	// present" rather than failure. Defaults to [1] when empty.
	FindingsExitCodes []int    `yaml:"findings_exit_codes,omitempty"`
	Timeout           Duration `yaml:"timeout,omitempty"`
}

// Config represents the .lintmux.yml file.
type Config struct {
	Tools     []string              `yaml:"tools,omitempty"`
	Format    string                `yaml:"format,omitempty"`
	Jobs      int                   `yaml:"jobs,omitempty"`
	Overrides map[string]ToolConfig `yaml:"overrides,omitempty"`
}

// DefaultTimeout bounds a single tool invocation when no override is set.
const DefaultTimeout = Duration(2 * time.Minute)

var defaults = map[string]ToolConfig{
	"ruff": {
		Args:              []string{"ruff", "check", "--output-format", "json"},
		FindingsExitCodes: []int{1},
	},
	"bandit": {
		Args:              []string{"bandit", "-r", "-f", "json", "-q"},
		FindingsExitCodes: []int{1},
	},
	"osv-scanner": {
		Args:              []string{"osv-scanner", "--format", "json", "-r"},
		FindingsExitCodes: []int{1},
	},
}

// Load reads .lintmux.yml or .lintmux.yaml next to the scan target. If path
// is a file, its parent directory is searched. A missing config file is not
// an error: the zero Config means "all defaults".
func Load(dir string) (Config, error) {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for _, name := range []string{".lintmux.yml", ".lintmux.yaml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		return LoadFile(path)
	}
	return Config{}, nil
}

// LoadFile reads an explicit config file path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve merges the built-in defaults for a tool with any override from the
// config file. Unknown tools resolve to a zero ToolConfig; the registry gate
// in the driver rejects them before resolution matters.
func (c Config) Resolve(tool string) ToolConfig {
	tc := defaults[tool]
	if ovr, ok := c.Overrides[tool]; ok {
		if len(ovr.Args) > 0 {
			tc.Args = ovr.Args
		}
		if len(ovr.FindingsExitCodes) > 0 {
			tc.FindingsExitCodes = ovr.FindingsExitCodes
		}
		if ovr.Timeout > 0 {
			tc.Timeout = ovr.Timeout
		}
	}
	if len(tc.FindingsExitCodes) == 0 {
		tc.FindingsExitCodes = []int{1}
	}
	if tc.Timeout <= 0 {
		tc.Timeout = DefaultTimeout
	}
	return tc
}
