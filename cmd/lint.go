package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sena-ops/lintmux/internal/adapters"
	"github.com/Sena-ops/lintmux/internal/config"
	"github.com/Sena-ops/lintmux/internal/logging"
	"github.com/Sena-ops/lintmux/internal/report"
	"github.com/Sena-ops/lintmux/internal/scanner"
	"github.com/Sena-ops/lintmux/internal/target"
)

var (
	flagTools   string
	flagFormat  string
	flagConfig  string
	flagJobs    int
	flagTimeout time.Duration
	flagDebug   bool
)

var logger *zap.SugaredLogger

var lintCmd = &cobra.Command{
	Use:   "lint <path>",
	Short: "Run the enabled analysis tools against a path and merge their findings",
	Long: `Runs every enabled analysis tool against the given path, normalizes each
tool's native output into one canonical issue schema, and emits a unified
report.

Exit codes:
  0  no error-severity issues and no tool failures
  1  usage error (path not found, unknown tool, bad arguments)
  2  one or more error-severity issues
  3  one or more tools failed to run (and no error-severity issues)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		logger, err = logging.New(flagDebug)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error: initializing logger:", err)
			os.Exit(report.ExitUsage)
		}
		defer logger.Sync()

		path := args[0]
		if err := target.Validate(path); err != nil {
			// Fatal before any tool runs: no partial report.
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(report.ExitUsage)
		}

		cfg := loadConfig(path)
		tools := resolveTools(cmd, cfg)
		format := resolveFormat(cmd, cfg)
		jobs := resolveJobs(cmd, cfg)

		formatter, err := newFormatter(format, path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(report.ExitUsage)
		}

		if flagTimeout > 0 {
			applyTimeout(&cfg, tools, flagTimeout)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		engine := scanner.New(cfg, nil, jobs, logger)
		results, err := engine.Run(ctx, path, tools)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Fprintln(os.Stderr, "error: interrupted")
			} else {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			os.Exit(report.ExitUsage)
		}

		rep := report.Build(results)
		if err := formatter.Format(os.Stdout, rep); err != nil {
			fmt.Fprintln(os.Stderr, "error: writing report:", err)
			os.Exit(report.ExitUsage)
		}

		logger.Sync()
		os.Exit(report.ExitCode(rep))
	},
}

func init() {
	lintCmd.Flags().StringVarP(&flagTools, "tools", "t", "", "Comma-separated tools to run (default: all registered)")
	lintCmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "Report format (json, text, sarif)")
	lintCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "Path to config file (default: .lintmux.yml next to the target)")
	lintCmd.Flags().IntVarP(&flagJobs, "jobs", "j", 0, "Max tools running concurrently (0 = all at once)")
	lintCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Per-tool timeout (overrides config)")
	lintCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(lintCmd)
}

func loadConfig(path string) config.Config {
	if flagConfig != "" {
		cfg, err := config.LoadFile(flagConfig)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(report.ExitUsage)
		}
		return cfg
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return cfg
}

// Flags beat config, config beats defaults.
func resolveTools(cmd *cobra.Command, cfg config.Config) []string {
	if cmd.Flags().Changed("tools") {
		return splitAndTrim(flagTools)
	}
	if len(cfg.Tools) > 0 {
		return cfg.Tools
	}
	return adapters.Names()
}

func resolveFormat(cmd *cobra.Command, cfg config.Config) string {
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		return cfg.Format
	}
	return flagFormat
}

func resolveJobs(cmd *cobra.Command, cfg config.Config) int {
	if !cmd.Flags().Changed("jobs") && cfg.Jobs > 0 {
		return cfg.Jobs
	}
	return flagJobs
}

func newFormatter(format, path string) (report.Formatter, error) {
	switch strings.ToLower(format) {
	case "json":
		return report.JSONFormatter{}, nil
	case "sarif":
		return report.SARIFFormatter{}, nil
	case "text":
		// Census failures only cost the header annotation.
		census, _ := target.Census(path)
		return report.TextFormatter{Census: census}, nil
	default:
		return nil, fmt.Errorf("unknown format: %q (want json, text or sarif)", format)
	}
}

func applyTimeout(cfg *config.Config, tools []string, d time.Duration) {
	if cfg.Overrides == nil {
		cfg.Overrides = map[string]config.ToolConfig{}
	}
	for _, tool := range tools {
		ovr := cfg.Overrides[tool]
		ovr.Timeout = config.Duration(d)
		cfg.Overrides[tool] = ovr
	}
}

func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(strings.ToLower(part))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
