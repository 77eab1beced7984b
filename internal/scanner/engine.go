// Package scanner drives the external analysis tools: it resolves each
// requested tool to a command and an adapter, invokes the tools in parallel,
// and collects one ToolResult per tool. Tools never affect each other; a
// missing binary or garbage output is recorded, not fatal.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Sena-ops/lintmux/internal/adapters"
	"github.com/Sena-ops/lintmux/internal/config"
	"github.com/Sena-ops/lintmux/internal/model"
)

// ErrUnknownTool is returned when an explicitly requested tool has no
// registered adapter. It is fatal for the whole run.
var ErrUnknownTool = errors.New("unknown tool")

// Engine orchestrates one run. It holds no state across runs.
type Engine struct {
	cfg     config.Config
	invoker Invoker
	jobs    int
	log     *zap.SugaredLogger
}

// New creates an Engine. If jobs <= 0 every tool runs concurrently.
func New(cfg config.Config, invoker Invoker, jobs int, log *zap.SugaredLogger) *Engine {
	if invoker == nil {
		invoker = ExecInvoker{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{cfg: cfg, invoker: invoker, jobs: jobs, log: log}
}

// Run invokes every requested tool against path and returns one ToolResult
// per tool, in request order. Each slot is written only by its own tool's
// goroutine. Cancellation returns ctx's error with no partial results.
func (e *Engine) Run(ctx context.Context, path string, tools []string) ([]model.ToolResult, error) {
	// Gate on the registry before running anything.
	parsers := make([]adapters.Adapter, len(tools))
	for i, tool := range tools {
		a, ok := adapters.Get(tool)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTool, tool)
		}
		parsers[i] = a
	}

	jobs := e.jobs
	if jobs <= 0 || jobs > len(tools) {
		jobs = len(tools)
	}
	sem := make(chan struct{}, jobs)

	results := make([]model.ToolResult, len(tools))
	var wg sync.WaitGroup
	for i := range tools {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = e.runOne(ctx, tools[i], parsers[i], path)
		}(i)
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return results, nil
}

func (e *Engine) runOne(ctx context.Context, tool string, adapter adapters.Adapter, path string) model.ToolResult {
	tc := e.cfg.Resolve(tool)

	toolCtx, cancel := context.WithTimeout(ctx, time.Duration(tc.Timeout))
	defer cancel()

	e.log.Debugw("invoking tool", "tool", tool, "args", tc.Args)
	raw, failure := e.invoker.Invoke(toolCtx, tc, path)
	if failure != nil {
		e.log.Warnw("tool failed", "tool", tool, "kind", failure.Kind, "detail", failure.Detail)
		return model.ToolResult{Tool: tool, Failure: failure}
	}

	issues, err := adapter.Parse(raw)
	if err != nil {
		// Keep the offending payload reachable for debugging, but never let
		// it kill the run.
		e.log.Warnw("tool output unparseable", "tool", tool, "error", err)
		e.log.Debugw("raw tool output", "tool", tool, "output", string(raw))
		return model.ToolResult{Tool: tool, Failure: &model.Failure{Kind: model.MalformedOutput, Detail: err.Error()}}
	}

	e.log.Infow("tool finished", "tool", tool, "issues", len(issues))
	return model.ToolResult{Tool: tool, Issues: issues}
}
