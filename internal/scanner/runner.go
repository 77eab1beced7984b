package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Sena-ops/lintmux/internal/config"
	"github.com/Sena-ops/lintmux/internal/model"
)

// Invoker runs one tool against the scan path and returns its captured
// stdout, or a classified failure. Tests substitute a stub.
type Invoker interface {
	Invoke(ctx context.Context, tc config.ToolConfig, path string) ([]byte, *model.Failure)
}

// ExecInvoker invokes tools as external processes. The command's resources
// are scoped to the invocation: CommandContext kills the process when the
// per-tool deadline or an interrupt cancels the context.
type ExecInvoker struct{}

func (ExecInvoker) Invoke(ctx context.Context, tc config.ToolConfig, path string) ([]byte, *model.Failure) {
	if len(tc.Args) == 0 {
		return nil, &model.Failure{Kind: model.ToolUnavailable, Detail: "no command configured"}
	}

	args := append(append([]string{}, tc.Args[1:]...), path)
	cmd := exec.CommandContext(ctx, tc.Args[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		return nil, &model.Failure{Kind: model.Timeout, Detail: fmt.Sprintf("deadline exceeded after %s", tc.Timeout)}
	}
	if errors.Is(err, exec.ErrNotFound) {
		return nil, &model.Failure{Kind: model.ToolUnavailable, Detail: fmt.Sprintf("%s: not installed", tc.Args[0])}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		// A documented findings exit means the tool ran fine and simply
		// found something; its output is still the payload.
		for _, ok := range tc.FindingsExitCodes {
			if code == ok {
				return stdout.Bytes(), nil
			}
		}
		return nil, &model.Failure{
			Kind:   model.ToolUnavailable,
			Detail: fmt.Sprintf("%s exited %d: %s", tc.Args[0], code, excerpt(stderr.String())),
		}
	}

	return nil, &model.Failure{Kind: model.ToolUnavailable, Detail: err.Error()}
}

func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
