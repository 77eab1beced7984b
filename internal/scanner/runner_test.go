package scanner_test

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Sena-ops/lintmux/internal/config"
	"github.com/Sena-ops/lintmux/internal/model"
	"github.com/Sena-ops/lintmux/internal/scanner"
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("exec tests use sh")
	}
}

func TestExecInvokerCapturesStdout(t *testing.T) {
	requireUnix(t)

	tc := config.ToolConfig{Args: []string{"sh", "-c", `echo '[]'`}}
	out, failure := scanner.ExecInvoker{}.Invoke(context.Background(), tc, ".")
	require.Nil(t, failure)
	require.Equal(t, "[]\n", string(out))
}

func TestExecInvokerMissingBinary(t *testing.T) {
	tc := config.ToolConfig{Args: []string{"definitely-not-a-real-linter-9000"}}
	_, failure := scanner.ExecInvoker{}.Invoke(context.Background(), tc, ".")
	require.NotNil(t, failure)
	require.Equal(t, model.ToolUnavailable, failure.Kind)
	require.Contains(t, failure.Detail, "not installed")
}

func TestExecInvokerFindingsExitCode(t *testing.T) {
	requireUnix(t)

	// Exit 1 is the documented "findings present" signal: output is payload.
	tc := config.ToolConfig{
		Args:              []string{"sh", "-c", `echo '[{"code":"E1"}]'; exit 1`},
		FindingsExitCodes: []int{1},
	}
	out, failure := scanner.ExecInvoker{}.Invoke(context.Background(), tc, ".")
	require.Nil(t, failure)
	require.Contains(t, string(out), "E1")
}

func TestExecInvokerUnexpectedExitCode(t *testing.T) {
	requireUnix(t)

	tc := config.ToolConfig{
		Args:              []string{"sh", "-c", `echo "boom" >&2; exit 7`},
		FindingsExitCodes: []int{1},
	}
	_, failure := scanner.ExecInvoker{}.Invoke(context.Background(), tc, ".")
	require.NotNil(t, failure)
	require.Equal(t, model.ToolUnavailable, failure.Kind)
	require.Contains(t, failure.Detail, "exited 7")
	require.Contains(t, failure.Detail, "boom")
}

func TestExecInvokerTimeout(t *testing.T) {
	requireUnix(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	tc := config.ToolConfig{Args: []string{"sh", "-c", "sleep 10"}, Timeout: config.Duration(50 * time.Millisecond)}
	_, failure := scanner.ExecInvoker{}.Invoke(ctx, tc, ".")
	require.NotNil(t, failure)
	require.Equal(t, model.Timeout, failure.Kind)
}
