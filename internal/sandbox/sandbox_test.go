package sandbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunCapturesStdoutAndExitCode(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)
	defer ws.Cleanup()

	result, err := Run(context.Background(), "echo hello", Options{Dir: ws.Root(), Timeout: 5 * time.Second})
	require.NoError(t, err)
	require.Equal(t, 0, result.ExitCode)
	require.Equal(t, "hello", result.Stdout)
	require.False(t, result.TimedOut)
	require.False(t, result.Truncated)
}

func TestRunCapturesNonZeroExitCode(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)
	defer ws.Cleanup()

	result, err := Run(context.Background(), "exit 3", Options{Dir: ws.Root(), Timeout: 5 * time.Second})
	require.NoError(t, err)
	require.Equal(t, 3, result.ExitCode)
}

func TestRunTimesOutLongRunningCommand(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)
	defer ws.Cleanup()

	result, err := Run(context.Background(), "sleep 5", Options{Dir: ws.Root(), Timeout: 200 * time.Millisecond})
	require.NoError(t, err)
	require.True(t, result.TimedOut)
}

func TestRunTruncatesOutputPastBudget(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)
	defer ws.Cleanup()

	result, err := Run(context.Background(), "yes | head -c 100000", Options{
		Dir: ws.Root(), Timeout: 5 * time.Second, OutputBudget: 100,
	})
	require.NoError(t, err)
	require.True(t, result.Truncated)
	require.LessOrEqual(t, len(result.Stdout), 50)
}

func TestRunTeardownOnCapHitDoesNotWaitFullGracePeriod(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)
	defer ws.Cleanup()

	start := time.Now()
	result, err := Run(context.Background(), "yes | head -c 100000", Options{
		Dir: ws.Root(), Timeout: 5 * time.Second, OutputBudget: 100,
	})
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.True(t, result.Truncated)
	require.Less(t, elapsed, killGracePeriod, "cap-triggered teardown should observe the process exiting on SIGTERM rather than always waiting out the full grace period")
}

func TestRunStripsUnlistedEnvironmentVariables(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)
	defer ws.Cleanup()

	t.Setenv("ORCHEO_TEST_SECRET", "do-not-leak")
	result, err := Run(context.Background(), "echo $ORCHEO_TEST_SECRET", Options{Dir: ws.Root(), Timeout: 5 * time.Second})
	require.NoError(t, err)
	require.Empty(t, result.Stdout)
}

func TestWorkspaceResolveRejectsPathEscape(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)
	defer ws.Cleanup()

	_, err = ws.Resolve("../../etc/passwd")
	require.Error(t, err)
}

func TestWorkspaceResolveAcceptsContainedPath(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)
	defer ws.Cleanup()

	resolved, err := ws.Resolve("artifacts/workflow.json")
	require.NoError(t, err)
	require.Contains(t, resolved, ws.Root())
}
