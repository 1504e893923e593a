package process

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/aretw0/venvstrap/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX sh")
	}
}

func TestRunner_Shell(t *testing.T) {
	skipOnWindows(t)

	var out bytes.Buffer
	runner := NewRunner(WithOutput(&out, &out))

	t.Run("Prints Banner And Output", func(t *testing.T) {
		out.Reset()
		err := runner.Shell(context.Background(), "echo hello", true)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "# Executing 'echo hello'")
		assert.Contains(t, out.String(), "hello\n")
	})

	t.Run("Checked Failure Returns ExitError", func(t *testing.T) {
		err := runner.Shell(context.Background(), "exit 3", true)

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 3, exitErr.Code)
		assert.Equal(t, "exit 3", exitErr.Command)
	})

	t.Run("Unchecked Failure Is Swallowed", func(t *testing.T) {
		assert.NoError(t, runner.Shell(context.Background(), "exit 3", false))
	})
}

func TestRunner_Run(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	var out bytes.Buffer
	runner := NewRunner(WithOutput(&out, &out), WithBaseDir(dir))

	require.NoError(t, runner.Run(context.Background(), "mkdir", "venv"))
	assert.DirExists(t, filepath.Join(dir, "venv"))
	assert.Contains(t, out.String(), "# Executing 'mkdir venv'")

	err := runner.Run(context.Background(), "definitely-not-a-real-binary-xyz")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, -1, exitErr.Code)
}

func TestRunner_Output(t *testing.T) {
	skipOnWindows(t)

	runner := NewRunner(WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))

	got, err := runner.Output(context.Background(), "sh", "-c", "echo 'Python 3.12.1' >&2")
	require.NoError(t, err)
	assert.Equal(t, "Python 3.12.1", got)
}

func TestRunner_LookPath(t *testing.T) {
	runner := NewRunner()
	exe, err := os.Executable()
	require.NoError(t, err)

	assert.True(t, runner.LookPath(exe))
	assert.False(t, runner.LookPath("definitely-not-a-real-binary-xyz"))
}

func TestRunner_Hooks(t *testing.T) {
	skipOnWindows(t)

	var events []*domain.CommandEvent
	hooks := domain.LifecycleHooks{
		OnCommandStart: func(ctx context.Context, e *domain.CommandEvent) { events = append(events, e) },
		OnCommandEnd:   func(ctx context.Context, e *domain.CommandEvent) { events = append(events, e) },
	}
	runner := NewRunner(WithOutput(&bytes.Buffer{}, &bytes.Buffer{}), WithHooks(hooks), WithRunID("run-1"))

	err := runner.Run(context.Background(), "sh", "-c", "exit 2")
	require.Error(t, err)
	require.Len(t, events, 2)

	start, end := events[0], events[1]
	assert.Equal(t, domain.EventCommandStart, start.Type)
	assert.Equal(t, "sh", start.Program)
	assert.Equal(t, "run-1", start.RunID)
	assert.Equal(t, domain.EventCommandEnd, end.Type)
	assert.True(t, end.IsError)
	assert.Equal(t, 2, end.ExitCode)
}

func TestRunner_Cancelled(t *testing.T) {
	skipOnWindows(t)

	runner := NewRunner(WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))

	t.Run("Before Start", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := runner.Run(ctx, "sleep", "5")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("While Running", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(200*time.Millisecond, cancel)
		defer cancel()

		start := time.Now()
		err := runner.Run(ctx, "sleep", "5")
		assert.Less(t, time.Since(start), 4*time.Second)

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
