package testutils

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestProject creates a temporary project directory containing the given
// (empty) files, e.g. "pyproject.toml". It returns the absolute path.
// It fails the test immediately on error.
func SetupTestProject(t *testing.T, files ...string) string {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(absPath, name), nil, 0o644), "Failed to create %s", name)
	}
	return absPath
}

// StubExecutor succeeds on every command, reports every tool as installed and
// creates Dir/venv when virtualenv runs. Calls are recorded in order.
type StubExecutor struct {
	Dir   string
	Calls []string
}

// Run records the command and creates Dir/venv/bin when it is virtualenv.
func (s *StubExecutor) Run(ctx context.Context, name string, args ...string) error {
	s.Calls = append(s.Calls, strings.Join(append([]string{name}, args...), " "))
	if name == "virtualenv" {
		return os.MkdirAll(filepath.Join(s.Dir, "venv", "bin"), 0o755)
	}
	return nil
}

// Shell records the command line and succeeds.
func (s *StubExecutor) Shell(ctx context.Context, cmdline string, check bool) error {
	s.Calls = append(s.Calls, cmdline)
	return nil
}

// Output reports an installed interpreter.
func (s *StubExecutor) Output(ctx context.Context, name string, args ...string) (string, error) {
	return "Python 3.12.1", nil
}

// LookPath reports every tool as present.
func (s *StubExecutor) LookPath(name string) bool {
	return true
}
