package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// fakeExecutor records every call and simulates the tools the installer drives.
type fakeExecutor struct {
	dir      string
	calls    []string
	onPath   map[string]bool
	failures map[string]error
	version  string
	// createVenv makes environment-creation commands create the venv directory.
	createVenv bool
}

func newFakeExecutor(dir string) *fakeExecutor {
	return &fakeExecutor{
		dir:        dir,
		onPath:     map[string]bool{"virtualenv": true},
		failures:   map[string]error{},
		version:    "Python 3.12.1",
		createVenv: true,
	}
}

func (f *fakeExecutor) fail(prefix string) {
	f.failures[prefix] = errors.New("exit status 1")
}

func (f *fakeExecutor) record(line string) error {
	f.calls = append(f.calls, line)
	for prefix, err := range f.failures {
		if strings.HasPrefix(line, prefix) {
			return err
		}
	}
	return nil
}

func (f *fakeExecutor) Run(ctx context.Context, name string, args ...string) error {
	line := strings.Join(append([]string{name}, args...), " ")
	if err := f.record(line); err != nil {
		return err
	}
	isCreate := name == "virtualenv" || (len(args) >= 2 && args[0] == "-m" && args[1] == "venv")
	if isCreate && f.createVenv {
		return os.MkdirAll(filepath.Join(f.dir, VenvDir, "bin"), 0o755)
	}
	return nil
}

func (f *fakeExecutor) Shell(ctx context.Context, cmdline string, check bool) error {
	err := f.record(cmdline)
	if !check {
		return nil
	}
	return err
}

func (f *fakeExecutor) Output(ctx context.Context, name string, args ...string) (string, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	if err := f.record(line); err != nil {
		return "", err
	}
	return f.version, nil
}

func (f *fakeExecutor) LookPath(name string) bool {
	return f.onPath[name]
}
