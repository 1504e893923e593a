package installer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/aretw0/venvstrap/internal/activate"
	"github.com/aretw0/venvstrap/pkg/config"
	"github.com/aretw0/venvstrap/pkg/domain"
	"github.com/aretw0/venvstrap/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	dir  string
	exec *fakeExecutor
	out  *bytes.Buffer
	inst *Installer
}

func newFixture(t *testing.T, goos string, opts ...Option) *fixture {
	t.Helper()
	dir := t.TempDir()
	p, ok := platform.Lookup(goos)
	require.True(t, ok)

	f := &fixture{dir: dir, exec: newFakeExecutor(dir), out: &bytes.Buffer{}}
	base := []Option{WithExecutor(f.exec), WithOutput(f.out), WithPlatform(p)}
	f.inst = New(dir, append(base, opts...)...)
	return f
}

func (f *fixture) touch(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, name), []byte{}, 0o644))
}

func TestEnsureInterpreter(t *testing.T) {
	t.Run("Already Installed", func(t *testing.T) {
		f := newFixture(t, "linux")
		require.NoError(t, f.inst.EnsureInterpreter(context.Background()))

		assert.Equal(t, []string{"python3 --version"}, f.exec.calls)
		assert.Contains(t, f.out.String(), "Python is already installed: Python 3.12.1")
	})

	t.Run("Installs With Package Manager", func(t *testing.T) {
		tests := map[string]string{
			"darwin":  "brew install python3",
			"linux":   "sudo apt-get install python3",
			"windows": "choco install python3",
		}
		for goos, install := range tests {
			t.Run(goos, func(t *testing.T) {
				f := newFixture(t, goos)
				f.exec.fail(f.inst.Platform().Interpreter)

				require.NoError(t, f.inst.EnsureInterpreter(context.Background()))
				assert.Equal(t, install, f.exec.calls[len(f.exec.calls)-1])
			})
		}
	})

	t.Run("Install Failure Is Fatal", func(t *testing.T) {
		f := newFixture(t, "linux")
		f.exec.fail("python3")
		f.exec.fail("sudo apt-get")

		err := f.inst.EnsureInterpreter(context.Background())
		assert.ErrorIs(t, err, domain.ErrInterpreterInstall)
	})

	t.Run("Unknown Platform Continues", func(t *testing.T) {
		f := newFixture(t, "linux", WithPlatform(platform.Unknown))
		f.exec.fail("python3")

		assert.NoError(t, f.inst.EnsureInterpreter(context.Background()))
		assert.Equal(t, []string{"python3 --version"}, f.exec.calls)
	})

	t.Run("Configured Install Command", func(t *testing.T) {
		cfg := config.Default()
		cfg.InstallCommand = "sudo dnf install -y python3"
		f := newFixture(t, "linux", WithConfig(cfg))
		f.exec.fail("python3")

		require.NoError(t, f.inst.EnsureInterpreter(context.Background()))
		assert.Contains(t, f.exec.calls, "sudo dnf install -y python3")
	})
}

func TestCreateEnvironment(t *testing.T) {
	t.Run("Uses Virtualenv With Pinned Interpreter", func(t *testing.T) {
		f := newFixture(t, "linux")
		require.NoError(t, f.inst.CreateEnvironment(context.Background()))

		assert.Equal(t, []string{"virtualenv -p python3.10 venv"}, f.exec.calls)
		assert.Equal(t, domain.StateInstalled, f.inst.State())

		data, err := os.ReadFile(f.inst.ScriptPath())
		require.NoError(t, err)
		assert.Equal(t, activate.Content(), data)

		if runtime.GOOS != "windows" {
			info, err := os.Stat(f.inst.ScriptPath())
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
		}
	})

	t.Run("Installs Virtualenv When Missing", func(t *testing.T) {
		f := newFixture(t, "linux")
		f.exec.onPath = map[string]bool{}

		require.NoError(t, f.inst.CreateEnvironment(context.Background()))
		assert.Equal(t, []string{"pip3 install virtualenv", "virtualenv -p python3.10 venv"}, f.exec.calls)
	})

	t.Run("Falls Back To Venv Module", func(t *testing.T) {
		f := newFixture(t, "linux")
		f.exec.fail("virtualenv")

		require.NoError(t, f.inst.CreateEnvironment(context.Background()))
		assert.Equal(t, []string{"virtualenv -p python3.10 venv", "python3 -m venv venv"}, f.exec.calls)
		assert.Contains(t, f.out.String(), "trying venv")
		assert.True(t, activate.Exists(f.inst.ScriptPath()))
	})

	t.Run("Fallback Failure Is Fatal", func(t *testing.T) {
		f := newFixture(t, "linux")
		f.exec.fail("virtualenv")
		f.exec.fail("python3 -m venv")

		err := f.inst.CreateEnvironment(context.Background())
		assert.ErrorIs(t, err, domain.ErrEnvironmentCreation)
		assert.False(t, activate.Exists(f.inst.ScriptPath()))
	})

	t.Run("Virtualenv Install Failure Still Falls Back", func(t *testing.T) {
		f := newFixture(t, "linux")
		f.exec.onPath = map[string]bool{}
		f.exec.fail("pip3")
		f.exec.fail("virtualenv")

		require.NoError(t, f.inst.CreateEnvironment(context.Background()))
		assert.Contains(t, f.exec.calls, "python3 -m venv venv")
	})

	t.Run("Windows Links Bin Directory", func(t *testing.T) {
		f := newFixture(t, "windows")
		f.exec.createVenv = false
		require.NoError(t, os.MkdirAll(filepath.Join(f.dir, VenvDir, "Scripts"), 0o755))

		require.NoError(t, f.inst.CreateEnvironment(context.Background()))

		link := filepath.Join(f.dir, VenvDir, "bin")
		target := filepath.Join(f.dir, VenvDir, "Scripts")
		assert.Contains(t, f.exec.calls, `mklink /J "`+link+`" "`+target+`"`)
	})

	t.Run("Windows Link Failure Is Ignored", func(t *testing.T) {
		f := newFixture(t, "windows")
		f.exec.createVenv = false
		f.exec.fail("mklink")

		assert.NoError(t, f.inst.CreateEnvironment(context.Background()))
	})

	t.Run("Fires State Change Hook", func(t *testing.T) {
		var events []*domain.StateEvent
		hooks := domain.LifecycleHooks{
			OnStateChange: func(ctx context.Context, e *domain.StateEvent) { events = append(events, e) },
		}
		f := newFixture(t, "linux", WithLifecycleHooks(hooks))

		require.NoError(t, f.inst.CreateEnvironment(context.Background()))
		require.Len(t, events, 1)
		assert.Equal(t, domain.StateUninstalled, events[0].From)
		assert.Equal(t, domain.StateInstalled, events[0].To)
		assert.Equal(t, f.inst.RunID(), events[0].RunID)
	})
}

func TestRemoveEnvironment(t *testing.T) {
	t.Run("Removes Both Artifacts", func(t *testing.T) {
		f := newFixture(t, "linux")
		require.NoError(t, f.inst.CreateEnvironment(context.Background()))

		f.inst.RemoveEnvironment(context.Background())
		assert.NoDirExists(t, f.inst.VenvPath())
		assert.NoFileExists(t, f.inst.ScriptPath())
		assert.Equal(t, domain.StateUninstalled, f.inst.State())
	})

	t.Run("Missing Environment Is A No-Op", func(t *testing.T) {
		f := newFixture(t, "linux")
		assert.NotPanics(t, func() { f.inst.RemoveEnvironment(context.Background()) })
		assert.Empty(t, f.exec.calls)
	})
}
