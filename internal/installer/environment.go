package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/venvstrap/internal/activate"
	"github.com/aretw0/venvstrap/pkg/domain"
)

// CreateEnvironment creates the virtual environment and writes the activation script.
// virtualenv is tried first with the pinned interpreter; the built-in venv module is
// the single fallback.
func (i *Installer) CreateEnvironment(ctx context.Context) error {
	from := i.State()

	if !i.exec.LookPath("virtualenv") {
		if err := i.exec.Run(ctx, i.platform.Pip, "install", "virtualenv"); err != nil {
			i.logger.Warn("Could not install virtualenv", "err", err)
		}
	}

	if err := i.exec.Run(ctx, "virtualenv", "-p", i.cfg.PythonVersion, VenvDir); err != nil {
		i.logger.Warn("virtualenv failed, trying venv", "err", err)
		i.printf("Warning: virtualenv failed because of %v, trying venv\n", err)

		if fallbackErr := i.exec.Run(ctx, i.platform.Interpreter, "-m", "venv", VenvDir); fallbackErr != nil {
			i.printf("Warning: couldn't make virtual environment because of %v\n", fallbackErr)
			return fmt.Errorf("%w: %w", domain.ErrEnvironmentCreation, errors.Join(err, fallbackErr))
		}
	}

	if i.platform.NeedsBinAlias {
		i.linkBinDir(ctx)
	}

	if err := i.writeScript(); err != nil {
		return err
	}

	i.transition(ctx, from, domain.StateInstalled)
	return nil
}

// linkBinDir aliases venv/bin to venv/Scripts so "bin" works on every platform.
// It is best effort.
func (i *Installer) linkBinDir(ctx context.Context) {
	link := filepath.Join(i.VenvPath(), "bin")
	if _, err := os.Stat(link); err == nil {
		return
	}
	target := filepath.Join(i.VenvPath(), "Scripts")
	_ = i.exec.Shell(ctx, fmt.Sprintf(`mklink /J "%s" "%s"`, link, target), false)
}

func (i *Installer) writeScript() error {
	path := i.ScriptPath()
	if err := activate.Write(path, !i.platform.IsWindows()); err != nil {
		return err
	}
	i.logger.Debug("Activation script written", "path", path)
	return nil
}

// RemoveEnvironment deletes the environment directory and the activation script.
// Missing artifacts are not an error and removal failures are swallowed.
func (i *Installer) RemoveEnvironment(ctx context.Context) {
	from := i.State()

	if err := os.RemoveAll(i.VenvPath()); err != nil {
		i.logger.Debug("Ignoring venv removal failure", "path", i.VenvPath(), "err", err)
	}
	if err := os.Remove(i.ScriptPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		i.logger.Debug("Ignoring activation script removal failure", "path", i.ScriptPath(), "err", err)
	}

	i.transition(ctx, from, i.State())
}
