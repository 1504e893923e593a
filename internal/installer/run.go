package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/venvstrap/internal/activate"
	"github.com/aretw0/venvstrap/pkg/domain"
	"github.com/aretw0/venvstrap/pkg/platform"
)

// ActivatedEnvMessage is printed when the installer runs inside an activated environment.
const ActivatedEnvMessage = "Cannot install a new environment while in an activated environment. " +
	"Please launch a new shell and try again."

// RunOptions selects what Run does.
type RunOptions struct {
	// Remove deletes the environment instead of installing it.
	Remove bool
}

// Run is the installer entry point.
// env is the caller's environment snapshot; guard violations are reported to
// the output and returned before anything touches the filesystem.
func (i *Installer) Run(ctx context.Context, env domain.Env, opts RunOptions) error {
	if env.InActivatedEnv {
		i.printf("%s\n", ActivatedEnvMessage)
		return domain.ErrActivatedEnv
	}
	if i.platform.IsWindows() && !platform.IsPOSIXShell(env) {
		i.printf("This script only works with git bash on windows.\n")
		return domain.ErrUnsupportedShell
	}

	if err := i.EnsureInterpreter(ctx); err != nil {
		return err
	}

	if opts.Remove {
		i.printf("Removing virtual environment\n")
		i.RemoveEnvironment(ctx)
		return nil
	}

	if i.State() == domain.StateUninstalled {
		if err := i.CreateEnvironment(ctx); err != nil {
			return err
		}
	} else {
		abs, _ := filepath.Abs(i.VenvPath())
		i.printf("%s already exists\n", abs)
		if !activate.Exists(i.ScriptPath()) {
			i.logger.Info("Restoring missing activation script", "path", i.ScriptPath())
			if err := i.writeScript(); err != nil {
				return err
			}
		}
	}

	if !activate.Exists(i.ScriptPath()) {
		return fmt.Errorf("%w: %s", domain.ErrActivateScriptMissing, i.ScriptPath())
	}

	if i.cfg.Editable && i.hasProjectMetadata() {
		if err := i.InstallProject(ctx); err != nil {
			return err
		}
	}

	i.printHint()
	return nil
}

// InstallProject installs the project in editable mode with the environment's own pip.
func (i *Installer) InstallProject(ctx context.Context) error {
	python := filepath.Join(VenvDir, "bin", "python")
	if err := i.exec.Run(ctx, python, "-m", "pip", "install", "-e", "."); err != nil {
		return fmt.Errorf("editable install failed: %w", err)
	}
	return nil
}

func (i *Installer) hasProjectMetadata() bool {
	for _, marker := range i.cfg.ProjectMarkers {
		if _, err := os.Stat(filepath.Join(i.dir, marker)); err == nil {
			return true
		}
	}
	return false
}

func (i *Installer) printHint() {
	hint := fmt.Sprintf(`Now use ". %s" (at the project root dir) to enter into the environment.`, i.cfg.ActivateScript)
	if i.renderer != nil {
		if rendered, err := i.renderer(hint); err == nil {
			hint = rendered
		} else {
			i.logger.Debug("Hint rendering failed", "err", err)
		}
	}
	i.printf("%s\n", hint)
}
