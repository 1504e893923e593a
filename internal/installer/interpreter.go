package installer

import (
	"context"
	"fmt"

	"github.com/aretw0/venvstrap/pkg/domain"
)

// EnsureInterpreter makes sure the base interpreter answers --version,
// installing it with the platform package manager when it does not.
// A failed install is fatal; a platform without a package manager is only reported.
func (i *Installer) EnsureInterpreter(ctx context.Context) error {
	version, err := i.exec.Output(ctx, i.platform.Interpreter, "--version")
	if err == nil {
		i.printf("Python is already installed: %s\n", version)
		return nil
	}
	i.logger.Debug("Interpreter probe failed", "interpreter", i.platform.Interpreter, "err", err)

	if i.platform.InstallInterpreter == "" {
		i.logger.Warn("No package manager known for platform, continuing without installing python",
			"platform", i.platform.Name)
		return nil
	}

	if err := i.exec.Shell(ctx, i.platform.InstallInterpreter, true); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInterpreterInstall, err)
	}
	return nil
}
