// Package cli implements the commands behind the venvstrap binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/venvstrap"
	"github.com/aretw0/venvstrap/internal/installer"
	"github.com/aretw0/venvstrap/internal/metrics"
	"github.com/aretw0/venvstrap/internal/presentation/tui"
	"github.com/aretw0/venvstrap/pkg/config"
	"github.com/aretw0/venvstrap/pkg/domain"
)

// Options are the flags of the root command.
type Options struct {
	Dir         string
	ConfigPath  string
	Remove      bool
	Debug       bool
	NoBanner    bool
	MetricsFile string
	// Env overrides the process environment snapshot. Nil means read os.Environ.
	Env *domain.Env
	// Stdout defaults to os.Stdout.
	Stdout io.Writer
	// Extra is appended to the library options, mainly for tests.
	Extra []venvstrap.Option
}

// RunInstall installs or removes the environment of a project directory.
// Guard violations are already reported when returned; callers only map them to exit 1.
func RunInstall(ctx context.Context, opts Options) (err error) {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	env, err := resolveEnv(opts.Env)
	if err != nil {
		return err
	}

	// Refuse before the config file is read so a broken file cannot mask the guard.
	if env.InActivatedEnv {
		fmt.Fprintln(stdout, installer.ActivatedEnvMessage)
		return domain.ErrActivatedEnv
	}

	logger := createLogger(opts.Debug)
	collector := metrics.NewCollector()

	libOpts := []venvstrap.Option{
		venvstrap.WithLogger(logger),
		venvstrap.WithOutput(stdout),
		venvstrap.WithLifecycleHooks(createDebugHooks(logger).Merge(collector.Hooks())),
		venvstrap.WithConfigFile(opts.ConfigPath),
	}
	if f, ok := stdout.(*os.File); ok {
		libOpts = append(libOpts, venvstrap.WithRenderer(tui.NewRenderer(f)))
	}
	libOpts = append(libOpts, opts.Extra...)

	b, err := venvstrap.New(opts.Dir, libOpts...)
	if err != nil {
		return err
	}

	metricsFile := opts.MetricsFile
	if metricsFile == "" {
		metricsFile = b.Config().MetricsFile
	}
	if metricsFile != "" {
		defer func() {
			// Guard refusals leave no trace on disk.
			if domain.IsGuardViolation(err) {
				return
			}
			collector.RecordExit(ExitCode(err))
			if werr := collector.WriteTextfile(metricsFile); werr != nil {
				logger.Warn("Failed to write metrics", "path", metricsFile, "err", werr)
			}
		}()
	}

	if !opts.NoBanner && !opts.Remove {
		tui.PrintBanner(stdout, strings.TrimSpace(venvstrap.Version))
	}
	logger.Debug("Run Start", "run_id", b.RunID(), "dir", opts.Dir, "remove", opts.Remove)

	if opts.Remove {
		return b.Remove(ctx, env)
	}
	return b.Install(ctx, env)
}

// ExitCode maps a run error to the process exit status.
// An interrupted run exits 130, like a shell does after SIGINT.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

func resolveEnv(override *domain.Env) (domain.Env, error) {
	if override != nil {
		return *override, nil
	}
	env, err := config.EnvFromOS()
	if err != nil {
		return domain.Env{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return env, nil
}
