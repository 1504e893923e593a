// Package installer creates, repairs and removes a project's virtual environment.
package installer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/venvstrap/internal/logging"
	"github.com/aretw0/venvstrap/pkg/adapters/process"
	"github.com/aretw0/venvstrap/pkg/config"
	"github.com/aretw0/venvstrap/pkg/domain"
	"github.com/aretw0/venvstrap/pkg/platform"
	"github.com/google/uuid"
)

// VenvDir is the environment directory, relative to the project.
// The activation script refers to it by this name.
const VenvDir = "venv"

// Executor runs external commands on behalf of the installer.
// *process.Runner is the production implementation.
type Executor interface {
	// Run executes name with args and fails on a non-zero exit.
	Run(ctx context.Context, name string, args ...string) error
	// Shell executes a command line through the platform shell.
	Shell(ctx context.Context, cmdline string, check bool) error
	// Output executes name and returns its trimmed output.
	Output(ctx context.Context, name string, args ...string) (string, error)
	// LookPath reports whether name is on the executable search path.
	LookPath(name string) bool
}

// HintRenderer transforms the closing hint before it is printed.
type HintRenderer func(string) (string, error)

// Installer drives the Uninstalled/Installed state machine of one project directory.
type Installer struct {
	dir      string
	cfg      config.Config
	platform domain.Platform
	exec     Executor
	out      io.Writer
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	renderer HintRenderer
	runID    string
}

// Option configures the Installer.
type Option func(*Installer)

// WithConfig sets the project settings.
func WithConfig(cfg config.Config) Option {
	return func(i *Installer) {
		i.cfg = cfg
	}
}

// WithPlatform overrides the detected platform.
func WithPlatform(p domain.Platform) Option {
	return func(i *Installer) {
		i.platform = p
	}
}

// WithExecutor injects the command executor.
func WithExecutor(e Executor) Option {
	return func(i *Installer) {
		i.exec = e
	}
}

// WithOutput sets where user-facing messages are written.
func WithOutput(w io.Writer) Option {
	return func(i *Installer) {
		i.out = w
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Installer) {
		i.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(i *Installer) {
		i.hooks = hooks
	}
}

// WithRenderer sets the renderer used for the closing hint.
func WithRenderer(r HintRenderer) Option {
	return func(i *Installer) {
		i.renderer = r
	}
}

// New creates an Installer for the project in dir.
// Without WithExecutor, a process.Runner rooted at dir is used.
func New(dir string, opts ...Option) *Installer {
	i := &Installer{
		dir:      dir,
		cfg:      config.Default(),
		platform: platform.Detect(""),
		out:      os.Stdout,
		logger:   logging.NewNop(),
		runID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.platform = platform.WithInstallCommand(i.platform, i.cfg.InstallCommand)
	i.logger = i.logger.With("run_id", i.runID)

	if i.exec == nil {
		i.exec = process.NewRunner(
			process.WithBaseDir(dir),
			process.WithShell(i.platform.Shell),
			process.WithOutput(i.out, os.Stderr),
			process.WithHooks(i.hooks),
			process.WithLogger(i.logger),
			process.WithRunID(i.runID),
		)
	}
	return i
}

// RunID identifies this invocation in logs and events.
func (i *Installer) RunID() string {
	return i.runID
}

// Platform returns the platform the installer targets.
func (i *Installer) Platform() domain.Platform {
	return i.platform
}

// VenvPath is the absolute-or-relative path of the environment directory.
func (i *Installer) VenvPath() string {
	return filepath.Join(i.dir, VenvDir)
}

// ScriptPath is the path of the activation script.
func (i *Installer) ScriptPath() string {
	return filepath.Join(i.dir, i.cfg.ActivateScript)
}

// State reports whether the environment directory exists.
func (i *Installer) State() domain.State {
	info, err := os.Stat(i.VenvPath())
	if err == nil && info.IsDir() {
		return domain.StateInstalled
	}
	return domain.StateUninstalled
}

func (i *Installer) transition(ctx context.Context, from, to domain.State) {
	if from == to {
		return
	}
	i.logger.Info("State Change", "from", from, "to", to)
	if i.hooks.OnStateChange != nil {
		i.hooks.OnStateChange(ctx, &domain.StateEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStateChange, RunID: i.runID},
			From:      from,
			To:        to,
		})
	}
}

func (i *Installer) printf(format string, args ...any) {
	fmt.Fprintf(i.out, format, args...)
}
