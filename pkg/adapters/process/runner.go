// Package process runs the external tools the installer depends on.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/venvstrap/pkg/domain"
)

// ExitError reports a command that ran and failed, or could not be started.
type ExitError struct {
	Command string
	// Code is the exit status, or -1 when the process did not start or was killed.
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command '%s' failed (exit code %d): %v", e.Command, e.Code, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Runner executes commands in the project directory, streaming their output.
type Runner struct {
	out     io.Writer
	errOut  io.Writer
	baseDir string
	shell   []string
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	runID   string
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithOutput sets where command output and banners are written.
func WithOutput(out, errOut io.Writer) RunnerOption {
	return func(r *Runner) {
		r.out = out
		r.errOut = errOut
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithShell sets the argv prefix used by Shell, e.g. {"sh", "-c"}.
func WithShell(shell []string) RunnerOption {
	return func(r *Runner) {
		r.shell = shell
	}
}

// WithHooks registers lifecycle hooks fired around every command.
func WithHooks(hooks domain.LifecycleHooks) RunnerOption {
	return func(r *Runner) {
		r.hooks = hooks
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithRunID tags emitted events with the invocation ID.
func WithRunID(id string) RunnerOption {
	return func(r *Runner) {
		r.runID = id
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		out:    os.Stdout,
		errOut: os.Stderr,
		shell:  []string{"sh", "-c"},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes name with args and fails on a non-zero exit.
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	line := strings.Join(append([]string{name}, args...), " ")
	r.banner(line)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.out
	cmd.Stderr = r.errOut
	return r.execute(ctx, name, line, cmd)
}

// Shell executes a command line through the platform shell.
// When check is false a failure is logged and swallowed.
func (r *Runner) Shell(ctx context.Context, cmdline string, check bool) error {
	if len(r.shell) == 0 {
		return errors.New("no shell configured")
	}
	r.banner(cmdline)

	cmd := shellCommand(ctx, r.shell, cmdline)
	cmd.Stdout = r.out
	cmd.Stderr = r.errOut

	program, _, _ := strings.Cut(cmdline, " ")
	err := r.execute(ctx, program, cmdline, cmd)
	if err != nil && !check {
		r.logger.Debug("Ignoring command failure", "command", cmdline, "err", err)
		return nil
	}
	return err
}

// Output executes name and returns its trimmed stdout and stderr.
// Some interpreters print their version on stderr, so both streams are captured.
func (r *Runner) Output(ctx context.Context, name string, args ...string) (string, error) {
	line := strings.Join(append([]string{name}, args...), " ")

	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := r.execute(ctx, name, line, cmd)
	return strings.TrimSpace(buf.String()), err
}

// LookPath reports whether name resolves on the executable search path.
func (r *Runner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func (r *Runner) banner(line string) {
	fmt.Fprintf(r.out,
		"########################################\n"+
			"# Executing '%s'\n"+
			"########################################\n\n", line)
}

func (r *Runner) execute(ctx context.Context, program, line string, cmd *exec.Cmd) error {
	cmd.Dir = r.baseDir

	event := &domain.CommandEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCommandStart, RunID: r.runID},
		Program:   filepath.Base(program),
		Command:   line,
	}
	if r.hooks.OnCommandStart != nil {
		r.hooks.OnCommandStart(ctx, event)
	}
	r.logger.Debug("Command Start", "command", line, "dir", r.baseDir)

	err := cmd.Run()

	end := *event
	end.Type = domain.EventCommandEnd
	end.Timestamp = time.Now()
	end.Duration = end.Timestamp.Sub(event.Timestamp)

	if err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(err, ctxErr)
		}
		err = &ExitError{Command: line, Code: code, Err: err}
		end.ExitCode = code
		end.IsError = true
	}

	if r.hooks.OnCommandEnd != nil {
		r.hooks.OnCommandEnd(ctx, &end)
	}
	r.logger.Debug("Command End", "command", line, "duration", end.Duration, "exit_code", end.ExitCode)
	return err
}
