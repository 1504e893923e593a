package venvstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/venvstrap/internal/installer"
	"github.com/aretw0/venvstrap/pkg/config"
	"github.com/aretw0/venvstrap/pkg/domain"
)

// Bootstrapper is the high-level entry point of the library.
// It wraps the internal installer and provides a simplified API for consumers.
type Bootstrapper struct {
	dir        string
	cfg        *config.Config
	configPath string
	opts       []installer.Option
	installer  *installer.Installer
}

// Option defines a functional option for configuring the Bootstrapper.
type Option func(*Bootstrapper)

// WithConfig uses cfg instead of loading the project config file.
func WithConfig(cfg config.Config) Option {
	return func(b *Bootstrapper) {
		b.cfg = &cfg
	}
}

// WithConfigFile loads the config from path (relative to the project dir).
func WithConfigFile(path string) Option {
	return func(b *Bootstrapper) {
		b.configPath = path
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Bootstrapper) {
		b.opts = append(b.opts, installer.WithLifecycleHooks(hooks))
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bootstrapper) {
		b.opts = append(b.opts, installer.WithLogger(logger))
	}
}

// WithOutput sets where progress messages and command output are written.
func WithOutput(w io.Writer) Option {
	return func(b *Bootstrapper) {
		b.opts = append(b.opts, installer.WithOutput(w))
	}
}

// WithRenderer sets a renderer for the closing hint (e.g. markdown to ANSI).
func WithRenderer(r func(string) (string, error)) Option {
	return func(b *Bootstrapper) {
		if r != nil {
			b.opts = append(b.opts, installer.WithRenderer(r))
		}
	}
}

// WithPlatform overrides platform detection.
func WithPlatform(p domain.Platform) Option {
	return func(b *Bootstrapper) {
		b.opts = append(b.opts, installer.WithPlatform(p))
	}
}

// WithExecutor injects the command executor, bypassing real process execution.
func WithExecutor(e installer.Executor) Option {
	return func(b *Bootstrapper) {
		b.opts = append(b.opts, installer.WithExecutor(e))
	}
}

// New creates a Bootstrapper for the project in dir.
func New(dir string, opts ...Option) (*Bootstrapper, error) {
	b := &Bootstrapper{dir: dir}
	for _, opt := range opts {
		opt(b)
	}

	if b.cfg == nil {
		cfg, err := config.Load(dir, b.configPath)
		if err != nil {
			return nil, err
		}
		b.cfg = &cfg
	} else if err := b.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	b.installer = installer.New(dir, append([]installer.Option{installer.WithConfig(*b.cfg)}, b.opts...)...)
	return b, nil
}

// Install creates the environment if needed and installs the project into it.
func (b *Bootstrapper) Install(ctx context.Context, env domain.Env) error {
	return b.installer.Run(ctx, env, installer.RunOptions{})
}

// Remove deletes the environment and its activation script.
func (b *Bootstrapper) Remove(ctx context.Context, env domain.Env) error {
	return b.installer.Run(ctx, env, installer.RunOptions{Remove: true})
}

// State reports whether the project's environment exists.
func (b *Bootstrapper) State() domain.State {
	return b.installer.State()
}

// Config returns the effective project settings.
func (b *Bootstrapper) Config() config.Config {
	return *b.cfg
}

// RunID identifies this bootstrapper's invocation in logs and events.
func (b *Bootstrapper) RunID() string {
	return b.installer.RunID()
}
