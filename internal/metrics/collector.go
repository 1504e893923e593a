// Package metrics turns installer lifecycle events into Prometheus metrics.
//
// A run is short-lived, so metrics are exported to a textfile for the node
// exporter's textfile collector instead of being served over HTTP.
package metrics

import (
	"context"

	"github.com/aretw0/venvstrap/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns a private registry fed by lifecycle hooks.
type Collector struct {
	registry    *prometheus.Registry
	commands    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	transitions *prometheus.CounterVec
	lastRun     prometheus.Gauge
}

// NewCollector creates a Collector with all metrics registered.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "venvstrap_commands_total",
				Help: "External commands run by the installer",
			},
			[]string{"program", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "venvstrap_command_duration_seconds",
				Help:    "Duration of external commands",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
			[]string{"program"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "venvstrap_state_transitions_total",
				Help: "Installation state transitions",
			},
			[]string{"from", "to"},
		),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "venvstrap_last_run_exit_code",
			Help: "Exit code of the last installer run",
		}),
	}
	c.registry.MustRegister(c.commands, c.duration, c.transitions, c.lastRun)
	return c
}

// Hooks returns lifecycle hooks that record into the collector.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommandEnd: func(ctx context.Context, e *domain.CommandEvent) {
			result := "success"
			if e.IsError {
				result = "failure"
			}
			c.commands.WithLabelValues(e.Program, result).Inc()
			c.duration.WithLabelValues(e.Program).Observe(e.Duration.Seconds())
		},
		OnStateChange: func(ctx context.Context, e *domain.StateEvent) {
			c.transitions.WithLabelValues(e.From.String(), e.To.String()).Inc()
		},
	}
}

// RecordExit stores the process exit code of the run.
func (c *Collector) RecordExit(code int) {
	c.lastRun.Set(float64(code))
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes all metrics in the text exposition format.
// The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
