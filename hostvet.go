// Package hostvet reports whether the current host looks like a virtual
// machine, sandbox or debugged process. It runs a catalog of independent,
// failure-tolerant probes and ORs their signals into a single verdict.
package hostvet

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	cfg "github.com/ferrost/hostvet/internal/config"
	"github.com/ferrost/hostvet/internal/engine"
	"github.com/ferrost/hostvet/internal/logger"
	"github.com/ferrost/hostvet/internal/metrics"
	"github.com/ferrost/hostvet/internal/refdata"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type Reference = refdata.Reference

type Overrides = refdata.Overrides

type Config = cfg.FileConfig

type LogConfig = logger.Config

// DefaultReference returns the built-in detection reference data.
func DefaultReference() Reference { return refdata.Default() }

// Detector is a thin facade over internal/engine.Engine.
// It provides a stable public API for embedding.

type Detector struct{ inner *engine.Engine }

type options struct {
	ref         Reference
	overrides   []Overrides
	logger      *slog.Logger
	scanWorkers int
}

// Option customizes a Detector.
type Option func(*options)

// WithReference replaces the built-in reference data entirely.
func WithReference(r Reference) Option { return func(o *options) { o.ref = r } }

// WithOverrides layers extra reference data on top of the base set.
// May be given multiple times; overrides apply in order.
func WithOverrides(ov Overrides) Option {
	return func(o *options) { o.overrides = append(o.overrides, ov) }
}

// WithLogger routes probe diagnostics to the given logger.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithScanWorkers sizes the process-scanner pool; <= 0 means CPU count.
func WithScanWorkers(n int) Option { return func(o *options) { o.scanWorkers = n } }

// New builds a Detector with the full built-in probe catalog.
func New(opts ...Option) *Detector {
	o := options{ref: refdata.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	ref := o.ref
	for _, ov := range o.overrides {
		ref = refdata.Merge(ref, ov)
	}
	return &Detector{inner: engine.Default(ref, o.logger, o.scanWorkers)}
}

// Detect runs every probe once and returns true when any of them signals.
// It is safe to call repeatedly; nothing is cached between calls.
func (d *Detector) Detect() bool { return d.inner.Detect() }

// Detect is a convenience one-shot using the default detector.
func Detect() bool { return New().Detect() }

// LoadConfig parses a TOML config file; see internal/config for the layout.
func LoadConfig(path string) (*Config, error) { return cfg.Load(path) }

// NewLogger builds the diagnostic logger described by c. The closer is
// non-nil only for file-backed output.
func NewLogger(c LogConfig) (*slog.Logger, io.Closer) { return logger.New(c) }

// Metrics helpers (public facade)

func RegisterMetrics(r prometheus.Registerer) error { return metrics.Register(r) }
func RegisterMetricsDefault() error                 { return metrics.Register(prometheus.DefaultRegisterer) }
