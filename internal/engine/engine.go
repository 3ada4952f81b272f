// Package engine aggregates probe results into the final verdict.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/ferrost/hostvet/internal/metrics"
	"github.com/ferrost/hostvet/internal/probe"
	"github.com/ferrost/hostvet/internal/procscan"
	"github.com/ferrost/hostvet/internal/refdata"
)

// Engine runs a fixed probe set and folds the results with logical OR.
// It keeps no state between runs; Detect may be called repeatedly.
type Engine struct {
	probes []probe.Probe
	logger *slog.Logger
}

// New wraps an explicit probe set. Probes run in slice order but must not
// depend on it. A nil logger discards diagnostics.
func New(probes []probe.Probe, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{probes: probes, logger: logger}
}

// Default assembles the built-in catalog plus the concurrent process scanner
// against the given reference data.
func Default(ref refdata.Reference, logger *slog.Logger, scanWorkers int) *Engine {
	probes := probe.NewCatalog(ref).Probes()
	probes = append(probes, ScannerProbe(ref, scanWorkers))
	return New(probes, logger)
}

// ScannerProbe adapts the process scanner to the probe contract. The whole
// scan is bounded by the reference subprocess timeout so a stalled process
// table cannot hang the detection pass.
func ScannerProbe(ref refdata.Reference, workers int) probe.Probe {
	s := procscan.New(ref.ProcessDenylist, workers)
	timeout := ref.SubprocessTimeout
	return probe.Probe{
		Name:     "suspicious-processes",
		Category: probe.CategoryProcess,
		Check: func() probe.Result {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			if s.Scan(ctx) {
				return probe.SignalDetected
			}
			return probe.NoSignal
		},
	}
}

// Detect runs every registered probe exactly once and returns true iff at
// least one signaled. All probes run even after a positive signal so debug
// logs and metrics cover the full catalog; the OR fold makes the order and
// completeness irrelevant to the verdict. An empty probe set yields false.
func (e *Engine) Detect() bool {
	detected := false
	for _, p := range e.probes {
		start := time.Now()
		res := p.Check()
		elapsed := time.Since(start)

		metrics.ObserveProbe(p.Name, res.String(), elapsed)
		e.logger.Debug("probe finished",
			"probe", p.Name,
			"category", string(p.Category),
			"result", res.String(),
			"elapsed", elapsed,
		)
		if res.Signaled() {
			detected = true
		}
	}
	metrics.ObserveVerdict(detected)
	e.logger.Info("detection pass complete", "probes", len(e.probes), "detected", detected)
	return detected
}
