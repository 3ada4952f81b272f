// Package metrics exposes Prometheus collectors for probe execution. They are
// observed unconditionally and published only when the embedding program calls
// Register; hostvet itself never serves them.
package metrics

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	regOK atomic.Bool

	probeRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hostvet",
			Subsystem: "probe",
			Name:      "runs_total",
			Help:      "Probe executions by outcome (signal, no-signal, inapplicable).",
		}, []string{"probe", "outcome"},
	)
	probeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hostvet",
			Subsystem: "probe",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration of individual probe executions.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"probe"},
	)
	verdicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hostvet",
			Name:      "verdicts_total",
			Help:      "Detection passes by final verdict.",
		}, []string{"verdict"},
	)
)

// Register registers all collectors with the provided registerer.
// Safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	for _, c := range []prometheus.Collector{probeRuns, probeDuration, verdicts} {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// ObserveProbe records one probe execution.
func ObserveProbe(name, outcome string, d time.Duration) {
	probeRuns.WithLabelValues(name, outcome).Inc()
	probeDuration.WithLabelValues(name).Observe(d.Seconds())
}

// ObserveVerdict records one completed detection pass.
func ObserveVerdict(detected bool) {
	v := "clean"
	if detected {
		v = "detected"
	}
	verdicts.WithLabelValues(v).Inc()
}
