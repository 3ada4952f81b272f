package probe

import "time"

// timingSink keeps the measurement loop from being optimized away.
var timingSink uint64

// TimingSkew runs a fixed-iteration arithmetic loop and flags the host when
// it takes longer than the configured threshold. Virtualization and
// single-step debugging inflate raw loop latency, but so does a slow CPU:
// this is a coarse heuristic and deliberately the weakest signal in the
// catalog. Runs on every platform.
func (c *Catalog) TimingSkew() Result {
	start := time.Now()
	var acc uint64
	for i := 0; i < c.ref.TimingIterations; i++ {
		acc += uint64(i)
	}
	timingSink = acc
	if time.Since(start) > c.ref.TimingThreshold {
		return SignalDetected
	}
	return NoSignal
}
