// Package probe implements the individual detection checks. Each probe
// inspects one piece of host state and reports a tri-state Result; operational
// failures never escape a probe.
package probe

import (
	"runtime"

	"github.com/ferrost/hostvet/internal/refdata"
)

// Result is the outcome of a single probe invocation.
type Result int

const (
	// NoSignal means the check ran and found nothing, or failed operationally
	// (missing binary, permission denied, timeout).
	NoSignal Result = iota
	// SignalDetected means the probe found evidence of a VM/sandbox/debugger.
	SignalDetected
	// Inapplicable means the probe has no implementation for the current
	// platform. Contributes false to the verdict, same as NoSignal.
	Inapplicable
)

func (r Result) String() string {
	switch r {
	case SignalDetected:
		return "signal"
	case Inapplicable:
		return "inapplicable"
	default:
		return "no-signal"
	}
}

// Signaled reports whether the result counts toward a positive verdict.
func (r Result) Signaled() bool { return r == SignalDetected }

// Category groups probes by the kind of evidence they examine.
type Category string

const (
	CategoryHardware Category = "hardware"
	CategoryDebugger Category = "debugger"
	CategorySandbox  Category = "sandbox"
	CategoryProcess  Category = "process"
	CategoryTiming   Category = "timing"
)

// Probe associates a named check with its category. Check must be safe to
// call any number of times and must never panic or return an error; every
// failure mode collapses into the Result.
type Probe struct {
	Name     string
	Category Category
	Check    func() Result
}

// Catalog builds the built-in probe set against a fixed Reference. The OS
// identifier is read once at construction so tests can exercise the platform
// dispatch of every probe on any host.
type Catalog struct {
	ref  refdata.Reference
	goos string
}

// NewCatalog returns a catalog for the running operating system.
func NewCatalog(ref refdata.Reference) *Catalog {
	return NewCatalogOS(ref, runtime.GOOS)
}

// NewCatalogOS returns a catalog that dispatches as if running on goos.
func NewCatalogOS(ref refdata.Reference, goos string) *Catalog {
	return &Catalog{ref: ref, goos: goos}
}

// Probes returns the full built-in probe set, excluding the process scanner
// which is wired separately by the engine.
func (c *Catalog) Probes() []Probe {
	return []Probe{
		{Name: "system-model", Category: CategoryHardware, Check: c.SystemModel},
		{Name: "mac-vendor", Category: CategoryHardware, Check: c.MACVendor},
		{Name: "vm-tool-paths", Category: CategoryHardware, Check: c.VMToolPaths},
		{Name: "vbox-drivers", Category: CategoryHardware, Check: c.VBoxDrivers},
		{Name: "cpu-hypervisor-flag", Category: CategoryHardware, Check: c.CPUHypervisorFlag},
		{Name: "hypervisor-feature", Category: CategoryDebugger, Check: c.HypervisorFeature},
		{Name: "debugger-attached", Category: CategoryDebugger, Check: c.DebuggerAttached},
		{Name: "windows-sandbox-key", Category: CategorySandbox, Check: c.WindowsSandboxKey},
		{Name: "sandbox-artifacts", Category: CategorySandbox, Check: c.SandboxArtifacts},
		{Name: "timing-skew", Category: CategoryTiming, Check: c.TimingSkew},
	}
}
