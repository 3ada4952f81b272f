package probe

import (
	"os"
	"strconv"
	"strings"

	gopsproc "github.com/shirou/gopsutil/v4/process"
)

// HypervisorFeature asks the OS directly whether a hypervisor is active.
// Only Windows exposes such a flag; elsewhere CPUHypervisorFlag covers it.
func (c *Catalog) HypervisorFeature() Result {
	if c.goos != "windows" {
		return Inapplicable
	}
	present, err := processorFeaturePresent(processorFeatureHypervisor)
	if err != nil {
		return NoSignal
	}
	if present {
		return SignalDetected
	}
	return NoSignal
}

// DebuggerAttached detects an attached debugger. Windows has a native flag;
// Linux exposes the tracer PID in procfs; on other Unix-likes we fall back to
// matching the parent process name against known debugger names.
func (c *Catalog) DebuggerAttached() Result {
	switch c.goos {
	case "windows":
		attached, err := isDebuggerPresent()
		if err != nil {
			return NoSignal
		}
		if attached {
			return SignalDetected
		}
		return NoSignal
	case "linux":
		if tracerPID() > 0 {
			return SignalDetected
		}
		return c.parentDebugger()
	case "darwin":
		return c.parentDebugger()
	default:
		return Inapplicable
	}
}

// tracerPID returns the PID of the process tracing us, or 0. Reads
// /proc/self/status, so it only means something on Linux.
func tracerPID() int {
	b, err := os.ReadFile("/proc/self/status")
	if err != nil {
		return 0
	}
	for _, line := range strings.Split(string(b), "\n") {
		if v, ok := strings.CutPrefix(line, "TracerPid:"); ok {
			pid, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return 0
			}
			return pid
		}
	}
	return 0
}

func (c *Catalog) parentDebugger() Result {
	p, err := gopsproc.NewProcess(int32(os.Getppid()))
	if err != nil {
		return NoSignal
	}
	name, err := p.Name()
	if err != nil {
		return NoSignal
	}
	return matchDebuggerName(name, c.ref.DebuggerNames)
}

func matchDebuggerName(name string, debuggers []string) Result {
	norm := strings.ToLower(strings.TrimSpace(name))
	for _, d := range debuggers {
		if norm == d {
			return SignalDetected
		}
	}
	return NoSignal
}
