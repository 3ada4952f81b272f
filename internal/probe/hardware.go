package probe

import (
	"bufio"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
)

// SystemModel checks the machine model/vendor strings reported by firmware
// for known hypervisor products.
func (c *Catalog) SystemModel() Result {
	var out string
	switch c.goos {
	case "windows":
		s, err := wmiComputerSystem()
		if err != nil {
			// wmic is deprecated but still present on most installs
			s, err = runCommand(c.ref.SubprocessTimeout, "wmic", "computersystem", "get", "model,manufacturer")
			if err != nil {
				return NoSignal
			}
		}
		out = s
	case "darwin":
		s, err := runCommand(c.ref.SubprocessTimeout, "sysctl", "-n", "hw.model")
		if err != nil {
			return NoSignal
		}
		out = s
	case "linux":
		out = readDMIStrings()
		if out == "" {
			return NoSignal
		}
	default:
		return Inapplicable
	}
	return containsVendor(out, c.ref.VendorStrings)
}

// readDMIStrings concatenates the sysfs DMI vendor and product identifiers.
// Missing or unreadable files contribute nothing.
func readDMIStrings() string {
	var sb strings.Builder
	for _, p := range []string{
		"/sys/class/dmi/id/sys_vendor",
		"/sys/class/dmi/id/product_name",
	} {
		if b, err := os.ReadFile(p); err == nil {
			sb.Write(b)
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func containsVendor(s string, vendors []string) Result {
	ls := strings.ToLower(s)
	for _, v := range vendors {
		if strings.Contains(ls, strings.ToLower(v)) {
			return SignalDetected
		}
	}
	return NoSignal
}

// MACVendor checks every network interface's hardware address against the
// known hypervisor OUI prefixes. Interface enumeration works the same way on
// all supported platforms, so there is no OS dispatch here.
func (c *Catalog) MACVendor() Result {
	ifaces, err := net.Interfaces()
	if err != nil {
		return NoSignal
	}
	for _, ifc := range ifaces {
		mac := strings.ToLower(ifc.HardwareAddr.String())
		if mac == "" {
			continue
		}
		for _, prefix := range c.ref.MACPrefixes {
			if strings.HasPrefix(mac, prefix) {
				return SignalDetected
			}
		}
	}
	return NoSignal
}

// VMToolPaths checks well-known guest-tool install locations for this OS.
func (c *Catalog) VMToolPaths() Result {
	paths, ok := c.ref.VMToolPaths[c.goos]
	if !ok {
		return Inapplicable
	}
	return anyPathExists(paths)
}

// VBoxDrivers checks for VirtualBox guest driver and device files.
func (c *Catalog) VBoxDrivers() Result {
	paths, ok := c.ref.VBoxDriverPaths[c.goos]
	if !ok {
		return Inapplicable
	}
	return anyPathExists(paths)
}

func anyPathExists(paths []string) Result {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return SignalDetected
		}
	}
	return NoSignal
}

// anyGlobMatches is like anyPathExists but entries may carry glob
// metacharacters. A bad pattern counts as no match.
func anyGlobMatches(patterns []string) Result {
	for _, p := range patterns {
		if !strings.ContainsAny(p, "*?[") {
			if _, err := os.Stat(p); err == nil {
				return SignalDetected
			}
			continue
		}
		if matches, err := filepath.Glob(p); err == nil && len(matches) > 0 {
			return SignalDetected
		}
	}
	return NoSignal
}

// scanCPUInfo looks for the "hypervisor" flag in /proc/cpuinfo content.
func scanCPUInfo(r io.Reader) Result {
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if !strings.HasPrefix(line, "flags") {
			continue
		}
		for _, f := range strings.Fields(line) {
			if f == "hypervisor" {
				return SignalDetected
			}
		}
	}
	return NoSignal
}

// CPUHypervisorFlag checks the CPU-level "running under a hypervisor" flag
// where the kernel exposes one. Windows is covered by HypervisorFeature.
func (c *Catalog) CPUHypervisorFlag() Result {
	switch c.goos {
	case "linux":
		f, err := os.Open("/proc/cpuinfo")
		if err != nil {
			return NoSignal
		}
		defer func() { _ = f.Close() }()
		return scanCPUInfo(f)
	case "darwin":
		present, err := hvVMMPresent()
		if err != nil {
			return NoSignal
		}
		if present {
			return SignalDetected
		}
		return NoSignal
	default:
		return Inapplicable
	}
}
