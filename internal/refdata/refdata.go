// Package refdata holds the static reference data the probes match against:
// known VM vendor strings, hypervisor MAC prefixes, tool install paths and the
// suspicious-process denylist. Keeping the data out of probe logic lets it be
// refreshed (or extended at runtime via config) without touching any probe.
package refdata

import (
	"strings"
	"time"
)

// Reference is an immutable bundle of detection reference data.
// Build one with Default and extend it with Merge; probes only read it.
type Reference struct {
	// VendorStrings are substrings of system model/manufacturer output that
	// indicate a virtualized machine.
	VendorStrings []string

	// MACPrefixes are hypervisor OUI prefixes, lowercase, colon-separated.
	MACPrefixes []string

	// VMToolPaths lists VM guest-tool install locations per GOOS.
	VMToolPaths map[string][]string

	// VBoxDriverPaths lists VirtualBox guest driver/device files per GOOS.
	VBoxDriverPaths map[string][]string

	// SandboxPaths lists sandbox-product artifact paths per GOOS. Entries may
	// contain glob metacharacters.
	SandboxPaths map[string][]string

	// DebuggerNames are process names (normalized) that identify a debugger
	// when seen as our parent process.
	DebuggerNames []string

	// ProcessDenylist is the set of suspicious process names, normalized with
	// NormalizeProcName. The map form makes concurrent lookups cheap.
	ProcessDenylist map[string]struct{}

	// TimingIterations and TimingThreshold parameterize the loop-skew probe.
	TimingIterations int
	TimingThreshold  time.Duration

	// SubprocessTimeout bounds every helper-process invocation.
	SubprocessTimeout time.Duration
}

// NormalizeProcName lowercases a process name and strips a trailing ".exe" so
// that denylist entries match across platform naming conventions.
func NormalizeProcName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSuffix(name, ".exe")
}

// Default returns the built-in reference data.
func Default() Reference {
	deny := make(map[string]struct{})
	for _, n := range []string{
		// VM guest agents
		"vmtoolsd", "vmwaretray", "vmwareuser", "vgauthservice",
		"vboxservice", "vboxtray", "qemu-ga", "prl_tools",
		// traffic inspection
		"wireshark", "tshark", "fiddler", "charles",
		// sandbox agents and process inspectors
		"sandboxie", "sbiesvc", "processhacker", "procmon", "procmon64",
		"x64dbg", "x32dbg", "ollydbg", "ida", "ida64",
	} {
		deny[n] = struct{}{}
	}
	return Reference{
		VendorStrings: []string{
			"Virtual", "VMware", "VirtualBox", "Hyper-V", "QEMU", "KVM", "Parallels", "Xen",
		},
		MACPrefixes: []string{
			"00:05:69", "00:0c:29", "00:50:56", "00:1c:14", // VMware
			"00:03:ff", // Hyper-V
			"00:05:00",
			"08:00:27", "00:1c:42", // VirtualBox, Parallels
			"52:54:00", // QEMU/KVM
		},
		VMToolPaths: map[string][]string{
			"windows": {
				`C:\Program Files\VMware\VMware Tools`,
				`C:\Program Files\Oracle\VirtualBox Guest Additions`,
				`C:\Program Files\Microsoft Virtual PC`,
				`C:\Program Files\Hyper-V`,
			},
			"darwin": {
				"/Library/Application Support/VMware Tools",
				"/Library/Parallels Guest Tools",
			},
			"linux": {
				"/usr/bin/vmtoolsd",
				"/usr/bin/vmware-toolbox-cmd",
				"/usr/sbin/VBoxService",
				"/usr/bin/qemu-ga",
			},
		},
		VBoxDriverPaths: map[string][]string{
			"windows": {
				`C:\Windows\System32\drivers\VBoxGuest.sys`,
				`C:\Windows\System32\drivers\VBoxMouse.sys`,
				`C:\Windows\System32\drivers\VBoxSF.sys`,
			},
			"darwin": {
				"/Library/Extensions/VBoxGuest.kext",
			},
			"linux": {
				"/dev/vboxguest",
				"/dev/vboxuser",
			},
		},
		SandboxPaths: map[string][]string{
			"windows": {
				`C:\Program Files\WindowsApps\Microsoft.WindowsSandbox_*`,
				`C:\Program Files\WindowsApps\Microsoft.Sandbox_*`,
			},
			"linux": {
				"/etc/cuckoo",
				"/opt/cuckoo",
			},
		},
		DebuggerNames: []string{
			"gdb", "lldb", "dlv", "strace", "ltrace", "rr",
		},
		ProcessDenylist:   deny,
		TimingIterations:  1_000_000,
		TimingThreshold:   500 * time.Millisecond,
		SubprocessTimeout: 3 * time.Second,
	}
}

// Overrides carries user-supplied additions and tuning knobs, typically
// decoded from a config file. Zero values leave the corresponding field of
// the base Reference untouched.
type Overrides struct {
	ExtraVendorStrings []string
	ExtraMACPrefixes   []string
	ExtraVMToolPaths   map[string][]string
	ExtraSandboxPaths  map[string][]string
	ExtraProcesses     []string
	ExtraDebuggers     []string
	TimingIterations   int
	TimingThreshold    time.Duration
	SubprocessTimeout  time.Duration
}

// Merge returns a copy of r with o applied. r itself is not modified.
func Merge(r Reference, o Overrides) Reference {
	out := r
	out.VendorStrings = append(append([]string(nil), r.VendorStrings...), o.ExtraVendorStrings...)
	out.MACPrefixes = append([]string(nil), r.MACPrefixes...)
	for _, p := range o.ExtraMACPrefixes {
		out.MACPrefixes = append(out.MACPrefixes, strings.ToLower(p))
	}
	out.VMToolPaths = mergePathMap(r.VMToolPaths, o.ExtraVMToolPaths)
	out.SandboxPaths = mergePathMap(r.SandboxPaths, o.ExtraSandboxPaths)
	out.DebuggerNames = append(append([]string(nil), r.DebuggerNames...), o.ExtraDebuggers...)

	deny := make(map[string]struct{}, len(r.ProcessDenylist)+len(o.ExtraProcesses))
	for n := range r.ProcessDenylist {
		deny[n] = struct{}{}
	}
	for _, n := range o.ExtraProcesses {
		deny[NormalizeProcName(n)] = struct{}{}
	}
	out.ProcessDenylist = deny

	if o.TimingIterations > 0 {
		out.TimingIterations = o.TimingIterations
	}
	if o.TimingThreshold > 0 {
		out.TimingThreshold = o.TimingThreshold
	}
	if o.SubprocessTimeout > 0 {
		out.SubprocessTimeout = o.SubprocessTimeout
	}
	return out
}

func mergePathMap(base, extra map[string][]string) map[string][]string {
	out := make(map[string][]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = append([]string(nil), v...)
	}
	for k, v := range extra {
		out[k] = append(out[k], v...)
	}
	return out
}
