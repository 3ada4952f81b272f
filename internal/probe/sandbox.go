package probe

import "strings"

const windowsSandboxKey = `HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall\Microsoft Windows Sandbox`

// WindowsSandboxKey queries the registry for the Windows Sandbox uninstall
// entry. reg.exe is used instead of a registry API so the probe stays a
// bounded subprocess call like the other helpers.
func (c *Catalog) WindowsSandboxKey() Result {
	if c.goos != "windows" {
		return Inapplicable
	}
	out, err := runCommand(c.ref.SubprocessTimeout, "reg", "query", windowsSandboxKey)
	if err != nil {
		return NoSignal
	}
	if strings.Contains(out, "Microsoft Windows Sandbox") {
		return SignalDetected
	}
	return NoSignal
}

// SandboxArtifacts checks sandbox-product artifact paths for this OS.
// Entries may be glob patterns (the WindowsApps package directories carry a
// version suffix).
func (c *Catalog) SandboxArtifacts() Result {
	patterns, ok := c.ref.SandboxPaths[c.goos]
	if !ok {
		return Inapplicable
	}
	return anyGlobMatches(patterns)
}
