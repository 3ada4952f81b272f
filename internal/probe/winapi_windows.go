//go:build windows

package probe

import "golang.org/x/sys/windows"

// Processor feature index reported by kernel32 when a hypervisor is present.
const processorFeatureHypervisor = 29

var (
	kernel32                      = windows.NewLazySystemDLL("kernel32.dll")
	procIsDebuggerPresent         = kernel32.NewProc("IsDebuggerPresent")
	procIsProcessorFeaturePresent = kernel32.NewProc("IsProcessorFeaturePresent")
)

func isDebuggerPresent() (bool, error) {
	if err := procIsDebuggerPresent.Find(); err != nil {
		return false, err
	}
	r, _, _ := procIsDebuggerPresent.Call()
	return r != 0, nil
}

func processorFeaturePresent(feature uint32) (bool, error) {
	if err := procIsProcessorFeaturePresent.Find(); err != nil {
		return false, err
	}
	r, _, _ := procIsProcessorFeaturePresent.Call(uintptr(feature))
	return r != 0, nil
}
