//go:build darwin

package probe

import "golang.org/x/sys/unix"

// hvVMMPresent reports whether the kernel says we run under a VMM.
// kern.hv_vmm_present exists on 10.15+.
func hvVMMPresent() (bool, error) {
	v, err := unix.SysctlUint32("kern.hv_vmm_present")
	if err != nil {
		return false, err
	}
	return v != 0, nil
}
