//go:build !darwin

package probe

import "errors"

func hvVMMPresent() (bool, error) {
	return false, errors.New("hv sysctl unavailable")
}
