//go:build !windows

package probe

import "errors"

func wmiComputerSystem() (string, error) {
	return "", errors.New("wmi unavailable")
}
