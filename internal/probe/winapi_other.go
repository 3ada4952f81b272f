//go:build !windows

package probe

import "errors"

const processorFeatureHypervisor = 29

var errNoWinAPI = errors.New("windows API unavailable")

func isDebuggerPresent() (bool, error) { return false, errNoWinAPI }

func processorFeaturePresent(uint32) (bool, error) { return false, errNoWinAPI }
