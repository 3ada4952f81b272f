package probe

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// runCommand executes a helper binary directly (no shell) with a hard
// timeout. On timeout the process is killed by CommandContext; WaitDelay
// guarantees Run returns even if the child holds its pipes open. Returns
// captured stdout; any failure (missing binary, non-zero exit, timeout)
// surfaces as an error for the caller to collapse into NoSignal.
func runCommand(timeout time.Duration, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = nil
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		return "", err
	}
	return out.String(), nil
}
