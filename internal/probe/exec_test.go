package probe

import (
	"runtime"
	"strings"
	"testing"
	"time"
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires Unix-like environment")
	}
}

func TestRunCommandCapturesStdout(t *testing.T) {
	requireUnix(t)
	out, err := runCommand(2*time.Second, "echo", "hello")
	if err != nil {
		t.Fatalf("echo failed: %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunCommandMissingBinary(t *testing.T) {
	if _, err := runCommand(2*time.Second, "__hostvet_no_such_binary__"); err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestRunCommandTimeoutKillsHelper(t *testing.T) {
	requireUnix(t)
	start := time.Now()
	_, err := runCommand(200*time.Millisecond, "sleep", "10")
	elapsed := time.Since(start)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	// the bound must hold with margin; a leaked child would block Run
	if elapsed > 3*time.Second {
		t.Fatalf("timeout not enforced, took %v", elapsed)
	}
}

// A stalled helper degrades the probe to NoSignal and the probe
// itself still returns within the bound.
func TestSubprocessProbeTimeoutContainment(t *testing.T) {
	requireUnix(t)
	ref := testRef()
	ref.SubprocessTimeout = 200 * time.Millisecond
	c := NewCatalogOS(ref, "windows") // wmic/reg lookups will fail fast here

	done := make(chan Result, 1)
	go func() { done <- c.WindowsSandboxKey() }()
	select {
	case got := <-done:
		if got != NoSignal {
			t.Fatalf("got %v, want NoSignal", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("probe did not complete within bound")
	}
}
