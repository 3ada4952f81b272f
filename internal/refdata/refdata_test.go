package refdata

import (
	"testing"
	"time"
)

func TestNormalizeProcName(t *testing.T) {
	cases := map[string]string{
		"VMTOOLSD.EXE":  "vmtoolsd",
		"vmtoolsd":      "vmtoolsd",
		"  WireShark ":  "wireshark",
		"vboxservice":   "vboxservice",
		"procmon64.exe": "procmon64",
	}
	for in, want := range cases {
		if got := NormalizeProcName(in); got != want {
			t.Fatalf("NormalizeProcName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultDenylistNormalized(t *testing.T) {
	ref := Default()
	if len(ref.ProcessDenylist) == 0 {
		t.Fatal("empty default denylist")
	}
	for n := range ref.ProcessDenylist {
		if NormalizeProcName(n) != n {
			t.Fatalf("denylist entry %q is not normalized", n)
		}
	}
	if _, ok := ref.ProcessDenylist["vmtoolsd"]; !ok {
		t.Fatal("vmtoolsd missing from default denylist")
	}
	// near-miss must not be present
	if _, ok := ref.ProcessDenylist["vmtoolsd2"]; ok {
		t.Fatal("vmtoolsd2 unexpectedly denylisted")
	}
}

func TestMergeExtendsWithoutMutatingBase(t *testing.T) {
	base := Default()
	baseProcs := len(base.ProcessDenylist)

	merged := Merge(base, Overrides{
		ExtraProcesses:   []string{"CustomAgent.EXE"},
		ExtraMACPrefixes: []string{"AA:BB:CC"},
		ExtraVMToolPaths: map[string][]string{"linux": {"/opt/custom-tools"}},
		TimingThreshold:  time.Second,
	})

	if _, ok := merged.ProcessDenylist["customagent"]; !ok {
		t.Fatal("extra process not normalized into denylist")
	}
	if merged.MACPrefixes[len(merged.MACPrefixes)-1] != "aa:bb:cc" {
		t.Fatalf("extra MAC prefix not lowercased: %v", merged.MACPrefixes)
	}
	if merged.TimingThreshold != time.Second {
		t.Fatalf("timing threshold override lost: %v", merged.TimingThreshold)
	}
	// zero-value knobs keep defaults
	if merged.TimingIterations != base.TimingIterations {
		t.Fatal("timing iterations changed without override")
	}
	if len(base.ProcessDenylist) != baseProcs {
		t.Fatal("Merge mutated base denylist")
	}
	found := false
	for _, p := range merged.VMToolPaths["linux"] {
		if p == "/opt/custom-tools" {
			found = true
		}
	}
	if !found {
		t.Fatal("extra linux tool path missing after merge")
	}
}
