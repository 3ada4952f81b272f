// Package procscan scans the live process table for names on the suspicious
// denylist. Name lookups dominate scan time, so they fan out across a small
// worker pool; the first hit cancels the rest.
package procscan

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	gopsproc "github.com/shirou/gopsutil/v4/process"

	"github.com/ferrost/hostvet/internal/refdata"
)

// nameLookup resolves one enumerated process to its executable name. A
// lookup may fail independently (access denied, process exited mid-scan);
// failures count as no match.
type nameLookup func(ctx context.Context) (string, error)

// enumerateFunc snapshots the process table once.
type enumerateFunc func(ctx context.Context) ([]nameLookup, error)

// Scanner matches enumerated process names against a fixed denylist.
// The denylist is read-only after construction and safe for concurrent reads.
type Scanner struct {
	deny      map[string]struct{}
	workers   int
	enumerate enumerateFunc
}

// New builds a scanner over the given normalized denylist. workers <= 0
// selects a pool sized to the host CPU count.
func New(deny map[string]struct{}, workers int) *Scanner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > 16 {
		workers = 16
	}
	return &Scanner{deny: deny, workers: workers, enumerate: enumerateProcesses}
}

func enumerateProcesses(ctx context.Context) ([]nameLookup, error) {
	procs, err := gopsproc.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	lookups := make([]nameLookup, 0, len(procs))
	for _, p := range procs {
		p := p
		lookups = append(lookups, func(ctx context.Context) (string, error) {
			return p.NameWithContext(ctx)
		})
	}
	return lookups, nil
}

// Scan reports whether any running process matches the denylist. Enumeration
// failure means no verdict can be formed and reads as false. Comparisons run
// concurrently; a positive match stops dispatching further lookups, which is
// an optimization only — every comparison is read-only and idempotent.
func (s *Scanner) Scan(ctx context.Context) bool {
	lookups, err := s.enumerate(ctx)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan nameLookup)
	var matched atomic.Bool
	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for lookup := range jobs {
				name, err := lookup(ctx)
				if err != nil {
					continue
				}
				if _, hit := s.deny[refdata.NormalizeProcName(name)]; hit {
					matched.Store(true)
					cancel()
				}
			}
		}()
	}

dispatch:
	for _, l := range lookups {
		select {
		case jobs <- l:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()
	return matched.Load()
}
