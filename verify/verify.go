// Package verify re-checks, in parallel, that an output codebook
// satisfies the minimum-edit-distance invariant it was built to
// guarantee.
package verify

import (
	"sync"
	"sync/atomic"

	"github.com/nucleolabs/codebookgen/editdistance"
)

// Result reports whether a codebook passed verification and, if not, one
// offending pair found.
type Result struct {
	Success bool
	FailA   string
	FailB   string
}

// Verify partitions codebook across threads by modular stride; each
// worker precomputes a Pattern for every word it owns and checks every
// later word for a distance violation. The first failure observed flips
// a shared flag; every worker stops scanning promptly after that (a
// best-effort early exit, not a guaranteed minimal-work abort).
func Verify(codebook []string, minED, threads int) Result {
	if threads < 1 {
		threads = 1
	}
	n := len(codebook)

	var success int32 = 1
	var failMu sync.Mutex
	var failA, failB string
	recordFailure := func(a, b string) {
		if atomic.CompareAndSwapInt32(&success, 1, 0) {
			failMu.Lock()
			failA, failB = a, b
			failMu.Unlock()
		}
	}

	var wg sync.WaitGroup
	for t := 0; t < threads; t++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			for i := t; i < n; i += threads {
				if atomic.LoadInt32(&success) == 0 {
					return
				}
				pattern := editdistance.NewPattern(codebook[i])
				for j := i + 1; j < n; j++ {
					if atomic.LoadInt32(&success) == 0 {
						return
					}
					if !pattern.BandedAtLeast(codebook[j], minED) {
						recordFailure(codebook[i], codebook[j])
						return
					}
				}
			}
		}(t)
	}
	wg.Wait()

	if atomic.LoadInt32(&success) == 0 {
		return Result{Success: false, FailA: failA, FailB: failB}
	}
	return Result{Success: true}
}
