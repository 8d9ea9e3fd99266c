// Package candidates implements the closed set of candidate-generation
// methods: LinearCode, AllStrings, Random, VTCode, DifferentialVTCode,
// FileRead, and RandomLinear. Each is a stateless value exposing
// Generate and Info; there is no shared base class, following a closed
// tagged variant instead of generator-class polymorphism.
package candidates

import (
	"math"

	"github.com/nucleolabs/codebookgen/codebookerr"
)

// Generator produces an unfiltered candidate set for a fixed code length.
type Generator interface {
	// Generate returns the candidate strings this method produces.
	Generate() ([]string, error)
	// Info describes the method and its parameters, used in run
	// summaries and progress files.
	Info() string
}

// totalSpace returns 4^n and true, or false if that value would overflow
// a uint64 — the "resource exhaustion" condition for exhaustive
// enumeration methods.
func totalSpace(n int) (uint64, bool) {
	if n < 0 || n > 31 {
		return 0, false
	}
	total := uint64(1)
	for i := 0; i < n; i++ {
		if total > math.MaxUint64/4 {
			return 0, false
		}
		total *= 4
	}
	return total, true
}

// indexToWord converts index (0 <= index < 4^n) to its length-n base-4
// digit string, most significant digit first.
func indexToWord(index uint64, n int) string {
	buf := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		buf[i] = byte('0' + index%4)
		index /= 4
	}
	return string(buf)
}

func tooLargeErr(n int) error {
	return codebookerr.New(codebookerr.Resource, "candidate space 4^n overflows a 64-bit index")
}
