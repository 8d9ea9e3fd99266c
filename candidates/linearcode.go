package candidates

import (
	"fmt"

	"github.com/nucleolabs/codebookgen/gf4"
)

// LinearCode generates every codeword of a shortened GF(4) linear block
// code with the requested length and minimum Hamming distance.
type LinearCode struct {
	CodeLen int
	MinHD   int
}

func (g LinearCode) Generate() ([]string, error) {
	words, err := gf4.CodedVecs(g.CodeLen, g.MinHD)
	if err != nil {
		return nil, err
	}
	return words, nil
}

func (g LinearCode) Info() string {
	return fmt.Sprintf("LinearCode(n=%d, minHD=%d)", g.CodeLen, g.MinHD)
}

// RandomLinear returns NumCandidates distinct codewords of the same
// shortened linear code LinearCode enumerates, chosen by a random
// permutation seeded from Seed (every codeword when NumCandidates is at
// least the code size). It builds the full codeword list with
// gf4.CodedVecs before sampling, so it is bound by the same enumeration
// size limit as LinearCode.
type RandomLinear struct {
	CodeLen       int
	MinHD         int
	NumCandidates int
	Seed          int64
}

func (g RandomLinear) Generate() ([]string, error) {
	all, err := gf4.CodedVecs(g.CodeLen, g.MinHD)
	if err != nil {
		return nil, err
	}
	if g.NumCandidates >= len(all) {
		return all, nil
	}
	rng := newRand(g.Seed)
	perm := rng.Perm(len(all))
	out := make([]string, g.NumCandidates)
	for i := 0; i < g.NumCandidates; i++ {
		out[i] = all[perm[i]]
	}
	return out, nil
}

func (g RandomLinear) Info() string {
	return fmt.Sprintf("RandomLinear(n=%d, minHD=%d, numCandidates=%d)", g.CodeLen, g.MinHD, g.NumCandidates)
}
