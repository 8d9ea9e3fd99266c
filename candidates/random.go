package candidates

import (
	"fmt"
	"sync"
)

// Random draws NumCandidates length-CodeLen strings uniformly from the
// 0-3 alphabet, splitting the work across Threads workers each seeded
// distinctly from Seed plus its own worker index (no shared generator).
// The output may contain duplicates, per spec.md's generator contract.
//
// If DedupSketch is set, a Mash-style MinHash pre-pass (see sketch.go)
// collapses near-duplicate strings before they reach the exact
// edit-distance conflict graph; this only trims obvious duplicates and
// is never a substitute for the exact distance check.
type Random struct {
	CodeLen       int
	NumCandidates int
	Threads       int
	Seed          int64

	DedupSketch bool
	KmerSize    uint
	SketchSize  uint
}

func (g Random) Generate() ([]string, error) {
	threads := g.Threads
	if threads < 1 {
		threads = 1
	}
	out := make([]string, g.NumCandidates)

	var wg sync.WaitGroup
	perWorker := (g.NumCandidates + threads - 1) / threads
	for t := 0; t < threads; t++ {
		start := t * perWorker
		end := start + perWorker
		if end > g.NumCandidates {
			end = g.NumCandidates
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end, workerIdx int) {
			defer wg.Done()
			rng := newRand(g.Seed + int64(workerIdx))
			buf := make([]byte, g.CodeLen)
			for i := start; i < end; i++ {
				for j := range buf {
					buf[j] = '0' + byte(rng.Intn(4))
				}
				out[i] = string(buf)
			}
		}(start, end, t)
	}
	wg.Wait()

	if g.DedupSketch {
		kmerSize, sketchSize := g.KmerSize, g.SketchSize
		if kmerSize == 0 {
			kmerSize = 4
		}
		if sketchSize == 0 {
			sketchSize = 8
		}
		out = DedupBySketch(out, kmerSize, sketchSize)
	}
	return out, nil
}

func (g Random) Info() string {
	return fmt.Sprintf("Random(n=%d, numCandidates=%d, threads=%d)", g.CodeLen, g.NumCandidates, g.Threads)
}
