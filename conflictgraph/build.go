package conflictgraph

import (
	"sync"
	"time"

	"github.com/nucleolabs/codebookgen/editdistance"
)

// Checkpoint is invoked periodically (by wall-clock interval) from each
// worker goroutine with that worker's current outer index and the edges
// it has accumulated so far. Implementations must not block for long;
// the call happens on the worker's own goroutine between outer-loop
// iterations.
type Checkpoint func(worker int, lastI int, edges [][2]int)

// BuildOptions configures the parallel conflict-graph builder.
type BuildOptions struct {
	Threads int
	MinED   int
	// SaveInterval, when positive, is the wall-clock period between
	// Checkpoint calls. Zero disables checkpointing.
	SaveInterval time.Duration
	Checkpoint   Checkpoint
	// StartIndex, when non-nil, gives each worker's resume point
	// (worker t resumes at StartIndex[t] instead of t). Used to resume
	// stage 1 from per-worker progress files.
	StartIndex []int
	// Preloaded carries edges already known from a resumed checkpoint;
	// they are merged into the final graph alongside freshly discovered
	// ones.
	Preloaded [][2]int
}

// Build constructs the conflict graph over candidates: an edge connects
// i and j whenever their edit distance is below opts.MinED. Work is
// partitioned across opts.Threads goroutines by interleaved stride
// (worker t owns i = t, t+T, t+2T, ...), each writing only to its own
// local edge buffer until the final single-threaded merge, matching the
// single-writer/many-reader discipline used throughout this pipeline.
func Build(candidates []string, opts BuildOptions) *Graph {
	threads := opts.Threads
	if threads < 1 {
		threads = 1
	}
	n := len(candidates)

	localEdges := make([][][2]int, threads)
	var wg sync.WaitGroup
	for t := 0; t < threads; t++ {
		start := t
		if opts.StartIndex != nil && t < len(opts.StartIndex) {
			start = opts.StartIndex[t]
		}
		wg.Add(1)
		go func(t, start int) {
			defer wg.Done()
			var ticker *time.Ticker
			if opts.SaveInterval > 0 && opts.Checkpoint != nil {
				ticker = time.NewTicker(opts.SaveInterval)
				defer ticker.Stop()
			}
			var local [][2]int
			for i := start; i < n; i += threads {
				pattern := editdistance.NewPattern(candidates[i])
				for j := i + 1; j < n; j++ {
					if !pattern.BandedAtLeast(candidates[j], opts.MinED) {
						local = append(local, [2]int{i, j})
					}
				}
				if ticker != nil {
					select {
					case <-ticker.C:
						opts.Checkpoint(t, i, local)
					default:
					}
				}
			}
			if opts.Checkpoint != nil {
				opts.Checkpoint(t, n, local)
			}
			localEdges[t] = local
		}(t, start)
	}
	wg.Wait()

	g := New()
	for _, e := range opts.Preloaded {
		g.AddEdge(e[0], e[1])
	}
	for _, edges := range localEdges {
		for _, e := range edges {
			g.AddEdge(e[0], e[1])
		}
	}
	return g
}
