// Package solver implements the greedy vertex-elimination reduction of a
// conflict graph to an independent set: the codebook.
package solver

import (
	"sort"
	"time"

	"github.com/nucleolabs/codebookgen/conflictgraph"
)

// Policy selects the elimination discipline.
type Policy int

const (
	// MaxSumRow repeatedly discards the highest-degree vertex without
	// accepting it. This is the repository's default.
	MaxSumRow Policy = iota
	// MinSumRow repeatedly accepts the lowest-degree vertex into the
	// codebook, then deletes it and its entire neighborhood (a
	// radius-1 ball), which tends to yield a larger codebook at
	// somewhat higher per-step cost.
	MinSumRow
)

// SolveCheckpoint is invoked periodically with a snapshot of solver
// state: the vertices still under consideration, the vertices already
// accepted (populated only under MinSumRow), and the graph as it
// currently stands.
type SolveCheckpoint func(remaining map[int]struct{}, accepted []int, g *conflictgraph.Graph)

// SolveOptions configures the greedy solver.
type SolveOptions struct {
	Policy       Policy
	SaveInterval time.Duration
	Checkpoint   SolveCheckpoint
	// Remaining and Accepted, when non-nil, resume a prior run's state
	// instead of starting fresh from all n vertices.
	Remaining map[int]struct{}
	Accepted  []int
}

// Solve reduces g to an independent set over n vertices (0..n-1) and
// returns the vertex indices that form the codebook. Under MaxSumRow they
// are the surviving vertices in ascending order; under MinSumRow they are
// the accepted vertices in acceptance order, followed by the remaining
// vertices that never had a conflict, in ascending order.
func Solve(g *conflictgraph.Graph, n int, opts SolveOptions) []int {
	remaining := opts.Remaining
	if remaining == nil {
		remaining = make(map[int]struct{}, n)
		for v := 0; v < n; v++ {
			remaining[v] = struct{}{}
		}
	}
	accepted := append([]int(nil), opts.Accepted...)

	var ticker *time.Ticker
	if opts.SaveInterval > 0 && opts.Checkpoint != nil {
		ticker = time.NewTicker(opts.SaveInterval)
		defer ticker.Stop()
	}

	for !g.IsEmpty() {
		switch opts.Policy {
		case MinSumRow:
			v, ok := g.MinDegreeVertex()
			if !ok {
				break
			}
			neighbors := make([]int, 0, len(g.Adj[v]))
			for w := range g.Adj[v] {
				neighbors = append(neighbors, w)
			}
			accepted = append(accepted, v)
			delete(remaining, v)
			g.DeleteVertex(v)
			for _, w := range neighbors {
				delete(remaining, w)
				g.DeleteVertex(w)
			}
		default:
			v, ok := g.MaxDegreeVertex()
			if !ok {
				break
			}
			g.DeleteVertex(v)
			delete(remaining, v)
		}

		if ticker != nil {
			select {
			case <-ticker.C:
				opts.Checkpoint(remaining, accepted, g)
			default:
			}
		}
	}
	if opts.Checkpoint != nil {
		opts.Checkpoint(remaining, accepted, g)
	}

	var leftover []int
	for v := range remaining {
		leftover = append(leftover, v)
	}
	sort.Ints(leftover)

	if opts.Policy == MinSumRow {
		return append(accepted, leftover...)
	}
	return leftover
}

// Codebook materializes the solved vertex indices into their candidate
// strings.
func Codebook(indices []int, candidates []string) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = candidates[idx]
	}
	return out
}
