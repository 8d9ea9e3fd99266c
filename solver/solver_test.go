package solver

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nucleolabs/codebookgen/conflictgraph"
	"github.com/nucleolabs/codebookgen/editdistance"
)

func buildConflictGraph(t *testing.T, candidates []string, minED int) *conflictgraph.Graph {
	t.Helper()
	return conflictgraph.Build(candidates, conflictgraph.BuildOptions{Threads: 2, MinED: minED})
}

func assertIndependentSet(t *testing.T, indices []int, candidates []string, minED int) {
	t.Helper()
	for i := 0; i < len(indices); i++ {
		for j := i + 1; j < len(indices); j++ {
			a, b := candidates[indices[i]], candidates[indices[j]]
			if got := editdistance.Exact(a, b); got < minED {
				t.Fatalf("codebook pair %q/%q has distance %d < %d", a, b, got, minED)
			}
		}
	}
}

func TestMaxSumRowProducesIndependentSet(t *testing.T) {
	candidates := []string{"0000", "0001", "0011", "0111", "1111", "2222", "3333", "0303"}
	const minED = 3
	g := buildConflictGraph(t, candidates, minED)
	indices := Solve(g, len(candidates), SolveOptions{Policy: MaxSumRow})
	assertIndependentSet(t, indices, candidates, minED)
}

func TestMinSumRowProducesIndependentSet(t *testing.T) {
	candidates := []string{"0000", "0001", "0011", "0111", "1111", "2222", "3333", "0303"}
	const minED = 3
	g := buildConflictGraph(t, candidates, minED)
	indices := Solve(g, len(candidates), SolveOptions{Policy: MinSumRow})
	assertIndependentSet(t, indices, candidates, minED)
}

func TestSolveEmptyGraphKeepsAllVertices(t *testing.T) {
	g := conflictgraph.New()
	indices := Solve(g, 5, SolveOptions{Policy: MaxSumRow})
	if len(indices) != 5 {
		t.Fatalf("expected all 5 vertices to survive an edgeless graph, got %d", len(indices))
	}
}

// TestSolveThreadInvariance exercises P6 at the solver stage: building
// the conflict graph with different thread counts must still produce the
// identical codebook sequence under the stable tie-break rule.
func TestSolveThreadInvariance(t *testing.T) {
	candidates := []string{"0000", "0001", "0011", "0111", "1111", "2222", "3333", "0303", "1230", "3210"}
	const minED = 3

	g1 := conflictgraph.Build(candidates, conflictgraph.BuildOptions{Threads: 1, MinED: minED})
	g16 := conflictgraph.Build(candidates, conflictgraph.BuildOptions{Threads: 16, MinED: minED})

	book1 := Codebook(Solve(g1, len(candidates), SolveOptions{Policy: MaxSumRow}), candidates)
	book16 := Codebook(Solve(g16, len(candidates), SolveOptions{Policy: MaxSumRow}), candidates)

	if diff := cmp.Diff(book1, book16); diff != "" {
		t.Fatalf("codebook differs between T=1 and T=16 (-T1 +T16):\n%s", diff)
	}
}

func TestCodebookMaterializesStrings(t *testing.T) {
	candidates := []string{"aa", "bb", "cc"}
	out := Codebook([]int{2, 0}, candidates)
	if out[0] != "cc" || out[1] != "aa" {
		t.Fatalf("got %v", out)
	}
}
