package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/nucleolabs/codebookgen/checkpoint"
	"github.com/nucleolabs/codebookgen/conflictgraph"
	"github.com/nucleolabs/codebookgen/editdistance"
	"github.com/nucleolabs/codebookgen/params"
)

func TestGenerateEndToEndAllStrings(t *testing.T) {
	dir := t.TempDir()
	app := application()

	args := []string{"codebookgen", "generate",
		"--workdir", dir,
		"--code-len", "4",
		"--min-ed", "2",
		"--threads", "2",
		"--method", "AllStrings",
		"--verify",
	}
	if err := app.Run(args); err != nil {
		t.Fatalf("Run error: %s", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var found bool
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".txt" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a codebook output file in the working directory")
	}
}

// TestRunGraphAndSolveResumesAdjacencyBuilding exercises the stage-1
// resume path: a worker's checkpointed (lastI, edges) must be fed back
// into conflictgraph.Build via StartIndex/Preloaded rather than
// restarting that worker's stride from scratch.
func TestRunGraphAndSolveResumesAdjacencyBuilding(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	candidates := make([]string, 24)
	for i := range candidates {
		buf := make([]byte, 8)
		for j := range buf {
			buf[j] = '0' + byte(rng.Intn(4))
		}
		candidates[i] = string(buf)
	}
	const minED = 3
	const threads = 2

	want := make(map[[2]int]bool)
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if editdistance.Exact(candidates[i], candidates[j]) < minED {
				want[[2]int{i, j}] = true
			}
		}
	}

	p := params.Params{CodeLen: 8, CodeMinED: minED, ThreadNum: threads, SaveInterval: 0}

	dir, err := checkpoint.New(t.TempDir())
	if err != nil {
		t.Fatalf("checkpoint.New: %v", err)
	}
	if err := dir.WriteStage(checkpoint.StageBuildingAdjacency); err != nil {
		t.Fatalf("WriteStage: %v", err)
	}

	// Simulate each worker having checkpointed partway through its
	// stride: worker t has completed its stride indices i < cutoff, found
	// whatever edges those produced, and recorded the last of those
	// indices as its lastI.
	const cutoff = 12
	for t := 0; t < threads; t++ {
		var local [][2]int
		lastI := t
		for i := t; i < cutoff; i += threads {
			lastI = i
			for j := i + 1; j < len(candidates); j++ {
				if editdistance.Exact(candidates[i], candidates[j]) < minED {
					local = append(local, [2]int{i, j})
				}
			}
		}
		dir.WriteWorkerProgress(t, lastI, local)
	}

	got := edgeSetFromGraph(buildConflictGraph(dir, candidates, p, 0, true))

	if len(got) != len(want) {
		t.Fatalf("resumed build found %d edges, want %d", len(got), len(want))
	}
	for e := range want {
		if !got[e] {
			t.Fatalf("resumed build missing expected edge %v", e)
		}
	}
}

func edgeSetFromGraph(g *conflictgraph.Graph) map[[2]int]bool {
	out := make(map[[2]int]bool)
	for _, e := range g.Edges() {
		out[e] = true
	}
	return out
}

func TestGenerateRejectsUnknownMethod(t *testing.T) {
	dir := t.TempDir()
	app := application()

	args := []string{"codebookgen", "generate",
		"--workdir", dir,
		"--code-len", "4",
		"--min-ed", "2",
		"--method", "NotAMethod",
	}
	if err := app.Run(args); err == nil {
		t.Fatal("expected an error for an unknown generation method")
	}
}
