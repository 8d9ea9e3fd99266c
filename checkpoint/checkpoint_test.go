package checkpoint

import (
	"os"
	"testing"

	"github.com/nucleolabs/codebookgen/conflictgraph"
	"github.com/nucleolabs/codebookgen/params"
)

func TestParamsRoundTrip(t *testing.T) {
	dir, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := params.Params{
		CodeLen: 8, CodeMinED: 3, MaxRun: 2,
		MinGCCont: 0.2, MaxGCCont: 0.8,
		ThreadNum: 2, SaveInterval: 10,
		Constraints: params.LinearCodeConstraints{CandMinHD: 3},
	}
	if err := dir.WriteParams(p); err != nil {
		t.Fatalf("WriteParams: %v", err)
	}
	got, err := dir.ReadParams()
	if err != nil {
		t.Fatalf("ReadParams: %v", err)
	}
	if got != p {
		t.Fatalf("got %+v, want %+v", got, p)
	}
}

func TestCandidatesRoundTrip(t *testing.T) {
	dir, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cands := []string{"0123", "1230", "2301"}
	if err := dir.WriteCandidates(cands); err != nil {
		t.Fatalf("WriteCandidates: %v", err)
	}
	got, err := dir.ReadCandidates()
	if err != nil {
		t.Fatalf("ReadCandidates: %v", err)
	}
	if len(got) != len(cands) {
		t.Fatalf("got %v, want %v", got, cands)
	}
	for i := range cands {
		if got[i] != cands[i] {
			t.Fatalf("got %v, want %v", got, cands)
		}
	}
}

func TestStageRoundTripAndAbsence(t *testing.T) {
	dir, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok, err := dir.ReadStage(); err != nil || ok {
		t.Fatalf("expected no stage file yet, got ok=%v err=%v", ok, err)
	}
	if err := dir.WriteStage(StageBuildingAdjacency); err != nil {
		t.Fatalf("WriteStage: %v", err)
	}
	stage, ok, err := dir.ReadStage()
	if err != nil || !ok {
		t.Fatalf("ReadStage: ok=%v err=%v", ok, err)
	}
	if stage != StageBuildingAdjacency {
		t.Fatalf("got stage %d, want %d", stage, StageBuildingAdjacency)
	}
}

func TestWorkerProgressRoundTrip(t *testing.T) {
	dir, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	edges := [][2]int{{0, 1}, {0, 2}, {3, 4}}
	dir.WriteWorkerProgress(2, 17, edges)
	lastI, got, err := dir.ReadWorkerProgress(2)
	if err != nil {
		t.Fatalf("ReadWorkerProgress: %v", err)
	}
	if lastI != 17 {
		t.Fatalf("got lastI %d, want 17", lastI)
	}
	if len(got) != len(edges) {
		t.Fatalf("got %v, want %v", got, edges)
	}
}

func TestSolverStateRoundTrip(t *testing.T) {
	dir, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g := conflictgraph.New()
	g.AddEdge(0, 1)
	g.AddEdge(2, 3)
	remaining := map[int]struct{}{4: {}, 5: {}}
	accepted := []int{6, 7}
	dir.WriteSolverState(g, remaining, accepted)

	gotG, gotRemaining, gotAccepted, err := dir.ReadSolverState()
	if err != nil {
		t.Fatalf("ReadSolverState: %v", err)
	}
	if gotG.EdgeCount() != 2 {
		t.Fatalf("got %d edges, want 2", gotG.EdgeCount())
	}
	if len(gotRemaining) != 2 {
		t.Fatalf("got %d remaining, want 2", len(gotRemaining))
	}
	if len(gotAccepted) != 2 || gotAccepted[0] != 6 || gotAccepted[1] != 7 {
		t.Fatalf("got accepted %v, want [6 7]", gotAccepted)
	}
}

func TestReadChecksummedFileDetectsTruncation(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/truncated.txt"
	if err := writeChecksummedFile(path, []byte("hello")); err != nil {
		t.Fatalf("writeChecksummedFile: %v", err)
	}
	raw, _ := os.ReadFile(path)
	truncated := raw[:len(raw)-5]
	if err := os.WriteFile(path, truncated, 0o644); err != nil {
		t.Fatalf("writing truncated file: %v", err)
	}
	if _, err := readChecksummedFile(path); err == nil {
		t.Fatal("expected error reading truncated checkpoint")
	}
}
