package params

import (
	"bytes"
	"testing"
)

func roundTrip(t *testing.T, p Params) Params {
	t.Helper()
	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	got, err := ReadParams(&buf)
	if err != nil {
		t.Fatalf("ReadParams: %v", err)
	}
	return got
}

func TestRoundTripLinearCode(t *testing.T) {
	p := Params{
		CodeLen: 10, CodeMinED: 3, MaxRun: 4,
		MinGCCont: 0.25, MaxGCCont: 0.75,
		ThreadNum: 4, SaveInterval: 30,
		Constraints: LinearCodeConstraints{CandMinHD: 3},
	}
	got := roundTrip(t, p)
	if got != p {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, p)
	}
}

func TestRoundTripAllMethods(t *testing.T) {
	cases := []Constraints{
		AllStringsConstraints{},
		RandomConstraints{NumCandidates: 1000},
		RandomConstraints{NumCandidates: 1000, DedupSketch: true, KmerSize: 5, SketchSize: 12},
		VTCodeConstraints{A: 2, B: 1},
		DifferentialVTCodeConstraints{Syndrome: 5},
		FileReadConstraints{Path: "candidates.txt"},
		RandomLinearConstraints{CandMinHD: 3, NumCandidates: 500},
	}
	for _, c := range cases {
		p := Params{
			CodeLen: 12, CodeMinED: 4, MaxRun: 0,
			MinGCCont: 0, MaxGCCont: 0,
			ThreadNum: 1, SaveInterval: 0,
			Constraints: c,
		}
		got := roundTrip(t, p)
		if got != p {
			t.Fatalf("round trip mismatch for %T: got %+v, want %+v", c, got, p)
		}
	}
}

func TestReadParamsUnknownMethodIsConfigError(t *testing.T) {
	var buf bytes.Buffer
	for _, v := range []int{10, 3, 0} {
		writeInt(&buf, v)
	}
	buf.WriteString("0\n0\n1\n0\n99\n")
	if _, err := ReadParams(&buf); err == nil {
		t.Fatal("expected error for unknown method tag")
	}
}

func TestReadParamsTruncatedIsError(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("10\n3\n")
	if _, err := ReadParams(&buf); err == nil {
		t.Fatal("expected error for truncated params")
	}
}
