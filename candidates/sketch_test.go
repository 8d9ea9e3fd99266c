package candidates

import "testing"

func TestDedupBySketchKeepsFirstOccurrence(t *testing.T) {
	in := []string{"0123012301", "0123012301", "1230123012"}
	out := DedupBySketch(in, 3, 4)
	if len(out) == 0 {
		t.Fatal("expected at least one surviving candidate")
	}
	if out[0] != in[0] {
		t.Fatalf("expected first occurrence kept, got %v", out)
	}
}

func TestAbsorbFillsSlotZero(t *testing.T) {
	s := newSketch(3, 4)
	s.absorb("0123012301230123012301230123")
	for i, h := range s.hashes {
		if h == 0 {
			t.Fatalf("hashes[%d] left unfilled after absorbing many k-mers", i)
		}
	}
}
