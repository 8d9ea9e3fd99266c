package editdistance

// Banded returns min(Exact(pattern, text), k+1). It runs the same
// bit-vector recurrence as Exact but aborts as soon as the running score
// can no longer come back under the threshold: after processing i of n
// text characters, the best possible final score is score-(n-i) (every
// remaining character can reduce the score by at most one), so once
// score-(n-i) > k the answer is already decided and the sweep stops
// without scanning the rest of the text.
func (p *Pattern) Banded(text string, k int) int {
	n := len(text)
	blocks := p.blocks
	pv := make([]uint64, blocks)
	mv := make([]uint64, blocks)
	for b := range pv {
		pv[b] = ^uint64(0)
	}
	score := p.m
	lastBlock := blocks - 1

	for i := 0; i < n; i++ {
		peqCol := make([]uint64, blocks)
		for b := 0; b < blocks; b++ {
			peqCol[b] = p.Peq[text[i]][b]
		}
		results := step(pv, mv, peqCol)
		last := results[lastBlock]
		score += int((last.hp>>p.lastOffset)&1) - int((last.hn>>p.lastOffset)&1)

		remaining := n - (i + 1)
		if score-remaining > k {
			return k + 1
		}
	}
	if score > k+1 {
		return k + 1
	}
	return score
}

// BandedAtLeast reports whether the edit distance between the pattern and
// text is at least minED, by computing Banded(text, minED-1): the banded
// result clamps to exactly minED whenever the true distance meets or
// exceeds it.
func (p *Pattern) BandedAtLeast(text string, minED int) bool {
	if minED <= 0 {
		return true
	}
	return p.Banded(text, minED-1) == minED
}

// Banded builds a pattern from a (or b, whichever is shorter) and returns
// min(Exact(a,b), k+1).
func Banded(a, b string, k int) int {
	pattern, text := a, b
	if len(b) < len(a) {
		pattern, text = b, a
	}
	return NewPattern(pattern).Banded(text, k)
}

// BandedAtLeast reports whether Banded(a, b, minED-1) == minED.
func BandedAtLeast(a, b string, minED int) bool {
	pattern, text := a, b
	if len(b) < len(a) {
		pattern, text = b, a
	}
	return NewPattern(pattern).BandedAtLeast(text, minED)
}
