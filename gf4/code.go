package gf4

import "fmt"

// baseCode is a generator matrix together with the dimensions the original
// (unshortened) code was built at: k data rows, n codeword columns.
type baseCode struct {
	gen [][]Elem // k x n
	k   int
	n   int
}

// hammingBase builds a GF(4) Hamming code of redundancy r: a parity-check
// matrix whose N=(4^r-1)/3 columns are one representative per
// scalar-multiplication class of nonzero vectors in GF(4)^r (no two columns
// are GF(4)-proportional, which is exactly the condition for a minimum
// Hamming distance of 3), then converted to systematic generator form.
func hammingBase(r int) baseCode {
	vecs := nonzeroVectors(r)
	reps := distinctDirections(vecs)
	n := len(reps)

	h := make([][]Elem, r)
	for row := 0; row < r; row++ {
		h[row] = make([]Elem, n)
		for col, v := range reps {
			h[row][col] = v[row]
		}
	}

	gen, k := systematicGenerator(h, n)
	return baseCode{gen: gen, k: k, n: n}
}

// nonzeroVectors returns every nonzero vector of GF(4)^r.
func nonzeroVectors(r int) [][]Elem {
	total := 1
	for i := 0; i < r; i++ {
		total *= 4
	}
	var out [][]Elem
	for code := 1; code < total; code++ {
		v := make([]Elem, r)
		c := code
		for i := 0; i < r; i++ {
			v[i] = Elem(c % 4)
			c /= 4
		}
		out = append(out, v)
	}
	return out
}

// distinctDirections groups vectors by the equivalence relation
// u ~ v iff u = s*v for some nonzero scalar s, and returns one
// representative per class.
func distinctDirections(vecs [][]Elem) [][]Elem {
	seen := make(map[string]bool)
	var reps [][]Elem
	for _, v := range vecs {
		key := vecKey(v)
		if seen[key] {
			continue
		}
		reps = append(reps, v)
		for _, s := range []Elem{1, 2, 3} {
			scaled := make([]Elem, len(v))
			for i, x := range v {
				scaled[i] = Mul(s, x)
			}
			seen[vecKey(scaled)] = true
		}
	}
	return reps
}

func vecKey(v []Elem) string {
	return string(v)
}

// systematicGenerator row-reduces parity-check matrix h (r x n) to identify
// r independent pivot columns, then returns the (n-r) x n generator matrix
// in standard form [I | P]: row i belongs to the i-th non-pivot ("data")
// column of h and carries a 1 in column i, and columns k..n-1 carry the
// parity symbols implied by the reduced row-echelon form, one per pivot
// column in pivot order. This permutes h's column order (which leaves
// Hamming distances unchanged) so that the identity block leads, making
// shorten's deletion of leading rows and columns a true shortening.
func systematicGenerator(h [][]Elem, n int) ([][]Elem, int) {
	r := len(h)
	rref := make([][]Elem, r)
	for i := range h {
		rref[i] = append([]Elem(nil), h[i]...)
	}

	pivotCol := make([]int, 0, r)
	pivotRow := 0
	for col := 0; col < n && pivotRow < r; col++ {
		sel := -1
		for row := pivotRow; row < r; row++ {
			if rref[row][col] != 0 {
				sel = row
				break
			}
		}
		if sel == -1 {
			continue
		}
		rref[pivotRow], rref[sel] = rref[sel], rref[pivotRow]

		pivotVal := rref[pivotRow][col]
		if pivotVal != 1 {
			invVal := inv[pivotVal]
			for c := 0; c < n; c++ {
				rref[pivotRow][c] = Mul(invVal, rref[pivotRow][c])
			}
		}
		for row := 0; row < r; row++ {
			if row == pivotRow {
				continue
			}
			factor := rref[row][col]
			if factor == 0 {
				continue
			}
			for c := 0; c < n; c++ {
				rref[row][c] = Add(rref[row][c], Mul(factor, rref[pivotRow][c]))
			}
		}
		pivotCol = append(pivotCol, col)
		pivotRow++
	}
	if pivotRow != r {
		panic(fmt.Sprintf("gf4: parity-check matrix has rank %d, expected %d", pivotRow, r))
	}

	isPivot := make([]bool, n)
	pivotRowOf := make(map[int]int, r)
	for i, c := range pivotCol {
		isPivot[c] = true
		pivotRowOf[c] = i
	}

	var dataCols []int
	for c := 0; c < n; c++ {
		if !isPivot[c] {
			dataCols = append(dataCols, c)
		}
	}
	k := len(dataCols)

	gen := make([][]Elem, k)
	for i, dc := range dataCols {
		row := make([]Elem, n)
		row[i] = 1
		for _, pr := range pivotRowOf {
			row[k+pr] = rref[pr][dc]
		}
		gen[i] = row
	}
	return gen, k
}

// parityBase is the trivial [n, n-1, 2] single-overall-parity code: every
// data symbol is copied through and the last column carries their sum.
func parityBase(n int) baseCode {
	k := n - 1
	gen := make([][]Elem, k)
	for i := 0; i < k; i++ {
		row := make([]Elem, n)
		row[i] = 1
		row[n-1] = 1
		gen[i] = row
	}
	return baseCode{gen: gen, k: k, n: n}
}

// plotkinBase combines two component codes c0 (length n0) and c1 (length
// n0 as well, used here as a repetition code) via the Plotkin (u | u+v)
// construction, producing a [2*n0, k0+k1, min(2*d0, d1)] code.
func plotkinBase(c0, c1 baseCode) baseCode {
	if c0.n != c1.n {
		panic("gf4: plotkin construction requires equal-length components")
	}
	n0 := c0.n
	k := c0.k + c1.k
	gen := make([][]Elem, k)
	for i, row := range c0.gen {
		full := make([]Elem, 2*n0)
		copy(full[:n0], row)
		copy(full[n0:], row)
		gen[i] = full
	}
	for i, row := range c1.gen {
		full := make([]Elem, 2*n0)
		for j := 0; j < n0; j++ {
			full[n0+j] = row[j]
		}
		gen[c0.k+i] = full
	}
	return baseCode{gen: gen, k: k, n: 2 * n0}
}

// repetitionBase is the [n, 1, n] code whose single data symbol is copied
// into every position.
func repetitionBase(n int) baseCode {
	row := make([]Elem, n)
	for i := range row {
		row[i] = 1
	}
	return baseCode{gen: [][]Elem{row}, k: 1, n: n}
}

var (
	hamming3 = hammingBase(3)            // [21, 18, 3]
	plotkin6 = plotkinBase(hamming3, repetitionBase(21)) // [42, 19, 6]
)

// baseForDistance returns the unshortened base code used for a requested
// minimum Hamming distance d, per spec.md's supported set {2,3,4,5}.
//
// d=4 and d=5 share a single [42,19,6] base built from a Plotkin
// (u | u+v) combination of the d=3 Hamming code with a length-21
// repetition code, since the original tool's literal [41,36,4] and
// [43,36,5] generator tables were never present in the retrieved source
// (only their declarations). Distance 6 comfortably covers both
// requested thresholds; see DESIGN.md.
func baseForDistance(n, d int) (baseCode, error) {
	switch d {
	case 2:
		if n < 2 {
			return baseCode{}, fmt.Errorf("gf4: codeLen %d too small for minimum distance 2", n)
		}
		return parityBase(n), nil
	case 3:
		return hamming3, nil
	case 4, 5:
		return plotkin6, nil
	default:
		return baseCode{}, fmt.Errorf("gf4: unsupported minimum Hamming distance %d (supported: 2,3,4,5)", d)
	}
}

// shorten deletes the leading (base.n - n) rows and columns from a base
// generator matrix, per spec.md §4.A.
func shorten(base baseCode, n int) (baseCode, error) {
	del := base.n - n
	if del < 0 || n > base.n {
		return baseCode{}, fmt.Errorf("gf4: requested length %d exceeds base length %d", n, base.n)
	}
	if base.k-del < 1 {
		return baseCode{}, fmt.Errorf("gf4: requested length %d leaves no data rows for base length %d / k %d", n, base.n, base.k)
	}
	k := base.k - del
	gen := make([][]Elem, k)
	for i := 0; i < k; i++ {
		row := base.gen[del+i][del:]
		gen[i] = append([]Elem(nil), row...)
	}
	return baseCode{gen: gen, k: k, n: n}, nil
}

// CodedVecs returns every codeword of a shortened linear code with length
// n and minimum Hamming distance d in {2,3,4,5}, each codeword encoded as
// a string of '0'-'3' digits. Data vectors are enumerated by counting in
// base 4 from all-zero to all-three, matching the order NextBase4 would
// produce.
func CodedVecs(n, d int) ([]string, error) {
	base, err := baseForDistance(n, d)
	if err != nil {
		return nil, err
	}
	sc, err := shorten(base, n)
	if err != nil {
		return nil, err
	}

	total := 1
	for i := 0; i < sc.k; i++ {
		total *= 4
		if total > 1<<28 {
			return nil, fmt.Errorf("gf4: candidate space for n=%d d=%d too large to enumerate (k=%d)", n, d, sc.k)
		}
	}

	out := make([]string, 0, total)
	data := make([]Elem, sc.k)
	for count := 0; count < total; count++ {
		c := count
		for i := 0; i < sc.k; i++ {
			data[sc.k-1-i] = Elem(c % 4)
			c /= 4
		}
		word := VecMatMul(data, sc.gen)
		buf := make([]byte, n)
		for i, s := range word {
			buf[i] = '0' + s
		}
		out = append(out, string(buf))
	}
	return out, nil
}

// NextBase4 advances a fixed-length base-4 digit string (over '0'-'3') by
// one, carrying right-to-left. It returns the empty string once every
// digit has overflowed past '3', serving as an end-of-iteration sentinel.
func NextBase4(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < '3' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return ""
}
