// Package gf4 implements arithmetic over the Galois field GF(4) induced by
// the polynomial x²+x+1, and linear block codes built on top of it.
//
// Elements of the field are represented as the integers 0..3, read as a
// 2-bit vector (lo, hi) over GF(2) where the field element equals
// lo·1 + hi·a and a is a root of x²+x+1 (so a² = a+1). Addition in GF(4) is
// therefore bitwise XOR of the 2-bit representations; multiplication
// follows from expanding (lo1+hi1·a)(lo2+hi2·a) and substituting a²=a+1.
package gf4

// Elem is a single GF(4) symbol, one of 0, 1, 2, 3.
type Elem = byte

// Add returns a+b in GF(4).
func Add(a, b Elem) Elem {
	return a ^ b
}

// Mul returns a*b in GF(4).
func Mul(a, b Elem) Elem {
	lo1, hi1 := a&1, (a>>1)&1
	lo2, hi2 := b&1, (b>>1)&1
	lo := (lo1 & lo2) ^ (hi1 & hi2)
	hi := (lo1 & hi2) ^ (hi1 & lo2) ^ (hi1 & hi2)
	return lo | (hi << 1)
}

// inv holds the multiplicative inverse of each nonzero element.
var inv = [4]Elem{0, 1, 3, 2}

// Div returns a/b in GF(4). Div panics if b is zero: division by the
// additive identity is undefined, and the caller is expected never to
// construct that case (a precondition failure, not a runtime error).
func Div(a, b Elem) Elem {
	if b == 0 {
		panic("gf4: division by zero")
	}
	return Mul(a, inv[b])
}

// VecMatMul computes the row-vector by matrix product v*m over GF(4).
// len(v) must equal len(m) (the number of rows of m); the result has
// length equal to the number of columns of m.
func VecMatMul(v []Elem, m [][]Elem) []Elem {
	if len(m) == 0 {
		return nil
	}
	if len(v) != len(m) {
		panic("gf4: vector/matrix dimension mismatch")
	}
	cols := len(m[0])
	out := make([]Elem, cols)
	for col := 0; col < cols; col++ {
		var sum Elem
		for row, x := range v {
			sum = Add(sum, Mul(x, m[row][col]))
		}
		out[col] = sum
	}
	return out
}
