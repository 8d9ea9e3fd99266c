package candidates

import (
	"fmt"
	"sync"
)

// VTCode enumerates, by exhaustive parallel search over the full 4^n
// index space, every length-n string satisfying both Varshamov-Tenengolts
// congruences: the weighted ascent sum modulo n equals A, and the digit
// sum modulo 4 equals B.
type VTCode struct {
	CodeLen int
	A, B    int
	Threads int
}

func checkVT(word []byte, a, b, n int) bool {
	ascentSum := 0
	digitSum := int(word[0] - '0')
	for i := 1; i < n; i++ {
		digitSum += int(word[i] - '0')
		if word[i] >= word[i-1] {
			ascentSum += i
		}
	}
	return ascentSum%n == ((a%n)+n)%n && digitSum%4 == ((b%4)+4)%4
}

func (g VTCode) Generate() ([]string, error) {
	total, ok := totalSpace(g.CodeLen)
	if !ok {
		return nil, tooLargeErr(g.CodeLen)
	}
	threads := g.Threads
	if threads < 1 {
		threads = 1
	}
	if total < uint64(threads) {
		threads = 1
	}

	results := make([][]string, threads)
	var wg sync.WaitGroup
	for t := 0; t < threads; t++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			var local []string
			for i := uint64(t); i < total; i += uint64(threads) {
				word := []byte(indexToWord(i, g.CodeLen))
				if checkVT(word, g.A, g.B, g.CodeLen) {
					local = append(local, string(word))
				}
			}
			results[t] = local
		}(t)
	}
	wg.Wait()

	var out []string
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func (g VTCode) Info() string {
	return fmt.Sprintf("VTCode(n=%d, a=%d, b=%d)", g.CodeLen, g.A, g.B)
}
