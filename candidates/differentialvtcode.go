package candidates

import (
	"fmt"
	"sync"
)

// DifferentialVTCode enumerates, by exhaustive parallel search, every
// length-n string whose differential-VT syndrome (the weighted sum of
// consecutive-symbol differences, modulo 4n) equals Syndrome.
type DifferentialVTCode struct {
	CodeLen  int
	Syndrome int
	Threads  int
}

func checkDifferentialVT(word []byte, syndrome, n int) bool {
	sum := 0
	for i := 0; i < n; i++ {
		var y int
		if i < n-1 {
			y = (int(word[i]-'0') - int(word[i+1]-'0')) % 4
			if y < 0 {
				y += 4
			}
		} else {
			y = int(word[i] - '0')
		}
		sum += (i + 1) * y
	}
	mod := 4 * n
	return sum%mod == ((syndrome%mod)+mod)%mod
}

func (g DifferentialVTCode) Generate() ([]string, error) {
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
				if checkDifferentialVT(word, g.Syndrome, g.CodeLen) {
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

func (g DifferentialVTCode) Info() string {
	return fmt.Sprintf("DifferentialVTCode(n=%d, syndrome=%d)", g.CodeLen, g.Syndrome)
}
