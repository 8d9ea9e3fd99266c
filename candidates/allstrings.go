package candidates

import "fmt"

// AllStrings enumerates every length-CodeLen string over the 0-3
// alphabet.
type AllStrings struct {
	CodeLen int
}

func (g AllStrings) Generate() ([]string, error) {
	total, ok := totalSpace(g.CodeLen)
	if !ok {
		return nil, tooLargeErr(g.CodeLen)
	}
	out := make([]string, total)
	for i := uint64(0); i < total; i++ {
		out[i] = indexToWord(i, g.CodeLen)
	}
	return out, nil
}

func (g AllStrings) Info() string {
	return fmt.Sprintf("AllStrings(n=%d)", g.CodeLen)
}
