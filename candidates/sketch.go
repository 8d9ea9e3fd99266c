package candidates

import "github.com/spaolacci/murmur3"

// sketch is a small Mash-style MinHash summary of a candidate string,
// used as a fast approximate near-duplicate pre-filter ahead of the exact
// edit-distance conflict graph for large Random-method candidate sets.
// It is not a substitute for the exact distance check; it only trims
// obvious duplicates cheaply before the expensive pairwise pass.
type sketch struct {
	kmerSize   uint
	sketchSize uint
	hashes     []uint32
}

func newSketch(kmerSize, sketchSize uint) *sketch {
	return &sketch{kmerSize: kmerSize, sketchSize: sketchSize, hashes: make([]uint32, sketchSize)}
}

func (s *sketch) absorb(sequence string) {
	if len(sequence) < int(s.kmerSize) {
		return
	}
	for start := 0; start <= len(sequence)-int(s.kmerSize); start++ {
		kmer := sequence[start : start+int(s.kmerSize)]
		hash := murmur3.Sum32([]byte(kmer))
		worst := 0
		for i := 0; i < len(s.hashes); i++ {
			if s.hashes[i] == 0 {
				worst = i
				break
			}
			if s.hashes[i] > s.hashes[worst] {
				worst = i
			}
		}
		if s.hashes[worst] == 0 || hash < s.hashes[worst] {
			s.hashes[worst] = hash
		}
	}
}

func (s *sketch) key() string {
	return string(s.hashes32ToBytes())
}

func (s *sketch) hashes32ToBytes() []byte {
	buf := make([]byte, 4*len(s.hashes))
	for i, h := range s.hashes {
		buf[4*i] = byte(h)
		buf[4*i+1] = byte(h >> 8)
		buf[4*i+2] = byte(h >> 16)
		buf[4*i+3] = byte(h >> 24)
	}
	return buf
}

// DedupBySketch removes candidates whose k-mer MinHash sketch collides
// with an earlier candidate's, keeping the first occurrence of each
// sketch. It is a cheap approximate pass, not a replacement for exact
// distance filtering.
func DedupBySketch(candidates []string, kmerSize, sketchSize uint) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		s := newSketch(kmerSize, sketchSize)
		s.absorb(c)
		key := s.key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
