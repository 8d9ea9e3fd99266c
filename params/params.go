// Package params defines the shared Params record and its on-disk
// serialization: a sequence of ASCII lines in a fixed order, matching the
// stable (internal, versionless) line format described for resuming a
// run with the same binary.
package params

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/nucleolabs/codebookgen/codebookerr"
)

// Method selects which candidate generator a run uses.
type Method int

const (
	LinearCode Method = iota
	AllStrings
	Random
	VTCode
	DifferentialVTCode
	FileRead
	RandomLinear
)

func (m Method) String() string {
	switch m {
	case LinearCode:
		return "LinearCode"
	case AllStrings:
		return "AllStrings"
	case Random:
		return "Random"
	case VTCode:
		return "VTCode"
	case DifferentialVTCode:
		return "DifferentialVTCode"
	case FileRead:
		return "FileRead"
	case RandomLinear:
		return "RandomLinear"
	default:
		return "Unknown"
	}
}

// Constraints is the method-specific tail of a Params record. Each
// generator owns its own (de)serialization, matching the original
// design's printParams/readParams split between a shared base and a
// per-variant tail.
type Constraints interface {
	Method() Method
	writeTail(w io.Writer) error
}

// LinearCodeConstraints parameterizes the LinearCode generator.
type LinearCodeConstraints struct {
	CandMinHD int // recommended values: {2,3,4,5}
}

func (LinearCodeConstraints) Method() Method { return LinearCode }
func (c LinearCodeConstraints) writeTail(w io.Writer) error {
	return writeInt(w, c.CandMinHD)
}

// AllStringsConstraints parameterizes the exhaustive AllStrings generator.
// It carries no fields.
type AllStringsConstraints struct{}

func (AllStringsConstraints) Method() Method             { return AllStrings }
func (AllStringsConstraints) writeTail(w io.Writer) error { return nil }

// RandomConstraints parameterizes the Random generator. DedupSketch,
// KmerSize, and SketchSize configure the optional Mash-style MinHash
// near-duplicate pre-pass (see candidates.Random); KmerSize/SketchSize
// of 0 fall back to candidates.Random's own defaults.
type RandomConstraints struct {
	NumCandidates int
	DedupSketch   bool
	KmerSize      int
	SketchSize    int
}

func (RandomConstraints) Method() Method { return Random }
func (c RandomConstraints) writeTail(w io.Writer) error {
	if err := writeInt(w, c.NumCandidates); err != nil {
		return err
	}
	dedup := 0
	if c.DedupSketch {
		dedup = 1
	}
	if err := writeInt(w, dedup); err != nil {
		return err
	}
	if err := writeInt(w, c.KmerSize); err != nil {
		return err
	}
	return writeInt(w, c.SketchSize)
}

// VTCodeConstraints parameterizes the VTCode generator: the two
// congruence targets a (mod n) and b (mod 4).
type VTCodeConstraints struct {
	A, B int
}

func (VTCodeConstraints) Method() Method { return VTCode }
func (c VTCodeConstraints) writeTail(w io.Writer) error {
	if err := writeInt(w, c.A); err != nil {
		return err
	}
	return writeInt(w, c.B)
}

// DifferentialVTCodeConstraints parameterizes the DifferentialVTCode
// generator: the syndrome target s (mod 4n).
type DifferentialVTCodeConstraints struct {
	Syndrome int
}

func (DifferentialVTCodeConstraints) Method() Method { return DifferentialVTCode }
func (c DifferentialVTCodeConstraints) writeTail(w io.Writer) error {
	return writeInt(w, c.Syndrome)
}

// FileReadConstraints parameterizes the FileRead generator.
type FileReadConstraints struct {
	Path string
}

func (FileReadConstraints) Method() Method { return FileRead }
func (c FileReadConstraints) writeTail(w io.Writer) error {
	_, err := fmt.Fprintln(w, c.Path)
	return err
}

// RandomLinearConstraints parameterizes the RandomLinear generator: a
// random sample of NumCandidates words of a linear code. The generator
// still enumerates the full codeword list before sampling from it.
type RandomLinearConstraints struct {
	CandMinHD     int
	NumCandidates int
}

func (RandomLinearConstraints) Method() Method { return RandomLinear }
func (c RandomLinearConstraints) writeTail(w io.Writer) error {
	if err := writeInt(w, c.CandMinHD); err != nil {
		return err
	}
	return writeInt(w, c.NumCandidates)
}

// Params is the shared run configuration, immutable once constructed.
type Params struct {
	CodeLen      int
	CodeMinED    int // target minimum edit distance D
	MaxRun       int // 0 disables
	MinGCCont    float64
	MaxGCCont    float64
	ThreadNum    int
	SaveInterval int // seconds between checkpoints; 0 disables
	Constraints  Constraints
}

func writeInt(w io.Writer, v int) error {
	_, err := fmt.Fprintln(w, v)
	return err
}

// WriteTo serializes p as a sequence of ASCII lines in the order:
// codeLen, codeMinED, maxRun, minGCCont, maxGCCont, threadNum,
// saveInterval, method tag, then the method-specific tail.
func (p Params) WriteTo(w io.Writer) error {
	fields := []int{p.CodeLen, p.CodeMinED, p.MaxRun}
	for _, v := range fields {
		if err := writeInt(w, v); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, strconv.FormatFloat(p.MinGCCont, 'g', -1, 64)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strconv.FormatFloat(p.MaxGCCont, 'g', -1, 64)); err != nil {
		return err
	}
	if err := writeInt(w, p.ThreadNum); err != nil {
		return err
	}
	if err := writeInt(w, p.SaveInterval); err != nil {
		return err
	}
	if p.Constraints == nil {
		return codebookerr.New(codebookerr.Configuration, "params: missing generator constraints")
	}
	if err := writeInt(w, int(p.Constraints.Method())); err != nil {
		return err
	}
	return p.Constraints.writeTail(w)
}

type lineReader struct {
	s *bufio.Scanner
}

func (r *lineReader) nextInt() (int, error) {
	if !r.s.Scan() {
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.Atoi(r.s.Text())
}

func (r *lineReader) nextFloat() (float64, error) {
	if !r.s.Scan() {
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(r.s.Text(), 64)
}

func (r *lineReader) nextLine() (string, error) {
	if !r.s.Scan() {
		return "", io.ErrUnexpectedEOF
	}
	return r.s.Text(), nil
}

// ReadParams deserializes a Params record previously written by WriteTo.
// A read error (truncated file, malformed field) is a Filesystem-kind
// error: resuming from a corrupted progress file is not itself a
// configuration mistake made by the current invocation.
func ReadParams(r io.Reader) (Params, error) {
	lr := &lineReader{s: bufio.NewScanner(r)}
	var p Params
	var err error
	if p.CodeLen, err = lr.nextInt(); err != nil {
		return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading codeLen", err)
	}
	if p.CodeMinED, err = lr.nextInt(); err != nil {
		return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading codeMinED", err)
	}
	if p.MaxRun, err = lr.nextInt(); err != nil {
		return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading maxRun", err)
	}
	if p.MinGCCont, err = lr.nextFloat(); err != nil {
		return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading minGCCont", err)
	}
	if p.MaxGCCont, err = lr.nextFloat(); err != nil {
		return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading maxGCCont", err)
	}
	if p.ThreadNum, err = lr.nextInt(); err != nil {
		return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading threadNum", err)
	}
	if p.SaveInterval, err = lr.nextInt(); err != nil {
		return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading saveInterval", err)
	}
	tag, err := lr.nextInt()
	if err != nil {
		return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading method tag", err)
	}

	switch Method(tag) {
	case LinearCode:
		v, err := lr.nextInt()
		if err != nil {
			return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading LinearCode constraints", err)
		}
		p.Constraints = LinearCodeConstraints{CandMinHD: v}
	case AllStrings:
		p.Constraints = AllStringsConstraints{}
	case Random:
		v, err := lr.nextInt()
		if err != nil {
			return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading Random constraints", err)
		}
		dedup, err := lr.nextInt()
		if err != nil {
			return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading Random constraints", err)
		}
		kmerSize, err := lr.nextInt()
		if err != nil {
			return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading Random constraints", err)
		}
		sketchSize, err := lr.nextInt()
		if err != nil {
			return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading Random constraints", err)
		}
		p.Constraints = RandomConstraints{NumCandidates: v, DedupSketch: dedup != 0, KmerSize: kmerSize, SketchSize: sketchSize}
	case VTCode:
		a, err := lr.nextInt()
		if err != nil {
			return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading VTCode constraints", err)
		}
		b, err := lr.nextInt()
		if err != nil {
			return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading VTCode constraints", err)
		}
		p.Constraints = VTCodeConstraints{A: a, B: b}
	case DifferentialVTCode:
		v, err := lr.nextInt()
		if err != nil {
			return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading DifferentialVTCode constraints", err)
		}
		p.Constraints = DifferentialVTCodeConstraints{Syndrome: v}
	case FileRead:
		path, err := lr.nextLine()
		if err != nil {
			return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading FileRead constraints", err)
		}
		p.Constraints = FileReadConstraints{Path: path}
	case RandomLinear:
		hd, err := lr.nextInt()
		if err != nil {
			return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading RandomLinear constraints", err)
		}
		n, err := lr.nextInt()
		if err != nil {
			return Params{}, codebookerr.Wrap(codebookerr.Filesystem, "reading RandomLinear constraints", err)
		}
		p.Constraints = RandomLinearConstraints{CandMinHD: hd, NumCandidates: n}
	default:
		return Params{}, codebookerr.New(codebookerr.Configuration, fmt.Sprintf("unknown method tag %d", tag))
	}
	return p, nil
}
