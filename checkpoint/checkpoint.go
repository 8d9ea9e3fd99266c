// Package checkpoint implements the on-disk checkpoint/resume protocol:
// a stage indicator, per-worker adjacency-building progress during stage
// 1, and a single solver snapshot during stage 2.
package checkpoint

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nucleolabs/codebookgen/codebookerr"
	"github.com/nucleolabs/codebookgen/conflictgraph"
	"github.com/nucleolabs/codebookgen/params"
)

// Stage indicates which phase of the pipeline a resumed run should
// continue from.
type Stage int

const (
	StageBuildingAdjacency Stage = 1
	StageSolving           Stage = 2
)

// Dir is a working directory holding one run's checkpoint artifacts.
// Only one process is expected to hold a given Dir at a time.
type Dir struct {
	path string
}

// New returns a Dir rooted at path, creating it if necessary.
func New(path string) (Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Dir{}, codebookerr.Wrap(codebookerr.Filesystem, "creating working directory", err)
	}
	return Dir{path: path}, nil
}

func (d Dir) file(name string) string {
	return filepath.Join(d.path, name)
}

// WriteParams persists the run's Params record.
func (d Dir) WriteParams(p params.Params) error {
	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		return err
	}
	return writeChecksummedFile(d.file("progress_params.txt"), buf.Bytes())
}

// ReadParams reloads a previously written Params record.
func (d Dir) ReadParams() (params.Params, error) {
	content, err := readChecksummedFile(d.file("progress_params.txt"))
	if err != nil {
		return params.Params{}, err
	}
	return params.ReadParams(bytes.NewReader(content))
}

// WriteCandidates persists the filtered candidate set S, one per line.
func (d Dir) WriteCandidates(candidates []string) error {
	var buf bytes.Buffer
	for _, c := range candidates {
		buf.WriteString(c)
		buf.WriteByte('\n')
	}
	return writeChecksummedFile(d.file("progress_cand.txt"), buf.Bytes())
}

// ReadCandidates reloads a previously written candidate set.
func (d Dir) ReadCandidates() ([]string, error) {
	content, err := readChecksummedFile(d.file("progress_cand.txt"))
	if err != nil {
		return nil, err
	}
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		line := sc.Text()
		if line != "" {
			out = append(out, line)
		}
	}
	return out, nil
}

// WriteStage records which stage a resumed run should continue from.
func (d Dir) WriteStage(stage Stage) error {
	return writeChecksummedFile(d.file("progress_stage.txt"), []byte(strconv.Itoa(int(stage))))
}

// ReadStage reports the current stage indicator. ok is false if no stage
// file exists (a fresh run, not a resume).
func (d Dir) ReadStage() (stage Stage, ok bool, err error) {
	path := d.file("progress_stage.txt")
	if _, statErr := os.Stat(path); statErr != nil {
		return 0, false, nil
	}
	content, err := readChecksummedFile(path)
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, false, codebookerr.Wrap(codebookerr.Filesystem, "parsing stage indicator", err)
	}
	return Stage(n), true, nil
}

func workerAdjPath(d Dir, worker int) string {
	return d.file(fmt.Sprintf("progress_adj_list_comp_%d.txt", worker))
}

func workerIndexPath(d Dir, worker int) string {
	return d.file(fmt.Sprintf("progress_adj_list_comp_i_%d.txt", worker))
}

// WriteWorkerProgress is a conflictgraph.Checkpoint-compatible function
// bound to a Dir and worker id: it records that worker's last completed
// outer index and its accumulated edge buffer.
func (d Dir) WriteWorkerProgress(worker, lastI int, edges [][2]int) {
	var buf bytes.Buffer
	for _, e := range edges {
		fmt.Fprintf(&buf, "%d\t%d\n", e[0], e[1])
	}
	_ = writeChecksummedFile(workerAdjPath(d, worker), buf.Bytes())
	_ = writeChecksummedFile(workerIndexPath(d, worker), []byte(strconv.Itoa(lastI)))
}

// ReadWorkerProgress reloads one worker's stage-1 progress: the index it
// had reached and the edges it had already found.
func (d Dir) ReadWorkerProgress(worker int) (lastI int, edges [][2]int, err error) {
	idxContent, err := readChecksummedFile(workerIndexPath(d, worker))
	if err != nil {
		return 0, nil, err
	}
	lastI, err = strconv.Atoi(strings.TrimSpace(string(idxContent)))
	if err != nil {
		return 0, nil, codebookerr.Wrap(codebookerr.Filesystem, "parsing worker index", err)
	}
	edgeContent, err := readChecksummedFile(workerAdjPath(d, worker))
	if err != nil {
		return 0, nil, err
	}
	sc := bufio.NewScanner(bytes.NewReader(edgeContent))
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		i, err1 := strconv.Atoi(parts[0])
		j, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			continue
		}
		edges = append(edges, [2]int{i, j})
	}
	return lastI, edges, nil
}

// DeleteWorkerFiles removes all per-worker stage-1 progress files for the
// given thread count.
func (d Dir) DeleteWorkerFiles(threads int) {
	for t := 0; t < threads; t++ {
		os.Remove(workerAdjPath(d, t))
		os.Remove(workerIndexPath(d, t))
	}
}

// WriteSolverState persists a stage-2 snapshot: the adjacency list, the
// remaining vertex set, and the accepted codebook indices so far.
func (d Dir) WriteSolverState(g *conflictgraph.Graph, remaining map[int]struct{}, accepted []int) {
	var adjBuf bytes.Buffer
	for _, e := range g.Edges() {
		fmt.Fprintf(&adjBuf, "%d\t%d\n", e[0], e[1])
	}
	_ = writeChecksummedFile(d.file("progress_adj_list.txt"), adjBuf.Bytes())

	var remBuf bytes.Buffer
	for v := range remaining {
		fmt.Fprintf(&remBuf, "%d\n", v)
	}
	_ = writeChecksummedFile(d.file("progress_remaining.txt"), remBuf.Bytes())

	var codeBuf bytes.Buffer
	for _, v := range accepted {
		fmt.Fprintf(&codeBuf, "%d\n", v)
	}
	_ = writeChecksummedFile(d.file("progress_codebook.txt"), codeBuf.Bytes())
}

// ReadSolverState reloads a stage-2 snapshot.
func (d Dir) ReadSolverState() (g *conflictgraph.Graph, remaining map[int]struct{}, accepted []int, err error) {
	adjContent, err := readChecksummedFile(d.file("progress_adj_list.txt"))
	if err != nil {
		return nil, nil, nil, err
	}
	g = conflictgraph.New()
	sc := bufio.NewScanner(bytes.NewReader(adjContent))
	for sc.Scan() {
		parts := strings.SplitN(sc.Text(), "\t", 2)
		if len(parts) != 2 {
			continue
		}
		i, err1 := strconv.Atoi(parts[0])
		j, err2 := strconv.Atoi(parts[1])
		if err1 == nil && err2 == nil {
			g.AddEdge(i, j)
		}
	}

	remContent, err := readChecksummedFile(d.file("progress_remaining.txt"))
	if err != nil {
		return nil, nil, nil, err
	}
	remaining = make(map[int]struct{})
	sc = bufio.NewScanner(bytes.NewReader(remContent))
	for sc.Scan() {
		if v, convErr := strconv.Atoi(strings.TrimSpace(sc.Text())); convErr == nil {
			remaining[v] = struct{}{}
		}
	}

	codeContent, err := readChecksummedFile(d.file("progress_codebook.txt"))
	if err != nil {
		return nil, nil, nil, err
	}
	sc = bufio.NewScanner(bytes.NewReader(codeContent))
	for sc.Scan() {
		if v, convErr := strconv.Atoi(strings.TrimSpace(sc.Text())); convErr == nil {
			accepted = append(accepted, v)
		}
	}
	return g, remaining, accepted, nil
}

// DeleteAll removes every progress file in the working directory, called
// on normal completion. Files are left in place on error, per the
// checkpoint contract: a failed run's resume state survives.
func (d Dir) DeleteAll(threads int) {
	d.DeleteWorkerFiles(threads)
	for _, name := range []string{
		"progress_params.txt",
		"progress_cand.txt",
		"progress_stage.txt",
		"progress_adj_list.txt",
		"progress_remaining.txt",
		"progress_codebook.txt",
	} {
		os.Remove(d.file(name))
	}
}
