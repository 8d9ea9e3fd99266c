package checkpoint

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"

	"lukechampine.com/blake3"

	"github.com/nucleolabs/codebookgen/codebookerr"
)

const trailerPrefix = "\n#blake3:"

func checksum(content []byte) string {
	sum := blake3.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// writeChecksummedFile writes content to path followed by a blake3
// checksum trailer, so a resume-read can detect a truncated or
// partially-written checkpoint (a best-effort write that died midway)
// instead of silently loading corrupt state.
func writeChecksummedFile(path string, content []byte) error {
	buf := bytes.NewBuffer(content)
	buf.WriteString(trailerPrefix)
	buf.WriteString(checksum(content))
	buf.WriteString("\n")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return codebookerr.Wrap(codebookerr.Filesystem, fmt.Sprintf("writing %s", path), err)
	}
	return nil
}

// readChecksummedFile reads path and verifies its trailer. A missing or
// mismatched trailer is a Filesystem-kind error, so a truncated or
// corrupt checkpoint is never loaded as valid state; on resume the CLI
// then recomputes that stage rather than aborting.
func readChecksummedFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, codebookerr.Wrap(codebookerr.Filesystem, fmt.Sprintf("reading %s", path), err)
	}
	idx := bytes.LastIndex(raw, []byte(trailerPrefix))
	if idx == -1 {
		return nil, codebookerr.New(codebookerr.Filesystem, fmt.Sprintf("%s: missing integrity trailer (truncated write)", path))
	}
	content := raw[:idx]
	trailer := bytes.TrimSpace(raw[idx+len(trailerPrefix):])
	want := checksum(content)
	if string(trailer) != want {
		return nil, codebookerr.New(codebookerr.Filesystem, fmt.Sprintf("%s: integrity checksum mismatch (truncated or corrupt write)", path))
	}
	return content, nil
}
