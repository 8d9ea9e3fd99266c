package candidates

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nucleolabs/codebookgen/codebookerr"
)

// FileRead reads length-CodeLen candidate strings from a text file, one
// per line. An optional metadata header is skipped: any lines preceding a
// line consisting solely of three or more '=' characters are treated as
// header and discarded. When no such separator appears within the first
// 20 peeked lines and those lines all share one raw length (the
// uniform-length fallback), the file is treated as headerless and every
// line of it is read as data; if their lengths disagree, the peek window
// is discarded outright and the rest of the file is still scanned for a
// separator before anything past it is treated as data. Lines are whitespace-stripped; the 0-3 digit alphabet
// is accepted as-is, and A/C/G/T (case-insensitive) is mapped to 0/1/2/3.
// Any other character, or a line whose decoded length differs from
// CodeLen, invalidates that line and it is skipped.
type FileRead struct {
	CodeLen int
	Path    string
}

const headerPeekLines = 20

// readLine returns the next line with its trailing CR/LF stripped, and
// whether the underlying reader is now exhausted.
func readLine(reader *bufio.Reader) (line string, eof bool, err error) {
	raw, readErr := reader.ReadString('\n')
	if readErr != nil {
		if readErr != io.EOF {
			return "", false, readErr
		}
		return strings.TrimRight(raw, "\r\n"), true, nil
	}
	return strings.TrimRight(raw, "\r\n"), false, nil
}

// looksLikeData reports whether every peeked line shares the same raw
// length; an empty set counts as uniform.
func looksLikeData(lines []string) bool {
	if len(lines) == 0 {
		return true
	}
	want := len(lines[0])
	for _, l := range lines[1:] {
		if len(l) != want {
			return false
		}
	}
	return true
}

func decodeLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	buf := make([]byte, len(line))
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c >= '0' && c <= '3':
			buf[i] = c
		case c == 'A' || c == 'a':
			buf[i] = '0'
		case c == 'C' || c == 'c':
			buf[i] = '1'
		case c == 'G' || c == 'g':
			buf[i] = '2'
		case c == 'T' || c == 't':
			buf[i] = '3'
		default:
			return "", false
		}
	}
	return string(buf), true
}

func isSeparatorLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != '=' {
			return false
		}
	}
	return true
}

func (g FileRead) Generate() ([]string, error) {
	f, err := os.Open(g.Path)
	if err != nil {
		return nil, codebookerr.Wrap(codebookerr.Configuration, "opening FileRead candidate file", err)
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	var peeked []string
	separatorFound := false

	for i := 0; i < headerPeekLines; i++ {
		line, eof, err := readLine(reader)
		if err != nil {
			return nil, codebookerr.Wrap(codebookerr.Filesystem, "reading FileRead candidate file", err)
		}
		if line == "" {
			if eof {
				break
			}
			continue
		}
		if isSeparatorLine(line) {
			separatorFound = true
			break
		}
		peeked = append(peeked, line)
		if eof {
			break
		}
	}

	var out []string
	headerless := !separatorFound && looksLikeData(peeked)
	if headerless {
		for _, line := range peeked {
			if word, ok := decodeLine(line); ok && len(word) == g.CodeLen {
				out = append(out, word)
			}
		}
	}

	for {
		line, eof, err := readLine(reader)
		if err != nil {
			return nil, codebookerr.Wrap(codebookerr.Filesystem, "reading FileRead candidate file", err)
		}
		if line != "" {
			if !separatorFound && !headerless {
				// Still searching for a separator: a non-uniform (or
				// header-shaped) peek window means nothing before a
				// separator is treated as data, no matter how far into
				// the file it appears.
				if isSeparatorLine(line) {
					separatorFound = true
				}
			} else if word, ok := decodeLine(line); ok && len(word) == g.CodeLen {
				out = append(out, word)
			}
		}
		if eof {
			break
		}
	}
	return out, nil
}

func (g FileRead) Info() string {
	return fmt.Sprintf("FileRead(n=%d, path=%s)", g.CodeLen, g.Path)
}
