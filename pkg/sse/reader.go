package sse

import (
	"bytes"
	"io"
	"strings"
)

// LineReader pulls complete lines out of a streaming response body. Upstream
// reads can split an SSE frame mid-line, so bytes past the last newline are
// carried over into the next read. Blank separator lines are yielded as
// empty strings. The sequence is finite and consumed exactly once.
type LineReader struct {
	r     io.Reader
	buf   []byte
	chunk []byte
	eof   bool
}

// NewLineReader creates a line reader over r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{
		r:     r,
		chunk: make([]byte, 4096),
	}
}

// Next returns the next complete line without its trailing newline.
// Returns io.EOF once the stream is exhausted.
func (lr *LineReader) Next() (string, error) {
	for {
		if i := bytes.IndexByte(lr.buf, '\n'); i >= 0 {
			line := string(lr.buf[:i])
			lr.buf = lr.buf[i+1:]
			return strings.TrimSuffix(line, "\r"), nil
		}

		if lr.eof {
			if len(lr.buf) > 0 {
				// Final partial line with no trailing newline.
				line := string(lr.buf)
				lr.buf = nil
				return strings.TrimSuffix(line, "\r"), nil
			}
			return "", io.EOF
		}

		n, err := lr.r.Read(lr.chunk)
		if n > 0 {
			lr.buf = append(lr.buf, lr.chunk[:n]...)
		}
		if err == io.EOF {
			lr.eof = true
			continue
		}
		if err != nil {
			return "", err
		}
	}
}
