package pipeline

import (
	"bufio"
	"errors"
	"io"
)

// oversizedPreview is how much of an oversized line is kept for reporting.
const oversizedPreview = 64

// lineReader splits input on '\n' into lines of at most max bytes. A longer
// line is read to its end and discarded, so one bad line never stops the
// lines after it.
type lineReader struct {
	r   *bufio.Reader
	max int
	buf []byte
}

func newLineReader(in io.Reader, limit int) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(in, min(64*1024, limit)), max: limit}
}

// next returns the next line without its terminator. When oversized is
// true, line holds only the first bytes of the line followed by "…".
// It returns io.EOF once the input is exhausted.
func (lr *lineReader) next() (line string, oversized bool, err error) {
	lr.buf = lr.buf[:0]
	read := false
	for {
		chunk, err := lr.r.ReadSlice('\n')
		read = read || len(chunk) > 0
		content := chunk
		if n := len(content); n > 0 && content[n-1] == '\n' {
			content = content[:n-1]
		}
		if !oversized {
			if len(lr.buf)+len(content) > lr.max {
				oversized = true
				keep := min(oversizedPreview, lr.max)
				if len(lr.buf) >= keep {
					lr.buf = lr.buf[:keep]
				} else {
					lr.buf = append(lr.buf, content[:min(len(content), keep-len(lr.buf))]...)
				}
			} else {
				lr.buf = append(lr.buf, content...)
			}
		}

		switch {
		case err == nil:
			return lr.result(oversized), oversized, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if !read {
				return "", false, io.EOF
			}
			return lr.result(oversized), oversized, nil
		default:
			return "", false, err
		}
	}
}

func (lr *lineReader) result(oversized bool) string {
	if oversized {
		return string(lr.buf) + "…"
	}
	return string(lr.buf)
}
