package serial

import (
	"bytes"
	"context"
	"errors"
	"io"
)

// MaxLineLength bounds a single line; longer input is split.
const MaxLineLength = 512

// ReadLines reads newline-terminated lines from r and passes each one,
// without the line ending, to fn. Empty reads (a port read timeout) are
// retried until ctx is done. Returns nil on io.EOF.
func ReadLines(ctx context.Context, r io.Reader, fn func(line string)) error {
	buf := make([]byte, 256)
	var line []byte

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := r.Read(buf)
		data := buf[:n]
		for len(data) > 0 {
			i := bytes.IndexByte(data, '\n')
			if i < 0 {
				line = append(line, data...)
				break
			}
			line = append(line, data[:i]...)
			data = data[i+1:]
			fn(string(bytes.TrimRight(line, "\r")))
			line = line[:0]
		}
		if len(line) >= MaxLineLength {
			fn(string(line))
			line = line[:0]
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(line) > 0 {
					fn(string(bytes.TrimRight(line, "\r")))
				}
				return nil
			}
			return err
		}
	}
}
