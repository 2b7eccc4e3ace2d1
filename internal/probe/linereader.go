package probe

import (
	"bytes"
	"errors"
	"io"
)

// DefaultChunkSize is the read size used by ReadLines when none is given.
const DefaultChunkSize = 1024

// LineFunc receives one line without its terminator. The slice is only valid
// for the duration of the call.
type LineFunc func(line []byte) error

// ReadLines streams r in chunks of at most chunkSize bytes and calls fn for
// every newline-terminated line. A partial line is carried into the next
// chunk; a trailing unterminated fragment is delivered once at end of stream.
//
// A read returning io.EOF, or returning no bytes and no error, ends the stream.
// Lines longer than the buffer grow it. The first error from r or fn is
// returned; reaching the end of the stream is not an error.
func ReadLines(r io.Reader, chunkSize int, fn LineFunc) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	buf := make([]byte, chunkSize)
	pending := 0

	for {
		if pending == len(buf) {
			grown := make([]byte, 2*len(buf))
			copy(grown, buf[:pending])
			buf = grown
		}

		limit := min(len(buf), pending+chunkSize)
		n, err := r.Read(buf[pending:limit])
		if n > 0 {
			data := buf[:pending+n]
			start := 0
			for {
				i := bytes.IndexByte(data[start:], '\n')
				if i < 0 {
					break
				}
				if ferr := fn(data[start : start+i]); ferr != nil {
					return ferr
				}
				start += i + 1
			}
			pending = copy(buf, data[start:])
		}

		if errors.Is(err, io.EOF) || (n == 0 && err == nil) {
			if pending > 0 {
				return fn(buf[:pending])
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
}
