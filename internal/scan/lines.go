package scan

import (
	"bufio"
	"io"
)

// MaxLine is the largest single line the scanner accepts, terminator included.
const MaxLine = 16 * 1024 * 1024

// SplitKeepEOL is a bufio.SplitFunc that yields raw lines with their
// terminator attached. Recognized terminators are "\r\n", "\n" and a lone
// "\r"; the final line may have none. A "\r" at the end of the read buffer is
// held back until the next byte shows whether it starts "\r\n".
func SplitKeepEOL(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			return i + 1, data[:i+1], nil
		case '\r':
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i+2], nil
				}
				return i + 1, data[:i+1], nil
			}
			if atEOF {
				return i + 1, data[:i+1], nil
			}
			// нужен ещё один байт, чтобы отличить CR от CRLF
			return 0, nil, nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// NewScanner wraps r in a Scanner producing EOL-preserving raw lines.
func NewScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), MaxLine)
	s.Split(SplitKeepEOL)
	return s
}
