// Package eol enumerates line-ending styles and the bytes they stand for.
package eol

import (
	"fmt"
	"runtime"
)

// Style selects the reference line ending a stream is compared against.
type Style uint8

const (
	// StyleFirst adopts the first non-empty marker seen in the stream.
	StyleFirst Style = iota
	StyleLF
	StyleCRLF
	StyleCR
	// StyleNative is the host system's line ending.
	StyleNative
)

var (
	lf   = []byte("\n")
	crlf = []byte("\r\n")
	cr   = []byte("\r")
)

// ParseStyle распознаёт имя стиля из конфигурации/флагов.
func ParseStyle(name string) (Style, error) {
	switch name {
	case "first":
		return StyleFirst, nil
	case "lf":
		return StyleLF, nil
	case "crlf":
		return StyleCRLF, nil
	case "cr":
		return StyleCR, nil
	case "native":
		return StyleNative, nil
	}
	return StyleFirst, fmt.Errorf("unknown eol style %q (must be first, lf, crlf, cr or native)", name)
}

func (s Style) String() string {
	switch s {
	case StyleFirst:
		return "first"
	case StyleLF:
		return "lf"
	case StyleCRLF:
		return "crlf"
	case StyleCR:
		return "cr"
	case StyleNative:
		return "native"
	}
	return "unknown"
}

// Bytes returns the marker bytes for the style; nil for StyleFirst, which has
// no fixed bytes until the stream is observed.
func (s Style) Bytes() []byte {
	switch s {
	case StyleLF:
		return lf
	case StyleCRLF:
		return crlf
	case StyleCR:
		return cr
	case StyleNative:
		return Native()
	}
	return nil
}

// Native returns the host system's line ending.
func Native() []byte {
	if runtime.GOOS == "windows" {
		return crlf
	}
	return lf
}

// Name maps marker bytes back to a style name for messages and summaries.
// An empty or unrecognized marker reports "unknown".
func Name(marker []byte) string {
	switch string(marker) {
	case "\n":
		return "lf"
	case "\r\n":
		return "crlf"
	case "\r":
		return "cr"
	}
	return "unknown"
}
