// Package scan splits input into raw lines and takes each line apart into its
// whitespace anatomy.
package scan

import (
	"regexp"
)

// Parts is the four-way decomposition of one raw line. Concatenating the
// fields in order reproduces the original line byte-for-byte. Body is empty
// or begins and ends with a non-whitespace byte.
//
// For a line with no body (empty or whitespace-only), the whole whitespace run
// lands in Trail and Lead stays empty. That choice is deliberate:
// indentation-only lines then count as trailing-space issues, and a blank
// line's whitespace never participates in tab/space-mix handling.
type Parts struct {
	Lead  []byte
	Body  []byte
	Trail []byte
	EOL   []byte
}

// Bytes reassembles the line.
func (p Parts) Bytes() []byte {
	out := make([]byte, 0, len(p.Lead)+len(p.Body)+len(p.Trail)+len(p.EOL))
	out = append(out, p.Lead...)
	out = append(out, p.Body...)
	out = append(out, p.Trail...)
	out = append(out, p.EOL...)
	return out
}

// Blank reports whether the line has no body.
func (p Parts) Blank() bool {
	return len(p.Body) == 0
}

// Decomposer splits raw lines. It owns its compiled pattern; no shared
// package state.
type Decomposer struct {
	re *regexp.Regexp
}

// Lead and trail are lazy so the body keeps its non-whitespace boundaries;
// the EOL alternation is ordered longest first so "\r\n" never splits.
const linePattern = `(?s)\A(\s*?)((?:\S.*?)?)(\s*?)(\r\n|\n|\r|)\z`

func NewDecomposer() *Decomposer {
	return &Decomposer{re: regexp.MustCompile(linePattern)}
}

// Split decomposes one raw line. Any byte sequence is accepted; the pattern
// matches every input, so the fallback branch is unreachable in practice.
func (d *Decomposer) Split(line []byte) Parts {
	m := d.re.FindSubmatch(line)
	if m == nil {
		return Parts{Body: line}
	}
	return Parts{Lead: m[1], Body: m[2], Trail: m[3], EOL: m[4]}
}
