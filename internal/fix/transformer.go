package fix

import (
	"bytes"

	"golang.org/x/text/transform"

	"wtf/internal/policy"
	"wtf/internal/scan"
)

// Transformer adapts the engine to the x/text transform interface so the
// fixer can sit in a transform.Reader or transform.Writer chain. It buffers
// bytes until a full line (or EOF) is available, runs the line through a
// Processor, and hands the repaired bytes downstream.
type Transformer struct {
	pol  policy.Policy
	proc *Processor
	in   []byte
	out  bytes.Buffer
	eof  bool
}

var _ transform.Transformer = (*Transformer)(nil)

func NewTransformer(pol policy.Policy) *Transformer {
	t := &Transformer{pol: pol}
	t.Reset()
	return t
}

// Reset discards all per-stream state so the Transformer can process a new
// stream.
func (t *Transformer) Reset() {
	t.proc = New(t.pol, nil)
	t.in = t.in[:0]
	t.out.Reset()
	t.eof = false
}

// Counters exposes the tallies of the stream processed so far.
func (t *Transformer) Counters() Counters {
	return t.proc.Counters()
}

func (t *Transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	t.in = append(t.in, src...)
	nSrc = len(src)

	// carve complete lines off the carry buffer
	for {
		adv, tok, _ := scan.SplitKeepEOL(t.in, false)
		if adv == 0 {
			break
		}
		if err := t.proc.Line(tok, &t.out); err != nil {
			return 0, nSrc, err
		}
		t.in = t.in[adv:]
	}

	if atEOF && !t.eof {
		for len(t.in) > 0 {
			adv, tok, _ := scan.SplitKeepEOL(t.in, true)
			if err := t.proc.Line(tok, &t.out); err != nil {
				return 0, nSrc, err
			}
			t.in = t.in[adv:]
		}
		if err := t.proc.Flush(&t.out); err != nil {
			return 0, nSrc, err
		}
		t.eof = true
	}

	nDst = copy(dst, t.out.Bytes())
	t.out.Next(nDst)
	if t.out.Len() > 0 {
		return nDst, nSrc, transform.ErrShortDst
	}
	return nDst, nSrc, nil
}
