// Package fix is the per-line repair engine: it decomposes each raw line,
// applies the configured policies, and decides when buffered blank lines may
// reach the output.
package fix

import (
	"bytes"
	"fmt"
	"io"

	"wtf/internal/diag"
	"wtf/internal/eol"
	"wtf/internal/policy"
	"wtf/internal/scan"
)

var (
	tabByte   = []byte("\t")
	spaceByte = []byte(" ")
	spaceTab  = []byte(" \t")
	tabSpace  = []byte("\t ")
)

// pendingLine is one already-repaired blank line waiting to learn whether it
// sits at end-of-file.
type pendingLine struct {
	line uint32
	data []byte
}

// Processor owns all per-file state: the reference EOL, the counters and the
// pending-blank buffer. Create one per file and discard it afterwards; it is
// not safe for concurrent use and does not need to be — processing is
// strictly sequential.
type Processor struct {
	pol policy.Policy
	dec *scan.Decomposer
	rep diag.Reporter

	refEOL   []byte // nil until known
	counters Counters
	pending  []pendingLine
	line     uint32

	tabAsSpaces []byte // ChangeTabs spaces, precomputed
	spacesRun   []byte // ChangeSpaces spaces, precomputed
}

// New builds a Processor for one file. rep may be nil to discard events.
// The policy is expected to be normalized; a fix-without-width mix policy is
// treated as report here as well, never fixed silently.
func New(pol policy.Policy, rep diag.Reporter) *Processor {
	pol.Normalize()
	if rep == nil {
		rep = diag.NopReporter{}
	}
	p := &Processor{
		pol: pol,
		dec: scan.NewDecomposer(),
		rep: rep,
	}
	if ref := pol.EOLStyle.Bytes(); ref != nil {
		p.refEOL = ref
	}
	if pol.ChangeTabs > 0 {
		p.tabAsSpaces = bytes.Repeat(spaceByte, pol.ChangeTabs)
	}
	if pol.ChangeSpaces > 0 {
		p.spacesRun = bytes.Repeat(spaceByte, pol.ChangeSpaces)
	}
	return p
}

// Counters returns the tallies accumulated so far.
func (p *Processor) Counters() Counters {
	return p.counters
}

// RefEOL returns the reference line ending, nil while still unknown.
func (p *Processor) RefEOL() []byte {
	return p.refEOL
}

// Run drives the whole stream: every line through Line, then Flush at EOF.
// Only I/O failures abort; line content never does.
func (p *Processor) Run(r io.Reader, w io.Writer) (Counters, error) {
	sc := scan.NewScanner(r)
	for sc.Scan() {
		if err := p.Line(sc.Bytes(), w); err != nil {
			return p.counters, err
		}
	}
	if err := sc.Err(); err != nil {
		return p.counters, fmt.Errorf("read input: %w", err)
	}
	if err := p.Flush(w); err != nil {
		return p.counters, err
	}
	return p.counters, nil
}

// Line repairs one raw line (terminator included, or absent on the final
// line) and either writes it through or parks it in the pending-blank buffer.
func (p *Processor) Line(raw []byte, w io.Writer) error {
	p.line++
	n := p.line

	parts := p.dec.Split(raw)
	blank := parts.Blank()

	// Первый увиденный маркер становится эталоном, если стиль не задан явно.
	if p.refEOL == nil && len(parts.EOL) > 0 {
		p.refEOL = bytes.Clone(parts.EOL)
	}

	p.rep.Report(diag.ProcDecompose, diag.SevTrace, n, blank,
		fmt.Sprintf("lead=%q body=%q trail=%q eol=%q", parts.Lead, parts.Body, parts.Trail, parts.EOL))

	parts.Lead = p.normalizeLead(n, blank, parts.Lead)
	parts.Trail = p.fixTrail(parts.Trail)
	parts.EOL = p.fixEOL(n, blank, parts.EOL)

	out := parts.Bytes()
	if !bytes.Equal(out, raw) {
		p.rep.Report(diag.ProcRewrite, diag.SevChange, n, blank,
			fmt.Sprintf("changing %q to %q", raw, out))
	}

	if blank {
		// end-of-file candidate; hold until the next non-blank line or EOF
		p.pending = append(p.pending, pendingLine{line: n, data: out})
		return nil
	}
	if err := p.writePending(w); err != nil {
		return err
	}
	return p.write(w, out)
}

// Flush resolves the pending-blank buffer at end-of-stream: drop, warn, or
// write through per the eof-blanks policy.
func (p *Processor) Flush(w io.Writer) error {
	if len(p.pending) == 0 {
		return nil
	}
	switch p.pol.EOFBlanks {
	case policy.ActionFix:
		p.counters.EOFBlanks.Seen += len(p.pending)
		p.counters.EOFBlanks.Fixed += len(p.pending)
		p.pending = nil
		return nil
	case policy.ActionReport:
		p.counters.EOFBlanks.Seen += len(p.pending)
		for _, pl := range p.pending {
			p.rep.Report(diag.WsEOFBlanks, diag.SevWarning, pl.line, true,
				"blank line at end of file")
		}
	}
	return p.writePending(w)
}

// normalizeLead applies tab/space-mix detection and width conversion to the
// leading whitespace, counting as it goes.
func (p *Processor) normalizeLead(n uint32, blank bool, lead []byte) []byte {
	// tri-state as in the policy contract: with mix handling disabled the
	// width conversions below treat every line as unmixed
	detect := p.pol.TabSpaceMix != policy.ActionIgnore
	mixed := detect && (bytes.Contains(lead, spaceTab) || bytes.Contains(lead, tabSpace))
	if mixed {
		p.counters.TabSpaceMix.Seen++
		if p.pol.TabSpaceMix == policy.ActionReport {
			p.rep.Report(diag.WsTabSpaceMix, diag.SevWarning, n, blank,
				"mixed use of spaces and tabs at beginning of line")
		}
	}

	switch {
	case p.pol.ChangeTabs > 0:
		if !bytes.Contains(lead, tabByte) {
			break
		}
		p.counters.ChangeTabs.Seen++
		if mixed && p.pol.TabSpaceMix == policy.ActionFix {
			p.counters.TabSpaceMix.Fixed++
			lead = bytes.ReplaceAll(lead, tabByte, p.tabAsSpaces)
			p.counters.ChangeTabs.Fixed++
		} else if !mixed {
			lead = bytes.ReplaceAll(lead, tabByte, p.tabAsSpaces)
			p.counters.ChangeTabs.Fixed++
		}
	case p.pol.ChangeSpaces > 0:
		if !bytes.Contains(lead, spaceByte) {
			break
		}
		p.counters.ChangeSpaces.Seen++
		if mixed && p.pol.TabSpaceMix == policy.ActionFix {
			// widen tabs to spaces first so the collapse below leaves a
			// single kind of leading whitespace
			lead = bytes.ReplaceAll(lead, tabByte, p.spacesRun)
			p.counters.TabSpaceMix.Fixed++
			lead = bytes.ReplaceAll(lead, p.spacesRun, tabByte)
			p.counters.ChangeSpaces.Fixed++
		} else if !mixed {
			lead = bytes.ReplaceAll(lead, p.spacesRun, tabByte)
			p.counters.ChangeSpaces.Fixed++
		}
	}
	return lead
}

func (p *Processor) fixTrail(trail []byte) []byte {
	if p.pol.TrailSpace == policy.ActionIgnore || len(trail) == 0 {
		return trail
	}
	p.counters.TrailSpace.Seen++
	if p.pol.TrailSpace == policy.ActionFix {
		p.counters.TrailSpace.Fixed++
		return nil
	}
	return trail
}

// fixEOL handles both the missing-terminator case on the final line and
// markers that deviate from the reference.
func (p *Processor) fixEOL(n uint32, blank bool, marker []byte) []byte {
	if len(marker) == 0 {
		switch p.pol.EOFNewline {
		case policy.ActionFix:
			p.counters.EOFNewline.Seen++
			p.counters.EOFNewline.Fixed++
			if p.refEOL == nil {
				p.refEOL = eol.Native()
				p.rep.Report(diag.WsEOFNewline, diag.SevWarning, n, blank,
					fmt.Sprintf("don't know what line ending to add (guessed %s)", eol.Name(p.refEOL)))
			}
			return p.refEOL
		case policy.ActionReport:
			p.counters.EOFNewline.Seen++
			p.rep.Report(diag.WsEOFNewline, diag.SevWarning, n, blank,
				"missing newline at end of file")
		}
		return marker
	}

	if p.pol.EOL == policy.ActionIgnore || p.refEOL == nil || bytes.Equal(marker, p.refEOL) {
		return marker
	}
	p.counters.EOL.Seen++
	switch p.pol.EOL {
	case policy.ActionFix:
		p.counters.EOL.Fixed++
		return p.refEOL
	case policy.ActionReport:
		p.rep.Report(diag.WsEOLMismatch, diag.SevWarning, n, blank,
			fmt.Sprintf("line ending %s does not match %s", eol.Name(marker), eol.Name(p.refEOL)))
	}
	return marker
}

func (p *Processor) writePending(w io.Writer) error {
	if len(p.pending) == 0 {
		return nil
	}
	for _, pl := range p.pending {
		if err := p.write(w, pl.data); err != nil {
			return err
		}
	}
	p.pending = p.pending[:0]
	return nil
}

func (p *Processor) write(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
