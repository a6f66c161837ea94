// Package report renders diagnostics and per-file summaries for the terminal
// and derives end-of-run exit codes.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"wtf/internal/diag"
	"wtf/internal/eol"
	"wtf/internal/fix"
	"wtf/internal/policy"
)

// Exit codes on successful operation.
const (
	ExitClean   = 0  // no issues seen
	ExitFixed   = 10 // issues seen, all fixed
	ExitUnfixed = 20 // unfixed issues remain
)

// ExitCode derives the process exit status from aggregated totals.
func ExitCode(seen, fixed int) int {
	switch {
	case seen > fixed:
		return ExitUnfixed
	case seen > 0:
		return ExitFixed
	}
	return ExitClean
}

var warnLabel = color.New(color.FgYellow, color.Bold)

// Printer streams diagnostics to W as they are reported, filtered by the
// verbosity threshold. It implements diag.Reporter.
type Printer struct {
	W       io.Writer
	Path    string
	Verbose int
}

func (p *Printer) Report(code diag.Code, sev diag.Severity, line uint32, blank bool, msg string) {
	if p.Verbose < sev.Verbosity() {
		return
	}
	p.print(diag.Diagnostic{Code: code, Severity: sev, Line: line, Blank: blank, Message: msg})
}

// PrintBag prints collected diagnostics in bag order with the same filter.
func (p *Printer) PrintBag(bag *diag.Bag) {
	for _, d := range bag.Items() {
		if p.Verbose < d.Severity.Verbosity() {
			continue
		}
		p.print(d)
	}
}

func (p *Printer) print(d diag.Diagnostic) {
	empty := ""
	if d.Blank {
		empty = "EMPTY "
	}
	if d.Severity == diag.SevWarning {
		fmt.Fprintf(p.W, "%s %sLINE %d: %s: %s\n", p.Path, empty, d.Line, warnLabel.Sprint("WARNING"), d.Message)
		return
	}
	fmt.Fprintf(p.W, "%s %sLINE %d: %s\n", p.Path, empty, d.Line, d.Message)
}

// verb picks the summary verb for a category: past tense when fixing,
// "SAW" when only reporting.
func verb(a policy.Action, fixVerb string) string {
	if a == policy.ActionFix {
		return fixVerb
	}
	return "SAW"
}

// Summary writes the per-file category breakdown the way the tool always has:
// one indented line per enabled category. Shown at -v for files with issues,
// at -vv for every file.
func Summary(w io.Writer, path string, pol policy.Policy, c fix.Counters, refEOL []byte, verbose int) {
	if verbose < 1 {
		return
	}
	if c.TotalSeen() == 0 && verbose < 2 {
		return
	}
	fmt.Fprintf(w, "%s:\n", path)
	if pol.TrailSpace != policy.ActionIgnore {
		fmt.Fprintf(w, "\t%s %d lines with trailing space\n", verb(pol.TrailSpace, "CHOPPED"), c.TrailSpace.Seen)
	}
	if pol.EOFBlanks != policy.ActionIgnore {
		fmt.Fprintf(w, "\t%s %d blank lines at EOF\n", verb(pol.EOFBlanks, "CHOPPED"), c.EOFBlanks.Seen)
	}
	if pol.EOFNewline != policy.ActionIgnore {
		switch {
		case pol.EOFNewline == policy.ActionFix && c.EOFNewline.Fixed > 0:
			fmt.Fprintf(w, "\tADDED newline at EOF\n")
		case c.EOFNewline.Seen > 0:
			fmt.Fprintf(w, "\tSAW MISSING newline at EOF\n")
		default:
			fmt.Fprintf(w, "\tno change to newline at EOF\n")
		}
	}
	if pol.EOL != policy.ActionIgnore {
		suffix := ""
		if pol.EOLStyle == eol.StyleFirst {
			suffix = " from first line"
		}
		fmt.Fprintf(w, "\t%s %d line endings which didn't match %s%s\n",
			verb(pol.EOL, "CHANGED"), c.EOL.Seen, eol.Name(refEOL), suffix)
	}
	if pol.TabSpaceMix != policy.ActionIgnore {
		v := "SAW"
		switch pol.TabSpaceMix {
		case policy.ActionFix:
			v = "CHANGED"
		case policy.ActionReport:
			v = "WARNED ABOUT"
		}
		fmt.Fprintf(w, "\t%s %d lines with mixed tabs/spaces\n", v, c.TabSpaceMix.Seen)
	}
	if pol.ChangeTabs > 0 {
		fmt.Fprintf(w, "\tCHANGED tabs to %d spaces on %d lines\n", pol.ChangeTabs, fixedOrSeen(c.ChangeTabs))
	}
	if pol.ChangeSpaces > 0 {
		fmt.Fprintf(w, "\tCHANGED %d spaces to tabs on %d lines\n", pol.ChangeSpaces, fixedOrSeen(c.ChangeSpaces))
	}
}

// fixedOrSeen picks the width-conversion line count: converted lines when any
// were rewritten, otherwise the convertible lines that were left in place.
func fixedOrSeen(t fix.Tally) int {
	if t.Fixed > 0 {
		return t.Fixed
	}
	return t.Seen
}
