package report

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"wtf/internal/diag"
	"wtf/internal/fix"
	"wtf/internal/policy"
)

func init() {
	// keep assertions byte-exact
	color.NoColor = true
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		seen, fixed, want int
	}{
		{0, 0, ExitClean},
		{3, 3, ExitFixed},
		{3, 1, ExitUnfixed},
		{1, 0, ExitUnfixed},
	}
	for _, tc := range cases {
		if got := ExitCode(tc.seen, tc.fixed); got != tc.want {
			t.Errorf("ExitCode(%d, %d) = %d, want %d", tc.seen, tc.fixed, got, tc.want)
		}
	}
}

func TestPrinterFiltersByVerbosity(t *testing.T) {
	var b strings.Builder
	p := &Printer{W: &b, Path: "a.txt", Verbose: 0}
	p.Report(diag.WsTabSpaceMix, diag.SevWarning, 3, false, "mixed use of spaces and tabs at beginning of line")
	p.Report(diag.ProcRewrite, diag.SevChange, 3, false, `changing "x " to "x"`)
	p.Report(diag.ProcDecompose, diag.SevTrace, 3, false, "lead=...")

	got := b.String()
	if !strings.Contains(got, "a.txt LINE 3: WARNING: mixed use") {
		t.Fatalf("warning missing from output: %q", got)
	}
	if strings.Contains(got, "changing") || strings.Contains(got, "lead=") {
		t.Fatalf("traces must be hidden at verbosity 0: %q", got)
	}
}

func TestPrinterMarksBlankLines(t *testing.T) {
	var b strings.Builder
	p := &Printer{W: &b, Path: "a.txt", Verbose: 0}
	p.Report(diag.WsEOFBlanks, diag.SevWarning, 7, true, "blank line at end of file")
	if !strings.Contains(b.String(), "a.txt EMPTY LINE 7:") {
		t.Fatalf("blank marker missing: %q", b.String())
	}
}

func TestSummaryVerbs(t *testing.T) {
	pol := policy.Default()
	var c fix.Counters
	c.TrailSpace = fix.Tally{Seen: 2, Fixed: 2}
	c.EOFNewline = fix.Tally{Seen: 1, Fixed: 1}

	var b strings.Builder
	Summary(&b, "a.txt", pol, c, []byte("\n"), 1)
	got := b.String()
	for _, want := range []string{
		"a.txt:\n",
		"CHOPPED 2 lines with trailing space",
		"CHOPPED 0 blank lines at EOF",
		"ADDED newline at EOF",
		"CHANGED 0 line endings which didn't match lf from first line",
		"WARNED ABOUT 0 lines with mixed tabs/spaces",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestSummaryWidthLinesFallBackToSeen(t *testing.T) {
	pol := policy.Default()
	pol.ChangeTabs = 4
	var c fix.Counters
	c.ChangeTabs = fix.Tally{Seen: 3, Fixed: 0} // report-only run: nothing rewritten

	var b strings.Builder
	Summary(&b, "a.txt", pol, c, []byte("\n"), 1)
	if !strings.Contains(b.String(), "CHANGED tabs to 4 spaces on 3 lines") {
		t.Fatalf("width line must fall back to seen when nothing was fixed:\n%s", b.String())
	}

	b.Reset()
	c.ChangeTabs = fix.Tally{Seen: 3, Fixed: 2}
	Summary(&b, "a.txt", pol, c, []byte("\n"), 1)
	if !strings.Contains(b.String(), "CHANGED tabs to 4 spaces on 2 lines") {
		t.Fatalf("width line must prefer fixed when lines were rewritten:\n%s", b.String())
	}
}

func TestSummaryQuietAndCleanFiles(t *testing.T) {
	var b strings.Builder
	Summary(&b, "a.txt", policy.Default(), fix.Counters{}, nil, 0)
	if b.Len() != 0 {
		t.Fatalf("quiet run must print nothing, got %q", b.String())
	}

	Summary(&b, "a.txt", policy.Default(), fix.Counters{}, nil, 1)
	if b.Len() != 0 {
		t.Fatalf("clean file hidden at -v, got %q", b.String())
	}

	Summary(&b, "a.txt", policy.Default(), fix.Counters{}, nil, 2)
	if b.Len() == 0 {
		t.Fatal("clean file must print at -vv")
	}
}

func TestSummarySkipsIgnoredCategories(t *testing.T) {
	pol := policy.Default()
	pol.TrailSpace = policy.ActionIgnore
	var b strings.Builder
	Summary(&b, "a.txt", pol, fix.Counters{}, nil, 2)
	if strings.Contains(b.String(), "trailing space") {
		t.Fatalf("ignored category must not appear:\n%s", b.String())
	}
}
