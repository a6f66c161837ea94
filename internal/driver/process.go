// Package driver wires the fix engine to actual files: one file at a time for
// fixing, fan-out across files for report-only checks.
package driver

import (
	"context"
	"fmt"
	"io"
	"os"

	"wtf/internal/diag"
	"wtf/internal/fix"
	"wtf/internal/policy"
)

// Options configures one run of the driver.
type Options struct {
	Policy policy.Policy
	// MaxDiagnostics caps the Bag per file.
	MaxDiagnostics int
	// Extra receives diagnostics as they happen, in addition to the Bag.
	// Used for streaming output while fixing.
	Extra diag.Reporter
}

const defaultMaxDiagnostics = 1000

// Result is the outcome of processing one input.
type Result struct {
	Path     string
	Counters fix.Counters
	Bag      *diag.Bag
	// RefEOL is the reference line ending the file ended up compared
	// against; nil when never established.
	RefEOL []byte
	// Cached marks results served from the check cache; their Bag is empty.
	Cached bool
}

// Changed reports whether any line was rewritten.
func (r *Result) Changed() bool {
	return r.Counters.Changed()
}

// ProcessReader runs the engine over one decoded stream. All per-file state
// lives inside this call.
func ProcessReader(ctx context.Context, name string, r io.Reader, w io.Writer, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = defaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiag)
	var rep diag.Reporter = diag.BagReporter{Bag: bag}
	if opts.Extra != nil {
		rep = diag.MultiReporter{diag.BagReporter{Bag: bag}, opts.Extra}
	}

	proc := fix.New(opts.Policy, rep)
	counters, err := proc.Run(r, w)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Result{
		Path:     name,
		Counters: counters,
		Bag:      bag,
		RefEOL:   proc.RefEOL(),
	}, nil
}

// ProcessFile opens path and runs the engine, writing repaired output to w.
func ProcessFile(ctx context.Context, path string, w io.Writer, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ProcessReader(ctx, path, f, w, opts)
}
