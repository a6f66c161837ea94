package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wtf/internal/driver"
	"wtf/internal/inplace"
	"wtf/internal/report"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file ...]",
	Short: "Normalize whitespace in files or stdin",
	Long: `Read each input, normalize whitespace according to the active policy,
and write the result. With no file arguments, reads stdin and writes stdout.
Use -i (or -I .EXT for backups) to rewrite files in place.`,
	RunE: runFix,
}

func init() {
	registerPolicyFlags(fixCmd.Flags())
	fixCmd.Flags().StringP("output", "o", "", "write output to this file (single input only)")
	fixCmd.Flags().Bool("dry-run", false, "process input but write no output")
	fixCmd.Flags().BoolP("in-place", "i", false, "rewrite each input file in place")
	fixCmd.Flags().StringP("backup", "I", "", "in-place editing, keeping the original with extension `EXT`")
	fixCmd.Flags().String("ui", "auto", "progress display for multi-file in-place runs (auto|on|off)")
}

type fixOptions struct {
	output    string
	dryRun    bool
	inPlace   bool
	backupExt string
	driver    driver.Options
}

func runFix(cmd *cobra.Command, args []string) error {
	pol, err := resolvePolicy(cmd)
	if err != nil {
		return err
	}
	maxDiag, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	verbose, err := verbosity(cmd)
	if err != nil {
		return err
	}

	opts := fixOptions{driver: driver.Options{Policy: pol, MaxDiagnostics: maxDiag}}
	if opts.output, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}
	if opts.dryRun, err = cmd.Flags().GetBool("dry-run"); err != nil {
		return err
	}
	inPlaceFlag, err := cmd.Flags().GetBool("in-place")
	if err != nil {
		return err
	}
	if opts.backupExt, err = cmd.Flags().GetString("backup"); err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	if opts.backupExt != "" && !strings.HasPrefix(opts.backupExt, ".") {
		opts.backupExt = "." + opts.backupExt
	}
	opts.inPlace = inPlaceFlag || opts.backupExt != ""

	switch {
	case opts.inPlace && len(args) == 0:
		return fmt.Errorf("in-place editing requires file arguments")
	case opts.inPlace && opts.output != "":
		return fmt.Errorf("-o cannot be combined with in-place editing")
	case opts.output != "" && len(args) > 1:
		return fmt.Errorf("-o cannot be combined with multiple input files")
	case opts.dryRun && opts.output != "":
		return fmt.Errorf("--dry-run and -o are mutually exclusive")
	}

	ctx := cmd.Context()

	var results []*driver.Result
	if len(args) == 0 {
		res, err := fixStdin(ctx, &opts)
		if err != nil {
			return err
		}
		results = append(results, res)
	} else if opts.inPlace && len(args) > 1 && shouldUseTUI(mode) {
		results, err = runFixWithUI(ctx, "wtf fix", args, &opts)
		if err != nil {
			return err
		}
	} else {
		for _, path := range args {
			res, err := fixPath(ctx, path, &opts, nil)
			if err != nil {
				return err
			}
			results = append(results, res)
		}
	}

	seen, fixed := printResults(results, pol, verbose)
	return setExitStatus(cmd, report.ExitCode(seen, fixed))
}

func fixStdin(ctx context.Context, opts *fixOptions) (*driver.Result, error) {
	var w io.Writer = os.Stdout
	var out *os.File
	switch {
	case opts.dryRun:
		w = io.Discard
	case opts.output != "":
		f, err := os.Create(opts.output)
		if err != nil {
			return nil, err
		}
		out = f
		w = f
	}
	res, err := driver.ProcessReader(ctx, "<stdin>", os.Stdin, w, opts.driver)
	if out != nil {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", opts.output, cerr)
		}
	}
	return res, err
}

// fixPath processes one named file according to the output mode.
// events, when non-nil, receives progress updates for the TUI.
func fixPath(ctx context.Context, path string, opts *fixOptions, events chan<- driver.Event) (*driver.Result, error) {
	notify(events, path, driver.StatusProcessing, nil)

	var res *driver.Result
	var err error
	switch {
	case opts.dryRun:
		res, err = driver.ProcessFile(ctx, path, io.Discard, opts.driver)
	case opts.inPlace:
		res, err = fixInPlace(ctx, path, opts)
	case opts.output != "":
		var out *os.File
		out, err = os.Create(opts.output)
		if err != nil {
			break
		}
		res, err = driver.ProcessFile(ctx, path, out, opts.driver)
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", opts.output, cerr)
		}
	default:
		res, err = driver.ProcessFile(ctx, path, os.Stdout, opts.driver)
	}

	if err != nil {
		notify(events, path, driver.StatusFailed, err)
		return nil, err
	}
	notify(events, path, fixStatus(res), nil)
	return res, nil
}

func fixInPlace(ctx context.Context, path string, opts *fixOptions) (*driver.Result, error) {
	tgt, err := inplace.NewTarget(path)
	if err != nil {
		return nil, err
	}
	res, err := driver.ProcessFile(ctx, path, tgt.File, opts.driver)
	if err != nil {
		tgt.Discard()
		return nil, err
	}
	// Нетронутые файлы не переписываем: сохраняем mtime
	if !res.Changed() {
		if err := tgt.Discard(); err != nil {
			return nil, err
		}
		return res, nil
	}
	if err := tgt.Commit(opts.backupExt); err != nil {
		return nil, err
	}
	return res, nil
}

func fixStatus(res *driver.Result) driver.Status {
	switch {
	case res.Counters.TotalFixed() > 0:
		return driver.StatusFixed
	case res.Counters.TotalSeen() > 0:
		return driver.StatusIssues
	default:
		return driver.StatusClean
	}
}

func notify(events chan<- driver.Event, path string, status driver.Status, err error) {
	if events == nil {
		return
	}
	events <- driver.Event{Path: path, Status: status, Err: err}
}
