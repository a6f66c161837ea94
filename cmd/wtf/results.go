package main

import (
	"os"

	"wtf/internal/driver"
	"wtf/internal/policy"
	"wtf/internal/report"
)

// printResults writes per-line diagnostics and per-file summaries to stderr
// and returns the aggregate issue counts across all files.
func printResults(results []*driver.Result, pol policy.Policy, verbose int) (seen, fixed int) {
	for _, res := range results {
		if res == nil {
			continue
		}
		if res.Bag != nil {
			res.Bag.Sort()
			p := &report.Printer{W: os.Stderr, Path: res.Path, Verbose: verbose}
			p.PrintBag(res.Bag)
		}
		report.Summary(os.Stderr, res.Path, pol, res.Counters, res.RefEOL, verbose)
		seen += res.Counters.TotalSeen()
		fixed += res.Counters.TotalFixed()
	}
	return seen, fixed
}
