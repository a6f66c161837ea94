package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wtf/internal/driver"
	"wtf/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path ...>",
	Short: "Report whitespace issues without writing anything",
	Long: `Scan files (or directories, recursively) and report whitespace issues.
The policy is applied in report-only mode: nothing is ever written, so files
can be checked in parallel. Exits 20 when issues are found.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	registerPolicyFlags(checkCmd.Flags())
	checkCmd.Flags().IntP("jobs", "j", 0, "number of files to check in parallel (0 = number of CPUs)")
	checkCmd.Flags().Bool("cache", false, "skip files whose content and policy were checked before")
	checkCmd.Flags().String("cache-dir", "", "cache directory (implies --cache)")
	checkCmd.Flags().StringSlice("ext", nil, "only scan files with these suffixes inside directories")
	checkCmd.Flags().String("ui", "auto", "progress display for multi-file runs (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
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
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return err
	}
	exts, err := cmd.Flags().GetStringSlice("ext")
	if err != nil {
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

	files, err := expandPaths(args, exts)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files to check")
	}

	var cache *driver.Cache
	switch {
	case cacheDir != "":
		cache, err = driver.OpenCacheAt(cacheDir)
	case useCache:
		cache, err = driver.OpenCache("wtf")
	}
	if err != nil {
		return err
	}

	opts := driver.Options{Policy: pol, MaxDiagnostics: maxDiag}

	var results []*driver.Result
	if len(files) > 1 && shouldUseTUI(mode) {
		results, err = runCheckWithUI(cmd.Context(), "wtf check", files, opts, jobs, cache)
	} else {
		results, err = driver.CheckFiles(cmd.Context(), files, opts, jobs, cache, nil)
	}
	if err != nil {
		return err
	}

	// Сводки печатаем в режиме report-only, как и сам прогон
	seen, _ := printResults(results, pol.Reporting(), verbose)
	return setExitStatus(cmd, report.ExitCode(seen, 0))
}

// expandPaths turns a mix of files and directories into a flat file list.
// Explicitly named files bypass the --ext filter.
func expandPaths(args []string, exts []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		listed, err := driver.ListFiles(arg, exts)
		if err != nil {
			return nil, err
		}
		files = append(files, listed...)
	}
	return files, nil
}
