package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wtf/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "wtf",
	Short: "Whitespace Total Fixer",
	Long: `wtf fixes and reports all manner of annoying issues with whitespace
and line endings in text files.

Exit codes on success:
    0  no issues seen
   10  issues fixed
   20  unfixed issues remain (suppress with -X)`,
}

// exitStatus is set by fix/check once all files are processed.
var exitStatus int

// main initializes the CLI by setting the command version, registering
// subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress per-file summaries")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolP("no-exit-codes", "X", false, "exit 0 on success even when issues were seen")
	rootCmd.PersistentFlags().Int("max-diagnostics", 1000, "maximum number of diagnostics to keep per file")

	rootCmd.PersistentPreRunE = setupColor

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(exitStatus)
}

func setupColor(cmd *cobra.Command, _ []string) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		// Диагностика идёт в stderr, поэтому смотрим на него
		color.NoColor = !isTerminal(os.Stderr)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// verbosity maps -q/-v onto the message levels: 0 suppresses summaries but
// keeps warnings, the default of 1 prints summaries for files with issues,
// -v adds clean files, -vv line changes, -vvv per-line traces.
func verbosity(cmd *cobra.Command) (int, error) {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return 0, err
	}
	if quiet {
		return 0, nil
	}
	count, err := cmd.Root().PersistentFlags().GetCount("verbose")
	if err != nil {
		return 0, err
	}
	return 1 + count, nil
}

func setExitStatus(cmd *cobra.Command, code int) error {
	noExit, err := cmd.Root().PersistentFlags().GetBool("no-exit-codes")
	if err != nil {
		return err
	}
	if !noExit {
		exitStatus = code
	}
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
