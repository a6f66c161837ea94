package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"wtf/internal/config"
	"wtf/internal/eol"
	"wtf/internal/policy"
)

// policyFlag binds one issue category to its CLI flag. New categories only
// need a row here; registration and parsing walk the table.
type policyFlag struct {
	name string
	def  policy.Action
	help string
	dst  func(*policy.Policy) *policy.Action
}

var policyFlags = []policyFlag{
	{"trail-space", policy.ActionFix, "trailing space at ends of lines",
		func(p *policy.Policy) *policy.Action { return &p.TrailSpace }},
	{"eof-blanks", policy.ActionFix, "blank lines at end of file",
		func(p *policy.Policy) *policy.Action { return &p.EOFBlanks }},
	{"eof-newl", policy.ActionFix, "missing newline at end of file",
		func(p *policy.Policy) *policy.Action { return &p.EOFNewline }},
	{"eol", policy.ActionFix, "line endings that do not match --eol-style",
		func(p *policy.Policy) *policy.Action { return &p.EOL }},
	{"tab-space-mix", policy.ActionReport, "mixed spaces and tabs in leading whitespace",
		func(p *policy.Policy) *policy.Action { return &p.TabSpaceMix }},
}

func registerPolicyFlags(fs *pflag.FlagSet) {
	for _, f := range policyFlags {
		fs.String(f.name, f.def.String(), fmt.Sprintf("%s (fix|report|ignore)", f.help))
	}
	fs.String("eol-style", "first", "reference line ending (first|lf|crlf|cr|native)")
	fs.Int("change-tabs", 0, "change each leading tab to N spaces")
	fs.Int("change-spaces", 0, "change each N leading spaces to a tab")
	fs.Bool("no-config", false, "do not read wtf.toml")
}

// resolvePolicy builds the effective policy for a command invocation:
// built-in defaults, overridden by the nearest wtf.toml, overridden by any
// flag the user set explicitly. Downgrade notes go to stderr.
func resolvePolicy(cmd *cobra.Command) (policy.Policy, error) {
	pol := policy.Default()

	noConfig, err := cmd.Flags().GetBool("no-config")
	if err != nil {
		return pol, err
	}
	if !noConfig {
		if err := applyConfigFile(&pol); err != nil {
			return pol, err
		}
	}
	if err := applyPolicyFlags(cmd.Flags(), &pol); err != nil {
		return pol, err
	}

	if err := pol.Validate(); err != nil {
		return pol, err
	}
	for _, note := range pol.Normalize() {
		fmt.Fprintf(os.Stderr, "wtf: %s\n", note)
	}
	return pol, nil
}

func applyConfigFile(pol *policy.Policy) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	path, ok, err := config.Find(wd)
	if err != nil || !ok {
		return err
	}
	f, meta, err := config.Load(path)
	if err != nil {
		return err
	}
	return config.Apply(f, meta, path, pol)
}

func applyPolicyFlags(fs *pflag.FlagSet, pol *policy.Policy) error {
	for _, f := range policyFlags {
		if !fs.Changed(f.name) {
			continue
		}
		raw, err := fs.GetString(f.name)
		if err != nil {
			return err
		}
		a, err := policy.ParseAction(raw)
		if err != nil {
			return fmt.Errorf("--%s: %w", f.name, err)
		}
		*f.dst(pol) = a
	}
	if fs.Changed("eol-style") {
		raw, err := fs.GetString("eol-style")
		if err != nil {
			return err
		}
		s, err := eol.ParseStyle(raw)
		if err != nil {
			return fmt.Errorf("--eol-style: %w", err)
		}
		pol.EOLStyle = s
	}
	if fs.Changed("change-tabs") {
		n, err := fs.GetInt("change-tabs")
		if err != nil {
			return err
		}
		pol.ChangeTabs = n
	}
	if fs.Changed("change-spaces") {
		n, err := fs.GetInt("change-spaces")
		if err != nil {
			return err
		}
		pol.ChangeSpaces = n
	}
	return nil
}
