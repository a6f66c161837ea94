// Package config finds and loads wtf.toml, the optional per-project policy
// file. Flags always win over the file; the file wins over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"wtf/internal/eol"
	"wtf/internal/policy"
)

// FileName is the manifest searched for in the working directory and its
// parents.
const FileName = "wtf.toml"

type File struct {
	Policy PolicySection `toml:"policy"`
	EOL    EOLSection    `toml:"eol"`
	Tabs   TabsSection   `toml:"tabs"`
}

type PolicySection struct {
	TrailSpace  string `toml:"trail_space"`
	EOFBlanks   string `toml:"eof_blanks"`
	EOFNewline  string `toml:"eof_newl"`
	TabSpaceMix string `toml:"tab_space_mix"`
}

type EOLSection struct {
	Action string `toml:"action"`
	Style  string `toml:"style"`
}

type TabsSection struct {
	ChangeTabs   int `toml:"change_tabs"`
	ChangeSpaces int `toml:"change_spaces"`
}

// Find walks up from startDir looking for wtf.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path. The returned MetaData distinguishes "absent" from
// "set to the default", which Apply needs.
func Load(path string) (File, toml.MetaData, error) {
	var f File
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, toml.MetaData{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return f, meta, nil
}

// Apply copies the values present in the file onto pol. Unknown action or
// style names fail with the file path in the message.
func Apply(f File, meta toml.MetaData, path string, pol *policy.Policy) error {
	actionFields := []struct {
		key   string
		value string
		dst   *policy.Action
	}{
		{"trail_space", f.Policy.TrailSpace, &pol.TrailSpace},
		{"eof_blanks", f.Policy.EOFBlanks, &pol.EOFBlanks},
		{"eof_newl", f.Policy.EOFNewline, &pol.EOFNewline},
		{"tab_space_mix", f.Policy.TabSpaceMix, &pol.TabSpaceMix},
	}
	for _, field := range actionFields {
		if !meta.IsDefined("policy", field.key) {
			continue
		}
		a, err := policy.ParseAction(field.value)
		if err != nil {
			return fmt.Errorf("%s: [policy].%s: %w", path, field.key, err)
		}
		*field.dst = a
	}

	if meta.IsDefined("eol", "action") {
		a, err := policy.ParseAction(f.EOL.Action)
		if err != nil {
			return fmt.Errorf("%s: [eol].action: %w", path, err)
		}
		pol.EOL = a
	}
	if meta.IsDefined("eol", "style") {
		s, err := eol.ParseStyle(f.EOL.Style)
		if err != nil {
			return fmt.Errorf("%s: [eol].style: %w", path, err)
		}
		pol.EOLStyle = s
	}

	if meta.IsDefined("tabs", "change_tabs") {
		pol.ChangeTabs = f.Tabs.ChangeTabs
	}
	if meta.IsDefined("tabs", "change_spaces") {
		pol.ChangeSpaces = f.Tabs.ChangeSpaces
	}
	if err := pol.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Starter is the wtf.toml template written by `wtf init`. Every value shown
// is the built-in default.
const Starter = `# wtf policy file. Flags override these values.
# Actions: fix | report | ignore

[policy]
trail_space = "fix"
eof_blanks = "fix"
eof_newl = "fix"
tab_space_mix = "report"

[eol]
action = "fix"
# first | lf | crlf | cr | native
style = "first"

# Width conversions are off by default; enable at most one.
# [tabs]
# change_tabs = 4
# change_spaces = 4
`
