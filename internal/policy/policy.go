// Package policy holds the per-category fix/report/ignore configuration.
//
// The category set is fixed, so Policy is an explicit record with one field
// per category rather than a map keyed by name.
package policy

import (
	"fmt"
	"strings"

	"wtf/internal/eol"
)

// Action is what the engine does with one issue category.
type Action uint8

const (
	// ActionIgnore leaves the issue alone and does not count it.
	ActionIgnore Action = iota
	// ActionReport counts the issue and may warn, but never rewrites.
	ActionReport
	// ActionFix rewrites the line.
	ActionFix
)

func ParseAction(s string) (Action, error) {
	switch s {
	case "ignore":
		return ActionIgnore, nil
	case "report":
		return ActionReport, nil
	case "fix":
		return ActionFix, nil
	}
	return ActionIgnore, fmt.Errorf("unknown action %q (must be fix, report or ignore)", s)
}

func (a Action) String() string {
	switch a {
	case ActionIgnore:
		return "ignore"
	case ActionReport:
		return "report"
	case ActionFix:
		return "fix"
	}
	return "unknown"
}

// Policy is the full configuration of one run. It is set once from flags and
// config and never mutated during processing.
type Policy struct {
	TrailSpace  Action
	EOFBlanks   Action
	EOFNewline  Action
	EOL         Action
	TabSpaceMix Action

	// EOLStyle is the reference style for the EOL category.
	EOLStyle eol.Style

	// ChangeTabs rewrites each leading tab to N spaces; 0 disables.
	ChangeTabs int
	// ChangeSpaces rewrites N consecutive leading spaces to one tab; 0 disables.
	// Mutually exclusive with ChangeTabs (enforced by Validate).
	ChangeSpaces int
}

// Default mirrors the tool's stock behavior: fix everything except tab/space
// mixing, which is only reported, and match line endings against the first one.
func Default() Policy {
	return Policy{
		TrailSpace:  ActionFix,
		EOFBlanks:   ActionFix,
		EOFNewline:  ActionFix,
		EOL:         ActionFix,
		TabSpaceMix: ActionReport,
		EOLStyle:    eol.StyleFirst,
	}
}

// Validate rejects combinations that have no sensible meaning.
func (p Policy) Validate() error {
	if p.ChangeTabs < 0 || p.ChangeSpaces < 0 {
		return fmt.Errorf("tab/space widths must be positive")
	}
	if p.ChangeTabs > 0 && p.ChangeSpaces > 0 {
		return fmt.Errorf("change-tabs and change-spaces are mutually exclusive")
	}
	return nil
}

// Normalize resolves conflicting configuration by downgrading, never by
// failing: fixing tab/space mix without a width parameter falls back to
// report. Returns a human-readable note per downgrade.
func (p *Policy) Normalize() []string {
	var notes []string
	if p.TabSpaceMix == ActionFix && p.ChangeTabs == 0 && p.ChangeSpaces == 0 {
		p.TabSpaceMix = ActionReport
		notes = append(notes,
			"changing tab-space-mix to report (fix requires change-tabs or change-spaces)")
	}
	return notes
}

// Reporting returns a copy with every fix action downgraded to report, for
// check runs that must never rewrite anything.
func (p Policy) Reporting() Policy {
	out := p
	for _, a := range []*Action{&out.TrailSpace, &out.EOFBlanks, &out.EOFNewline, &out.EOL, &out.TabSpaceMix} {
		if *a == ActionFix {
			*a = ActionReport
		}
	}
	out.ChangeTabs = 0
	out.ChangeSpaces = 0
	return out
}

// Fingerprint is a stable string encoding of the whole policy, used to key
// cached results.
func (p Policy) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ts=%s;eb=%s;en=%s;eol=%s/%s;mix=%s;ct=%d;cs=%d",
		p.TrailSpace, p.EOFBlanks, p.EOFNewline,
		p.EOL, p.EOLStyle, p.TabSpaceMix,
		p.ChangeTabs, p.ChangeSpaces)
	return b.String()
}
