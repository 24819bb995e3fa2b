package rules

import (
	"fmt"
	"regexp"
)

// Mode selects how a rule's pattern is anchored when scanning a line.
type Mode string

const (
	// ModeWord matches the pattern only at word boundaries, so a rule for
	// "master" does not fire on "mastermind".
	ModeWord Mode = "word"
	// ModeSubstring matches the pattern anywhere in the line.
	ModeSubstring Mode = "substring"
)

// ParseMode converts a mode name to a Mode. The empty string defaults to
// word mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", string(ModeWord):
		return ModeWord, nil
	case string(ModeSubstring):
		return ModeSubstring, nil
	}
	return "", fmt.Errorf("unknown mode %q (expected word or substring)", name)
}

// Rule is one validated pattern check. Rules are read-only during a run.
type Rule struct {
	Pattern     string   `json:"pattern" yaml:"pattern"`
	Level       Level    `json:"level" yaml:"level"`
	Mode        Mode     `json:"mode" yaml:"mode"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	Message     string   `json:"message,omitempty" yaml:"message,omitempty"`
}

// compiledRule pairs a rule with its compiled, case-insensitive regexp.
type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// Set is the active, validated collection of rules for a run. Rules with
// level off are excluded at construction; a Set never contains a disabled
// rule. Sets are immutable once built and safe for concurrent use.
type Set struct {
	rules []compiledRule
}

// NewSet compiles the given rules into a Set. Disabled rules (level off)
// are skipped. A rule whose pattern does not compile fails the whole
// construction so that a bad rule is rejected before any diff is scanned,
// not mid-run.
func NewSet(rs []Rule) (*Set, error) {
	set := &Set{}
	for _, r := range rs {
		if r.Level == Off {
			continue
		}
		if r.Pattern == "" {
			return nil, fmt.Errorf("rule with empty pattern")
		}
		mode, err := ParseMode(string(r.Mode))
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Pattern, err)
		}
		r.Mode = mode
		re, err := compilePattern(r.Pattern, mode)
		if err != nil {
			return nil, fmt.Errorf("rule %q: invalid pattern: %w", r.Pattern, err)
		}
		set.rules = append(set.rules, compiledRule{Rule: r, re: re})
	}
	return set, nil
}

func compilePattern(pattern string, mode Mode) (*regexp.Regexp, error) {
	expr := "(?i)(?:" + pattern + ")"
	if mode == ModeWord {
		expr = `(?i)\b(?:` + pattern + `)\b`
	}
	return regexp.Compile(expr)
}

// Len returns the number of active rules in the set.
func (s *Set) Len() int {
	return len(s.rules)
}

// Active returns the active rules in their scan order.
func (s *Set) Active() []Rule {
	out := make([]Rule, len(s.rules))
	for i, cr := range s.rules {
		out[i] = cr.Rule
	}
	return out
}

// Match is one occurrence of a rule's pattern in a line of text. Start and
// End are byte offsets into the line, End exclusive.
type Match struct {
	Rule  Rule
	Start int
	End   int
}

// Match scans one line of text against every active rule. Each rule
// contributes one Match per non-overlapping occurrence; occurrences of
// different rules may overlap and are all reported. Output order is rule
// order, then offset order, which keeps downstream annotation order stable.
func (s *Set) Match(line string) []Match {
	var matches []Match
	for _, cr := range s.rules {
		for _, loc := range cr.re.FindAllStringIndex(line, -1) {
			matches = append(matches, Match{Rule: cr.Rule, Start: loc[0], End: loc[1]})
		}
	}
	return matches
}

// Merge layers override rules on top of a base list. An override whose
// pattern equals a base rule's pattern (exact string match) replaces that
// rule in place, preserving base order; remaining overrides are appended in
// their own order. Setting an override's level to off is how a base rule is
// disabled.
func Merge(base, overrides []Rule) []Rule {
	merged := make([]Rule, len(base))
	copy(merged, base)

	byPattern := make(map[string]int, len(merged))
	for i, r := range merged {
		byPattern[r.Pattern] = i
	}

	for _, o := range overrides {
		if i, ok := byPattern[o.Pattern]; ok {
			merged[i] = o
			continue
		}
		byPattern[o.Pattern] = len(merged)
		merged = append(merged, o)
	}
	return merged
}
