package annotate

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"inclint/internal/diff"
	"inclint/internal/rules"
)

// Annotate scans every added line of every scannable file against the rule
// set and returns one Annotation per match. Binary and deleted files are
// skipped without error. Output order is file order, then line order, then
// rule order — stable, so downstream consumers can rely on it.
func Annotate(set *rules.Set, files []diff.File) []Annotation {
	var annotations []Annotation
	for _, f := range files {
		if f.IsBinary || f.IsDeleted {
			continue
		}
		for _, h := range f.Hunks {
			for _, ln := range h.Lines {
				if ln.Type != diff.Added {
					continue
				}
				for _, m := range set.Match(ln.Content) {
					annotations = append(annotations, newAnnotation(f.Path, ln, m))
				}
			}
		}
	}
	return annotations
}

// Aggregate reduces annotations to a single overall level: the maximum
// under Off < Notice < Warning < Failure, with Off for an empty collection.
func Aggregate(annotations []Annotation) rules.Level {
	overall := rules.Off
	for _, a := range annotations {
		overall = rules.MaxLevel(overall, a.Level)
	}
	return overall
}

// FilterFiles drops files whose path matches any of the ignore globs.
// Globs use doublestar syntax, so "vendor/**" and "**/*.lock" behave the
// way repository configuration expects.
func FilterFiles(files []diff.File, ignoreGlobs []string) []diff.File {
	if len(ignoreGlobs) == 0 {
		return files
	}
	kept := files[:0:0]
	for _, f := range files {
		if !matchesAny(f.Path, ignoreGlobs) {
			kept = append(kept, f)
		}
	}
	return kept
}

func matchesAny(path string, globs []string) bool {
	for _, g := range globs {
		if ok, err := doublestar.Match(g, path); err == nil && ok {
			return true
		}
	}
	return false
}

func newAnnotation(path string, ln diff.Line, m rules.Match) Annotation {
	matched := ln.Content[m.Start:m.End]
	return Annotation{
		Path:      path,
		StartLine: ln.NewLine,
		EndLine:   ln.NewLine,
		Level:     m.Rule.Level,
		Title:     fmt.Sprintf("Non-inclusive term: %q", matched),
		Message:   renderMessage(m.Rule, matched),
		RawDetails: fmt.Sprintf("line: %s\nmatch: %s (bytes %d-%d)",
			ln.Content, matched, m.Start, m.End),
	}
}

// renderMessage expands the rule's message template. Templates may refer to
// {match} and {suggestions}; rules without a template get a default phrasing
// built from the same pieces.
func renderMessage(r rules.Rule, matched string) string {
	if r.Message != "" {
		return strings.NewReplacer(
			"{match}", matched,
			"{suggestions}", strings.Join(r.Suggestions, ", "),
		).Replace(r.Message)
	}
	msg := fmt.Sprintf("Please consider an alternative to %q.", matched)
	if len(r.Suggestions) > 0 {
		msg += fmt.Sprintf(" Possibilities include: %s.", strings.Join(r.Suggestions, ", "))
	}
	return msg
}
