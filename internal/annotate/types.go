package annotate

import (
	"inclint/internal/rules"
)

// Annotation is a single flagged location: one match of one rule on one
// added line. StartLine and EndLine are new-file coordinates and are always
// equal for line-scoped matches.
type Annotation struct {
	Path       string      `json:"path"`
	StartLine  int         `json:"startLine"`
	EndLine    int         `json:"endLine"`
	Level      rules.Level `json:"level"`
	Title      string      `json:"title"`
	Message    string      `json:"message"`
	RawDetails string      `json:"rawDetails,omitempty"`
}

// RepoInfo contains repository metadata.
type RepoInfo struct {
	Root   string `json:"root"`
	Head   string `json:"head"`
	Branch string `json:"branch"`
}

// InputInfo describes what was scanned.
type InputInfo struct {
	Mode  string `json:"mode"`
	Range string `json:"range,omitempty"`
}

// LevelCounts holds annotation counts by level. Off never appears on an
// annotation, so it has no counter.
type LevelCounts struct {
	Notice  int `json:"notice"`
	Warning int `json:"warning"`
	Failure int `json:"failure"`
}

// Summary provides an overview of a scan: per-level counts plus the
// aggregated overall level.
type Summary struct {
	Counts  LevelCounts `json:"counts"`
	Overall rules.Level `json:"overall"`
}

// Timing contains performance metrics.
type Timing struct {
	GitMs   int64 `json:"gitMs"`
	ScanMs  int64 `json:"scanMs"`
	TotalMs int64 `json:"totalMs"`
}

// Report is the top-level output structure for one scan.
type Report struct {
	Tool        string       `json:"tool"`
	Version     string       `json:"version"`
	RunID       string       `json:"runId"`
	Repo        RepoInfo     `json:"repo"`
	Inputs      InputInfo    `json:"inputs"`
	Summary     Summary      `json:"summary"`
	Annotations []Annotation `json:"annotations"`
	Timing      Timing       `json:"timing"`
}

// ComputeSummary calculates the summary from annotations.
func ComputeSummary(annotations []Annotation) Summary {
	var s Summary
	for _, a := range annotations {
		switch a.Level {
		case rules.Notice:
			s.Counts.Notice++
		case rules.Warning:
			s.Counts.Warning++
		case rules.Failure:
			s.Counts.Failure++
		}
	}
	s.Overall = Aggregate(annotations)
	return s
}
