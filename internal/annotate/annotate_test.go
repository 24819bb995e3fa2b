package annotate

import (
	"strings"
	"testing"

	"inclint/internal/diff"
	"inclint/internal/gitctx"
	"inclint/internal/rules"
)

func defaultSet(t *testing.T) *rules.Set {
	t.Helper()
	set, err := rules.NewSet(rules.DefaultRules())
	if err != nil {
		t.Fatal(err)
	}
	return set
}

func TestAnnotateAddedLine(t *testing.T) {
	text := `diff --git a/config.py b/config.py
--- a/config.py
+++ b/config.py
@@ -40,3 +40,4 @@
 DEBUG = False
 TIMEOUT = 30
+BRANCH = "master"
 RETRIES = 3
`
	files, err := diff.Parse(text)
	if err != nil {
		t.Fatal(err)
	}

	annotations := Annotate(defaultSet(t), files)
	if len(annotations) != 1 {
		t.Fatalf("got %d annotations", len(annotations))
	}

	a := annotations[0]
	if a.Path != "config.py" {
		t.Errorf("Path = %q", a.Path)
	}
	if a.StartLine != 42 || a.EndLine != 42 {
		t.Errorf("lines = %d-%d, want 42-42", a.StartLine, a.EndLine)
	}
	if a.Level != rules.Warning {
		t.Errorf("Level = %v, want warning", a.Level)
	}
	if !strings.Contains(a.Title, `"master"`) {
		t.Errorf("Title = %q", a.Title)
	}
	if !strings.Contains(a.Message, "main") {
		t.Errorf("Message should carry suggestions: %q", a.Message)
	}
}

func TestAnnotateIgnoresContextAndRemoved(t *testing.T) {
	text := `diff --git a/a.txt b/a.txt
--- a/a.txt
+++ b/a.txt
@@ -1,3 +1,2 @@
 the master branch stays
-the slave node goes
 untouched
`
	files, err := diff.Parse(text)
	if err != nil {
		t.Fatal(err)
	}

	annotations := Annotate(defaultSet(t), files)
	if len(annotations) != 0 {
		t.Errorf("only added lines should be scanned, got %v", annotations)
	}
}

func TestAnnotateMultipleMatchesOneLine(t *testing.T) {
	text := `diff --git a/setup.sh b/setup.sh
--- a/setup.sh
+++ b/setup.sh
@@ -1 +1,2 @@
 #!/bin/sh
+promote master and run a sanity check
`
	files, err := diff.Parse(text)
	if err != nil {
		t.Fatal(err)
	}

	annotations := Annotate(defaultSet(t), files)
	if len(annotations) != 2 {
		t.Fatalf("got %d annotations, want 2", len(annotations))
	}
	if Aggregate(annotations) != rules.Warning {
		t.Errorf("aggregate = %v, want warning", Aggregate(annotations))
	}
}

func TestAnnotateSkipsBinaryAndDeleted(t *testing.T) {
	files := []diff.File{
		{Path: "logo.png", IsBinary: true},
		{
			Path:      "gone.txt",
			IsDeleted: true,
			Hunks: []diff.Hunk{{Lines: []diff.Line{
				{Type: diff.Added, Content: "master", NewLine: 1},
			}}},
		},
	}

	if got := Annotate(defaultSet(t), files); len(got) != 0 {
		t.Errorf("binary and deleted files must be skipped, got %v", got)
	}
}

func TestAnnotateOrderStable(t *testing.T) {
	text := `diff --git a/a.txt b/a.txt
--- a/a.txt
+++ b/a.txt
@@ -0,0 +1,2 @@
+first slave
+then master
diff --git a/b.txt b/b.txt
--- a/b.txt
+++ b/b.txt
@@ -0,0 +1 @@
+another master
`
	files, err := diff.Parse(text)
	if err != nil {
		t.Fatal(err)
	}

	annotations := Annotate(defaultSet(t), files)
	if len(annotations) != 3 {
		t.Fatalf("got %d annotations", len(annotations))
	}
	if annotations[0].Path != "a.txt" || annotations[0].StartLine != 1 {
		t.Errorf("first = %s:%d", annotations[0].Path, annotations[0].StartLine)
	}
	if annotations[1].Path != "a.txt" || annotations[1].StartLine != 2 {
		t.Errorf("second = %s:%d", annotations[1].Path, annotations[1].StartLine)
	}
	if annotations[2].Path != "b.txt" {
		t.Errorf("third = %s", annotations[2].Path)
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		levels []rules.Level
		want   rules.Level
	}{
		{"empty", nil, rules.Off},
		{"single notice", []rules.Level{rules.Notice}, rules.Notice},
		{"max wins", []rules.Level{rules.Notice, rules.Failure, rules.Warning}, rules.Failure},
		{"order independent", []rules.Level{rules.Warning, rules.Notice}, rules.Warning},
	}

	for _, tt := range tests {
		var annotations []Annotation
		for _, l := range tt.levels {
			annotations = append(annotations, Annotation{Level: l})
		}
		if got := Aggregate(annotations); got != tt.want {
			t.Errorf("%s: Aggregate = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAggregateMonotonic(t *testing.T) {
	annotations := []Annotation{{Level: rules.Warning}}
	before := Aggregate(annotations)
	annotations = append(annotations, Annotation{Level: rules.Notice})
	after := Aggregate(annotations)
	if after < before {
		t.Errorf("adding an annotation lowered the aggregate: %v -> %v", before, after)
	}
}

func TestFilterFiles(t *testing.T) {
	files := []diff.File{
		{Path: "src/main.go"},
		{Path: "vendor/dep/dep.go"},
		{Path: "docs/readme.md"},
	}

	kept := FilterFiles(files, []string{"vendor/**", "docs/**"})
	if len(kept) != 1 || kept[0].Path != "src/main.go" {
		t.Errorf("kept = %v", kept)
	}

	// No globs: input returned as-is
	if got := FilterFiles(files, nil); len(got) != 3 {
		t.Errorf("nil globs filtered files: %v", got)
	}
}

func TestRenderMessageTemplate(t *testing.T) {
	r := rules.Rule{
		Pattern:     "master",
		Message:     "Replace {match} with one of: {suggestions}.",
		Suggestions: []string{"main", "primary"},
	}
	got := renderMessage(r, "Master")
	want := "Replace Master with one of: main, primary."
	if got != want {
		t.Errorf("renderMessage = %q, want %q", got, want)
	}
}

func TestRenderMessageDefault(t *testing.T) {
	r := rules.Rule{Pattern: "dummy", Suggestions: []string{"placeholder"}}
	got := renderMessage(r, "dummy")
	if !strings.Contains(got, `"dummy"`) || !strings.Contains(got, "placeholder") {
		t.Errorf("renderMessage = %q", got)
	}

	// No suggestions: no trailing possibilities clause
	bare := renderMessage(rules.Rule{Pattern: "x"}, "x")
	if strings.Contains(bare, "Possibilities") {
		t.Errorf("renderMessage = %q", bare)
	}
}

func TestComputeSummary(t *testing.T) {
	annotations := []Annotation{
		{Level: rules.Notice},
		{Level: rules.Warning},
		{Level: rules.Warning},
		{Level: rules.Failure},
	}
	s := ComputeSummary(annotations)
	if s.Counts.Notice != 1 || s.Counts.Warning != 2 || s.Counts.Failure != 1 {
		t.Errorf("counts = %+v", s.Counts)
	}
	if s.Overall != rules.Failure {
		t.Errorf("overall = %v", s.Overall)
	}
}

func TestRunEndToEnd(t *testing.T) {
	diffRes := gitctx.DiffResult{
		Diff: `diff --git a/config.py b/config.py
--- a/config.py
+++ b/config.py
@@ -1 +1,2 @@
 x = 1
+mode = "master"
diff --git a/vendor/lib.go b/vendor/lib.go
--- a/vendor/lib.go
+++ b/vendor/lib.go
@@ -1 +1,2 @@
 package lib
+// slave
`,
		Mode:  "staged",
		Files: []string{"config.py", "vendor/lib.go"},
	}

	report, err := Run(diffRes, defaultSet(t), []string{"vendor/**"}, 7)
	if err != nil {
		t.Fatal(err)
	}

	if report.Tool != "inclint" {
		t.Errorf("Tool = %q", report.Tool)
	}
	if report.Inputs.Mode != "staged" {
		t.Errorf("Mode = %q", report.Inputs.Mode)
	}
	if len(report.Annotations) != 1 {
		t.Fatalf("got %d annotations, want 1 (vendor ignored)", len(report.Annotations))
	}
	if report.Summary.Overall != rules.Warning {
		t.Errorf("Overall = %v", report.Summary.Overall)
	}
	if report.Timing.GitMs != 7 {
		t.Errorf("GitMs = %d", report.Timing.GitMs)
	}
	if report.RunID == "" {
		t.Error("RunID empty")
	}
}

func TestRunBadDiff(t *testing.T) {
	diffRes := gitctx.DiffResult{Diff: "not a diff\n", Mode: "file"}
	if _, err := Run(diffRes, defaultSet(t), nil, 0); err == nil {
		t.Error("expected parse error")
	}
}
