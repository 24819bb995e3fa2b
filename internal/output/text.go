package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"inclint/internal/annotate"
	"inclint/internal/rules"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

var (
	failureColor = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	noticeColor  = color.New(color.FgCyan)
	okColor      = color.New(color.FgGreen)
)

func (t *TextWriter) Write(w io.Writer, report *annotate.Report) error {
	ew := &errWriter{w: w}

	total := report.Summary.Counts.Failure + report.Summary.Counts.Warning + report.Summary.Counts.Notice
	ew.printf("inclint — %s mode\n", report.Inputs.Mode)
	if report.Inputs.Range != "" {
		ew.printf("Range: %s\n", report.Inputs.Range)
	}
	if report.Repo.Root != "" {
		ew.printf("Repository: %s (branch: %s)\n", report.Repo.Root, report.Repo.Branch)
	}
	ew.println(strings.Repeat("─", 60))
	ew.printf("Matches: %d total", total)
	if total > 0 {
		ew.printf(" (%d failure, %d warning, %d notice)",
			report.Summary.Counts.Failure,
			report.Summary.Counts.Warning,
			report.Summary.Counts.Notice,
		)
	}
	ew.println("")
	ew.println(strings.Repeat("─", 60))

	if total == 0 {
		ew.printf("\n%s\n", okColor.Sprint("No non-inclusive language found in the added lines."))
		return ew.err
	}

	grouped := groupByLevel(report.Annotations)
	for _, lvl := range []rules.Level{rules.Failure, rules.Warning, rules.Notice} {
		annotations := grouped[lvl]
		if len(annotations) == 0 {
			continue
		}

		ew.printf("\n%s\n", levelColor(lvl).Sprint(strings.ToUpper(lvl.String())))
		ew.println(strings.Repeat("─", 40))

		for _, a := range annotations {
			ew.printf("\n  %s:%d  %s\n", a.Path, a.StartLine, a.Title)
			for _, line := range wrapText(a.Message, 70) {
				ew.printf("    %s\n", line)
			}
		}
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.printf("Overall: %s\n", levelColor(report.Summary.Overall).Sprint(report.Summary.Overall.String()))
	ew.printf("Completed in %dms (git: %dms, scan: %dms)\n",
		report.Timing.TotalMs, report.Timing.GitMs, report.Timing.ScanMs)

	return ew.err
}

func levelColor(l rules.Level) *color.Color {
	switch l {
	case rules.Failure:
		return failureColor
	case rules.Warning:
		return warningColor
	case rules.Notice:
		return noticeColor
	default:
		return okColor
	}
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func groupByLevel(annotations []annotate.Annotation) map[rules.Level][]annotate.Annotation {
	m := make(map[rules.Level][]annotate.Annotation)
	for _, a := range annotations {
		m[a.Level] = append(m[a.Level], a)
	}
	return m
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
