package output

import (
	"fmt"
	"io"
	"strings"

	"inclint/internal/annotate"
	"inclint/internal/rules"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *annotate.Report) error {
	total := report.Summary.Counts.Failure + report.Summary.Counts.Warning + report.Summary.Counts.Notice

	fmt.Fprintf(w, "## inclint\n\n")

	fmt.Fprintf(w, "| Level | Count |\n")
	fmt.Fprintf(w, "|-------|-------|\n")
	fmt.Fprintf(w, "| Failure | %d |\n", report.Summary.Counts.Failure)
	fmt.Fprintf(w, "| Warning | %d |\n", report.Summary.Counts.Warning)
	fmt.Fprintf(w, "| Notice  | %d |\n", report.Summary.Counts.Notice)
	fmt.Fprintf(w, "| **Total** | **%d** |\n\n", total)

	if total == 0 {
		fmt.Fprintln(w, "No non-inclusive language found in the added lines. :white_check_mark:")
		return nil
	}

	grouped := groupByLevel(report.Annotations)
	for _, lvl := range []rules.Level{rules.Failure, rules.Warning, rules.Notice} {
		annotations := grouped[lvl]
		if len(annotations) == 0 {
			continue
		}

		label := strings.ToUpper(lvl.String())
		fmt.Fprintf(w, "<details>\n<summary>%s (%d)</summary>\n\n", label, len(annotations))

		for _, a := range annotations {
			fmt.Fprintf(w, "- **`%s:%d`** — %s\n\n  %s\n\n", a.Path, a.StartLine, a.Title, a.Message)
		}

		fmt.Fprintf(w, "</details>\n\n")
	}

	fmt.Fprintf(w, "*Overall: %s — scanned in %dms*\n",
		report.Summary.Overall, report.Timing.TotalMs)

	return nil
}
