package annotate

import (
	"crypto/sha256"
	"fmt"
	"time"

	"inclint/internal/diff"
	"inclint/internal/gitctx"
	"inclint/internal/rules"
)

const toolVersion = "1.0"

// Run executes one scan end to end: parse the diff text, drop ignored
// paths, annotate added lines, and assemble the report. The rule set and
// all intermediate structures are per-call; concurrent runs share nothing.
func Run(diffRes gitctx.DiffResult, set *rules.Set, ignoreGlobs []string, gitMs int64) (*Report, error) {
	startTime := time.Now()

	files, err := diff.Parse(diffRes.Diff)
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}
	files = FilterFiles(files, ignoreGlobs)

	annotations := Annotate(set, files)
	scanMs := time.Since(startTime).Milliseconds()

	return &Report{
		Tool:    "inclint",
		Version: toolVersion,
		RunID:   generateRunID(),
		Repo: RepoInfo{
			Root:   diffRes.Repo.Root,
			Head:   diffRes.Repo.Head,
			Branch: diffRes.Repo.Branch,
		},
		Inputs: InputInfo{
			Mode:  diffRes.Mode,
			Range: diffRes.Range,
		},
		Summary:     ComputeSummary(annotations),
		Annotations: annotations,
		Timing: Timing{
			GitMs:   gitMs,
			ScanMs:  scanMs,
			TotalMs: gitMs + scanMs,
		},
	}, nil
}

func generateRunID() string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%d", time.Now().UnixNano())))
	return fmt.Sprintf("%x", h[:16])
}
