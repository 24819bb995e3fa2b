package github

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"inclint/internal/annotate"
	"inclint/internal/rules"
)

const checkName = "inclint"

// maxAnnotationsPerRequest is GitHub's cap on annotations in one check-run
// request. Larger sets are published in batches; nothing is dropped.
const maxAnnotationsPerRequest = 50

// CheckAnnotation is one inline annotation in GitHub's check-run vocabulary.
type CheckAnnotation struct {
	Path            string `json:"path"`
	StartLine       int    `json:"start_line"`
	EndLine         int    `json:"end_line"`
	AnnotationLevel string `json:"annotation_level"`
	Title           string `json:"title"`
	Message         string `json:"message"`
	RawDetails      string `json:"raw_details,omitempty"`
}

// CheckOutput is the output block of a check run.
type CheckOutput struct {
	Title       string            `json:"title"`
	Summary     string            `json:"summary"`
	Annotations []CheckAnnotation `json:"annotations,omitempty"`
}

type checkRunRequest struct {
	Name       string       `json:"name"`
	HeadSHA    string       `json:"head_sha,omitempty"`
	Status     string       `json:"status,omitempty"`
	Conclusion string       `json:"conclusion,omitempty"`
	Output     *CheckOutput `json:"output,omitempty"`
}

type checkRunResponse struct {
	ID int64 `json:"id"`
}

// Conclusion maps an aggregate level to GitHub's check-run conclusion
// vocabulary: Off means a clean pass, Notice and Warning surface without
// blocking, Failure blocks.
func Conclusion(level rules.Level) string {
	switch level {
	case rules.Failure:
		return "failure"
	case rules.Notice, rules.Warning:
		return "neutral"
	default:
		return "success"
	}
}

// AnnotationLevel maps a rule level to GitHub's annotation_level values.
// Off never reaches an annotation.
func AnnotationLevel(level rules.Level) string {
	switch level {
	case rules.Failure:
		return "failure"
	case rules.Warning:
		return "warning"
	default:
		return "notice"
	}
}

// BuildAnnotations converts scan annotations to GitHub's shape, preserving
// order.
func BuildAnnotations(annotations []annotate.Annotation) []CheckAnnotation {
	out := make([]CheckAnnotation, len(annotations))
	for i, a := range annotations {
		out[i] = CheckAnnotation{
			Path:            a.Path,
			StartLine:       a.StartLine,
			EndLine:         a.EndLine,
			AnnotationLevel: AnnotationLevel(a.Level),
			Title:           a.Title,
			Message:         a.Message,
			RawDetails:      a.RawDetails,
		}
	}
	return out
}

// BuildSummary renders the check-run summary body from a report.
func BuildSummary(report *annotate.Report) string {
	total := report.Summary.Counts.Notice + report.Summary.Counts.Warning + report.Summary.Counts.Failure
	if total == 0 {
		return "No non-inclusive language found in the added lines. :tada:"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d match(es) in the added lines.\n\n", total)
	sb.WriteString("| Level | Count |\n|-------|-------|\n")
	fmt.Fprintf(&sb, "| Failure | %d |\n", report.Summary.Counts.Failure)
	fmt.Fprintf(&sb, "| Warning | %d |\n", report.Summary.Counts.Warning)
	fmt.Fprintf(&sb, "| Notice | %d |\n", report.Summary.Counts.Notice)
	sb.WriteString("\nOnly lines introduced by this change are flagged; pre-existing text is never blamed.\n")
	return sb.String()
}

// PublishCheck creates a check run for headSHA and publishes the report's
// annotations, batching updates of 50 until all are posted. Returns the
// check run ID.
func (c *Client) PublishCheck(ctx context.Context, owner, repo, headSHA string, report *annotate.Report) (int64, error) {
	conclusion := Conclusion(report.Summary.Overall)
	summary := BuildSummary(report)
	all := BuildAnnotations(report.Annotations)

	first := all
	if len(first) > maxAnnotationsPerRequest {
		first = first[:maxAnnotationsPerRequest]
	}

	id, err := c.createCheckRun(ctx, owner, repo, checkRunRequest{
		Name:       checkName,
		HeadSHA:    headSHA,
		Status:     "completed",
		Conclusion: conclusion,
		Output: &CheckOutput{
			Title:       fmt.Sprintf("inclint: %s", report.Summary.Overall),
			Summary:     summary,
			Annotations: first,
		},
	})
	if err != nil {
		return 0, err
	}

	for start := maxAnnotationsPerRequest; start < len(all); start += maxAnnotationsPerRequest {
		end := start + maxAnnotationsPerRequest
		if end > len(all) {
			end = len(all)
		}
		err := c.updateCheckRun(ctx, owner, repo, id, checkRunRequest{
			Name: checkName,
			Output: &CheckOutput{
				Title:       fmt.Sprintf("inclint: %s", report.Summary.Overall),
				Summary:     summary,
				Annotations: all[start:end],
			},
		})
		if err != nil {
			return id, fmt.Errorf("publishing annotation batch at %d: %w", start, err)
		}
	}

	return id, nil
}

func (c *Client) createCheckRun(ctx context.Context, owner, repo string, req checkRunRequest) (int64, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/check-runs", c.apiURL, owner, repo)

	payload, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("marshaling check run: %w", err)
	}

	body, status, err := c.do(ctx, "POST", url, "application/vnd.github.v3+json", payload)
	if err != nil {
		return 0, fmt.Errorf("creating check run: %w", err)
	}
	if status < 200 || status >= 300 {
		return 0, fmt.Errorf("GitHub API error (status %d): %s", status, string(body))
	}

	var resp checkRunResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("parsing check run response: %w", err)
	}
	return resp.ID, nil
}

func (c *Client) updateCheckRun(ctx context.Context, owner, repo string, id int64, req checkRunRequest) error {
	url := fmt.Sprintf("%s/repos/%s/%s/check-runs/%d", c.apiURL, owner, repo, id)

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling check run update: %w", err)
	}

	body, status, err := c.do(ctx, "PATCH", url, "application/vnd.github.v3+json", payload)
	if err != nil {
		return fmt.Errorf("updating check run: %w", err)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("GitHub API error (status %d): %s", status, string(body))
	}
	return nil
}
