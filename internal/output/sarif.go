package output

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"

	"inclint/internal/annotate"
	"inclint/internal/rules"
)

// SARIFWriter outputs annotations in SARIF v2.1.0 format.
type SARIFWriter struct{}

func (s *SARIFWriter) Write(w io.Writer, report *annotate.Report) error {
	sarif := buildSARIF(report)
	data, err := json.MarshalIndent(sarif, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling SARIF: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing SARIF: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

// SARIF schema types (v2.1.0)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
}

func buildSARIF(report *annotate.Report) sarifLog {
	rulesMap := make(map[string]sarifRule)
	var order []string
	var results []sarifResult

	for _, a := range report.Annotations {
		ruleID := generateRuleID(a)

		if _, ok := rulesMap[ruleID]; !ok {
			rulesMap[ruleID] = sarifRule{
				ID:               ruleID,
				Name:             "inclusive-language",
				ShortDescription: sarifMessage{Text: a.Title},
				DefaultConfig:    sarifDefaultConfig{Level: levelToSARIF(a.Level)},
			}
			order = append(order, ruleID)
		}

		results = append(results, sarifResult{
			RuleID:  ruleID,
			Level:   levelToSARIF(a.Level),
			Message: sarifMessage{Text: a.Message},
			Locations: []sarifLocation{
				{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: a.Path},
						Region: sarifRegion{
							StartLine: a.StartLine,
							EndLine:   a.EndLine,
						},
					},
				},
			},
		})
	}

	sarifRules := make([]sarifRule, 0, len(order))
	for _, id := range order {
		sarifRules = append(sarifRules, rulesMap[id])
	}

	return sarifLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           "inclint",
						Version:        report.Version,
						InformationURI: "https://github.com/inclint/inclint",
						Rules:          sarifRules,
					},
				},
				Results: results,
			},
		},
	}
}

// levelToSARIF maps an inclint level to a SARIF level.
func levelToSARIF(l rules.Level) string {
	switch l {
	case rules.Failure:
		return "error"
	case rules.Warning:
		return "warning"
	default:
		return "note"
	}
}

// generateRuleID creates a stable rule ID from the annotation title.
func generateRuleID(a annotate.Annotation) string {
	h := sha256.Sum256([]byte(a.Title))
	return fmt.Sprintf("inclint/%x", h[:4])
}
