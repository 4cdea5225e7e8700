package output

import (
	"time"

	"github.com/pragmatical/foundry-bindings-cli/internal/policy"
)

// ValidateOutput is the JSON structure for the validate command.
type ValidateOutput struct {
	Version          string           `json:"version"`
	Timestamp        time.Time        `json:"timestamp"`
	Mode             string           `json:"mode"`
	Status           string           `json:"status"` // "passed" or "failed"
	RulesEvaluated   int              `json:"rules_evaluated"`
	ProjectsAnalyzed int              `json:"projects_analyzed"`
	ErrorCount       int              `json:"error_count"`
	WarningCount     int              `json:"warning_count"`
	InfoCount        int              `json:"info_count"`
	CompliantRules   []string         `json:"compliant_rules"`
	Violations       []ViolationEntry `json:"violations"`
}

// ViolationEntry is a single policy violation in JSON form.
type ViolationEntry struct {
	Rule        string `json:"rule"`
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Project     string `json:"project,omitempty"`
	Category    string `json:"category,omitempty"`
	Identity    string `json:"identity,omitempty"`
	Message     string `json:"message"`
	Remediation string `json:"remediation,omitempty"`
}

// ConvertToValidateOutput flattens a validation report for JSON output.
// failed reports any condition the caller treats as fatal, so strict
// handling of warnings is reflected in the status field.
func ConvertToValidateOutput(report *policy.ValidationReport, mode string, failed bool) ValidateOutput {
	out := ValidateOutput{
		Version:          "1.0",
		Timestamp:        time.Now().UTC(),
		Mode:             mode,
		Status:           "passed",
		RulesEvaluated:   report.TotalRules,
		ProjectsAnalyzed: report.ProjectsAnalyzed,
		ErrorCount:       report.ErrorCount,
		WarningCount:     report.WarningCount,
		InfoCount:        report.InfoCount,
		CompliantRules:   report.CompliantRules,
		Violations:       []ViolationEntry{},
	}
	if failed {
		out.Status = "failed"
	}
	if out.CompliantRules == nil {
		out.CompliantRules = []string{}
	}
	for _, v := range report.Violations {
		out.Violations = append(out.Violations, ViolationEntry{
			Rule:        v.RuleName,
			Type:        string(v.ViolationType),
			Severity:    string(v.Severity),
			Project:     v.Project,
			Category:    v.Category,
			Identity:    v.Identity,
			Message:     v.Message,
			Remediation: v.Remediation,
		})
	}
	return out
}
