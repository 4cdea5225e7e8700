package policy

import (
	"fmt"
	"sort"
	"strings"
)

// GenerateReport generates a formatted report from a validation run
func GenerateReport(report *ValidationReport) string {
	var output strings.Builder

	// Header
	output.WriteString("\n")
	output.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	output.WriteString("Binding Policy Report\n")
	output.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	// Summary stats
	output.WriteString(fmt.Sprintf("Rules Evaluated: %d\n", report.TotalRules))
	output.WriteString(fmt.Sprintf("Violations Found: %d\n", report.TotalViolations))

	if report.ErrorCount > 0 {
		output.WriteString(fmt.Sprintf("Errors: %d\n", report.ErrorCount))
	}
	if report.WarningCount > 0 {
		output.WriteString(fmt.Sprintf("Warnings: %d\n", report.WarningCount))
	}
	if len(report.CompliantRules) > 0 {
		output.WriteString(fmt.Sprintf("Compliant: %d\n", len(report.CompliantRules)))
	}
	output.WriteString("\n")

	// Group violations by rule
	violationsByRule := make(map[string][]Violation)
	for _, v := range report.Violations {
		violationsByRule[v.RuleName] = append(violationsByRule[v.RuleName], v)
	}

	ruleNames := make([]string, 0, len(violationsByRule))
	for name := range violationsByRule {
		ruleNames = append(ruleNames, name)
	}
	sort.Strings(ruleNames)

	for _, ruleName := range ruleNames {
		for _, v := range violationsByRule[ruleName] {
			output.WriteString(FormatViolation(&v))
			output.WriteString("\n")
		}
	}

	if len(report.CompliantRules) > 0 {
		for _, name := range report.CompliantRules {
			output.WriteString(fmt.Sprintf("✅ COMPLIANT: %s\n", name))
		}
		output.WriteString("\n")
	}

	// Summary
	output.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	output.WriteString("Summary\n")
	output.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	output.WriteString(fmt.Sprintf("Projects Analyzed: %d\n", report.ProjectsAnalyzed))

	if report.TotalViolations == 0 {
		output.WriteString("Status: PASSED ✅\n")
		output.WriteString("All binding rules compliant!\n")
	} else {
		output.WriteString("Status: FAILED ❌\n")
		if report.ErrorCount > 0 {
			output.WriteString(fmt.Sprintf("Errors: %d\n", report.ErrorCount))
		}
		if report.WarningCount > 0 {
			output.WriteString(fmt.Sprintf("Warnings: %d\n", report.WarningCount))
		}
		output.WriteString("\nFix the errors above before running the deployment.\n")
	}

	return output.String()
}

// FormatViolation formats a single violation for display
func FormatViolation(v *Violation) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("%s: %s\n", strings.ToUpper(string(v.Severity)), v.RuleName))
	output.WriteString(fmt.Sprintf("   Violation: %s\n", formatViolationType(v.ViolationType)))
	output.WriteString("\n")

	if v.Project != "" {
		output.WriteString(fmt.Sprintf("   Project: %s\n", v.Project))
	}
	if v.Category != "" {
		output.WriteString(fmt.Sprintf("   Category: %s\n", v.Category))
	}
	if v.Identity != "" {
		output.WriteString(fmt.Sprintf("   Identity: %s\n", v.Identity))
	}

	output.WriteString(fmt.Sprintf("\n   %s\n", v.Message))

	if v.Remediation != "" {
		output.WriteString(fmt.Sprintf("   Remediation: %s\n", v.Remediation))
	}

	return output.String()
}

// formatViolationType converts violation type to readable string
func formatViolationType(vt ViolationType) string {
	switch vt {
	case ViolationTypeIdentityFormat:
		return "MALFORMED IDENTITY"
	case ViolationTypeMissingCategory:
		return "MISSING REQUIRED CONNECTION"
	case ViolationTypeOversharing:
		return "SHARING LIMIT EXCEEDED"
	case ViolationTypeModeMismatch:
		return "MODE MISMATCH"
	default:
		return string(vt)
	}
}
