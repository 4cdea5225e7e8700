package policy

import (
	"fmt"
	"sort"

	"github.com/pragmatical/foundry-bindings-cli/internal/resolver"
)

// Validator checks a deployment's project map and resolved tables against
// the configured rules.
type Validator struct {
	config   *PolicyConfig
	projects map[string]resolver.Project
	tables   resolver.Tables
	mode     resolver.Mode
}

// NewValidator creates a validator for one deployment.
func NewValidator(config *PolicyConfig, projects map[string]resolver.Project, tables resolver.Tables, mode resolver.Mode) *Validator {
	return &Validator{
		config:   config,
		projects: projects,
		tables:   tables,
		mode:     mode,
	}
}

// Validate runs all rules and returns a report.
func (v *Validator) Validate() *ValidationReport {
	report := &ValidationReport{
		TotalRules:       len(v.config.Rules),
		Violations:       []Violation{},
		CompliantRules:   []string{},
		ProjectsAnalyzed: len(v.projects),
	}

	for _, rule := range v.config.Rules {
		violations := v.validateRule(&rule)

		if len(violations) == 0 {
			report.CompliantRules = append(report.CompliantRules, rule.Name)
			continue
		}

		report.Violations = append(report.Violations, violations...)
		report.TotalViolations += len(violations)

		for _, violation := range violations {
			switch violation.Severity {
			case SeverityError:
				report.ErrorCount++
			case SeverityWarning:
				report.WarningCount++
			case SeverityInfo:
				report.InfoCount++
			}
		}
	}

	return report
}

func (v *Validator) validateRule(rule *Rule) []Violation {
	switch rule.Type {
	case RuleTypeIdentityFormat:
		return v.validateIdentityFormat(rule)
	case RuleTypeRequiredCategory:
		return v.validateRequiredCategory(rule)
	case RuleTypeMaxSharing:
		return v.validateMaxSharing(rule)
	default:
		return []Violation{{
			RuleName:      rule.Name,
			ViolationType: "unknown_type",
			Severity:      SeverityError,
			Message:       "Unknown rule type: " + string(rule.Type),
		}}
	}
}

// validateIdentityFormat checks every resolved identity of the selected
// categories against the rule pattern.
func (v *Validator) validateIdentityFormat(rule *Rule) []Violation {
	violations := []Violation{}
	format := rule.IdentityFormat

	if format.Mode != "" && format.Mode != string(v.mode) {
		return violations
	}

	for _, cat := range resolver.Categories() {
		if !matchesPattern(string(cat), format.Category) {
			continue
		}
		for _, identity := range sortedIdentities(v.tables[cat]) {
			if matchesPattern(identity, format.Pattern) {
				continue
			}
			violations = append(violations, Violation{
				RuleName:      rule.Name,
				ViolationType: ViolationTypeIdentityFormat,
				Severity:      rule.Severity,
				Category:      string(cat),
				Identity:      identity,
				Message:       fmt.Sprintf("Identity does not match required pattern %q", format.Pattern),
				Remediation:   "Fix the resource id in the project connection spec",
			})
		}
	}

	return violations
}

// validateRequiredCategory checks that every connecting project matching
// the selector carries a connection of the required category.
func (v *Validator) validateRequiredCategory(rule *Rule) []Violation {
	violations := []Violation{}
	required := rule.RequiredCategory
	cat := resolver.Category(required.Category)

	for _, key := range sortedProjectKeys(v.projects) {
		p := v.projects[key]
		if !p.CreateConnections {
			continue
		}
		if !matchesPattern(key, required.ProjectPattern) {
			continue
		}
		if p.Connections[cat] != nil {
			continue
		}
		violations = append(violations, Violation{
			RuleName:      rule.Name,
			ViolationType: ViolationTypeMissingCategory,
			Severity:      rule.Severity,
			Project:       key,
			Category:      required.Category,
			Message:       fmt.Sprintf("Project has no %s connection", required.Category),
			Remediation:   "Add the connection block or update the rule selector",
		})
	}

	return violations
}

// validateMaxSharing counts the projects contributing each identity of a
// category and flags identities shared beyond the limit.
func (v *Validator) validateMaxSharing(rule *Rule) []Violation {
	violations := []Violation{}
	sharing := rule.MaxSharing
	cat := resolver.Category(sharing.Category)

	counts := make(map[string]int)
	for key, p := range v.projects {
		if identity, ok := resolver.IdentityFor(key, p, cat, v.mode); ok {
			counts[identity]++
		}
	}

	identities := make([]string, 0, len(counts))
	for identity := range counts {
		identities = append(identities, identity)
	}
	sort.Strings(identities)

	for _, identity := range identities {
		if counts[identity] <= sharing.Limit {
			continue
		}
		violations = append(violations, Violation{
			RuleName:      rule.Name,
			ViolationType: ViolationTypeOversharing,
			Severity:      rule.Severity,
			Category:      sharing.Category,
			Identity:      identity,
			Message:       fmt.Sprintf("%d projects share this resource, limit is %d", counts[identity], sharing.Limit),
			Remediation:   "Split projects across more backing resources or raise the limit",
		})
	}

	return violations
}

func sortedIdentities(table map[string]resolver.Definition) []string {
	identities := make([]string, 0, len(table))
	for identity := range table {
		identities = append(identities, identity)
	}
	sort.Strings(identities)
	return identities
}

func sortedProjectKeys(projects map[string]resolver.Project) []string {
	keys := make([]string, 0, len(projects))
	for k := range projects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
