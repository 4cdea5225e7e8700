package policy

// PolicyConfig represents the complete binding policy configuration
type PolicyConfig struct {
	Rules []Rule `yaml:"rules"`
}

// Rule represents a single policy rule
type Rule struct {
	Name        string   `yaml:"name"`
	Type        RuleType `yaml:"type"`
	Description string   `yaml:"description"`
	Severity    Severity `yaml:"severity"`

	// Type-specific fields
	IdentityFormat   *IdentityFormatRule   `yaml:"identity_format,omitempty"`
	RequiredCategory *RequiredCategoryRule `yaml:"required_category,omitempty"`
	MaxSharing       *MaxSharingRule       `yaml:"max_sharing,omitempty"`
}

// RuleType defines the type of rule
type RuleType string

const (
	RuleTypeIdentityFormat   RuleType = "identity_format"
	RuleTypeRequiredCategory RuleType = "required_category"
	RuleTypeMaxSharing       RuleType = "max_sharing"
)

// Severity levels
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IdentityFormatRule requires resolved identities of a category to match a
// pattern. When Mode is set the rule only applies to deployments of that
// mode; the resolver itself never validates identity formats, so this is
// the opt-in place to catch malformed resource paths before provisioning.
type IdentityFormatRule struct {
	Category string `yaml:"category"` // Regex pattern for the category; empty matches all
	Mode     string `yaml:"mode"`     // "byor", "new", or empty for both
	Pattern  string `yaml:"pattern"`  // Regex the identity must match
}

// RequiredCategoryRule requires connecting projects matching a selector to
// carry a connection of a category.
type RequiredCategoryRule struct {
	ProjectPattern string `yaml:"project_pattern"` // Regex for project keys; empty matches all
	Category       string `yaml:"category"`
}

// MaxSharingRule caps how many projects may share one backing resource.
type MaxSharingRule struct {
	Category string `yaml:"category"`
	Limit    int    `yaml:"limit"`
}

// Violation represents a single rule violation
type Violation struct {
	RuleName      string
	ViolationType ViolationType
	Severity      Severity
	Project       string
	Category      string
	Identity      string
	Message       string
	Remediation   string
}

// ViolationType classifies violations for reporting
type ViolationType string

const (
	ViolationTypeIdentityFormat  ViolationType = "identity_format"
	ViolationTypeMissingCategory ViolationType = "missing_category"
	ViolationTypeOversharing     ViolationType = "oversharing"
	ViolationTypeModeMismatch    ViolationType = "mode_mismatch"
)

// ValidationReport summarizes a validation run
type ValidationReport struct {
	TotalRules       int
	TotalViolations  int
	ErrorCount       int
	WarningCount     int
	InfoCount        int
	CompliantRules   []string
	Violations       []Violation
	ProjectsAnalyzed int
}
