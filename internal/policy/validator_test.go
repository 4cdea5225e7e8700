package policy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pragmatical/foundry-bindings-cli/internal/resolver"
)

func resolveOrFail(t *testing.T, projects map[string]resolver.Project, mode resolver.Mode) resolver.Tables {
	t.Helper()
	tables, err := resolver.Resolve(projects, mode, resolver.Settings{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	return tables
}

func TestValidateIdentityFormat(t *testing.T) {
	projects := map[string]resolver.Project{
		"good": {CreateConnections: true, Connections: map[resolver.Category]*resolver.Connection{
			resolver.CategoryStorageAccount: {ExistingResourceID: "/subscriptions/X/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/sa"},
		}},
		"bad": {CreateConnections: true, Connections: map[resolver.Category]*resolver.Connection{
			resolver.CategoryCosmosDB: {ExistingResourceID: "not-a-resource-path"},
		}},
	}

	config, err := LoadPolicies("")
	if err != nil {
		t.Fatalf("LoadPolicies failed: %v", err)
	}

	tables := resolveOrFail(t, projects, resolver.ModeExisting)
	report := NewValidator(config, projects, tables, resolver.ModeExisting).Validate()

	if report.TotalViolations != 1 {
		t.Fatalf("expected 1 violation, got %d: %+v", report.TotalViolations, report.Violations)
	}
	v := report.Violations[0]
	if v.ViolationType != ViolationTypeIdentityFormat {
		t.Errorf("violation type = %s", v.ViolationType)
	}
	if v.Identity != "not-a-resource-path" {
		t.Errorf("violation identity = %q", v.Identity)
	}
	if report.ErrorCount != 1 {
		t.Errorf("error count = %d, want 1", report.ErrorCount)
	}
}

func TestValidateIdentityFormat_ModeScoped(t *testing.T) {
	// The default ARM-path rule is byor-scoped and must not fire against
	// resource-map keys in new mode.
	projects := map[string]resolver.Project{
		"p": {CreateConnections: true, Connections: map[resolver.Category]*resolver.Connection{
			resolver.CategoryStorageAccount: {NewResourceMapKey: "shared-sa"},
		}},
	}

	config, err := LoadPolicies("")
	if err != nil {
		t.Fatalf("LoadPolicies failed: %v", err)
	}

	tables := resolveOrFail(t, projects, resolver.ModeNew)
	report := NewValidator(config, projects, tables, resolver.ModeNew).Validate()

	if report.TotalViolations != 0 {
		t.Errorf("expected no violations in new mode, got %+v", report.Violations)
	}
	if len(report.CompliantRules) != 1 {
		t.Errorf("expected 1 compliant rule, got %v", report.CompliantRules)
	}
}

func TestValidateRequiredCategory(t *testing.T) {
	projects := map[string]resolver.Project{
		"prod-agent": {CreateConnections: true, Connections: map[resolver.Category]*resolver.Connection{
			resolver.CategoryStorageAccount: {NewResourceMapKey: "sa"},
		}},
		"prod-chat": {CreateConnections: true, Connections: map[resolver.Category]*resolver.Connection{
			resolver.CategoryStorageAccount: {NewResourceMapKey: "sa"},
			resolver.CategoryKeyVault:       {NewResourceMapKey: "kv"},
		}},
		"dev-lab": {CreateConnections: true},
		"off":     {CreateConnections: false},
	}

	config := &PolicyConfig{Rules: []Rule{{
		Name:     "prod-needs-vault",
		Type:     RuleTypeRequiredCategory,
		Severity: SeverityWarning,
		RequiredCategory: &RequiredCategoryRule{
			ProjectPattern: "^prod-",
			Category:       "key_vault",
		},
	}}}

	tables := resolveOrFail(t, projects, resolver.ModeNew)
	report := NewValidator(config, projects, tables, resolver.ModeNew).Validate()

	if report.TotalViolations != 1 {
		t.Fatalf("expected 1 violation, got %d: %+v", report.TotalViolations, report.Violations)
	}
	if report.Violations[0].Project != "prod-agent" {
		t.Errorf("violation project = %q, want prod-agent", report.Violations[0].Project)
	}
	if report.WarningCount != 1 || report.ErrorCount != 0 {
		t.Errorf("severity counts: errors=%d warnings=%d", report.ErrorCount, report.WarningCount)
	}
}

func TestValidateMaxSharing(t *testing.T) {
	projects := map[string]resolver.Project{
		"a": {CreateConnections: true, Connections: map[resolver.Category]*resolver.Connection{
			resolver.CategoryCosmosDB: {NewResourceMapKey: "shared-db"},
		}},
		"b": {CreateConnections: true, Connections: map[resolver.Category]*resolver.Connection{
			resolver.CategoryCosmosDB: {NewResourceMapKey: "shared-db"},
		}},
		"c": {CreateConnections: true, Connections: map[resolver.Category]*resolver.Connection{
			resolver.CategoryCosmosDB: {NewResourceMapKey: "shared-db"},
		}},
		"d": {CreateConnections: true, Connections: map[resolver.Category]*resolver.Connection{
			resolver.CategoryCosmosDB: {NewResourceMapKey: "own-db"},
		}},
	}

	config := &PolicyConfig{Rules: []Rule{{
		Name: "db-sharing-cap",
		Type: RuleTypeMaxSharing,
		MaxSharing: &MaxSharingRule{
			Category: "cosmos_db",
			Limit:    2,
		},
	}}}

	tables := resolveOrFail(t, projects, resolver.ModeNew)
	report := NewValidator(config, projects, tables, resolver.ModeNew).Validate()

	if report.TotalViolations != 1 {
		t.Fatalf("expected 1 violation, got %d: %+v", report.TotalViolations, report.Violations)
	}
	v := report.Violations[0]
	if v.Identity != "shared-db" || v.ViolationType != ViolationTypeOversharing {
		t.Errorf("unexpected violation: %+v", v)
	}
}

func TestLoadPolicies_Validation(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name: "Valid",
			content: `
rules:
  - name: vault-required
    type: required_category
    severity: warning
    required_category:
      category: key_vault
`,
			wantErr: false,
		},
		{
			name:    "No Rules",
			content: `rules: []`,
			wantErr: true,
		},
		{
			name: "Missing Name",
			content: `
rules:
  - type: max_sharing
    max_sharing: {category: cosmos_db, limit: 1}
`,
			wantErr: true,
		},
		{
			name: "Type Mismatch",
			content: `
rules:
  - name: r
    type: identity_format
    max_sharing: {category: cosmos_db, limit: 1}
`,
			wantErr: true,
		},
		{
			name: "Multiple Type Configs",
			content: `
rules:
  - name: r
    type: max_sharing
    max_sharing: {category: cosmos_db, limit: 1}
    required_category: {category: key_vault}
`,
			wantErr: true,
		},
		{
			name: "Zero Sharing Limit",
			content: `
rules:
  - name: r
    type: max_sharing
    max_sharing: {category: cosmos_db, limit: 0}
`,
			wantErr: true,
		},
		{
			name: "Invalid Severity",
			content: `
rules:
  - name: r
    type: max_sharing
    severity: fatal
    max_sharing: {category: cosmos_db, limit: 1}
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, "policies.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := LoadPolicies(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadPolicies() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateReport(t *testing.T) {
	report := &ValidationReport{
		TotalRules:      2,
		TotalViolations: 1,
		ErrorCount:      1,
		CompliantRules:  []string{"vault-required"},
		Violations: []Violation{{
			RuleName:      "arm-resource-ids",
			ViolationType: ViolationTypeIdentityFormat,
			Severity:      SeverityError,
			Category:      "storage_account",
			Identity:      "bogus",
			Message:       "Identity does not match required pattern",
		}},
		ProjectsAnalyzed: 3,
	}

	out := GenerateReport(report)

	for _, want := range []string{
		"Rules Evaluated: 2",
		"MALFORMED IDENTITY",
		"COMPLIANT: vault-required",
		"Projects Analyzed: 3",
		"Status: FAILED",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	passed := GenerateReport(&ValidationReport{TotalRules: 1, CompliantRules: []string{"r"}})
	if !strings.Contains(passed, "Status: PASSED") {
		t.Errorf("clean report should pass:\n%s", passed)
	}
}
