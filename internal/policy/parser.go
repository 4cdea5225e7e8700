package policy

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_policies.yaml
var embeddedPolicies []byte

// LoadPolicies loads rule configuration from a YAML file, or the embedded
// default rules when no path is given.
func LoadPolicies(path string) (*PolicyConfig, error) {
	data := embeddedPolicies
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read policy file: %w", err)
		}
	}

	var config PolicyConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}

	if err := validatePolicyConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid policy configuration: %w", err)
	}

	return &config, nil
}

// validatePolicyConfig performs basic validation on the rule configuration
func validatePolicyConfig(config *PolicyConfig) error {
	if len(config.Rules) == 0 {
		return fmt.Errorf("at least one rule is required")
	}

	for i := range config.Rules {
		rule := &config.Rules[i]

		if rule.Name == "" {
			return fmt.Errorf("rule %d: name is required", i)
		}
		if rule.Type == "" {
			return fmt.Errorf("rule %s: type is required", rule.Name)
		}

		if rule.Severity == "" {
			rule.Severity = SeverityError // Default to error
		}
		if rule.Severity != SeverityError && rule.Severity != SeverityWarning && rule.Severity != SeverityInfo {
			return fmt.Errorf("rule %s: invalid severity '%s'", rule.Name, rule.Severity)
		}

		// Ensure exactly one type-specific field is set and it matches the
		// declared type.
		typeFieldCount := 0
		if rule.IdentityFormat != nil {
			typeFieldCount++
		}
		if rule.RequiredCategory != nil {
			typeFieldCount++
		}
		if rule.MaxSharing != nil {
			typeFieldCount++
		}
		if typeFieldCount == 0 {
			return fmt.Errorf("rule %s: no type-specific configuration found", rule.Name)
		}
		if typeFieldCount > 1 {
			return fmt.Errorf("rule %s: multiple type-specific configurations found", rule.Name)
		}

		switch rule.Type {
		case RuleTypeIdentityFormat:
			if rule.IdentityFormat == nil {
				return fmt.Errorf("rule %s: type is %s but identity_format is not set", rule.Name, rule.Type)
			}
			if rule.IdentityFormat.Pattern == "" {
				return fmt.Errorf("rule %s: identity_format.pattern is required", rule.Name)
			}
		case RuleTypeRequiredCategory:
			if rule.RequiredCategory == nil {
				return fmt.Errorf("rule %s: type is %s but required_category is not set", rule.Name, rule.Type)
			}
			if rule.RequiredCategory.Category == "" {
				return fmt.Errorf("rule %s: required_category.category is required", rule.Name)
			}
		case RuleTypeMaxSharing:
			if rule.MaxSharing == nil {
				return fmt.Errorf("rule %s: type is %s but max_sharing is not set", rule.Name, rule.Type)
			}
			if rule.MaxSharing.Limit < 1 {
				return fmt.Errorf("rule %s: max_sharing.limit must be at least 1", rule.Name)
			}
		default:
			return fmt.Errorf("rule %s: unknown type %q", rule.Name, rule.Type)
		}
	}

	return nil
}
