package config

import (
	"regexp"
)

// IsExcluded checks if a project/category pair matches any exclusion rule.
// Excluded pairs are dropped before resolution.
func (c *Config) IsExcluded(projectKey, category string) bool {
	for _, rule := range c.Exclusions {
		if matchRule(rule, projectKey, category) {
			return true
		}
	}
	return false
}

// IsProjectExcluded checks if a project is excluded wholesale, by a rule
// with no category pattern.
func (c *Config) IsProjectExcluded(projectKey string) bool {
	for _, rule := range c.Exclusions {
		if rule.Category != "" {
			continue
		}
		if rule.Project == "" {
			continue
		}
		if matched, _ := regexp.MatchString(rule.Project, projectKey); matched {
			return true
		}
	}
	return false
}

func matchRule(rule ExclusionRule, projectKey, category string) bool {
	if rule.Project != "" {
		if matched, _ := regexp.MatchString(rule.Project, projectKey); !matched {
			return false
		}
	}
	if rule.Category != "" {
		if matched, _ := regexp.MatchString(rule.Category, category); !matched {
			return false
		}
	}
	// All specified fields matched
	return true
}
