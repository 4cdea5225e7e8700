package policy

import "regexp"

// matchesPattern reports whether s matches the regex pattern. An empty
// pattern is a wildcard.
func matchesPattern(s, pattern string) bool {
	if pattern == "" {
		return true
	}
	matched, err := regexp.MatchString(pattern, s)
	if err != nil {
		return false
	}
	return matched
}
