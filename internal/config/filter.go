package config

import (
	"github.com/pragmatical/foundry-bindings-cli/internal/resolver"
)

// FilterProjects returns a copy of the project map with exclusion rules
// applied: wholly excluded projects are dropped, and category-scoped rules
// remove just the matching connections. The input map is not mutated.
func (c *Config) FilterProjects(projects map[string]resolver.Project) map[string]resolver.Project {
	if len(c.Exclusions) == 0 {
		return projects
	}

	filtered := make(map[string]resolver.Project, len(projects))
	for key, p := range projects {
		if c.IsProjectExcluded(key) {
			continue
		}

		connections := make(map[resolver.Category]*resolver.Connection, len(p.Connections))
		for cat, conn := range p.Connections {
			if conn == nil {
				continue
			}
			if c.IsExcluded(key, string(cat)) {
				continue
			}
			connections[cat] = conn
		}
		p.Connections = connections
		filtered[key] = p
	}
	return filtered
}
