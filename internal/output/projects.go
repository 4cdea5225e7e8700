package output

import (
	"sort"
	"time"

	"github.com/pragmatical/foundry-bindings-cli/internal/definitions"
	"github.com/pragmatical/foundry-bindings-cli/internal/resolver"
)

// ProjectsOutput is the JSON structure for the projects command.
type ProjectsOutput struct {
	Version   string         `json:"version"`
	Timestamp time.Time      `json:"timestamp"`
	Mode      string         `json:"mode"`
	Source    SourceInfo     `json:"source"`
	Projects  []ProjectEntry `json:"projects"`
}

// ProjectEntry describes one project and the bindings it declares.
type ProjectEntry struct {
	Key               string         `json:"key"`
	Name              string         `json:"name"`
	Description       string         `json:"description,omitempty"`
	CreateConnections bool           `json:"create_connections"`
	Bindings          []BindingEntry `json:"bindings"`
}

// BindingEntry is a single project-to-category binding. Identity is the
// resolved identity under the active mode; Contributes reports whether the
// binding produces a definition table entry.
type BindingEntry struct {
	Category           string `json:"category"`
	DisplayName        string `json:"display_name"`
	ExistingResourceID string `json:"existing_resource_id,omitempty"`
	NewResourceMapKey  string `json:"new_resource_map_key,omitempty"`
	Identity           string `json:"identity,omitempty"`
	Contributes        bool   `json:"contributes"`
}

// ConvertToProjectsOutput builds the projects JSON view. Projects are sorted
// by key and bindings follow the category declaration order.
func ConvertToProjectsOutput(projects map[string]resolver.Project, mode resolver.Mode, specs []definitions.CategorySpec, source SourceInfo) ProjectsOutput {
	out := ProjectsOutput{
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Mode:      string(mode),
		Source:    source,
		Projects:  []ProjectEntry{},
	}

	keys := make([]string, 0, len(projects))
	for key := range projects {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		p := projects[key]
		entry := ProjectEntry{
			Key:               key,
			Name:              p.Name,
			Description:       p.Description,
			CreateConnections: p.CreateConnections,
			Bindings:          []BindingEntry{},
		}
		for _, cat := range resolver.Categories() {
			conn := p.Connections[cat]
			if conn == nil {
				continue
			}
			binding := BindingEntry{
				Category:           string(cat),
				DisplayName:        definitions.DisplayName(specs, cat),
				ExistingResourceID: conn.ExistingResourceID,
				NewResourceMapKey:  conn.NewResourceMapKey,
			}
			if identity, ok := resolver.IdentityFor(key, p, cat, mode); ok {
				binding.Identity = identity
				binding.Contributes = true
			}
			entry.Bindings = append(entry.Bindings, binding)
		}
		out.Projects = append(out.Projects, entry)
	}

	return out
}
