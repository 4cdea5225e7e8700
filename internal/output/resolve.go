package output

import (
	"sort"
	"time"

	"github.com/pragmatical/foundry-bindings-cli/internal/definitions"
	"github.com/pragmatical/foundry-bindings-cli/internal/resolver"
)

// ResolveOutput is the comprehensive JSON output for the resolve command
type ResolveOutput struct {
	Version   string          `json:"version"`
	Timestamp time.Time       `json:"timestamp"`
	Mode      string          `json:"mode"`
	Source    SourceInfo      `json:"source"`
	Tables    []CategoryTable `json:"tables"`
	Summary   ResolveSummary  `json:"summary"`
}

// SourceInfo describes where the project map came from
type SourceInfo struct {
	Type      string `json:"type"` // "directory" or "projects_file"
	Path      string `json:"path"`
	InputMode string `json:"input_mode"` // "hcl" or "json"
}

// CategoryTable is one resolved definition table
type CategoryTable struct {
	Category    string                `json:"category"`
	DisplayName string                `json:"display_name"`
	Definitions []resolver.Definition `json:"definitions"`
}

// ResolveSummary provides summary statistics
type ResolveSummary struct {
	TotalProjects      int            `json:"total_projects"`
	ConnectingProjects int            `json:"connecting_projects"`
	TotalDefinitions   int            `json:"total_definitions"`
	ByCategory         map[string]int `json:"by_category"`
}

// ConvertToResolveOutput shapes resolver results for JSON consumers. Tables
// follow category declaration order and definitions are sorted by identity
// so output is deterministic.
func ConvertToResolveOutput(tables resolver.Tables, projects map[string]resolver.Project, mode resolver.Mode, specs []definitions.CategorySpec, source SourceInfo) ResolveOutput {
	out := ResolveOutput{
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Mode:      string(mode),
		Source:    source,
		Summary: ResolveSummary{
			TotalProjects: len(projects),
			ByCategory:    make(map[string]int),
		},
	}

	for _, p := range projects {
		if p.CreateConnections {
			out.Summary.ConnectingProjects++
		}
	}

	for _, cat := range resolver.Categories() {
		table := tables[cat]

		identities := make([]string, 0, len(table))
		for identity := range table {
			identities = append(identities, identity)
		}
		sort.Strings(identities)

		defs := make([]resolver.Definition, 0, len(identities))
		for _, identity := range identities {
			defs = append(defs, table[identity])
		}

		out.Tables = append(out.Tables, CategoryTable{
			Category:    string(cat),
			DisplayName: definitions.DisplayName(specs, cat),
			Definitions: defs,
		})
		out.Summary.ByCategory[string(cat)] = len(defs)
		out.Summary.TotalDefinitions += len(defs)
	}

	return out
}
