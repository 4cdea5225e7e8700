package parser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/pragmatical/foundry-bindings-cli/internal/definitions"
	"github.com/pragmatical/foundry-bindings-cli/internal/resolver"
)

// ProjectsFromDir scans a deployment directory for Terraform files and
// extracts the project map from the named variable, falling back to a local
// of the same name. Variable defaults are overlaid with tfvars values the
// same way Terraform would before the deployment runs.
func ProjectsFromDir(dir, tfvarsPath, varName string, specs []definitions.CategorySpec, ignoredDirs []string) (map[string]resolver.Project, error) {
	vars, err := LoadVariables(dir, tfvarsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load variables: %w", err)
	}

	parser := hclparse.NewParser()
	var files []*hcl.File

	ignoredMap := make(map[string]bool)
	for _, d := range ignoredDirs {
		ignoredMap[d] = true
	}
	// Always ignore .git and .terraform
	ignoredMap[".git"] = true
	ignoredMap[".terraform"] = true

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if ignoredMap[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tf") {
			file, diags := parser.ParseHCLFile(path)
			if diags.HasErrors() {
				fmt.Printf("Warning: failed to parse file %s: %s\n", path, diags.Error())
				return nil // Continue walking
			}
			files = append(files, file)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	val, ok := vars[varName]
	if !ok {
		traverser := NewConfigTraverser(files, vars)
		val, ok = traverser.LookupLocal(varName)
	}
	if !ok {
		return nil, fmt.Errorf("no variable or local named %q found in %s", varName, dir)
	}

	return DecodeProjects(val, specs)
}

// DecodeProjects converts a cty project map into resolver records. Optional
// attributes that are absent or null are normal branches, never errors: a
// project spec carries only the connection blocks it actually uses.
func DecodeProjects(val cty.Value, specs []definitions.CategorySpec) (map[string]resolver.Project, error) {
	projects := make(map[string]resolver.Project)

	if val.IsNull() {
		return projects, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("projects value is %s, expected a map of project objects", val.Type().FriendlyName())
	}

	for key, pv := range val.AsValueMap() {
		if pv.IsNull() || !pv.IsKnown() {
			continue
		}
		if !pv.Type().IsObjectType() && !pv.Type().IsMapType() {
			return nil, fmt.Errorf("project %q is %s, expected an object", key, pv.Type().FriendlyName())
		}

		p := resolver.Project{
			Name:              attrString(pv, "name"),
			Description:       attrString(pv, "description"),
			CreateConnections: attrBool(pv, "create_project_connections"),
			Connections:       make(map[resolver.Category]*resolver.Connection),
		}
		if p.Name == "" {
			p.Name = key
		}

		for _, spec := range specs {
			cv, ok := attrValue(pv, spec.Attribute)
			if !ok {
				continue
			}
			p.Connections[spec.Category()] = &resolver.Connection{
				ExistingResourceID: attrString(cv, "existing_resource_id"),
				NewResourceMapKey:  attrString(cv, "new_resource_map_key"),
			}
		}

		projects[key] = p
	}

	return projects, nil
}

// ProjectsFromJSONFile extracts the project map from a tfvars-style JSON
// file. The document may either wrap the map under varName or be the map
// itself.
func ProjectsFromJSONFile(path, varName string, specs []definitions.CategorySpec) (map[string]resolver.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects file: %w", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse projects JSON: %w", err)
	}

	raw := doc
	if wrapped, ok := GetMapFromMap(doc, varName); ok {
		raw = wrapped
	}

	projects := make(map[string]resolver.Project)
	for key, v := range raw {
		pm, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("project %q: expected an object, got %T", key, v)
		}

		p := resolver.Project{
			Name:              GetStringFromMap(pm, "name"),
			Description:       GetStringFromMap(pm, "description"),
			CreateConnections: GetBoolFromMap(pm, "create_project_connections"),
			Connections:       make(map[resolver.Category]*resolver.Connection),
		}
		if p.Name == "" {
			p.Name = key
		}

		for _, spec := range specs {
			cm, ok := GetMapFromMap(pm, spec.Attribute)
			if !ok {
				continue
			}
			p.Connections[spec.Category()] = &resolver.Connection{
				ExistingResourceID: GetStringFromMap(cm, "existing_resource_id"),
				NewResourceMapKey:  GetStringFromMap(cm, "new_resource_map_key"),
			}
		}

		projects[key] = p
	}

	return projects, nil
}
