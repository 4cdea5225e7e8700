package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// LoadVariables loads variable values for a deployment directory: defaults
// declared in .tf files, overlaid by a tfvars file. An explicit tfvarsPath
// wins over terraform.tfvars / terraform.tfvars.json in the directory.
// Files ending in .json are decoded as tfvars JSON.
func LoadVariables(dir string, tfvarsPath string) (map[string]cty.Value, error) {
	vars := make(map[string]cty.Value)
	parser := hclparse.NewParser()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".tf") {
			continue
		}
		file, diags := parser.ParseHCLFile(filepath.Join(dir, entry.Name()))
		if diags.HasErrors() {
			return nil, diags
		}

		rootContent, _, _ := file.Body.PartialContent(&hcl.BodySchema{
			Blocks: []hcl.BlockHeaderSchema{
				{Type: "variable", LabelNames: []string{"name"}},
			},
		})

		for _, block := range rootContent.Blocks {
			if block.Type != "variable" {
				continue
			}
			name := block.Labels[0]

			blockContent, _, _ := block.Body.PartialContent(&hcl.BodySchema{
				Attributes: []hcl.AttributeSchema{
					{Name: "default", Required: false},
				},
			})

			if attr, exists := blockContent.Attributes["default"]; exists {
				// Defaults are constant expressions.
				val, diags := attr.Expr.Value(nil)
				if !diags.HasErrors() {
					vars[name] = val
				}
			}
		}
	}

	if tfvarsPath != "" {
		if err := overlayTFVars(parser, tfvarsPath, vars); err != nil {
			return nil, err
		}
		return vars, nil
	}

	for _, name := range []string{"terraform.tfvars", "terraform.tfvars.json"} {
		if err := overlayTFVars(parser, filepath.Join(dir, name), vars); err != nil {
			return nil, err
		}
	}

	return vars, nil
}

// overlayTFVars merges values from a tfvars file into vars. A missing file
// is not an error.
func overlayTFVars(parser *hclparse.Parser, path string, vars map[string]cty.Value) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if strings.HasSuffix(path, ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		ty, err := ctyjson.ImpliedType(data)
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", path, err)
		}
		val, err := ctyjson.Unmarshal(data, ty)
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", path, err)
		}
		if val.IsNull() || !val.Type().IsObjectType() {
			return fmt.Errorf("%s: expected a JSON object of variable values", path)
		}
		for name, v := range val.AsValueMap() {
			vars[name] = v
		}
		return nil
	}

	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return diags
	}

	attrs, diags := f.Body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}

	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if !diags.HasErrors() {
			vars[name] = val
		}
	}
	return nil
}
