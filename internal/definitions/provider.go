package definitions

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pragmatical/foundry-bindings-cli/internal/resolver"
	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var embeddedCategories []byte

// CategorySpec describes how one resource category appears in the project
// specification input.
type CategorySpec struct {
	Name        string `yaml:"name"`         // resolver category name, e.g. "storage_account"
	DisplayName string `yaml:"display_name"` // human readable name for reports
	Attribute   string `yaml:"attribute"`    // attribute block name in the project spec, e.g. "cosmosdb"
}

// Category returns the resolver category this spec describes.
func (s CategorySpec) Category() resolver.Category {
	return resolver.Category(s.Name)
}

type categoryConfig struct {
	Categories []CategorySpec `yaml:"categories"`
}

// LoadCategorySpecs loads the category specs from the embedded YAML or a
// custom file. Every spec must name a known resolver category, and every
// resolver category must be covered exactly once.
func LoadCategorySpecs(customPath string) ([]CategorySpec, error) {
	var data []byte
	var err error

	if customPath != "" {
		data, err = os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read custom category definitions: %w", err)
		}
	} else {
		data = embeddedCategories
	}

	var config categoryConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse category definitions: %w", err)
	}

	known := make(map[resolver.Category]bool)
	for _, cat := range resolver.Categories() {
		known[cat] = true
	}

	seen := make(map[resolver.Category]bool)
	for _, spec := range config.Categories {
		cat := spec.Category()
		if !known[cat] {
			return nil, fmt.Errorf("unknown category %q in definitions", spec.Name)
		}
		if seen[cat] {
			return nil, fmt.Errorf("duplicate category %q in definitions", spec.Name)
		}
		if spec.Attribute == "" {
			return nil, fmt.Errorf("category %q: attribute is required", spec.Name)
		}
		seen[cat] = true
	}
	if len(seen) != len(known) {
		return nil, fmt.Errorf("definitions cover %d of %d categories", len(seen), len(known))
	}

	return config.Categories, nil
}

// DisplayName returns the human readable name for a category, falling back
// to the category name itself.
func DisplayName(specs []CategorySpec, cat resolver.Category) string {
	for _, spec := range specs {
		if spec.Category() == cat {
			return spec.DisplayName
		}
	}
	return string(cat)
}
