package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultProjectsVariable is the Terraform variable holding the project map
// in the foundry example deployments.
const DefaultProjectsVariable = "ai_projects"

type Config struct {
	// Mode is the deployment pattern: "byor" or "new".
	Mode string `yaml:"mode"`
	// EnableDiagnostics is stamped onto every resolved definition.
	EnableDiagnostics bool `yaml:"enable_diagnostics"`
	// StrictEmptyIDs rejects existing-resource connections whose id is
	// empty instead of silently filtering them.
	StrictEmptyIDs     bool            `yaml:"strict_empty_ids"`
	ProjectsVariable   string          `yaml:"projects_variable"`
	IgnoredDirectories []string        `yaml:"ignored_directories"`
	Exclusions         []ExclusionRule `yaml:"exclusions"`
}

type ExclusionRule struct {
	Project  string `yaml:"project"`  // Regex pattern for the project map key
	Category string `yaml:"category"` // Regex pattern for the resource category
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func CreateDefault(path string, mode string) error {
	defaultConfig := Config{
		Mode:              mode,
		EnableDiagnostics: true,
		ProjectsVariable:  DefaultProjectsVariable,
		Exclusions: []ExclusionRule{
			{Project: "^example-ignored-project$"},
		},
		IgnoredDirectories: []string{".terraform", "modules"},
	}

	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetProjectsVariable returns the configured projects variable name or the
// default.
func (c *Config) GetProjectsVariable() string {
	if c.ProjectsVariable == "" {
		return DefaultProjectsVariable
	}
	return c.ProjectsVariable
}
