package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pragmatical/foundry-bindings-cli/internal/config"
	"github.com/pragmatical/foundry-bindings-cli/internal/definitions"
	"github.com/pragmatical/foundry-bindings-cli/internal/output"
	"github.com/pragmatical/foundry-bindings-cli/internal/parser"
	"github.com/pragmatical/foundry-bindings-cli/internal/resolver"
)

// Shared Globals
var (
	configPath      string
	outputFormat    string
	definitionsFile string
	modeFlag        string
	tfvarsFile      string
	projectsFile    string
	varNameFlag     string
)

// Color definitions for output
var (
	headerColor   = color.New(color.Bold, color.FgCyan)
	projectColor  = color.New(color.Bold, color.FgWhite)
	identityColor = color.New(color.FgGreen)
	mutedColor    = color.New(color.FgHiBlack)
)

// resolutionContext bundles everything a command needs after input loading.
type resolutionContext struct {
	cfg      *config.Config
	specs    []definitions.CategorySpec
	projects map[string]resolver.Project
	mode     resolver.Mode
	settings resolver.Settings
	source   output.SourceInfo
}

// addInputFlags registers the input-selection flags shared by the commands
// that read a project map.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&tfvarsFile, "tfvars", "", "Path to a tfvars file overriding variable defaults")
	cmd.Flags().StringVar(&projectsFile, "projects", "", "Path to a projects JSON file (bypasses HCL parsing)")
	cmd.Flags().StringVar(&varNameFlag, "var-name", "", "Name of the Terraform variable holding the project map")
}

// setupResolution loads config, category specs, and the project map, and
// settles the deployment mode. It does not resolve; commands decide whether
// resolution failures are fatal.
func setupResolution(args []string) (*resolutionContext, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	specs, err := definitions.LoadCategorySpecs(definitionsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load category definitions: %w", err)
	}

	modeStr := modeFlag
	if modeStr == "" {
		modeStr = cfg.Mode
	}
	if modeStr == "" {
		modeStr = string(resolver.ModeExisting)
	}
	mode, ok := resolver.ParseMode(modeStr)
	if !ok {
		return nil, fmt.Errorf("unsupported mode %q, expected %q or %q", modeStr, resolver.ModeExisting, resolver.ModeNew)
	}

	varName := varNameFlag
	if varName == "" {
		varName = cfg.GetProjectsVariable()
	}

	var projects map[string]resolver.Project
	var source output.SourceInfo
	if projectsFile != "" {
		projects, err = parser.ProjectsFromJSONFile(projectsFile, varName, specs)
		if err != nil {
			return nil, fmt.Errorf("failed to load projects file: %w", err)
		}
		source = output.SourceInfo{Type: "projects_file", Path: projectsFile, InputMode: "json"}
	} else {
		projects, err = parser.ProjectsFromDir(dir, tfvarsFile, varName, specs, cfg.IgnoredDirectories)
		if err != nil {
			return nil, fmt.Errorf("failed to parse directory: %w", err)
		}
		source = output.SourceInfo{Type: "directory", Path: dir, InputMode: "hcl"}
	}

	projects = cfg.FilterProjects(projects)

	return &resolutionContext{
		cfg:      cfg,
		specs:    specs,
		projects: projects,
		mode:     mode,
		settings: resolver.Settings{
			EnableDiagnostics: cfg.EnableDiagnostics,
			Strict:            cfg.StrictEmptyIDs,
		},
		source: source,
	}, nil
}

func promptUser(question string, defaultVal string) bool {
	fmt.Print(question)
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		response := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if response == "" {
			response = strings.ToLower(defaultVal)
		}
		return response == "y" || response == "yes"
	}
	return false
}
