package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/pragmatical/foundry-bindings-cli/internal/definitions"
	"github.com/pragmatical/foundry-bindings-cli/internal/output"
	"github.com/pragmatical/foundry-bindings-cli/internal/resolver"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects [directory]",
	Short: "List projects and the bindings they declare",
	Long: `Shows each AI Foundry project with its declared resource bindings and the
identity each binding resolves to under the active provisioning mode.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, err := setupResolution(args)
		if err != nil {
			fmt.Printf("Error setting up resolution: %v\n", err)
			os.Exit(1)
		}

		if outputFormat == "json" {
			jsonOut := output.ConvertToProjectsOutput(ctx.projects, ctx.mode, ctx.specs, ctx.source)
			output.PrintJSON(jsonOut)
			return
		}

		// Text Output
		_, _ = headerColor.Println("\n--- Projects ---")
		fmt.Printf("%s %s\n", mutedColor.Sprint("Mode:"), ctx.mode)

		keys := make([]string, 0, len(ctx.projects))
		for key := range ctx.projects {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			p := ctx.projects[key]
			fmt.Printf("\n%s %s", projectColor.Sprint("Project:"), key)
			if p.Name != "" && p.Name != key {
				fmt.Printf(" (%s)", p.Name)
			}
			fmt.Println()
			if p.Description != "" {
				fmt.Printf("  %s\n", mutedColor.Sprint(p.Description))
			}
			if !p.CreateConnections {
				fmt.Printf("  %s\n", mutedColor.Sprint("connections disabled"))
			}

			for _, cat := range resolver.Categories() {
				conn := p.Connections[cat]
				if conn == nil {
					continue
				}
				fmt.Printf("  - %s: ", definitions.DisplayName(ctx.specs, cat))
				identity, ok := resolver.IdentityFor(key, p, cat, ctx.mode)
				switch {
				case ok:
					fmt.Println(identityColor.Sprint(identity))
				case !p.CreateConnections:
					fmt.Println(mutedColor.Sprint("(skipped, connections disabled)"))
				default:
					fmt.Println(mutedColor.Sprint("(no identity for this mode)"))
				}
			}
		}

		fmt.Printf("\n%s %d\n", mutedColor.Sprint("Total projects:"), len(ctx.projects))
	},
}

func init() {
	addInputFlags(projectsCmd)
	rootCmd.AddCommand(projectsCmd)
}
