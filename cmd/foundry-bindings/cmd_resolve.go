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

var resolveCmd = &cobra.Command{
	Use:   "resolve [directory]",
	Short: "Resolve project bindings into resource definition tables",
	Long: `Reads AI Foundry project declarations from Terraform files (or a projects
JSON file) and resolves them into deduplicated per-category resource
definition tables for the active provisioning mode.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, err := setupResolution(args)
		if err != nil {
			fmt.Printf("Error setting up resolution: %v\n", err)
			os.Exit(1)
		}

		tables, err := resolver.Resolve(ctx.projects, ctx.mode, ctx.settings)
		if err != nil {
			fmt.Printf("Error resolving bindings: %v\n", err)
			os.Exit(1)
		}

		if outputFormat == "json" {
			jsonOut := output.ConvertToResolveOutput(tables, ctx.projects, ctx.mode, ctx.specs, ctx.source)
			output.PrintJSON(jsonOut)
			return
		}

		// Text Output
		_, _ = headerColor.Println("\n--- Resolved Resource Definitions ---")
		fmt.Printf("%s %s\n", mutedColor.Sprint("Mode:"), ctx.mode)

		total := 0
		for _, cat := range resolver.Categories() {
			table := tables[cat]
			fmt.Printf("\n%s (%d):\n", projectColor.Sprint(definitions.DisplayName(ctx.specs, cat)), len(table))

			identities := make([]string, 0, len(table))
			for identity := range table {
				identities = append(identities, identity)
			}
			sort.Strings(identities)

			for _, identity := range identities {
				def := table[identity]
				diag := "diagnostics off"
				if def.EnableDiagnostics {
					diag = "diagnostics on"
				}
				fmt.Printf("  - %s %s\n", identityColor.Sprint(identity), mutedColor.Sprintf("(%s)", diag))
			}
			total += len(table)
		}

		fmt.Printf("\n%s %d definitions across %d projects\n", mutedColor.Sprint("Total:"), total, len(ctx.projects))
	},
}

func init() {
	addInputFlags(resolveCmd)
	rootCmd.AddCommand(resolveCmd)
}
