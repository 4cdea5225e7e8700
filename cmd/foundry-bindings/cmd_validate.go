package main

import (
	"fmt"
	"os"

	"github.com/pragmatical/foundry-bindings-cli/internal/output"
	"github.com/pragmatical/foundry-bindings-cli/internal/policy"
	"github.com/pragmatical/foundry-bindings-cli/internal/resolver"
	"github.com/spf13/cobra"
)

var (
	policyFile   string
	strictPolicy bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [directory]",
	Short: "Validate bindings against policy rules",
	Long: `Resolves project bindings and checks them against policy rules. Exits
non-zero when violations with error severity are found, or when any
violation is found with --strict.`,
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

		policies, err := policy.LoadPolicies(policyFile)
		if err != nil {
			fmt.Printf("Error loading policies: %v\n", err)
			os.Exit(1)
		}

		validator := policy.NewValidator(policies, ctx.projects, tables, ctx.mode)
		report := validator.Validate()

		failed := report.ErrorCount > 0 || (strictPolicy && report.TotalViolations > 0)

		if outputFormat == "json" {
			jsonOut := output.ConvertToValidateOutput(report, string(ctx.mode), failed)
			output.PrintJSON(jsonOut)
		} else {
			fmt.Print(policy.GenerateReport(report))
		}

		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	validateCmd.Flags().StringVar(&policyFile, "policy", "", "Path to a policy YAML file (defaults to built-in policies)")
	validateCmd.Flags().BoolVar(&strictPolicy, "strict", false, "Treat warnings and info violations as failures")
	addInputFlags(validateCmd)
	rootCmd.AddCommand(validateCmd)
}
