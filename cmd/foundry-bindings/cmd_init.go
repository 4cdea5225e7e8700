package main

import (
	"fmt"
	"os"

	"github.com/pragmatical/foundry-bindings-cli/internal/config"
	"github.com/pragmatical/foundry-bindings-cli/internal/resolver"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new foundry-bindings project",
	Long:  `Creates a default configuration file in the current directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Check if file exists
		if _, err := os.Stat(configPath); err == nil {
			fmt.Printf("Configuration file '%s' already exists.\n", configPath)
			if promptUser("Use existing file? [Y/n]: ", "y") {
				fmt.Println("Using existing configuration.")
				return
			}
			if !promptUser("Overwrite existing file? [y/N]: ", "n") {
				fmt.Println("Operation aborted.")
				return
			}
		}

		// Prompt for deployment mode
		fmt.Println("Select deployment mode:")
		fmt.Println("  1. byor (bring your own resources) [Default]")
		fmt.Println("  2. new (provision new resources)")

		mode := string(resolver.ModeExisting)
		if !promptUser("Use byor mode? [Y/n]: ", "y") {
			mode = string(resolver.ModeNew)
		}

		if err := config.CreateDefault(configPath, mode); err != nil {
			fmt.Printf("Error creating configuration: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created '%s' with mode: %s\n", configPath, mode)
		fmt.Println("Ready to use! Try running 'foundry-bindings resolve'")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
