package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "foundry-bindings",
	Short: "Resolve AI Foundry project bindings into resource definitions",
	Long:  `A tool to resolve Azure AI Foundry project-to-resource bindings into the deduplicated per-category definition tables that drive the provisioning modules.`,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "foundry-bindings.yaml", "config file (default is foundry-bindings.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "text", "Output format: text or json")
	rootCmd.PersistentFlags().StringVar(&definitionsFile, "definitions", "", "Path to custom category definitions file")
	rootCmd.PersistentFlags().StringVar(&modeFlag, "mode", "", "Deployment mode: byor or new (overrides config)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
