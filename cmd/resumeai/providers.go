package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martin/resumeai/internal/ai"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List AI providers and their availability",
	Long:  `List the registered AI providers, whether each is configured in the current environment, and which one is the default.`,
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, _ []string) error {
	registry := ai.NewRegistry()
	defaultID := registry.DefaultProvider().ID

	for _, desc := range registry.Providers() {
		status := "not configured"
		if registry.IsAvailable(desc.ID) {
			status = "available"
		}
		marker := " "
		if desc.ID == defaultID {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %-10s %-10s %s (set %s)\n", marker, desc.ID, desc.Name, status, desc.CredentialEnv)
	}

	return nil
}
