// Package main provides the entry point for the ResumeAI HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumeai",
	Short: "ResumeAI HTTP API Server",
	Long:  "ResumeAI generates resume and cover letter content with pluggable AI providers, scores it, and renders downloadable PDF and DOCX documents via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
