package main

import (
	"os"

	"github.com/spf13/cobra"

	"resume-builder/internal/shared/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "resumectl",
	Short: "Work with the resume builder from the command line",
	Long: `resumectl runs the resume builder pieces outside the web server.

It can rewrite a work experience section with the configured model, render a
DOCX from a JSON resume, and manage the reference documents used in prompts.
Configuration comes from the same environment variables and .env files as the server.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig is a seam for tests.
//
//nolint:gochecknoglobals // test seam
var loadConfig = config.Load
