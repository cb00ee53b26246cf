// Package main provides the entry point for the Insurance Premium Calculator.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "premium_calc",
	Short:         "Insurance Premium Calculator",
	Long:          "Insurance Premium Calculator computes premiums from applicant age, risk level and coverage, as a REST API or from the command line.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
