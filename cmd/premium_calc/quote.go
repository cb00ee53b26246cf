package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/premium-calculator/internal/observability"
	"github.com/jonathan/premium-calculator/internal/premium"
	"github.com/spf13/cobra"
)

var (
	quoteAge      int
	quoteRisk     string
	quoteCoverage float64
	quoteBase     float64
	quoteJSON     bool
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Calculate a premium locally",
	Long:  `Calculate a premium without starting the server and print the breakdown.`,
	RunE:  runQuote,
}

func init() {
	quoteCmd.Flags().IntVar(&quoteAge, "age", 0, "Age of the insured person (0-120)")
	quoteCmd.Flags().StringVar(&quoteRisk, "risk", "", "Risk level: low, medium or high")
	quoteCmd.Flags().Float64Var(&quoteCoverage, "coverage", 0, "Coverage amount (must be positive)")
	quoteCmd.Flags().Float64Var(&quoteBase, "base", premium.DefaultBasePremium, "Base premium")
	quoteCmd.Flags().BoolVar(&quoteJSON, "json", false, "Print the result as JSON")

	_ = quoteCmd.MarkFlagRequired("age")
	_ = quoteCmd.MarkFlagRequired("risk")
	_ = quoteCmd.MarkFlagRequired("coverage")
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, _ []string) error {
	if !premium.ValidBase(quoteBase) {
		return fmt.Errorf("--base must be positive and finite, got %v", quoteBase)
	}

	// An unknown risk level is kept verbatim so that Validate reports it
	// alongside every other invalid field instead of stopping here.
	level, err := premium.ParseRiskLevel(quoteRisk)
	if err != nil {
		level = premium.RiskLevel(quoteRisk)
	}

	input := premium.PremiumInput{
		Age:       quoteAge,
		RiskLevel: level,
		Coverage:  quoteCoverage,
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())

	result, err := premium.NewCalculator(quoteBase).Calculate(input)
	if err != nil {
		var ve *premium.ValidationError
		if errors.As(err, &ve) && !quoteJSON {
			printer.PrintValidationErrors(ve)
		}
		return err
	}

	if quoteJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	}

	printer.PrintQuote(input, result)
	return nil
}
