package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/premium-calculator/internal/observability"
	"github.com/jonathan/premium-calculator/internal/schemas"
	apischemas "github.com/jonathan/premium-calculator/schemas"
	"github.com/spf13/cobra"
)

var (
	validateInput  string
	validateSchema string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a request document against the premium request schema",
	Long: `Validate a JSON request file before sending it to POST /calculate.

By default the document is checked against the built-in premium request
schema. Use --schema to check it against a schema file on disk instead.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "Path to the JSON request document")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON Schema file (defaults to the built-in request schema)")
	_ = validateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	var err error
	if validateSchema != "" {
		err = schemas.ValidateJSON(validateSchema, validateInput)
	} else {
		err = validateAgainstBuiltin(validateInput)
	}

	var ve *schemas.ValidationError
	if errors.As(err, &ve) {
		observability.NewPrinter(cmd.OutOrStdout()).PrintSchemaErrors(filepath.Base(validateInput), ve)
		return err
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is a valid premium request\n", validateInput)
	return nil
}

func validateAgainstBuiltin(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if !json.Valid(data) {
		return fmt.Errorf("%s is not valid JSON", path)
	}

	schema, err := apischemas.Read(apischemas.PremiumRequest)
	if err != nil {
		return fmt.Errorf("failed to read built-in schema: %w", err)
	}
	return schemas.ValidateJSONString(string(schema), string(data))
}
