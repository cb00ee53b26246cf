package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/premium-calculator/internal/premium"
	"github.com/jonathan/premium-calculator/internal/schemas"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		// %-*s pads by bytes; pad by runes so multi-byte symbols line up.
		pad := boxWidth - 4 - len([]rune(line))
		fmt.Fprintf(p.out, "│ %s%s │\n", line, strings.Repeat(" ", pad))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintQuote outputs a human-readable summary of a premium calculation.
func (p *Printer) PrintQuote(in premium.PremiumInput, result premium.PremiumResult) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Age:           %d (bracket %s)\n", in.Age, premium.AgeBracket(in.Age)))
	sb.WriteString(fmt.Sprintf("Risk level:    %s\n", in.RiskLevel))
	sb.WriteString(fmt.Sprintf("Coverage:      %s\n", premium.FormatCurrency(result.Coverage)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Base premium:  %s\n", premium.FormatCurrency(result.BasePremium)))
	sb.WriteString(fmt.Sprintf("Age factor:    +%.0f%%\n", result.AgeFactor*100))
	sb.WriteString(fmt.Sprintf("Risk loading:  +%.0f%%\n", result.RiskLoading*100))
	sb.WriteString(fmt.Sprintf("Final premium: %s\n", premium.FormatCurrency(result.FinalPremium)))
	sb.WriteString("\n")
	sb.WriteString(result.Breakdown)

	p.printBox("PREMIUM QUOTE", sb.String())
}

// PrintValidationErrors outputs the fields that made an input invalid.
func (p *Printer) PrintValidationErrors(ve *premium.ValidationError) {
	if ve == nil {
		return
	}
	fields := make([]fieldMessage, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		fields = append(fields, fieldMessage{fe.Field, fe.Message})
	}
	p.printFieldErrors("INVALID INPUT", fields)
}

// PrintSchemaErrors outputs the schema violations found in the named document.
func (p *Printer) PrintSchemaErrors(source string, ve *schemas.ValidationError) {
	if ve == nil {
		return
	}
	fields := make([]fieldMessage, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		fields = append(fields, fieldMessage{fe.Field, fe.Message})
	}
	p.printFieldErrors("SCHEMA VIOLATIONS: "+source, fields)
}

type fieldMessage struct {
	field, message string
}

func (p *Printer) printFieldErrors(title string, fields []fieldMessage) {
	if len(fields) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d invalid fields:\n\n", len(fields)))
	for i, fe := range fields {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", fe.field))
		sb.WriteString(fmt.Sprintf("  %s", fe.message))
		if i < len(fields)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox(title, sb.String())
}
