package premium

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatCurrency renders amount as US dollars with thousands separators
// and two decimal places, e.g. "$1,320.00".
func FormatCurrency(amount float64) string {
	return formatCurrency(decimal.NewFromFloat(amount))
}

func formatCurrency(amount decimal.Decimal) string {
	p := message.NewPrinter(language.English)
	return "$" + p.Sprint(number.Decimal(amount.Round(precision).InexactFloat64(), number.Scale(precision)))
}

func formatBreakdown(base, af, rl, final decimal.Decimal) string {
	return fmt.Sprintf("Base: %s × (1 + %s) × (1 + %s) = %s",
		formatCurrency(base),
		af.StringFixed(precision),
		rl.StringFixed(precision),
		formatCurrency(final),
	)
}
