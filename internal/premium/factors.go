package premium

import "github.com/shopspring/decimal"

// ageBracket maps an inclusive upper age bound to its premium factor.
type ageBracket struct {
	maxAge int
	factor decimal.Decimal
	label  string
}

// ageBrackets are evaluated in ascending order; the first bracket whose
// upper bound covers the age wins. The last bracket is open-ended.
var ageBrackets = []ageBracket{
	{maxAge: 25, factor: decimal.Zero, label: "0-25"},
	{maxAge: 40, factor: decimal.RequireFromString("0.10"), label: "26-40"},
	{maxAge: 60, factor: decimal.RequireFromString("0.25"), label: "41-60"},
	{maxAge: MaxAge, factor: decimal.RequireFromString("0.50"), label: "61+"},
}

var riskLoadings = map[RiskLevel]decimal.Decimal{
	RiskLow:    decimal.Zero,
	RiskMedium: decimal.RequireFromString("0.20"),
	RiskHigh:   decimal.RequireFromString("0.50"),
}

func bracketFor(age int) ageBracket {
	for _, b := range ageBrackets {
		if age <= b.maxAge {
			return b
		}
	}
	return ageBrackets[len(ageBrackets)-1]
}

func ageFactor(age int) decimal.Decimal {
	return bracketFor(age).factor
}

func riskLoading(level RiskLevel) decimal.Decimal {
	if loading, ok := riskLoadings[level]; ok {
		return loading
	}
	return decimal.Zero
}

// AgeFactor returns the age-based multiplier for age, e.g. 0.10 for a 30 year old.
func AgeFactor(age int) float64 {
	return ageFactor(age).InexactFloat64()
}

// AgeBracket returns the label of the age bracket age falls into ("0-25", "26-40", "41-60", "61+").
func AgeBracket(age int) string {
	return bracketFor(age).label
}

// RiskLoading returns the risk-based multiplier for level.
// Unknown levels carry no loading; callers validate before computing.
func RiskLoading(level RiskLevel) float64 {
	return riskLoading(level).InexactFloat64()
}
