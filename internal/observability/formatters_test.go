package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/premium-calculator/internal/premium"
	"github.com/jonathan/premium-calculator/internal/schemas"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintQuote(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	in := premium.PremiumInput{Age: 35, RiskLevel: premium.RiskMedium, Coverage: 100000}
	result := premium.Compute(in.Age, in.RiskLevel, in.Coverage, premium.DefaultBasePremium)

	p.PrintQuote(in, result)
	output := buf.String()

	assert.Contains(t, output, "PREMIUM QUOTE")
	assert.Contains(t, output, "35 (bracket 26-40)")
	assert.Contains(t, output, "medium")
	assert.Contains(t, output, "$100,000.00")
	assert.Contains(t, output, "+10%")
	assert.Contains(t, output, "+20%")
	assert.Contains(t, output, "$1,320.00")
	assert.Contains(t, output, result.Breakdown)
}

func TestPrintQuote_BoxIsAligned(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	in := premium.PremiumInput{Age: 61, RiskLevel: premium.RiskHigh, Coverage: 200000}
	p.PrintQuote(in, premium.Compute(in.Age, in.RiskLevel, in.Coverage, premium.DefaultBasePremium))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
}

func TestPrintValidationErrors(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	err := premium.PremiumInput{Age: 121, RiskLevel: premium.RiskLow, Coverage: 0}.Validate()
	ve, ok := err.(*premium.ValidationError)
	require.True(t, ok)

	p.PrintValidationErrors(ve)
	output := buf.String()

	assert.Contains(t, output, "INVALID INPUT")
	assert.Contains(t, output, "Found 2 invalid fields")
	assert.Contains(t, output, "age")
	assert.Contains(t, output, "coverage")
}

func TestPrintValidationErrors_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintValidationErrors(nil)
	assert.Empty(t, buf.String())
}

func TestPrintSchemaErrors(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSchemaErrors("request.json", &schemas.ValidationError{Errors: []schemas.FieldError{
		{Field: "age", Message: "Must be less than or equal to 120"},
	}})
	output := buf.String()

	assert.Contains(t, output, "SCHEMA VIOLATIONS: request.json")
	assert.Contains(t, output, "Found 1 invalid fields")
	assert.Contains(t, output, "Must be less than or equal to 120")

	buf.Reset()
	p.PrintSchemaErrors("empty.json", &schemas.ValidationError{})
	assert.Empty(t, buf.String())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(true, "warn")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1), "debug should be disabled at warn level")

	_, err = NewLogger(false, "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics()

	m.ObserveRequest("POST", "/calculate", 200, 5*time.Millisecond)
	m.ObserveCalculation("medium", "26-40", 1320)
	m.ObserveCalculation("medium", "26-40", 1320)
	m.ObserveValidationError("age")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/calculate", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.calculations.WithLabelValues("medium", "26-40")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.validationErrors.WithLabelValues("age")))
}
