// Package premium computes insurance premiums from applicant age, risk level and coverage.
//
// The formula is
//
//	final = base × (1 + ageFactor) × (1 + riskLoading)
//
// evaluated in exact decimal arithmetic and rounded half-up (away from zero)
// to two places. Coverage is recorded on the result but does not take part
// in the formula.
package premium

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// DefaultBasePremium is the unloaded premium used when no base is configured.
	DefaultBasePremium = 1000.0
	// MinAge and MaxAge bound the accepted applicant age, inclusive.
	MinAge = 0
	MaxAge = 120
	// precision is the number of decimal places kept on the final premium.
	precision = 2
)

// PremiumInput is a single premium request.
type PremiumInput struct {
	Age       int       `json:"age"`
	RiskLevel RiskLevel `json:"risk_level"`
	Coverage  float64   `json:"coverage"`
}

// PremiumResult is the outcome of one premium calculation.
type PremiumResult struct {
	BasePremium  float64 `json:"base_premium"`
	AgeFactor    float64 `json:"age_factor"`
	RiskLoading  float64 `json:"risk_loading"`
	FinalPremium float64 `json:"final_premium"`
	Coverage     float64 `json:"coverage"`
	Breakdown    string  `json:"breakdown"`
}

// Validate checks the input bounds and returns a *ValidationError listing
// every offending field, or nil.
func (in PremiumInput) Validate() error {
	ve := &ValidationError{}
	if in.Age < MinAge || in.Age > MaxAge {
		ve.add("age", "must be between 0 and 120")
	}
	if !in.RiskLevel.Valid() {
		ve.add("risk_level", "must be one of low, medium, high")
	}
	if math.IsNaN(in.Coverage) || math.IsInf(in.Coverage, 0) || in.Coverage <= 0 {
		ve.add("coverage", "must be a positive number")
	}
	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// Calculator applies the premium formula with a fixed base premium.
// The zero value uses DefaultBasePremium. A Calculator holds no mutable
// state and is safe for concurrent use.
type Calculator struct {
	Base float64
}

// NewCalculator returns a Calculator for base. A base that is not a
// positive finite number falls back to DefaultBasePremium.
func NewCalculator(base float64) *Calculator {
	if !ValidBase(base) {
		base = DefaultBasePremium
	}
	return &Calculator{Base: base}
}

// ValidBase reports whether base is usable as a base premium: positive and
// finite. NaN fails the comparison and is rejected too.
func ValidBase(base float64) bool {
	return base > 0 && !math.IsInf(base, 0)
}

// BasePremium returns the base the calculator applies.
func (c *Calculator) BasePremium() float64 {
	if c == nil || !ValidBase(c.Base) {
		return DefaultBasePremium
	}
	return c.Base
}

// Calculate validates in and computes its premium.
func (c *Calculator) Calculate(in PremiumInput) (PremiumResult, error) {
	if err := in.Validate(); err != nil {
		return PremiumResult{}, err
	}
	return Compute(in.Age, in.RiskLevel, in.Coverage, c.BasePremium()), nil
}

// Compute applies the premium formula. It assumes validated input: age in
// [0,120], a known risk level, positive coverage and positive base.
func Compute(age int, level RiskLevel, coverage, base float64) PremiumResult {
	baseDec := decimal.NewFromFloat(base)
	af := ageFactor(age)
	rl := riskLoading(level)

	final := baseDec.
		Mul(decimal.NewFromInt(1).Add(af)).
		Mul(decimal.NewFromInt(1).Add(rl)).
		Round(precision)

	return PremiumResult{
		BasePremium:  base,
		AgeFactor:    af.InexactFloat64(),
		RiskLoading:  rl.InexactFloat64(),
		FinalPremium: final.InexactFloat64(),
		Coverage:     coverage,
		Breakdown:    formatBreakdown(baseDec, af, rl, final),
	}
}
