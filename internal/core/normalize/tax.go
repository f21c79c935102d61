package normalize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/invoice-extract/constants"
)

// TaxRate is a normalized VAT rate cell. Label is what gets exported
// ("10", "KCT" or ""); Percent drives the tax computation.
type TaxRate struct {
	Label   string
	Percent float64
}

// ParseTaxRate strips '%', accepts ',' as the decimal mark and keeps KCT as a
// literal with a zero rate. Unparseable input yields an empty label and rate 0.
func ParseTaxRate(s string) TaxRate {
	s = strings.ReplaceAll(s, "%", "")
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return TaxRate{}
	}
	if strings.EqualFold(s, constants.NotTaxable) {
		return TaxRate{Label: constants.NotTaxable}
	}
	v, ok := parseFloat(s)
	if !ok {
		return TaxRate{}
	}
	return TaxRate{Label: s, Percent: v}
}

var hundred = decimal.NewFromInt(100)

// TaxAmount is round(lineTotal * percent / 100, 2). It is nil, not zero, when
// the line total is missing or the rate is not a positive finite number.
func TaxAmount(lineTotal *float64, percent float64) *float64 {
	if lineTotal == nil || !isFinite(*lineTotal) || !isFinite(percent) || percent <= 0 {
		return nil
	}
	amount, _ := decimal.NewFromFloat(*lineTotal).
		Mul(decimal.NewFromFloat(percent)).
		Div(hundred).
		Round(2).
		Float64()
	return &amount
}

// LineTotal is round(quantity * unitPrice, 2).
func LineTotal(quantity, unitPrice float64) float64 {
	v, _ := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(unitPrice)).Round(2).Float64()
	return v
}
