// Package money holds the fixed-point arithmetic for loan terms. All loan
// math goes through decimals; binary floats never touch an amount.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Terms is the derived financial breakdown of a loan request.
type Terms struct {
	Rate        decimal.Decimal // fraction, e.g. 0.10 for 10%
	Interest    decimal.Decimal
	Total       decimal.Decimal
	Installment decimal.Decimal // rounded half-up to 2 places
}

// Quote computes the flat-interest terms for a principal. The rate arrives
// as a percent (10 means 10%) and is stored as a fraction from here on.
func Quote(principal, ratePercent decimal.Decimal, installments int) Terms {
	rate := ratePercent.Div(hundred)
	interest := principal.Mul(rate)
	total := principal.Add(interest)
	per := total.Div(decimal.NewFromInt(int64(installments))).Round(2)
	return Terms{Rate: rate, Interest: interest, Total: total, Installment: per}
}

// Fixed2 renders an amount with exactly two fractional digits.
func Fixed2(d decimal.Decimal) string { return d.StringFixed(2) }
