package catalog

import (
	"math"

	"github.com/madpay/madpay-api/internal/domain"
)

// round2 rounds to 2 decimal places, half away from zero. Amounts here
// are non-negative, so this matches round-half-up.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateFees computes the fee breakdown for paying amount MAD with
// the given method. An unknown method or a method without a fee
// schedule yields a zero-fee breakdown; the calculator never fails.
//
// The percentage fee is rounded to 2 decimals first, and the total is
// recomputed from that rounded fee and rounded again. This double
// rounding can diverge from a single final rounding by one cent; it is
// the established wire behavior and is kept intentionally.
func (c *Catalog) CalculateFees(amount float64, methodID string) domain.FeeBreakdown {
	method, ok := c.Get(methodID)
	if !ok || method.Fees == nil {
		return domain.FeeBreakdown{
			BaseAmount:    amount,
			PercentageFee: 0,
			FixedFee:      0,
			Total:         amount,
		}
	}

	percentageFee := round2(amount * method.Fees.Percentage / 100)
	fixedFee := method.Fees.Fixed

	return domain.FeeBreakdown{
		BaseAmount:    amount,
		PercentageFee: percentageFee,
		FixedFee:      fixedFee,
		Total:         round2(amount + percentageFee + fixedFee),
	}
}
