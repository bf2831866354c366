package shared

import "github.com/shopspring/decimal"

// LineAmount returns the tax-inclusive amount of a line:
// quantity*unitPrice plus taxRatePercent percent of it. No rounding is applied.
func LineAmount(quantity, unitPrice, taxRatePercent decimal.Decimal) decimal.Decimal {
	base := quantity.Mul(unitPrice)
	tax := base.Mul(taxRatePercent).Shift(-2)
	return base.Add(tax)
}

// SumAmounts adds the given amounts. An empty input sums to zero.
func SumAmounts(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
