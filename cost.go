package budgetfill

import "github.com/shopspring/decimal"

// Process-wide pricing constants. Every line item goes through both.
var (
	discount = decimal.RequireFromString("0.1013")
	markup   = decimal.RequireFromString("0.2928")

	one            = decimal.NewFromInt(1)
	discountFactor = one.Sub(discount)
	markupFactor   = one.Add(markup)
)

// Discount is the 10.13% reduction applied to material plus labor.
func Discount() decimal.Decimal { return discount }

// Markup is the BDI (overhead and profit) applied after the discount.
func Markup() decimal.Decimal { return markup }

// Compute returns the discounted total and the marked-up total for one line.
//
//	total           = (material + labor) * quantity * (1 - Discount())
//	totalWithMarkup = total * (1 + Markup())
//
// Nothing is rounded here.
func Compute(quantity, material, labor decimal.Decimal) (total, totalWithMarkup decimal.Decimal) {
	gross := material.Add(labor).Mul(quantity)
	total = gross.Mul(discountFactor)
	totalWithMarkup = total.Mul(markupFactor)
	return total, totalWithMarkup
}

// ApplyMarkup returns v * (1 + Markup()).
func ApplyMarkup(v decimal.Decimal) decimal.Decimal {
	return v.Mul(markupFactor)
}

// round2 rounds half away from zero to cents.
func round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}
