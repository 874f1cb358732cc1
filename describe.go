package budgetfill

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Describe returns a human-readable tree of a computed budget: which rows
// each category will occupy, its subtotals, anything dropped, and both grand
// totals. Useful as a dry run before rendering.
func Describe(r BudgetResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Budget: %d of %d selections accepted", r.Stats.Accepted, r.Stats.Submitted)
	if d := r.Stats.Dropped(); d > 0 {
		fmt.Fprintf(&b, " (%d dropped: %d invalid, %d non-positive, %d unclassified, %d unmatched, %d overflow)",
			d, r.Stats.Invalid, r.Stats.NonPositive, r.Stats.Unclassified, r.Stats.Unmatched, r.Stats.Overflow)
	}
	b.WriteByte('\n')

	for _, c := range r.Categories {
		fmt.Fprintf(&b, "%s rows %d-%d (subtotal row %d)\n",
			c.Bucket.Label(), c.Block.StartRow, c.Block.EndRow, c.Block.SubtotalRow)
		for i, li := range c.Items {
			fmt.Fprintf(&b, "  row %d: %s %q %s %s  material %s  labor %s  total %s\n",
				c.Block.StartRow+i, li.ItemID, li.Description, li.Quantity.String(), li.Unit,
				FormatMoney(li.MaterialCost()), FormatMoney(li.LaborCost()), FormatMoney(li.RoundedTotal()))
		}
		if c.Dropped > 0 {
			fmt.Fprintf(&b, "  %d item(s) beyond capacity %d dropped\n", c.Dropped, c.Block.Capacity())
		}
		fmt.Fprintf(&b, "  subtotal: material %s  labor %s  total %s\n",
			FormatMoney(c.Material), FormatMoney(c.Labor), FormatMoney(c.TotalWithMarkup))
	}

	fmt.Fprintf(&b, "Grand total: material %s  labor %s  total %s\n",
		FormatMoney(r.Material), FormatMoney(r.Labor), FormatMoney(r.Total))
	fmt.Fprintf(&b, "With BDI:    material %s  labor %s  total %s\n",
		FormatMoney(r.MarkedUp.Material), FormatMoney(r.MarkedUp.Labor), FormatMoney(r.MarkedUp.Total))
	fmt.Fprintf(&b, "Sum of line totals (discount + BDI): %s\n", FormatMoney(r.TotalWithMarkup))
	return b.String()
}

// FormatMoney formats a value as "R$ 1.234,56".
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var grouped strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(ch)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "R$ " + grouped.String() + "," + frac
}
