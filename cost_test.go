package budgetfill

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCompute(t *testing.T) {
	tests := []struct {
		name                      string
		quantity, material, labor string
		wantTotal, wantWithMarkup string
	}{
		{"electrical example", "2", "10", "5", "26.961", "34.8551808"},
		{"zero costs", "3", "0", "0", "0", "0"},
		{"labor only", "1", "0", "35.2", "31.63424", "40.896745472"},
		{"fractional quantity", "2.5", "12.5", "8", "46.058375", "59.5442672"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, withMarkup := Compute(dec(tt.quantity), dec(tt.material), dec(tt.labor))
			assert.True(t, dec(tt.wantTotal).Equal(total), "total %s", total)
			assert.True(t, dec(tt.wantWithMarkup).Equal(withMarkup), "with markup %s", withMarkup)
		})
	}
}

func TestCompute_MatchesFormula(t *testing.T) {
	q, m, l := 7.3, 123.45, 67.89
	total, withMarkup := Compute(decimal.NewFromFloat(q), decimal.NewFromFloat(m), decimal.NewFromFloat(l))

	wantTotal := (m + l) * q * (1 - 0.1013)
	assert.InEpsilon(t, wantTotal, total.InexactFloat64(), 1e-9)
	assert.InEpsilon(t, wantTotal*(1+0.2928), withMarkup.InexactFloat64(), 1e-9)
}

func TestPricingConstants(t *testing.T) {
	assert.Equal(t, "0.1013", Discount().String())
	assert.Equal(t, "0.2928", Markup().String())

	total, withMarkup := Compute(dec("1"), dec("10"), dec("0"))
	assert.True(t, dec("1").Sub(Discount()).Mul(dec("10")).Equal(total))
	assert.True(t, total.Mul(dec("1").Add(Markup())).Equal(withMarkup))
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "34.86", round2(dec("34.8551808")).StringFixed(2))
	assert.Equal(t, "0.13", round2(dec("0.125")).StringFixed(2))
	assert.Equal(t, "-0.13", round2(dec("-0.125")).StringFixed(2))
	assert.Equal(t, "12.93", ApplyMarkup(dec("10")).Round(2).StringFixed(2))
}
