package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melicalc/pkg/pricing"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute_ProfitIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   pricing.Inputs
	}{
		{
			name: "typical listing",
			in: pricing.Inputs{
				Price:     d("249.90"),
				WeightKg:  1.2,
				Fee:       d("28.74"),
				FeePct:    d("11.5"),
				TaxPct:    d("4"),
				FixedCost: d("1.50"),
			},
		},
		{
			name: "with reputation discount",
			in: pricing.Inputs{
				Price:              d("500.00"),
				WeightKg:           4.0,
				Fee:                d("82.50"),
				FeePct:             d("16.5"),
				ReputationDiscount: 0.5,
				TaxPct:             d("6"),
				FixedCost:          d("2.00"),
			},
		},
		{
			name: "cheap item buyer pays shipping",
			in: pricing.Inputs{
				Price:     d("45.00"),
				WeightKg:  0.2,
				Fee:       d("11.18"),
				FeePct:    d("11.5"),
				TaxPct:    d("4"),
				FixedCost: d("1.50"),
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := pricing.Compute(tt.in)

			// netProfit = price - fee - shipping - tax - fixedCost
			want := tt.in.Price.
				Sub(res.Fee).
				Sub(res.Shipping).
				Sub(res.Tax).
				Sub(tt.in.FixedCost)
			assert.True(t, res.NetProfit.Equal(want),
				"net profit %s, want %s", res.NetProfit, want)

			wantReceivable := tt.in.Price.Sub(res.Fee).Sub(res.Shipping)
			assert.True(t, res.NetReceivable.Equal(wantReceivable))

			wantMargin := res.NetProfit.Mul(d("100")).Div(tt.in.Price)
			assert.True(t, res.MarginPct.Equal(wantMargin))
		})
	}
}

func TestCompute_ZeroPrice(t *testing.T) {
	t.Parallel()

	res := pricing.Compute(pricing.Inputs{
		Price:     decimal.Zero,
		WeightKg:  1.0,
		Fee:       decimal.Zero,
		TaxPct:    d("4"),
		FixedCost: d("1.50"),
	})
	assert.True(t, res.MarginPct.IsZero(), "margin must be 0 when price is 0")
}

// End-to-end fallback scenario: price 100, live oracle unavailable, 1 kg,
// no reputation, 4% tax, R$1.50 fixed cost.
func TestCompute_FallbackScenario(t *testing.T) {
	t.Parallel()

	price := d("100.00")
	quote := pricing.FallbackFees(price)
	fee, pct := quote.ForTier(pricing.TierClassic)
	require.True(t, fee.Equal(d("11.5")), "fallback classic fee: %s", fee)
	require.True(t, pct.Equal(d("11.5")))

	res := pricing.Compute(pricing.Inputs{
		Price:     price,
		WeightKg:  1.0,
		Fee:       fee,
		FeePct:    pct,
		TaxPct:    d("4"),
		FixedCost: d("1.50"),
	})

	// 1.0 kg lands in the (0.5, 1.0] tier.
	assert.True(t, res.Shipping.Equal(d("49.90")), "shipping %s", res.Shipping)
	assert.True(t, res.Tax.Equal(d("4")), "tax %s", res.Tax)

	want := d("100").Sub(d("11.5")).Sub(d("49.90")).Sub(d("4")).Sub(d("1.50"))
	assert.True(t, res.NetProfit.Equal(want), "profit %s want %s", res.NetProfit, want)
	assert.True(t, res.MarginPct.Equal(want), "margin equals profit at price 100")
}

func TestTargetPurchasePrice_RoundTrip(t *testing.T) {
	t.Parallel()

	price := d("320.00")
	res := pricing.Compute(pricing.Inputs{
		Price:     price,
		WeightKg:  2.5,
		Fee:       d("36.80"),
		TaxPct:    d("7"),
		FixedCost: d("2.25"),
	})

	for _, target := range []string{"5", "12.5", "20", "35"} {
		targetPct := d(target)
		maxCost := pricing.TargetPurchasePrice(res, price, targetPct)
		back := pricing.MarginForPurchasePrice(res, price, maxCost)

		diff := back.Sub(targetPct).Abs()
		assert.True(t, diff.LessThan(d("0.000001")),
			"target %s: round-trip margin %s", target, back)
	}
}

func TestTargetPurchasePrice_Formula(t *testing.T) {
	t.Parallel()

	res := pricing.Result{
		NetReceivable: d("200.00"),
		Tax:           d("10.00"),
		FixedCost:     d("1.50"),
	}
	got := pricing.TargetPurchasePrice(res, d("250.00"), d("20"))
	// 200 - 10 - 1.50 - 250*0.20 = 138.50
	assert.True(t, got.Equal(d("138.50")), "got %s", got)
}
