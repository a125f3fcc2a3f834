// Package pricing implements the deterministic marketplace financials:
// sale fees, seller-paid shipping, and the net profit / margin arithmetic
// used to evaluate a sourcing opportunity. All money values are BRL and
// carried as decimal.Decimal; rounding happens only at presentation time.
package pricing

import (
	"github.com/shopspring/decimal"
)

// ListingTier is the marketplace exposure tier an item is listed under.
type ListingTier string

// Listing tier constants.
const (
	TierClassic ListingTier = "classic"
	TierPremium ListingTier = "premium"
)

var oneHundred = decimal.NewFromInt(100)

// Inputs holds everything the calculator needs for one evaluation.
// Fee and FeePct come from a FeeQuote (live or fallback) already narrowed
// to the chosen listing tier.
type Inputs struct {
	Price              decimal.Decimal
	WeightKg           float64
	Fee                decimal.Decimal
	FeePct             decimal.Decimal
	ReputationDiscount float64
	TaxPct             decimal.Decimal
	FixedCost          decimal.Decimal
}

// Result is the output of one financial evaluation.
type Result struct {
	Fee           decimal.Decimal `json:"fee"`
	FeePct        decimal.Decimal `json:"fee_pct"`
	Shipping      decimal.Decimal `json:"shipping"`
	NetReceivable decimal.Decimal `json:"net_receivable"`
	Tax           decimal.Decimal `json:"tax"`
	FixedCost     decimal.Decimal `json:"fixed_cost"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	MarginPct     decimal.Decimal `json:"margin_pct"`
}

// Compute evaluates the financials for one listing.
//
// netReceivable = price - fee - shipping (what the marketplace pays out),
// tax = price * taxPct/100,
// netProfit = netReceivable - tax - fixedCost,
// marginPct = 100 * netProfit / price (0 when price is 0).
func Compute(in Inputs) Result {
	shipping := EstimateShipping(in.WeightKg, in.Price, in.ReputationDiscount)

	netReceivable := in.Price.Sub(in.Fee).Sub(shipping)
	tax := in.Price.Mul(in.TaxPct).Div(oneHundred)
	netProfit := netReceivable.Sub(tax).Sub(in.FixedCost)

	marginPct := decimal.Zero
	if in.Price.IsPositive() {
		marginPct = netProfit.Mul(oneHundred).Div(in.Price)
	}

	return Result{
		Fee:           in.Fee,
		FeePct:        in.FeePct,
		Shipping:      shipping,
		NetReceivable: netReceivable,
		Tax:           tax,
		FixedCost:     in.FixedCost,
		NetProfit:     netProfit,
		MarginPct:     marginPct,
	}
}

// TargetPurchasePrice solves the reverse problem: the most a sourcing
// buyer can pay for the item and still clear targetMarginPct of the sale
// price as net margin. Closed form: everything except the purchase cost
// is already fixed in the forward result.
func TargetPurchasePrice(r Result, price, targetMarginPct decimal.Decimal) decimal.Decimal {
	desiredProfit := price.Mul(targetMarginPct).Div(oneHundred)
	return r.NetReceivable.Sub(r.Tax).Sub(r.FixedCost).Sub(desiredProfit)
}

// MarginForPurchasePrice is the algebraic inverse of TargetPurchasePrice:
// the net margin achieved when the item is bought at cost.
func MarginForPurchasePrice(r Result, price, cost decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	profit := r.NetReceivable.Sub(r.Tax).Sub(r.FixedCost).Sub(cost)
	return profit.Mul(oneHundred).Div(price)
}
