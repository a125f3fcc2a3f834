package pricing

import (
	"github.com/shopspring/decimal"
)

// FreeShippingThreshold is the sale price at and above which the seller
// pays shipping. Below it the buyer pays and the seller cost is zero.
var FreeShippingThreshold = decimal.NewFromFloat(79.00)

type shippingTier struct {
	maxKg float64
	cost  decimal.Decimal
}

// Fulfillment shipping table, ascending by weight. The last entry is the
// open-ended ceiling applied beyond 23 kg.
var shippingTable = []shippingTier{
	{0.3, decimal.NewFromFloat(41.90)},
	{0.5, decimal.NewFromFloat(44.90)},
	{1.0, decimal.NewFromFloat(49.90)},
	{2.0, decimal.NewFromFloat(53.90)},
	{5.0, decimal.NewFromFloat(68.90)},
	{9.0, decimal.NewFromFloat(92.90)},
	{13.0, decimal.NewFromFloat(125.90)},
	{17.0, decimal.NewFromFloat(155.90)},
	{23.0, decimal.NewFromFloat(185.90)},
}

var shippingCeiling = decimal.NewFromFloat(210.00)

// BaseShipping returns the undiscounted shipping cost for a weight.
func BaseShipping(weightKg float64) decimal.Decimal {
	for _, tier := range shippingTable {
		if weightKg <= tier.maxKg {
			return tier.cost
		}
	}
	return shippingCeiling
}

// EstimateShipping returns the seller-paid shipping cost. Below the
// free-shipping threshold the seller pays nothing. The reputation
// discount is the fraction taken off the base cost: 0 means full price,
// 0.5 means half.
func EstimateShipping(weightKg float64, price decimal.Decimal, reputationDiscount float64) decimal.Decimal {
	if price.LessThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	base := BaseShipping(weightKg)
	if reputationDiscount <= 0 {
		return base
	}
	retained := decimal.NewFromFloat(1 - reputationDiscount)
	return base.Mul(retained)
}
