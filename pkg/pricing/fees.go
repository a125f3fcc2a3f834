package pricing

import (
	"github.com/shopspring/decimal"
)

// Marketplace listing type identifiers as returned by the listing-prices
// endpoint.
const (
	ListingTypeClassic = "gold_special"
	ListingTypePremium = "gold_pro"
)

// Static fallback fee schedule, applied when the live fee endpoint is
// unavailable. Orders below the small-order threshold carry a flat
// surcharge on top of the percentage fee.
var (
	fallbackClassicPct  = decimal.NewFromFloat(11.5)
	fallbackPremiumPct  = decimal.NewFromFloat(16.5)
	smallOrderThreshold = decimal.NewFromFloat(79.00)
	smallOrderSurcharge = decimal.NewFromFloat(6.00)
)

// FeeQuote holds the sale fee for both listing tiers at a given price.
type FeeQuote struct {
	Classic    decimal.Decimal `json:"classic"`
	Premium    decimal.Decimal `json:"premium"`
	ClassicPct decimal.Decimal `json:"classic_pct"`
	PremiumPct decimal.Decimal `json:"premium_pct"`
}

// ForTier narrows a quote to one listing tier.
func (q FeeQuote) ForTier(t ListingTier) (fee, pct decimal.Decimal) {
	if t == TierPremium {
		return q.Premium, q.PremiumPct
	}
	return q.Classic, q.ClassicPct
}

// FeeOption is one entry of the live listing-prices response, reduced to
// the fields the quote needs.
type FeeOption struct {
	ListingTypeID string
	SaleFee       decimal.Decimal
}

// QuoteFromOptions derives a FeeQuote from the live option list. It scans
// for the classic and premium listing types; ok is false when neither is
// present, in which case callers fall back to FallbackFees.
func QuoteFromOptions(price decimal.Decimal, options []FeeOption) (FeeQuote, bool) {
	var q FeeQuote
	found := false
	for _, opt := range options {
		switch opt.ListingTypeID {
		case ListingTypeClassic:
			q.Classic = opt.SaleFee
			q.ClassicPct = pctOf(opt.SaleFee, price)
			found = true
		case ListingTypePremium:
			q.Premium = opt.SaleFee
			q.PremiumPct = pctOf(opt.SaleFee, price)
			found = true
		}
	}
	return q, found
}

// FallbackFees computes the static fee schedule for a price: 11.5%
// classic, 16.5% premium, plus a flat R$6.00 surcharge under R$79.00.
// The reported percentages stay nominal; the surcharge only widens the
// absolute fee.
func FallbackFees(price decimal.Decimal) FeeQuote {
	classic := price.Mul(fallbackClassicPct).Div(oneHundred)
	premium := price.Mul(fallbackPremiumPct).Div(oneHundred)
	if price.IsPositive() && price.LessThan(smallOrderThreshold) {
		classic = classic.Add(smallOrderSurcharge)
		premium = premium.Add(smallOrderSurcharge)
	}
	return FeeQuote{
		Classic:    classic,
		Premium:    premium,
		ClassicPct: fallbackClassicPct,
		PremiumPct: fallbackPremiumPct,
	}
}

func pctOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(oneHundred).Div(whole)
}
