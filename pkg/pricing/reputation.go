package pricing

import "fmt"

// ReputationTier is the seller-quality classification the marketplace
// uses to grant shipping discounts.
type ReputationTier string

// Reputation tier constants.
const (
	ReputationNone          ReputationTier = "none"
	ReputationMercadoLider  ReputationTier = "mercado_lider"
	ReputationOfficialStore ReputationTier = "official_store"
)

// Discount returns the fraction taken off the base shipping cost for a
// tier. The configured value is always the fraction discounted, never
// the fraction retained.
func (t ReputationTier) Discount() float64 {
	switch t {
	case ReputationMercadoLider:
		return 0.5
	case ReputationOfficialStore:
		return 0.6
	default:
		return 0
	}
}

// Label returns a short human-readable description of the tier.
func (t ReputationTier) Label() string {
	switch t {
	case ReputationMercadoLider:
		return "MercadoLíder (50% off shipping)"
	case ReputationOfficialStore:
		return "Official store (60% off shipping)"
	default:
		return "No reputation (full shipping)"
	}
}

// ParseReputationTier validates a tier name from config or CLI input.
func ParseReputationTier(s string) (ReputationTier, error) {
	switch ReputationTier(s) {
	case ReputationNone, ReputationMercadoLider, ReputationOfficialStore:
		return ReputationTier(s), nil
	case "":
		return ReputationNone, nil
	default:
		return "", fmt.Errorf("unknown reputation tier %q", s)
	}
}
