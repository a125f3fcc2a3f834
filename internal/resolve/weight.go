package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"melicalc/internal/meli"
)

// DefaultWeightKg is assumed when no attribute yields a usable weight.
// Callers must keep it user-overridable.
const DefaultWeightKg = 0.5

// Weight attribute identifiers in priority order. The first attribute
// whose value parses to a positive number wins.
var weightAttributeIDs = []string{
	"PACKAGE_WEIGHT",
	"WEIGHT",
	"NET_WEIGHT",
	"GROSS_WEIGHT",
	"PRODUCT_WEIGHT",
	"ITEM_PACKAGE_WEIGHT",
}

var numberPattern = regexp.MustCompile(`[\d.]+`)

// DetectWeight scans the attribute list for a shipping weight and
// returns it in kilograms. found is false when nothing parsed, in which
// case the caller should fall back to DefaultWeightKg.
func DetectWeight(attrs []meli.Attribute) (kg float64, found bool) {
	for _, wantID := range weightAttributeIDs {
		for _, attr := range attrs {
			if attr.ID != wantID || attr.ValueName == "" {
				continue
			}
			if kg, ok := parseWeight(attr.ValueName); ok {
				return kg, true
			}
		}
	}
	return 0, false
}

// parseWeight extracts the first numeric substring of a value like
// "300 g" or "1,5 kg" and normalizes it to kilograms. Values without a
// "kg" unit token are grams.
func parseWeight(value string) (float64, bool) {
	v := strings.ToLower(strings.ReplaceAll(value, ",", "."))
	m := numberPattern.FindString(v)
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}

	grams := n
	if strings.Contains(v, "kg") {
		grams = n * 1000
	}
	kg := grams / 1000
	if kg <= 0 {
		return 0, false
	}
	return kg, true
}
