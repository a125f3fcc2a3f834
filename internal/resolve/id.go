// Package resolve turns a free-form marketplace URL into a normalized
// product record, trying the catalog API, the direct item API, and the
// storefront HTML in priority order.
package resolve

import (
	"errors"
	"regexp"
	"strings"
)

// IDKind tells a concrete listing apart from a catalog product that
// still has to be narrowed to a winning offer.
type IDKind string

// Identifier kinds.
const (
	ProductID IDKind = "product"
	CatalogID IDKind = "catalog"
)

// ID is a canonical marketplace identifier extracted from user input.
type ID struct {
	Kind  IDKind
	Value string
}

// Extraction failures.
var (
	// ErrNoIdentifier means the input contains nothing that looks like
	// a marketplace id ("nothing to process").
	ErrNoIdentifier = errors.New("no marketplace identifier in input")
	// ErrUnresolvedCatalog means the input has a catalog path marker
	// but no usable numeric code.
	ErrUnresolvedCatalog = errors.New("catalog URL without a numeric code")
)

var (
	idPattern      = regexp.MustCompile(`(?i)MLB-?(\d+)`)
	catalogPattern = regexp.MustCompile(`\d{7,}`)
)

// ExtractID parses a URL or free-form string into a canonical id.
// Catalog URLs carry a /p/ or /up/ path segment before the code; plain
// listing ids appear as MLB<digits> (optionally hyphenated) anywhere in
// the string. The site prefix matches case-insensitively.
func ExtractID(raw string) (ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ID{}, ErrNoIdentifier
	}

	if strings.Contains(raw, "/p/") || strings.Contains(raw, "/up/") {
		if code := catalogPattern.FindString(raw); code != "" {
			return ID{Kind: CatalogID, Value: "MLB" + code}, nil
		}
		return ID{}, ErrUnresolvedCatalog
	}

	if m := idPattern.FindStringSubmatch(raw); m != nil {
		return ID{Kind: ProductID, Value: "MLB" + m[1]}, nil
	}

	return ID{}, ErrNoIdentifier
}
