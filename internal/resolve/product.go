package resolve

import (
	"strings"

	"github.com/shopspring/decimal"

	"melicalc/internal/meli"
)

// Source tells which strategy produced a record.
type Source string

// Record sources.
const (
	SourceOfficialAPI Source = "official_api"
	SourceCatalogAPI  Source = "catalog_api"
	SourceHTMLScrape  Source = "html_scrape"
)

// Product is the normalized record the calculator consumes. Immutable
// once produced.
type Product struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Price      decimal.Decimal  `json:"price"`
	Thumbnail  string           `json:"thumbnail"`
	Permalink  string           `json:"permalink"`
	Source     Source           `json:"source"`
	CategoryID string           `json:"category_id"`
	Attributes []meli.Attribute `json:"attributes,omitempty"`
}

// upgradeThumbnail swaps the small image variant for the full-size one.
func upgradeThumbnail(url string) string {
	return strings.Replace(url, "-I.jpg", "-O.jpg", 1)
}
