package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

// Title selectors in priority order. The sanitized heading shows up on
// some page layouts instead of the primary one; og:title is the last
// resort and also present on pages that lazy-render the heading.
func parseTitle(doc *goquery.Document) (string, bool) {
	if h1 := doc.Find("h1.ui-pdp-title").First(); h1.Length() > 0 {
		if title := strings.TrimSpace(h1.Text()); title != "" {
			return title, true
		}
	}

	if h1 := doc.Find(".ui-pdp-header__title-container h1").First(); h1.Length() > 0 {
		if title := strings.TrimSpace(h1.Text()); title != "" {
			return title, true
		}
	}

	if meta := doc.Find(`meta[property="og:title"]`).First(); meta.Length() > 0 {
		if content, ok := meta.Attr("content"); ok {
			if title := strings.TrimSpace(content); title != "" {
				return title, true
			}
		}
	}

	return "", false
}

// parsePrice tries the machine-readable price meta tag first, then the
// visually rendered integer/cents fragments.
func parsePrice(doc *goquery.Document) (decimal.Decimal, bool) {
	if meta := doc.Find(`meta[itemprop="price"]`).First(); meta.Length() > 0 {
		if content, ok := meta.Attr("content"); ok {
			if price, err := ParseLocalizedAmount(content); err == nil {
				return price, true
			}
		}
	}

	fraction := strings.TrimSpace(doc.Find(".ui-pdp-price .andes-money-amount__fraction").First().Text())
	if fraction == "" {
		fraction = strings.TrimSpace(doc.Find(".andes-money-amount__fraction").First().Text())
	}
	if fraction == "" {
		return decimal.Zero, false
	}

	// The fraction span holds the integer part with "." as thousands
	// separator; cents live in their own span.
	cents := strings.TrimSpace(doc.Find(".andes-money-amount__cents").First().Text())
	text := strings.ReplaceAll(fraction, ".", "")
	if cents != "" {
		text += "," + cents
	}

	price, err := ParseLocalizedAmount(text)
	if err != nil {
		return decimal.Zero, false
	}
	return price, true
}

func parseThumbnail(doc *goquery.Document) string {
	img := doc.Find("img.ui-pdp-image").First()
	if img.Length() == 0 {
		return ""
	}
	for _, attr := range []string{"src", "data-src", "data-zoom"} {
		if v, ok := img.Attr(attr); ok && v != "" {
			return v
		}
	}
	return ""
}

// ParseLocalizedAmount parses a pt-BR formatted money string: thousands
// separated by "." and decimals by ",". Plain machine-formatted values
// ("149.9") pass through unchanged.
func ParseLocalizedAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
