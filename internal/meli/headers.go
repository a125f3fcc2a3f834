package meli

import (
	"math/rand"
	"net/http"
)

// Browser-like user agents rotated across requests. The public API and
// the storefront both answer more reliably with a real browser identity.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64; rv:122.0) Gecko/20100101 Firefox/122.0",
}

const acceptLanguage = "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7"

// RandomUserAgent picks one of the rotating browser user agents.
func RandomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))] //nolint:gosec // not security sensitive
}

func applyBrowserHeaders(h http.Header) {
	h.Set("User-Agent", RandomUserAgent())
	h.Set("Accept-Language", acceptLanguage)
	h.Set("Accept", "application/json")
}
