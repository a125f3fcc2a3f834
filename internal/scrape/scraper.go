// Package scrape implements the storefront HTML fallback used when the
// marketplace API cannot produce an item. It fetches the public product
// page with browser-like headers and no bearer token, and extracts the
// handful of fields the calculator needs.
package scrape

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const (
	defaultStorefrontURL = "https://produto.mercadolivre.com.br"
	acceptLanguage       = "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7"
)

// ErrBotChallenge marks a page where no title selector matched; the
// storefront serves a challenge page to suspected bots and those pages
// carry none of the product markup.
var ErrBotChallenge = fmt.Errorf("page has no product markup (bot challenge)")

// Page is the product data recoverable from the storefront HTML. Weight
// attributes are never present in the page, so the attribute list is
// always empty on this path.
type Page struct {
	ItemID    string
	Title     string
	Price     decimal.Decimal
	HasPrice  bool
	Thumbnail string
	URL       string
}

// Scraper fetches and parses storefront product pages.
type Scraper struct {
	baseURL string
	http    *resty.Client
	log     *slog.Logger
}

// ScraperOption configures the Scraper.
type ScraperOption func(*Scraper)

// WithBaseURL overrides the storefront base URL.
func WithBaseURL(u string) ScraperOption {
	return func(s *Scraper) {
		s.baseURL = strings.TrimRight(u, "/")
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) ScraperOption {
	return func(s *Scraper) {
		s.log = l
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) ScraperOption {
	return func(s *Scraper) {
		s.http.SetTimeout(d)
	}
}

// New creates a storefront scraper.
func New(opts ...ScraperOption) *Scraper {
	client := resty.New()
	client.SetTimeout(15 * time.Second)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	s := &Scraper{
		baseURL: defaultStorefrontURL,
		http:    client,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch downloads and parses the storefront page for an item id. The id
// may be given with or without the MLB prefix or hyphen.
func (s *Scraper) Fetch(ctx context.Context, itemID string) (*Page, error) {
	digits := strings.ReplaceAll(strings.TrimPrefix(strings.ToUpper(itemID), "MLB"), "-", "")
	pageURL := fmt.Sprintf("%s/MLB-%s", s.baseURL, digits)

	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", browser.Random()).
		SetHeader("Accept-Language", acceptLanguage).
		Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching storefront page: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("storefront page status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parsing storefront HTML: %w", err)
	}

	title, ok := parseTitle(doc)
	if !ok {
		return nil, ErrBotChallenge
	}

	price, hasPrice := parsePrice(doc)
	if !hasPrice {
		s.log.Debug("storefront page has no price", "item", itemID, "url", pageURL)
	}

	return &Page{
		ItemID:    "MLB" + digits,
		Title:     title,
		Price:     price,
		HasPrice:  hasPrice,
		Thumbnail: parseThumbnail(doc),
		URL:       pageURL,
	}, nil
}
