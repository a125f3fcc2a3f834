package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"melicalc/internal/meli"
	"melicalc/internal/scrape"
)

var errEmptyOffers = errors.New("catalog has no active offers")

// PageFetcher is the storefront scraper seam, satisfied by
// *scrape.Scraper.
type PageFetcher interface {
	Fetch(ctx context.Context, itemID string) (*scrape.Page, error)
}

// Strategy is one rung of the resolution ladder. Strategies are tried
// in priority order and must be independently testable.
type Strategy interface {
	Name() string
	AppliesTo(kind IDKind) bool
	Resolve(ctx context.Context, id ID) (*Product, error)
}

// catalogStrategy narrows a catalog product to its winning offer by
// combining the product-metadata and offers endpoints.
type catalogStrategy struct {
	api           meli.API
	permalinkBase string
}

func (*catalogStrategy) Name() string { return "catalog" }

func (*catalogStrategy) AppliesTo(kind IDKind) bool { return kind == CatalogID }

func (s *catalogStrategy) Resolve(ctx context.Context, id ID) (*Product, error) {
	// Metadata failures are tolerated: the offer alone still prices the
	// product. The offers call failing fails the strategy.
	meta, metaErr := s.api.Product(ctx, id.Value)
	if metaErr != nil {
		meta = nil
	}

	offers, err := s.api.ProductItems(ctx, id.Value)
	if err != nil {
		return nil, fmt.Errorf("listing catalog offers: %w", err)
	}
	if len(offers) == 0 {
		return nil, errEmptyOffers
	}

	// The upstream order is authoritative: the first offer wins.
	winner := offers[0]

	p := &Product{
		ID:         winner.ItemID,
		Title:      "Catalog product",
		Price:      decimal.NewFromFloat(winner.Price),
		Permalink:  winner.Permalink,
		Source:     SourceCatalogAPI,
		CategoryID: winner.CategoryID,
	}
	if p.Permalink == "" {
		p.Permalink = fmt.Sprintf("%s/%s", s.permalinkBase, winner.ItemID)
	}
	if p.CategoryID == "" || p.CategoryID == meli.RootCategoryID {
		p.CategoryID = meli.RootCategoryID
		if meta != nil && meta.CategoryID != "" {
			p.CategoryID = meta.CategoryID
		}
	}
	if meta != nil {
		if meta.Name != "" {
			p.Title = meta.Name
		}
		if len(meta.Pictures) > 0 {
			p.Thumbnail = upgradeThumbnail(meta.Pictures[0].URL)
		}
		p.Attributes = meta.Attributes
	}
	return p, nil
}

// itemStrategy is the direct lookup against the authoritative item
// endpoint.
type itemStrategy struct {
	api meli.API
}

func (*itemStrategy) Name() string { return "item" }

func (*itemStrategy) AppliesTo(IDKind) bool { return true }

func (s *itemStrategy) Resolve(ctx context.Context, id ID) (*Product, error) {
	item, err := s.api.Item(ctx, id.Value)
	if err != nil {
		return nil, err
	}
	return &Product{
		ID:         item.ID,
		Title:      item.Title,
		Price:      decimal.NewFromFloat(item.Price),
		Thumbnail:  upgradeThumbnail(item.Thumbnail),
		Permalink:  item.Permalink,
		Source:     SourceOfficialAPI,
		CategoryID: item.CategoryID,
		Attributes: item.Attributes,
	}, nil
}

// scrapeStrategy is the last resort: the public storefront page.
// Weight attributes cannot be recovered on this path.
type scrapeStrategy struct {
	pages PageFetcher
}

func (*scrapeStrategy) Name() string { return "scrape" }

func (*scrapeStrategy) AppliesTo(IDKind) bool { return true }

func (s *scrapeStrategy) Resolve(ctx context.Context, id ID) (*Product, error) {
	page, err := s.pages.Fetch(ctx, id.Value)
	if err != nil {
		return nil, err
	}
	return &Product{
		ID:         page.ItemID,
		Title:      page.Title,
		Price:      page.Price,
		Thumbnail:  upgradeThumbnail(page.Thumbnail),
		Permalink:  page.URL,
		Source:     SourceHTMLScrape,
		CategoryID: meli.RootCategoryID,
	}, nil
}
