// Package engine orchestrates one evaluation: identifier extraction,
// product resolution, fee quoting, and the financial calculation.
package engine

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"melicalc/internal/history"
	"melicalc/internal/meli"
	"melicalc/internal/metrics"
	"melicalc/internal/resolve"
	"melicalc/pkg/pricing"
)

// ProductResolver is the resolution pipeline seam, satisfied by
// *resolve.Resolver.
type ProductResolver interface {
	Resolve(ctx context.Context, id resolve.ID) (*resolve.Product, error)
}

// FeeOracle quotes live fees and category paths, satisfied by
// *meli.Client.
type FeeOracle interface {
	ListingPrices(ctx context.Context, price float64, categoryID string) ([]meli.ListingPriceOption, error)
	CategoryPath(ctx context.Context, categoryID string) (*meli.Category, error)
}

// Fee quote provenance.
const (
	FeeSourceLive     = "live"
	FeeSourceFallback = "fallback"
)

// Params are the user-tunable assumptions for one evaluation.
type Params struct {
	// WeightKg overrides the detected weight when positive.
	WeightKg float64
	// DefaultWeightKg applies when no weight attribute is found and no
	// override is given.
	DefaultWeightKg float64
	ListingTier     pricing.ListingTier
	Reputation      pricing.ReputationTier
	TaxPct          decimal.Decimal
	FixedCost       decimal.Decimal
	TargetMarginPct decimal.Decimal
}

// Evaluation is the full outcome for one input.
type Evaluation struct {
	Input          string           `json:"input"`
	Product        *resolve.Product `json:"product"`
	CategoryPath   string           `json:"category_path,omitempty"`
	WeightKg       float64          `json:"weight_kg"`
	WeightDetected bool             `json:"weight_detected"`
	FeeSource      string           `json:"fee_source"`
	Quote          pricing.FeeQuote `json:"quote"`
	Result         pricing.Result   `json:"result"`
	TargetPurchase *decimal.Decimal `json:"target_purchase,omitempty"`
}

// Evaluator wires the pipeline together with injected collaborators.
type Evaluator struct {
	resolver ProductResolver
	oracle   FeeOracle
	store    history.Store
	log      *slog.Logger
	nowFunc  func() time.Time
}

// EvaluatorOption configures the Evaluator.
type EvaluatorOption func(*Evaluator)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		e.log = l
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) EvaluatorOption {
	return func(e *Evaluator) {
		e.nowFunc = f
	}
}

// NewEvaluator creates an Evaluator with injected dependencies.
func NewEvaluator(r ProductResolver, o FeeOracle, s history.Store, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		resolver: r,
		oracle:   o,
		store:    s,
		log:      slog.Default(),
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs the full pipeline for one input string. Extraction and
// resolution failures are returned to the caller; fee oracle failures
// are absorbed by the static fallback table.
func (e *Evaluator) Evaluate(ctx context.Context, raw string, params Params) (*Evaluation, error) {
	id, err := resolve.ExtractID(raw)
	if err != nil {
		return nil, err
	}

	product, err := e.resolver.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	weightKg, detected := resolve.DetectWeight(product.Attributes)
	if !detected {
		weightKg = params.DefaultWeightKg
		if weightKg <= 0 {
			weightKg = resolve.DefaultWeightKg
		}
	}
	if params.WeightKg > 0 {
		weightKg = params.WeightKg
	}

	quote, feeSource := e.quoteFees(ctx, product)
	fee, feePct := quote.ForTier(params.ListingTier)

	result := pricing.Compute(pricing.Inputs{
		Price:              product.Price,
		WeightKg:           weightKg,
		Fee:                fee,
		FeePct:             feePct,
		ReputationDiscount: params.Reputation.Discount(),
		TaxPct:             params.TaxPct,
		FixedCost:          params.FixedCost,
	})

	ev := &Evaluation{
		Input:          raw,
		Product:        product,
		CategoryPath:   e.categoryPath(ctx, product.CategoryID),
		WeightKg:       weightKg,
		WeightDetected: detected,
		FeeSource:      feeSource,
		Quote:          quote,
		Result:         result,
	}
	if params.TargetMarginPct.IsPositive() {
		target := pricing.TargetPurchasePrice(result, product.Price, params.TargetMarginPct)
		ev.TargetPurchase = &target
	}

	e.store.Append(history.Entry{
		Timestamp:  e.nowFunc(),
		Title:      product.Title,
		Price:      product.Price,
		NetProfit:  result.NetProfit,
		MarginPct:  result.MarginPct,
		SourceLink: product.Permalink,
		Status:     history.StatusOK,
	})

	e.log.Info("evaluated product",
		"id", product.ID,
		"source", product.Source,
		"price", product.Price,
		"profit", result.NetProfit.StringFixed(2),
		"margin_pct", result.MarginPct.StringFixed(1))

	return ev, nil
}

func (e *Evaluator) quoteFees(ctx context.Context, p *resolve.Product) (pricing.FeeQuote, string) {
	return QuoteFees(ctx, e.oracle, e.log, p.Price, p.CategoryID)
}

// QuoteFees asks the live fee endpoint and falls back to the static
// table on any transport or parsing failure. The oracle failing is
// never fatal.
func QuoteFees(ctx context.Context, oracle FeeOracle, log *slog.Logger, price decimal.Decimal, categoryID string) (pricing.FeeQuote, string) {
	priceF, _ := price.Float64()
	options, err := oracle.ListingPrices(ctx, priceF, categoryID)
	if err == nil {
		feeOptions := make([]pricing.FeeOption, 0, len(options))
		for _, opt := range options {
			feeOptions = append(feeOptions, pricing.FeeOption{
				ListingTypeID: opt.ListingTypeID,
				SaleFee:       decimal.NewFromFloat(opt.SaleFeeAmount),
			})
		}
		if quote, ok := pricing.QuoteFromOptions(price, feeOptions); ok {
			return quote, FeeSourceLive
		}
	} else {
		log.Warn("live fee quote unavailable",
			"category", categoryID, "err", err)
	}

	metrics.FeeFallbackTotal.Inc()
	return pricing.FallbackFees(price), FeeSourceFallback
}

// categoryPath labels the result with a readable category path.
// Best-effort: failures just leave the label empty.
func (e *Evaluator) categoryPath(ctx context.Context, categoryID string) string {
	if categoryID == "" || categoryID == meli.RootCategoryID {
		return ""
	}
	cat, err := e.oracle.CategoryPath(ctx, categoryID)
	if err != nil || cat == nil {
		return ""
	}
	names := make([]string, 0, len(cat.PathFromRoot))
	for _, ref := range cat.PathFromRoot {
		names = append(names, ref.Name)
	}
	if len(names) == 0 {
		return cat.Name
	}
	return strings.Join(names, " > ")
}
