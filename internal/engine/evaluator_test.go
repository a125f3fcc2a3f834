package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melicalc/internal/history"
	"melicalc/internal/meli"
	"melicalc/internal/resolve"
	"melicalc/pkg/pricing"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeResolver struct {
	resolveFunc func(ctx context.Context, id resolve.ID) (*resolve.Product, error)
	calls       int
}

func (f *fakeResolver) Resolve(ctx context.Context, id resolve.ID) (*resolve.Product, error) {
	f.calls++
	return f.resolveFunc(ctx, id)
}

type fakeOracle struct {
	listingPricesFunc func(ctx context.Context, price float64, categoryID string) ([]meli.ListingPriceOption, error)
	categoryPathFunc  func(ctx context.Context, categoryID string) (*meli.Category, error)
}

func (f *fakeOracle) ListingPrices(ctx context.Context, price float64, categoryID string) ([]meli.ListingPriceOption, error) {
	if f.listingPricesFunc == nil {
		return nil, errors.New("no listing prices")
	}
	return f.listingPricesFunc(ctx, price, categoryID)
}

func (f *fakeOracle) CategoryPath(ctx context.Context, categoryID string) (*meli.Category, error) {
	if f.categoryPathFunc == nil {
		return nil, errors.New("no category")
	}
	return f.categoryPathFunc(ctx, categoryID)
}

func sampleProduct() *resolve.Product {
	return &resolve.Product{
		ID:         "MLB123456789",
		Title:      "Fone Bluetooth",
		Price:      d("100"),
		Permalink:  "https://produto.mercadolivre.com.br/MLB-123456789",
		Source:     resolve.SourceOfficialAPI,
		CategoryID: "MLB1051",
	}
}

func TestEvaluateLiveFees(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		resolveFunc: func(_ context.Context, id resolve.ID) (*resolve.Product, error) {
			assert.Equal(t, resolve.ProductID, id.Kind)
			assert.Equal(t, "MLB123456789", id.Value)
			return sampleProduct(), nil
		},
	}
	oracle := &fakeOracle{
		listingPricesFunc: func(_ context.Context, price float64, categoryID string) ([]meli.ListingPriceOption, error) {
			assert.InDelta(t, 100.0, price, 0.001)
			assert.Equal(t, "MLB1051", categoryID)
			return []meli.ListingPriceOption{
				{ListingTypeID: "gold_special", SaleFeeAmount: 12.50},
				{ListingTypeID: "gold_pro", SaleFeeAmount: 17.50},
			}, nil
		},
		categoryPathFunc: func(_ context.Context, categoryID string) (*meli.Category, error) {
			return &meli.Category{
				ID:   categoryID,
				Name: "Fones de Ouvido",
				PathFromRoot: []meli.CategoryRef{
					{ID: "MLB1000", Name: "Eletrônicos"},
					{ID: "MLB1051", Name: "Fones de Ouvido"},
				},
			}, nil
		},
	}
	store := history.NewMemoryStore()

	e := NewEvaluator(resolver, oracle, store)
	ev, err := e.Evaluate(context.Background(), "MLB123456789", Params{
		ListingTier: pricing.TierClassic,
		TaxPct:      d("4"),
		FixedCost:   d("1.50"),
	})
	require.NoError(t, err)

	assert.Equal(t, FeeSourceLive, ev.FeeSource)
	assert.True(t, ev.Quote.Classic.Equal(d("12.5")))
	assert.True(t, ev.Result.Fee.Equal(d("12.5")))
	assert.Equal(t, "Eletrônicos > Fones de Ouvido", ev.CategoryPath)
	// No weight attribute, no override: the default applies.
	assert.InDelta(t, 0.5, ev.WeightKg, 0.001)
	assert.False(t, ev.WeightDetected)
	assert.Nil(t, ev.TargetPurchase)

	entries := store.List()
	require.Len(t, entries, 1)
	assert.Equal(t, history.StatusOK, entries[0].Status)
	assert.Equal(t, "Fone Bluetooth", entries[0].Title)
}

func TestEvaluateFallbackFees(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		resolveFunc: func(_ context.Context, _ resolve.ID) (*resolve.Product, error) {
			return sampleProduct(), nil
		},
	}
	oracle := &fakeOracle{
		listingPricesFunc: func(_ context.Context, _ float64, _ string) ([]meli.ListingPriceOption, error) {
			return nil, errors.New("upstream 500")
		},
	}

	e := NewEvaluator(resolver, oracle, history.NewMemoryStore())
	ev, err := e.Evaluate(context.Background(), "MLB123456789", Params{
		ListingTier: pricing.TierClassic,
	})
	require.NoError(t, err)

	assert.Equal(t, FeeSourceFallback, ev.FeeSource)
	assert.True(t, ev.Quote.Classic.Equal(d("11.5")), "got %s", ev.Quote.Classic)
	assert.True(t, ev.Quote.ClassicPct.Equal(d("11.5")))
}

func TestEvaluateFallbackOnUnknownListingTypes(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		resolveFunc: func(_ context.Context, _ resolve.ID) (*resolve.Product, error) {
			return sampleProduct(), nil
		},
	}
	oracle := &fakeOracle{
		listingPricesFunc: func(_ context.Context, _ float64, _ string) ([]meli.ListingPriceOption, error) {
			return []meli.ListingPriceOption{
				{ListingTypeID: "free", SaleFeeAmount: 0},
			}, nil
		},
	}

	e := NewEvaluator(resolver, oracle, history.NewMemoryStore())
	ev, err := e.Evaluate(context.Background(), "MLB123456789", Params{})
	require.NoError(t, err)
	assert.Equal(t, FeeSourceFallback, ev.FeeSource)
}

func TestEvaluateWeightOverride(t *testing.T) {
	t.Parallel()

	product := sampleProduct()
	product.Attributes = []meli.Attribute{
		{ID: "PACKAGE_WEIGHT", ValueName: "2 kg"},
	}
	resolver := &fakeResolver{
		resolveFunc: func(_ context.Context, _ resolve.ID) (*resolve.Product, error) {
			return product, nil
		},
	}

	e := NewEvaluator(resolver, &fakeOracle{}, history.NewMemoryStore())

	ev, err := e.Evaluate(context.Background(), "MLB123456789", Params{})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, ev.WeightKg, 0.001)
	assert.True(t, ev.WeightDetected)

	ev, err = e.Evaluate(context.Background(), "MLB123456789", Params{WeightKg: 7.5})
	require.NoError(t, err)
	assert.InDelta(t, 7.5, ev.WeightKg, 0.001)
	assert.True(t, ev.WeightDetected, "override does not hide detection")
}

func TestEvaluateTargetPurchase(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		resolveFunc: func(_ context.Context, _ resolve.ID) (*resolve.Product, error) {
			return sampleProduct(), nil
		},
	}

	e := NewEvaluator(resolver, &fakeOracle{}, history.NewMemoryStore())
	ev, err := e.Evaluate(context.Background(), "MLB123456789", Params{
		TaxPct:          d("4"),
		FixedCost:       d("1.50"),
		TargetMarginPct: d("20"),
	})
	require.NoError(t, err)

	require.NotNil(t, ev.TargetPurchase)
	want := pricing.TargetPurchasePrice(ev.Result, ev.Product.Price, d("20"))
	assert.True(t, ev.TargetPurchase.Equal(want))
}

func TestEvaluateBadInput(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		resolveFunc: func(_ context.Context, _ resolve.ID) (*resolve.Product, error) {
			return sampleProduct(), nil
		},
	}
	store := history.NewMemoryStore()

	e := NewEvaluator(resolver, &fakeOracle{}, store)
	_, err := e.Evaluate(context.Background(), "https://example.com/nothing-here", Params{})
	assert.ErrorIs(t, err, resolve.ErrNoIdentifier)
	assert.Zero(t, resolver.calls)
	assert.Empty(t, store.List())
}

func TestEvaluateResolutionFailure(t *testing.T) {
	t.Parallel()

	wantErr := &resolve.ResolutionError{}
	resolver := &fakeResolver{
		resolveFunc: func(_ context.Context, _ resolve.ID) (*resolve.Product, error) {
			return nil, wantErr
		},
	}

	e := NewEvaluator(resolver, &fakeOracle{}, history.NewMemoryStore())
	_, err := e.Evaluate(context.Background(), "MLB123456789", Params{})
	assert.ErrorIs(t, err, wantErr)
}

func TestEvaluateCategoryPathBestEffort(t *testing.T) {
	t.Parallel()

	product := sampleProduct()
	product.CategoryID = meli.RootCategoryID
	resolver := &fakeResolver{
		resolveFunc: func(_ context.Context, _ resolve.ID) (*resolve.Product, error) {
			return product, nil
		},
	}
	categoryCalls := 0
	oracle := &fakeOracle{
		categoryPathFunc: func(_ context.Context, _ string) (*meli.Category, error) {
			categoryCalls++
			return nil, errors.New("boom")
		},
	}

	e := NewEvaluator(resolver, oracle, history.NewMemoryStore())
	ev, err := e.Evaluate(context.Background(), "MLB123456789", Params{})
	require.NoError(t, err)
	assert.Empty(t, ev.CategoryPath)
	assert.Zero(t, categoryCalls, "root category is never looked up")
}

func TestEvaluateBatch(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		resolveFunc: func(_ context.Context, id resolve.ID) (*resolve.Product, error) {
			if id.Value == "MLB111111111" {
				return nil, &resolve.ResolutionError{ID: id}
			}
			return sampleProduct(), nil
		},
	}
	store := history.NewMemoryStore()
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	e := NewEvaluator(resolver, &fakeOracle{}, store,
		WithNowFunc(func() time.Time { return now }))

	var seen []BatchItem
	items := e.EvaluateBatch(context.Background(),
		[]string{"MLB123456789", "MLB111111111", "not a link"},
		Params{},
		func(_, _ int, item BatchItem) { seen = append(seen, item) })

	require.Len(t, items, 3)
	assert.NoError(t, items[0].Err)
	assert.Error(t, items[1].Err)
	assert.ErrorIs(t, items[2].Err, resolve.ErrNoIdentifier)
	assert.Len(t, seen, 3)

	entries := store.List()
	require.Len(t, entries, 3)
	assert.Equal(t, history.StatusOK, entries[0].Status)
	assert.Equal(t, history.StatusFailed, entries[1].Status)
	assert.NotEmpty(t, entries[1].FailReason)
	assert.Equal(t, history.StatusFailed, entries[2].Status)
	assert.Equal(t, now, entries[1].Timestamp)
}

func TestEvaluateBatchContextCancelled(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		resolveFunc: func(_ context.Context, _ resolve.ID) (*resolve.Product, error) {
			return sampleProduct(), nil
		},
	}

	e := NewEvaluator(resolver, &fakeOracle{}, history.NewMemoryStore())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := e.EvaluateBatch(ctx, []string{"MLB123456789", "MLB123456789"}, Params{}, nil)
	require.Len(t, items, 2)
	assert.ErrorIs(t, items[0].Err, context.Canceled)
	assert.ErrorIs(t, items[1].Err, context.Canceled)
	assert.Zero(t, resolver.calls)
}
