package resolve

import (
	"context"
	"log/slog"

	"melicalc/internal/meli"
	"melicalc/internal/metrics"
)

const defaultPermalinkBase = "https://produto.mercadolivre.com.br"

// Resolver tries an ordered list of strategies until one produces a
// record. Transport and parse failures never propagate: they select the
// next strategy, and only the absence of a record is surfaced, as a
// ResolutionError carrying every failed attempt.
type Resolver struct {
	strategies []Strategy
	log        *slog.Logger
}

// ResolverOption configures the Resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets a custom logger.
func WithResolverLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.log = l
	}
}

// WithStrategies replaces the default strategy chain. Used in tests.
func WithStrategies(strategies ...Strategy) ResolverOption {
	return func(r *Resolver) {
		r.strategies = strategies
	}
}

// NewResolver builds the default chain: catalog resolution, direct item
// lookup, storefront scrape.
func NewResolver(api meli.API, pages PageFetcher, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		strategies: []Strategy{
			&catalogStrategy{api: api, permalinkBase: defaultPermalinkBase},
			&itemStrategy{api: api},
			&scrapeStrategy{pages: pages},
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces a normalized product record for an extracted id.
func (r *Resolver) Resolve(ctx context.Context, id ID) (*Product, error) {
	var attempts []Attempt

	for _, s := range r.strategies {
		if !s.AppliesTo(id.Kind) {
			continue
		}

		p, err := s.Resolve(ctx, id)
		if err == nil {
			metrics.ResolveAttemptsTotal.WithLabelValues(s.Name(), "success").Inc()
			r.log.Debug("resolved product",
				"id", p.ID, "strategy", s.Name(), "source", p.Source)
			return p, nil
		}

		kind := classify(err)
		metrics.ResolveAttemptsTotal.WithLabelValues(s.Name(), string(kind)).Inc()
		r.log.Debug("resolution strategy failed",
			"id", id.Value, "strategy", s.Name(), "kind", kind, "err", err)
		attempts = append(attempts, Attempt{Strategy: s.Name(), Kind: kind, Err: err})
	}

	metrics.ResolveNotFoundTotal.Inc()
	return nil, &ResolutionError{ID: id, Kind: KindNotFound, Attempts: attempts}
}
