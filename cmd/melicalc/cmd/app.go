package cmd

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"melicalc/internal/config"
	"melicalc/internal/engine"
	"melicalc/internal/history"
	"melicalc/internal/meli"
	"melicalc/internal/resolve"
	"melicalc/internal/scrape"
	"melicalc/pkg/logger"
	"melicalc/pkg/pricing"
)

// app bundles the wired pipeline shared by the CLI commands.
type app struct {
	cfg       *config.Config
	log       *slog.Logger
	client    *meli.Client
	limiter   *meli.RateLimiter
	store     *history.MemoryStore
	evaluator *engine.Evaluator
}

// loadConfig reads the config file when given, otherwise starts from
// defaults. Credentials can come from MELICALC_CLIENT_ID and
// MELICALC_CLIENT_SECRET without any file.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if id := viper.GetString("client_id"); id != "" {
		cfg.Meli.ClientID = id
	}
	if secret := viper.GetString("client_secret"); secret != "" {
		cfg.Meli.ClientSecret = secret
	}

	return cfg, nil
}

// buildApp wires the full pipeline from configuration.
func buildApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	limiter := meli.NewRateLimiter(
		cfg.Meli.RateLimit.PerSecond,
		cfg.Meli.RateLimit.Burst,
		cfg.Meli.RateLimit.DailyLimit,
	)

	opts := []meli.Option{
		meli.WithAPIURL(cfg.Meli.APIURL),
		meli.WithSite(cfg.Meli.Site),
		meli.WithRateLimiter(limiter),
		meli.WithHTTPClient(&http.Client{Timeout: cfg.Meli.Timeout}),
	}
	if cfg.Meli.ClientID != "" {
		opts = append(opts, meli.WithTokenProvider(
			meli.NewOAuthTokenProvider(
				cfg.Meli.ClientID,
				cfg.Meli.ClientSecret,
				meli.WithTokenURL(cfg.Meli.TokenURL),
			)))
	}
	client := meli.NewClient(opts...)

	scraper := scrape.New(
		scrape.WithBaseURL(cfg.Meli.StorefrontURL),
		scrape.WithLogger(log),
		scrape.WithTimeout(cfg.Meli.Timeout),
	)

	resolver := resolve.NewResolver(client, scraper, resolve.WithResolverLogger(log))
	store := history.NewMemoryStore()

	return &app{
		cfg:       cfg,
		log:       log,
		client:    client,
		limiter:   limiter,
		store:     store,
		evaluator: engine.NewEvaluator(resolver, client, store, engine.WithLogger(log)),
	}, nil
}

// defaultParams maps the configured cost assumptions to engine params.
func defaultParams(c config.CostsConfig) engine.Params {
	rep, err := pricing.ParseReputationTier(c.Reputation)
	if err != nil {
		rep = pricing.ReputationNone
	}
	return engine.Params{
		DefaultWeightKg: c.DefaultWeightKg,
		ListingTier:     pricing.ListingTier(c.ListingTier),
		Reputation:      rep,
		TaxPct:          decimal.NewFromFloat(c.TaxPct),
		FixedCost:       decimal.NewFromFloat(c.FixedCost),
	}
}
