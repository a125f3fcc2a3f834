// Package handlers implements HTTP handlers for the melicalc API.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"melicalc/internal/engine"
	"melicalc/internal/resolve"
	"melicalc/pkg/pricing"
)

// Engine is the evaluation seam, satisfied by *engine.Evaluator.
type Engine interface {
	Evaluate(ctx context.Context, raw string, params engine.Params) (*engine.Evaluation, error)
}

// EvaluateHandler runs single evaluations over HTTP.
type EvaluateHandler struct {
	engine   Engine
	defaults engine.Params
}

// NewEvaluateHandler creates an EvaluateHandler. defaults fill in every
// parameter the request leaves out.
func NewEvaluateHandler(e Engine, defaults engine.Params) *EvaluateHandler {
	return &EvaluateHandler{engine: e, defaults: defaults}
}

// EvaluateRequest is the request body for the evaluate endpoint. Every
// field except Input is optional and falls back to the configured
// defaults.
type EvaluateRequest struct {
	Input           string   `json:"input"`
	WeightKg        float64  `json:"weight_kg,omitempty"`
	ListingTier     string   `json:"listing_tier,omitempty"`
	Reputation      string   `json:"reputation,omitempty"`
	TaxPct          *float64 `json:"tax_pct,omitempty"`
	FixedCost       *float64 `json:"fixed_cost,omitempty"`
	TargetMarginPct float64  `json:"target_margin_pct,omitempty"`
}

// ErrorResponse is the JSON error body for all API failures.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Attempts []string `json:"attempts,omitempty"`
}

// Evaluate handles POST /api/v1/evaluate.
func (h *EvaluateHandler) Evaluate(c echo.Context) error {
	var req EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.Input == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "input is required"})
	}

	params, err := h.params(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	ev, err := h.engine.Evaluate(c.Request().Context(), req.Input, params)
	if err != nil {
		return writeEvaluateError(c, err)
	}

	return c.JSON(http.StatusOK, ev)
}

// params merges request overrides onto the configured defaults.
func (h *EvaluateHandler) params(req EvaluateRequest) (engine.Params, error) {
	params := h.defaults

	if req.WeightKg < 0 {
		return params, errors.New("weight_kg must not be negative")
	}
	if req.WeightKg > 0 {
		params.WeightKg = req.WeightKg
	}

	if req.ListingTier != "" {
		tier := pricing.ListingTier(req.ListingTier)
		if tier != pricing.TierClassic && tier != pricing.TierPremium {
			return params, errors.New("listing_tier must be classic or premium")
		}
		params.ListingTier = tier
	}

	if req.Reputation != "" {
		rep, err := pricing.ParseReputationTier(req.Reputation)
		if err != nil {
			return params, err
		}
		params.Reputation = rep
	}

	if req.TaxPct != nil {
		if *req.TaxPct < 0 {
			return params, errors.New("tax_pct must not be negative")
		}
		params.TaxPct = decimal.NewFromFloat(*req.TaxPct)
	}
	if req.FixedCost != nil {
		if *req.FixedCost < 0 {
			return params, errors.New("fixed_cost must not be negative")
		}
		params.FixedCost = decimal.NewFromFloat(*req.FixedCost)
	}
	if req.TargetMarginPct > 0 {
		params.TargetMarginPct = decimal.NewFromFloat(req.TargetMarginPct)
	}

	return params, nil
}

// writeEvaluateError maps pipeline failures to HTTP statuses: unusable
// input is a client error, an exhausted resolution ladder is not found,
// anything else is an upstream failure.
func writeEvaluateError(c echo.Context, err error) error {
	if errors.Is(err, resolve.ErrNoIdentifier) || errors.Is(err, resolve.ErrUnresolvedCatalog) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	var resErr *resolve.ResolutionError
	if errors.As(err, &resErr) {
		attempts := make([]string, 0, len(resErr.Attempts))
		for _, a := range resErr.Attempts {
			attempts = append(attempts, a.Strategy+": "+string(a.Kind))
		}
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:    "product not found: " + resErr.ID.Value,
			Attempts: attempts,
		})
	}

	return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
}
