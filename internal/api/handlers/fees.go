package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"melicalc/internal/engine"
	"melicalc/pkg/pricing"
)

// FeesHandler quotes sale fees and shipping for a hypothetical price,
// without resolving a product.
type FeesHandler struct {
	oracle engine.FeeOracle
	log    *slog.Logger
}

// NewFeesHandler creates a FeesHandler.
func NewFeesHandler(o engine.FeeOracle, log *slog.Logger) *FeesHandler {
	return &FeesHandler{oracle: o, log: log}
}

// FeesResponse is the response body for the fees endpoint.
type FeesResponse struct {
	Price     decimal.Decimal  `json:"price"`
	Source    string           `json:"source"`
	Quote     pricing.FeeQuote `json:"quote"`
	Shipping  decimal.Decimal  `json:"shipping"`
	BuyerPays bool             `json:"buyer_pays_shipping"`
}

// Fees handles GET /api/v1/fees. Query parameters: price (required),
// category_id and weight_kg (optional). Without a category the static
// table answers directly.
func (h *FeesHandler) Fees(c echo.Context) error {
	price, err := decimal.NewFromString(c.QueryParam("price"))
	if err != nil || price.IsNegative() {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "price must be a non-negative number"})
	}

	weightKg := 0.5
	if raw := c.QueryParam("weight_kg"); raw != "" {
		w, err := decimal.NewFromString(raw)
		if err != nil || !w.IsPositive() {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "weight_kg must be a positive number"})
		}
		weightKg, _ = w.Float64()
	}

	quote := pricing.FallbackFees(price)
	source := engine.FeeSourceFallback
	if categoryID := c.QueryParam("category_id"); categoryID != "" {
		quote, source = engine.QuoteFees(c.Request().Context(), h.oracle, h.log, price, categoryID)
	}

	shipping := pricing.EstimateShipping(weightKg, price, 0)

	return c.JSON(http.StatusOK, FeesResponse{
		Price:     price,
		Source:    source,
		Quote:     quote,
		Shipping:  shipping,
		BuyerPays: shipping.IsZero() && price.IsPositive(),
	})
}
