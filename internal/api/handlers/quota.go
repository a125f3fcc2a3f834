package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"melicalc/internal/meli"
)

// QuotaHandler exposes the marketplace API quota status.
type QuotaHandler struct {
	rl *meli.RateLimiter
}

// NewQuotaHandler creates a QuotaHandler.
func NewQuotaHandler(rl *meli.RateLimiter) *QuotaHandler {
	return &QuotaHandler{rl: rl}
}

// QuotaResponse is the response body for the quota endpoint.
type QuotaResponse struct {
	DailyLimit int64     `json:"daily_limit"`
	DailyUsed  int64     `json:"daily_used"`
	Remaining  int64     `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
}

// Quota handles GET /api/v1/quota.
func (h *QuotaHandler) Quota(c echo.Context) error {
	resp := QuotaResponse{}
	if h.rl != nil {
		resp.DailyLimit = h.rl.MaxDaily()
		resp.DailyUsed = h.rl.DailyCount()
		resp.Remaining = h.rl.Remaining()
		resp.ResetAt = h.rl.ResetAt()
	}
	return c.JSON(http.StatusOK, resp)
}
