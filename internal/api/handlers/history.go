package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"melicalc/internal/history"
)

// HistoryHandler exposes the session evaluation log.
type HistoryHandler struct {
	store history.Store
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(s history.Store) *HistoryHandler {
	return &HistoryHandler{store: s}
}

// HistoryResponse is the response body for the history list endpoint.
type HistoryResponse struct {
	Entries []history.Entry `json:"entries"`
	Total   int             `json:"total"`
}

// List handles GET /api/v1/history.
func (h *HistoryHandler) List(c echo.Context) error {
	entries := h.store.List()
	return c.JSON(http.StatusOK, HistoryResponse{
		Entries: entries,
		Total:   len(entries),
	})
}

// Clear handles DELETE /api/v1/history.
func (h *HistoryHandler) Clear(c echo.Context) error {
	h.store.Clear()
	return c.NoContent(http.StatusNoContent)
}

// Export handles GET /api/v1/history/export, streaming the log as a CSV
// attachment.
func (h *HistoryHandler) Export(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="melicalc-history.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return history.WriteCSV(c.Response(), h.store.List())
}
