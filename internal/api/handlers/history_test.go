package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melicalc/internal/api/handlers"
	"melicalc/internal/history"
)

func seededStore() *history.MemoryStore {
	store := history.NewMemoryStore()
	store.Append(history.Entry{
		Timestamp:  time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		Title:      "Fone Bluetooth",
		Price:      decimal.RequireFromString("100"),
		NetProfit:  decimal.RequireFromString("32.1"),
		MarginPct:  decimal.RequireFromString("32.1"),
		SourceLink: "https://produto.mercadolivre.com.br/MLB-123456789",
		Status:     history.StatusOK,
	})
	return store
}

func TestHistoryList(t *testing.T) {
	t.Parallel()

	h := handlers.NewHistoryHandler(seededStore())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", http.NoBody)
	rec := httptest.NewRecorder()

	require.NoError(t, h.List(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
	assert.Contains(t, rec.Body.String(), "Fone Bluetooth")
}

func TestHistoryClear(t *testing.T) {
	t.Parallel()

	store := seededStore()
	h := handlers.NewHistoryHandler(store)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/history", http.NoBody)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Clear(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, store.List())
}

func TestHistoryExport(t *testing.T) {
	t.Parallel()

	h := handlers.NewHistoryHandler(seededStore())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/history/export", http.NoBody)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Export(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")

	body := rec.Body.String()
	assert.Contains(t, body, "timestamp,title,price,profit,margin_pct,link,status")
	assert.Contains(t, body, "Fone Bluetooth")
	assert.Contains(t, body, "100.00")
}
