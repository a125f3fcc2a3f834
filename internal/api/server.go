// Package api assembles the Echo server: routes, middleware, and the
// Prometheus endpoint.
package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"melicalc/internal/api/handlers"
	"melicalc/internal/api/middleware"
	"melicalc/internal/engine"
	"melicalc/internal/history"
	"melicalc/internal/meli"
)

// Deps carries everything the server routes need.
type Deps struct {
	Engine      handlers.Engine
	Oracle      engine.FeeOracle
	Store       history.Store
	RateLimiter *meli.RateLimiter
	Defaults    engine.Params
	Log         *slog.Logger
}

// New builds the Echo server with all routes registered. The caller
// owns starting and stopping it.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(d.Log))
	e.Use(middleware.RequestLog(d.Log))
	e.Use(middleware.Metrics())

	e.GET("/healthz", handlers.Healthz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	evaluate := handlers.NewEvaluateHandler(d.Engine, d.Defaults)
	fees := handlers.NewFeesHandler(d.Oracle, d.Log)
	hist := handlers.NewHistoryHandler(d.Store)
	quota := handlers.NewQuotaHandler(d.RateLimiter)

	v1 := e.Group("/api/v1")
	v1.POST("/evaluate", evaluate.Evaluate)
	v1.GET("/fees", fees.Fees)
	v1.GET("/history", hist.List)
	v1.DELETE("/history", hist.Clear)
	v1.GET("/history/export", hist.Export)
	v1.GET("/quota", quota.Quota)

	return e
}
