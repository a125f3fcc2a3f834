package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Healthz returns 200 if the process is running.
func Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
