package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health reports liveness plus database reachability.
func Health(db *sql.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := reqCtx(c)
		defer cancel()

		dbStatus := "ok"
		if err := db.PingContext(ctx); err != nil {
			dbStatus = "down"
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status": "ok",
			"db":     dbStatus,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
