package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinetick/cinetick/internal/repository"
)

// AdminUserHandler covers account administration and the sales statistics
// read model.
type AdminUserHandler struct {
	Users     *repository.UserRepo
	Payments  *repository.PaymentRepo
	StatsDays int
}

func NewAdminUserHandler(u *repository.UserRepo, p *repository.PaymentRepo, statsDays int) *AdminUserHandler {
	return &AdminUserHandler{Users: u, Payments: p, StatsDays: statsDays}
}

// ListUsers returns every account, newest first.
func (h *AdminUserHandler) ListUsers(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(users))
	for _, u := range users {
		out = append(out, echo.Map{
			"uid":        u.UID,
			"email":      u.Email,
			"role":       u.Role,
			"is_active":  u.IsActive,
			"created_at": u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// SetUserActive enables or disables an account.
func (h *AdminUserHandler) SetUserActive(c echo.Context) error {
	var req struct {
		Active *bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil || req.Active == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "active required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.SetActiveByUID(ctx, c.Param("uid"), *req.Active); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}

// SalesStats returns per-day paid totals for the dashboard.  The window
// defaults to the configured number of days and can be narrowed with ?days=.
func (h *AdminUserHandler) SalesStats(c echo.Context) error {
	days := h.StatsDays
	if ds := c.QueryParam("days"); ds != "" {
		n, err := strconv.Atoi(ds)
		if err != nil || n < 1 || n > 365 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "days must be 1-365"})
		}
		days = n
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	stats, err := h.Payments.StatsByDay(ctx, days)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"days": days, "stats": stats})
}
