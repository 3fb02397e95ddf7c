package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cinetick/cinetick/internal/handler"
	"github.com/cinetick/cinetick/internal/middleware"
)

// RegisterCheckout registers the purchase endpoints.  Creating a session
// and polling a payment require a CUSTOMER (or ADMIN) token; the confirm
// endpoint is open because it is hit by the provider's redirect, which
// carries no JWT.  It authenticates by session identifier instead.
func RegisterCheckout(e *echo.Echo, ck *handler.CheckoutHandler, jwtSecret string) {
	e.GET("/v1/payments/confirm", ck.Confirm)

	g := e.Group(
		"/v1/payments",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER", "ADMIN"),
	)
	g.POST("/create-checkout-session", ck.CreateSession)
	g.GET("/:uid", ck.PaymentStatus)
}
