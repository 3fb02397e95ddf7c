package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cinetick/cinetick/internal/handler"
	"github.com/cinetick/cinetick/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.  All
// routes require a valid JWT carrying the ADMIN role.
func RegisterAdmin(e *echo.Echo, cat *handler.CatalogHandler, hall *handler.HallHandler,
	mv *handler.MovieHandler, sh *handler.ShowingHandler, usr *handler.AdminUserHandler,
	jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Cities ----
	g.POST("/cities", cat.CreateCity)
	g.PUT("/cities/:uid", cat.UpdateCity)
	g.DELETE("/cities/:uid", cat.DeleteCity)

	// ---- Cinemas ----
	g.POST("/cinemas", cat.CreateCinema)
	g.PATCH("/cinemas/:uid", cat.UpdateCinema)
	g.DELETE("/cinemas/:uid", cat.DeleteCinema)

	// ---- Halls & seats ----
	g.GET("/cinemas/:uid/halls", hall.ListHalls)
	g.POST("/halls", hall.CreateHall)
	g.PATCH("/halls/:uid", hall.UpdateHall)
	g.DELETE("/halls/:uid", hall.DeleteHall)
	g.GET("/halls/:uid/seats", hall.HallSeatGrid)
	g.PATCH("/seats/:uid", hall.ToggleSeat)

	// ---- Movies ----
	g.GET("/movies", mv.ListAllMovies)
	g.POST("/movies", mv.CreateMovie)
	g.PATCH("/movies/:uid", mv.UpdateMovie)
	g.DELETE("/movies/:uid", mv.DeleteMovie)

	// ---- Showings ----
	g.POST("/showings", sh.CreateShowing)
	g.GET("/halls/:uid/showings", sh.ListHallShowings)
	g.PATCH("/showings/:uid", sh.UpdateShowingStatus)
	g.DELETE("/showings/:uid", sh.DeleteShowing)

	// ---- Users & statistics ----
	g.GET("/users", usr.ListUsers)
	g.PATCH("/users/:uid", usr.SetUserActive)
	g.GET("/stats/sales", usr.SalesStats)
}
