package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/cinetick/cinetick/internal/config"
	"github.com/cinetick/cinetick/internal/handler"
	"github.com/cinetick/cinetick/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only the health check.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers the authentication endpoints.  Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a refresh token in the body, so it works without a JWT.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	// With a bearer token and no body, logout ends every session.
	auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse endpoints: the
// city/cinema/movie catalog and the screening views.  Read-heavy and
// anonymous, they sit behind the Redis response cache.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler, s *handler.ShowtimeHandler,
	cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1", middleware.NewRedisCache(cacheCfg, rdb))
	g.GET("/cities", b.ListCities)
	g.GET("/cities/:uid/cinemas", b.ListCinemasByCity)
	g.GET("/movies", b.ListMovies)
	g.GET("/cinemas/:uid/showtimes", s.CinemaShowtimes)
	g.GET("/showtimes/:uid", s.ShowtimeDetail)
	g.GET("/showtimes/:uid/seats", s.ShowtimeSeatGrid)
}
