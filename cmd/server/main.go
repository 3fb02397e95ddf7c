package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/cinetick/cinetick/internal/config"
	"github.com/cinetick/cinetick/internal/database"
	"github.com/cinetick/cinetick/internal/handler"
	"github.com/cinetick/cinetick/internal/middleware"
	"github.com/cinetick/cinetick/internal/payment"
	"github.com/cinetick/cinetick/internal/queue"
	"github.com/cinetick/cinetick/internal/repository"
	"github.com/cinetick/cinetick/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(context.Background(), cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	// Redis is optional: without it caching and rate limiting degrade to
	// no-ops instead of blocking startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	checkout, err := payment.NewStripeCheckout(cfg.StripeSecretKey, cfg.CheckoutSuccess, cfg.CheckoutCancel)
	if err != nil {
		log.Fatalf("stripe: %v", err)
	}

	// Repositories.
	cities := repository.NewCityRepo(db)
	cinemas := repository.NewCinemaRepo(db)
	halls := repository.NewHallRepo(db)
	seats := repository.NewSeatRepo(db)
	movies := repository.NewMovieRepo(db)
	showtimes := repository.NewShowtimeRepo(db)
	showtimeSeats := repository.NewShowtimeSeatRepo(db)
	payments := repository.NewPaymentRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	// Handlers.
	auth := handler.NewAuthHandler(cfg, users, tokens)
	browse := handler.NewBrowseHandler(cities, cinemas, movies)
	showing := handler.NewShowtimeHandler(cinemas, halls, movies, showtimes, showtimeSeats, cfg.DefaultTimezone)
	catalog := handler.NewCatalogHandler(cities, cinemas)
	hallAdmin := handler.NewHallHandler(cinemas, halls, seats, showtimes)
	movieAdmin := handler.NewMovieHandler(movies)
	scheduler := handler.NewShowingHandler(cinemas, halls, seats, movies, showtimes, showtimeSeats, cfg.DefaultTimezone)
	userAdmin := handler.NewAdminUserHandler(users, payments, cfg.StatsDays)
	checkoutH := handler.NewCheckoutHandler(users, cinemas, halls, seats, movies, showtimes, showtimeSeats, payments, checkout)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb, cfg.JWTSecret))

	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterPublic(e, browse, showing, config.LoadCacheConfig(), rdb)
	router.RegisterAdmin(e, catalog, hallAdmin, movieAdmin, scheduler, userAdmin, cfg.JWTSecret)
	router.RegisterCheckout(e, checkoutH, cfg.JWTSecret)

	// Durable payment.completed consumer; reconnects on broker loss.
	go func() {
		if err := queue.StartPaymentConsumer(); err != nil {
			log.Printf("payment consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
