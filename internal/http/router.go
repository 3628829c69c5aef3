package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/abdmnsor/MOVIES-API/internal/auth"
	"github.com/abdmnsor/MOVIES-API/internal/cache"
	"github.com/abdmnsor/MOVIES-API/internal/config"
	"github.com/abdmnsor/MOVIES-API/internal/http/handlers"
	"github.com/abdmnsor/MOVIES-API/internal/http/middlewares"
	"github.com/abdmnsor/MOVIES-API/internal/observability"
	"github.com/abdmnsor/MOVIES-API/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config, prom *observability.Prom, listCache cache.Store) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(Recovery(log))
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(otelgin.Middleware("movies-api"))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(1 << 20))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"ERROR": "Page Not Found"})
	})

	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "Welcome To The Movie API"})
	})

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	health := handlers.NewHealthHandler(ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	moviesRepo := postgres.NewMoviesRepo(pool, prom)
	reviewsRepo := postgres.NewReviewsRepo(pool, prom)
	watchlistRepo := postgres.NewWatchlistRepo(pool, prom)

	// token codec + guards
	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL())
	authMW := middlewares.NewAuthMiddleware(jwtManager, usersRepo)

	// wire up handlers
	authHandler := handlers.NewAuthHandler(usersRepo, jwtManager)
	moviesHandler := handlers.NewMoviesHandlerWithCache(moviesRepo, listCache)
	reviewsHandler := handlers.NewReviewsHandler(reviewsRepo)
	watchlistHandler := handlers.NewWatchlistHandler(watchlistRepo)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	movies := api.Group("/movies")
	movies.GET("", moviesHandler.ListMovies)
	movies.GET("/:id", moviesHandler.GetMovieByID)
	// mutations are admin-only
	movies.POST("", authMW.RequireAuth(), authMW.RequireAdmin(), moviesHandler.CreateMovie)
	movies.PUT("/:id", authMW.RequireAuth(), authMW.RequireAdmin(), moviesHandler.UpdateMovie)
	movies.DELETE("/:id", authMW.RequireAuth(), authMW.RequireAdmin(), moviesHandler.DeleteMovie)

	reviews := api.Group("/reviews")
	reviews.GET("/:movieId", reviewsHandler.ListByMovie)
	reviews.POST("/:movieId", authMW.RequireAuth(), reviewsHandler.CreateReview)

	watchlist := api.Group("/watchlist")
	watchlist.Use(authMW.RequireAuth())
	watchlist.GET("", watchlistHandler.List)
	watchlist.POST("/:movieId", watchlistHandler.Add)
	watchlist.DELETE("/:movieId", watchlistHandler.Remove)

	return r
}
