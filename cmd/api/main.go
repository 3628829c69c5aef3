package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abdmnsor/MOVIES-API/internal/cache"
	"github.com/abdmnsor/MOVIES-API/internal/config"
	"github.com/abdmnsor/MOVIES-API/internal/db"
	httpx "github.com/abdmnsor/MOVIES-API/internal/http"
	"github.com/abdmnsor/MOVIES-API/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	// tracing is optional; a missing collector should not stop the API
	tracerShutdown, err := observability.InitTracer(context.Background(), "movies-api", cfg.OTELEndpoint)

	if err != nil {
		log.Warn("tracing disabled", "err", err)
		tracerShutdown = func(context.Context) error { return nil }
	}

	// The database is not optional: every route except input validation needs
	// it, so a connect or migration failure aborts startup.
	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	migrateCtx, cancelMigrate := config.WithTimeout(30 * time.Second)

	err = db.Migrate(migrateCtx, cfg.DBURL)
	cancelMigrate()

	if err != nil {
		log.Error("db migrations failed", "err", err)
		os.Exit(1)
	}

	seedCtx, cancelSeed := config.WithTimeout(5 * time.Second)

	err = db.EnsureAdminUser(seedCtx, pool, cfg)
	cancelSeed()

	if err != nil {
		log.Error("admin seeding failed", "err", err)
		os.Exit(1)
	}

	prom := observability.NewProm(prometheus.DefaultRegisterer)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	var listCache cache.Store

	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cfg.RedisAddr, cacheTTL)

		pingCtx, cancelPing := config.WithTimeout(2 * time.Second)
		err = redisCache.Ping(pingCtx)
		cancelPing()

		if err != nil {
			log.Warn("redis unavailable, using in-memory cache", "err", err)
			listCache = cache.NewMemory(cacheTTL)
		} else {
			defer redisCache.Close()
			listCache = redisCache
		}
	} else {
		listCache = cache.NewMemory(cacheTTL)
	}

	router := httpx.NewRouter(log, pool, cfg, prom, listCache)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
			return
		}

		_ = tracerShutdown(ctx)
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
