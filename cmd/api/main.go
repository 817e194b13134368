package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "triply/internal/adapters/http_server"
	"triply/internal/adapters/observability"
	redisad "triply/internal/adapters/redis"
	"triply/internal/app"
	"triply/internal/domain"
	"triply/internal/shared"
	mysqlrepo "triply/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.Dev(), cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// catalog repository (optional)
	var repo domain.HotelRepository
	if cfg.CatalogDriver == "mysql" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		repo = mysqlrepo.New(db)
	}

	// store + cache
	rc := redisad.NewClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer rc.Close()
	store := redisad.NewStore(rc, cfg.StorePrefix)
	if err := store.Ping(ctx); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
	}
	cache := redisad.NewCache(rc, cfg.StorePrefix+"cache:")

	// services
	cat := app.NewCatalogService(repo, store, cache, cfg.CacheTTL)
	if err := cat.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("catalog load failed")
	}

	// http
	srv := server.New(cfg.CORSOrigins, cfg.TrustProxy)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Catalog:       cat,
		Reviews:       app.NewReviewService(cat, store),
		Bookings:      app.NewBookingService(cat, store),
		Accounts:      app.NewAccountService(store, 0),
		Prefs:         app.NewPrefsService(store),
		Sessions:      server.NewSessions(cfg.JWTSecret, cfg.JWTTTL),
		LoginLimiter:  server.NewIPLimiter(cfg.LoginRPS, 5),
		AdminToken:    cfg.AdminToken,
		VoucherSecret: []byte(cfg.JWTSecret),
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("catalog", cfg.CatalogDriver).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
