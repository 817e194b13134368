// Command seed loads a catalog into MySQL: the remote feed when FEED_URL is
// set, the built-in demo hotels otherwise.
package main

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"triply/internal/adapters/feed"
	"triply/internal/adapters/observability"
	redisad "triply/internal/adapters/redis"
	"triply/internal/app"
	"triply/internal/catalog"
	"triply/internal/domain"
	"triply/internal/shared"
	mysqlrepo "triply/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.Dev(), cfg.LogLevel)

	log.Info().
		Str("feed", cfg.FeedURL).
		Int("workers", cfg.SeedWorkers).
		Msg("seed starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	rc := redisad.NewClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer rc.Close()
	cache := redisad.NewCache(rc, cfg.StorePrefix+"cache:")

	var src domain.CatalogFeed
	if cfg.FeedURL != "" {
		client, err := feed.New(cfg.FeedURL, cfg.FeedKey, cfg.FeedRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize feed client")
		}
		src = client
	}
	ing := app.NewImportService(src, repo, cache)

	var recs []domain.FeedRecord
	if src != nil {
		recs, err = ing.Fetch(ctx)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			log.Warn().Str("feed", cfg.FeedURL).Msg("feed not found, seeding built-in catalog")
		case err != nil:
			log.Fatal().Err(err).Msg("feed fetch failed")
		}
	}

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup
	var ok, failed atomic.Int64

	run := func(seq int, job func() (string, error)) {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			id, err := job()
			if err != nil {
				failed.Add(1)
				log.Warn().Int("seq", seq).Str("id", id).Err(err).Msg("seed failed")
				return
			}
			ok.Add(1)
			log.Debug().Int("seq", seq).Str("id", id).Msg("seed ok")
		}()
	}

	if len(recs) > 0 {
		for i, rec := range recs {
			seq, rec := i+1, rec
			run(seq, func() (string, error) {
				h, err := ing.ImportHotel(ctx, seq, rec)
				return h.ID, err
			})
		}
	} else {
		for i, h := range catalog.Seed().Hotels() {
			seq, h := i+1, h
			run(seq, func() (string, error) { return h.ID, ing.Store(ctx, seq, h) })
		}
	}

	wg.Wait()
	log.Info().Int64("ok", ok.Load()).Int64("failed", failed.Load()).Msg("seed completed")
}
