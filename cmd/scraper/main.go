package main

import (
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"trip_hotels/internal/adapters/observability"
	redisad "trip_hotels/internal/adapters/redis"
	"trip_hotels/internal/adapters/trip"
	"trip_hotels/internal/app"
	"trip_hotels/internal/domain"
	"trip_hotels/internal/shared"
	"trip_hotels/internal/storage/jsonfile"
	mysqlrepo "trip_hotels/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)
	observability.Serve(cfg.MetricsAddr)

	log.Info().
		Str("base", cfg.TripBase).
		Int("workers", cfg.Workers).
		Int("cap", cfg.PerRegionCap).
		Str("out", cfg.OutputPath).
		Msg("scraper starting")

	client, err := trip.New(cfg.TripBase, cfg.FetchTimeout, cfg.FetchRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize trip client")
	}

	agg := app.NewAggregator(client, app.Options{
		PerRegionCap: cfg.PerRegionCap,
		Workers:      cfg.Workers,
		MinDelay:     cfg.MinDelay,
		MaxDelay:     cfg.MaxDelay,
		Country:      cfg.Country,
	})
	hotels := agg.Run(ctx, shared.Regions)

	// 2) the JSON file is always written, even when empty
	sinks := []domain.HotelSink{jsonfile.New(cfg.OutputPath)}

	// 3) optional MySQL copy
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		sinks = append(sinks, mysqlrepo.New(db))
	}

	failed := false
	for _, s := range sinks {
		if err := s.SaveHotels(context.WithoutCancel(ctx), hotels); err != nil {
			log.Error().Err(err).Str("sink", fmt.Sprintf("%T", s)).Msg("save failed")
			failed = true
		}
	}

	// 4) drop cached API reads made stale by this run
	if cfg.RedisAddr != "" {
		cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer cache.Close()
		if err := app.EvictHotels(context.WithoutCancel(ctx), cache, hotels); err != nil {
			log.Warn().Err(err).Msg("cache eviction incomplete")
		}
	}

	if failed {
		log.Fatal().Int("hotels", len(hotels)).Msg("scrape finished with save errors")
	}
	log.Info().Int("hotels", len(hotels)).Str("out", cfg.OutputPath).Msg("scrape saved")
}
