package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"bonsplans/internal/adapters/amadeus"
	"bonsplans/internal/adapters/kiwi"
	"bonsplans/internal/adapters/observability"
	redisad "bonsplans/internal/adapters/redis"
	"bonsplans/internal/app"
	"bonsplans/internal/domain"
	"bonsplans/internal/scheduler"
	"bonsplans/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("provider", cfg.Provider).
		Str("spec", cfg.RefreshSpec).
		Int("workers", cfg.RefreshWorkers).
		Strs("origins", cfg.Origins).
		Msg("refresher starting")

	observability.ServeMetrics(cfg.MetricsAddr, observability.InitRegistry())

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
	}
	log.Info().Msg("redis ping ok")

	var provider domain.DealProvider
	if cfg.Provider == "kiwi" {
		provider = app.NewRoundTripAggregator(kiwi.New(cfg.KiwiBase, cfg.KiwiKey, 5))
	} else {
		c := amadeus.New(cfg.AmadeusBase, cfg.AmadeusID, cfg.AmadeusSecret, cfg.AmadeusRPS)
		provider = app.NewAggregator(c, c)
	}

	q := app.NewDealQueryService(provider, cache, cfg.CacheTTL)
	s := scheduler.New(q, cfg.Origins, cfg.RefreshSpec, cfg.RefreshWorkers)
	if err := s.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("scheduler start failed")
	}

	<-ctx.Done()
	s.Stop()
	log.Info().Msg("refresher stopped")
}
