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

	"bonsplans/internal/adapters/amadeus"
	server "bonsplans/internal/adapters/http_server"
	"bonsplans/internal/adapters/kiwi"
	"bonsplans/internal/adapters/observability"
	redisad "bonsplans/internal/adapters/redis"
	resendad "bonsplans/internal/adapters/resend"
	"bonsplans/internal/adapters/sheets"
	"bonsplans/internal/app"
	"bonsplans/internal/domain"
	"bonsplans/internal/shared"
	mysqlrepo "bonsplans/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.ServeMetrics(cfg.MetricsAddr, reg)

	// cache
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, every request will aggregate")
	}

	// archive of contact inquiries; optional
	var repo domain.InquiryRepository
	if cfg.MySQLDSN != "" {
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

	q := app.NewDealQueryService(newProvider(cfg), cache, cfg.CacheTTL)
	contact := app.NewContactService(repo, resendad.New(cfg.ResendKey, cfg.ContactFrom, cfg.ContactTo))

	// http
	srv := server.New(cfg.CORSOrigins)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Deals:       q,
		Contact:     contact,
		Curated:     sheets.New("", cfg.SheetID),
		DealsBudget: cfg.DealsBudget,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("provider", cfg.Provider).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

// newProvider picks the deal source for DEALS_PROVIDER.
func newProvider(cfg shared.Config) domain.DealProvider {
	if cfg.Provider == "kiwi" {
		return app.NewRoundTripAggregator(kiwi.New(cfg.KiwiBase, cfg.KiwiKey, 5))
	}
	c := amadeus.New(cfg.AmadeusBase, cfg.AmadeusID, cfg.AmadeusSecret, cfg.AmadeusRPS)
	return app.NewAggregator(c, c)
}
