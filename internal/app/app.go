package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/equitybridge-backend/internal/adapter/postgres"
	clientrepo "github.com/heartmarshall/equitybridge-backend/internal/adapter/postgres/client"
	fundingrepo "github.com/heartmarshall/equitybridge-backend/internal/adapter/postgres/fundingrequest"
	"github.com/heartmarshall/equitybridge-backend/internal/config"
	"github.com/heartmarshall/equitybridge-backend/internal/service/funding"
	"github.com/heartmarshall/equitybridge-backend/internal/service/identity"
	"github.com/heartmarshall/equitybridge-backend/internal/transport/middleware"
	"github.com/heartmarshall/equitybridge-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects the
// database, document store and token verifier, and serves HTTP until ctx is
// cancelled, then drains in-flight requests.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("auth_mode", cfg.Auth.NormalizedMode()),
		slog.String("storage_provider", cfg.Storage.Provider),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	verifier, err := NewVerifier(ctx, cfg.Auth, logger)
	if err != nil {
		return err
	}

	store, err := NewStore(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	identityService := identity.NewService(logger, verifier, clientrepo.New(pool), cfg.Auth.VerifyTimeout)
	fundingService := funding.NewService(
		logger, store, fundingrepo.New(pool), postgres.NewTxManager(pool),
		cfg.Funding, funding.NewMetrics(reg),
	)

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	handler := rest.NewRouter(rest.RouterDeps{
		Logger: logger,
		CORS:   cfg.CORS,
		Health: rest.NewHealthHandler(map[string]rest.Pinger{
			"database": pool,
			"storage":  store,
		}, BuildVersion()),
		Client:          rest.NewClientHandler(identityService, logger),
		Funding:         rest.NewFundingHandler(fundingService, cfg.Funding, logger),
		Identity:        identityService,
		RateLimiter:     limiter,
		SubmitPerMinute: cfg.Server.SubmitRateLimit,
		Metrics:         promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}
