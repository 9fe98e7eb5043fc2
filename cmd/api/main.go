package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/copperline/storefront-backend/api/routes"
	"github.com/copperline/storefront-backend/internal/catalogsync"
	"github.com/copperline/storefront-backend/internal/configuration"
	"github.com/copperline/storefront-backend/internal/pricing"
	productsvc "github.com/copperline/storefront-backend/internal/products"
	stripewebhook "github.com/copperline/storefront-backend/internal/webhooks/stripe"
	"github.com/copperline/storefront-backend/pkg/config"
	"github.com/copperline/storefront-backend/pkg/db"
	"github.com/copperline/storefront-backend/pkg/enums"
	"github.com/copperline/storefront-backend/pkg/logger"
	"github.com/copperline/storefront-backend/pkg/metrics"
	"github.com/copperline/storefront-backend/pkg/migrate"
	"github.com/copperline/storefront-backend/pkg/redis"
	"github.com/copperline/storefront-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	currency, err := enums.ParseCurrency(cfg.Catalog.Currency)
	if err != nil {
		logg.Error(context.Background(), "invalid catalog currency", err)
		os.Exit(1)
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var stripeClient *stripe.Client
	var catalogAPI catalogsync.CatalogAPI
	if cfg.Stripe.APIKey != "" {
		stripeClient, err = stripe.NewClient(context.Background(), cfg.Stripe, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap stripe client", err)
			os.Exit(1)
		}
		catalogAPI = catalogsync.NewStripeCatalog(stripeClient, currency.String())
	} else {
		logg.Warn(context.Background(), "stripe api key not set, catalog sync disabled")
	}

	syncMetrics := metrics.NewCatalogSyncMetrics(prometheus.DefaultRegisterer)

	repo := productsvc.NewRepository(dbClient.DB())
	engine := pricing.NewEngine()
	validator := configuration.NewValidator(logg, cfg.Catalog.MaxCustomPersonalizations)

	syncer := catalogsync.NewSyncer(catalogAPI, repo, logg, syncMetrics, cfg.Catalog)

	productService, err := productsvc.NewService(repo, dbClient, engine, syncer, currency)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	webhookService, err := stripewebhook.NewService(stripewebhook.ServiceParams{Syncer: syncer})
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook service", err)
		os.Exit(1)
	}

	webhookGuard, err := stripewebhook.NewIdempotencyGuard(redisClient, cfg.Stripe.WebhookIdempotencyTTL, "stripe-webhook")
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook idempotency guard", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			repo,
			productService,
			validator,
			engine,
			currency,
			stripeClient,
			webhookService,
			webhookGuard,
			prometheus.DefaultGatherer,
		),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
