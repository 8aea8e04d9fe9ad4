package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/denizaltun/quickpos-backend/api/routes"
	"github.com/denizaltun/quickpos-backend/internal/cart"
	"github.com/denizaltun/quickpos-backend/internal/catalog"
	"github.com/denizaltun/quickpos-backend/internal/checkout"
	"github.com/denizaltun/quickpos-backend/internal/reports"
	"github.com/denizaltun/quickpos-backend/internal/sales"
	"github.com/denizaltun/quickpos-backend/pkg/config"
	"github.com/denizaltun/quickpos-backend/pkg/logger"
	"github.com/denizaltun/quickpos-backend/pkg/metrics"
	"github.com/denizaltun/quickpos-backend/pkg/tabular"
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	till := metrics.NewTillMetrics(registry)

	productsTable, err := tabular.New(cfg.Store.ProductsPath, catalog.Header)
	if err != nil {
		logg.Error(context.Background(), "failed to open products table", err)
		os.Exit(1)
	}
	salesTable, err := tabular.New(cfg.Store.SalesPath, sales.Header)
	if err != nil {
		logg.Error(context.Background(), "failed to open sales table", err)
		os.Exit(1)
	}

	catalogRepo, err := catalog.NewCSVRepository(productsTable, till, cfg.FeatureFlags.AllowNegativeStock)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap catalog store", err)
		os.Exit(1)
	}
	ledgerRepo, err := sales.NewCSVRepository(salesTable)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap sales ledger", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo, till)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	tillCart := cart.New()

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Cart:    tillCart,
		Catalog: catalogRepo,
		Ledger:  ledgerRepo,
		Logger:  logg,
		Till:    till,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	reportsService, err := reports.NewService(ledgerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"products": cfg.Store.ProductsPath,
		"sales":    cfg.Store.SalesPath,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			registry,
			catalogRepo,
			catalogService,
			tillCart,
			checkoutService,
			reportsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
