package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/config"
	"github.com/coder-muller/radio-cultura-go/internal/handler"
	"github.com/coder-muller/radio-cultura-go/internal/infra/cache"
	"github.com/coder-muller/radio-cultura-go/internal/infra/cgmcloud"
	"github.com/coder-muller/radio-cultura-go/internal/infra/observability"
	"github.com/coder-muller/radio-cultura-go/internal/infra/resilience"
	"github.com/coder-muller/radio-cultura-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("data_api_url", cfg.DataAPIURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("jwt_access_ttl", cfg.JWTAccessTTL),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "radio-cultura-api")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	catalogCache := cache.New[any](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
	}
	cb := resilience.NewCircuitBreaker("cgmcloud")

	// --- Data service client ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	store := cgmcloud.NewClient(httpClient, cfg.DataAPIURL, cb, resilienceCfg, logger)

	// --- Services ---
	authSvc := service.NewAuthService(cfg.AccessPasswordHash, cfg.AccessPassword, cfg.TenantKey, cfg.JWTSecret, cfg.JWTAccessTTL, logger)
	catalogSvc := service.NewCatalogService(store, catalogCache, metrics, logger)
	contractSvc := service.NewContractService(store, metrics, logger)
	invoiceSvc := service.NewInvoiceService(store, metrics, logger)
	commissionSvc := service.NewCommissionService(store, metrics, logger)
	dashboardSvc := service.NewDashboardService(store, metrics, logger)
	reportSvc := service.NewReportService(store, commissionSvc, metrics, logger)
	devSvc := service.NewDevToolsService(store, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(handler.Services{
		Auth:        authSvc,
		Catalog:     catalogSvc,
		Contracts:   contractSvc,
		Invoices:    invoiceSvc,
		Commissions: commissionSvc,
		Dashboard:   dashboardSvc,
		Reports:     reportSvc,
		DevTools:    devSvc,
	}, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
