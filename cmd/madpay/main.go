package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/madpay/madpay-api/internal/catalog"
	"github.com/madpay/madpay-api/internal/config"
	"github.com/madpay/madpay-api/internal/domain"
	"github.com/madpay/madpay-api/internal/handler"
	"github.com/madpay/madpay-api/internal/infra/cache"
	"github.com/madpay/madpay-api/internal/infra/gateway"
	"github.com/madpay/madpay-api/internal/infra/memstore"
	"github.com/madpay/madpay-api/internal/infra/observability"
	"github.com/madpay/madpay-api/internal/service"
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
		zap.Duration("processing_delay", cfg.ProcessingDelay),
		zap.Float64("failure_rate", cfg.FailureRate),
		zap.Int("max_concurrency", cfg.MaxConcurrency),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Duration("jwt_access_ttl", cfg.JWTAccessTTL),
		zap.Duration("jwt_refresh_ttl", cfg.JWTRefreshTTL),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "madpay-api")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Infrastructure ---
	cat := catalog.Default()
	store := memstore.NewSeeded()
	profileCache := cache.New[*domain.CustomerProfile](cfg.CacheTTL)

	gw := gateway.NewSimulated(gateway.Config{
		Latency:        cfg.ProcessingDelay,
		FailureRate:    cfg.FailureRate,
		MaxConcurrency: cfg.MaxConcurrency,
	}, logger)

	// --- Services ---
	paySvc := service.NewPaymentService(cat, gw, metrics, logger)
	custSvc := service.NewCustomerService(store, store, cat, profileCache, metrics, logger)
	authSvc := service.NewAuthService(store, store, cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, logger)

	logger.Info("payment core ready",
		zap.Int("catalog_methods", cat.Len()),
		zap.String("demo_customer", memstore.DemoCustomerID),
	)

	// --- Router ---
	router := handler.NewRouter(cat, paySvc, custSvc, authSvc, gw, metrics, logger)

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
