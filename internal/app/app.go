package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alex-user-go/hotel-aggregator/internal/config"
	"github.com/alex-user-go/hotel-aggregator/internal/handler"
	"github.com/alex-user-go/hotel-aggregator/internal/obs"
	"github.com/alex-user-go/hotel-aggregator/internal/search"
	"github.com/alex-user-go/hotel-aggregator/internal/search/cache"
	"github.com/alex-user-go/hotel-aggregator/internal/search/ratelimit"
	"github.com/alex-user-go/hotel-aggregator/internal/suppliers"
)

var supplierOrder = []string{
	suppliers.SupplierA,
	suppliers.SupplierB,
	suppliers.SupplierC,
	suppliers.SupplierD,
}

// Run initializes and runs the application.
func Run() error {
	cfg := config.Load()

	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// Initialize tracing
	shutdownTracer, err := obs.InitTracer(context.Background(), cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.ServiceName)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			logger.Error("tracer shutdown error", "error", err)
		}
	}()

	// Initialize metrics
	metrics := obs.NewMetrics(prometheus.NewRegistry())

	// Initialize suppliers in merge order
	list, err := buildSuppliers(cfg.Suppliers.Endpoints)
	if err != nil {
		return err
	}

	var fetcher suppliers.Fetcher = suppliers.OfflineFetcher{}
	if cfg.Suppliers.LiveCalls {
		fetcher = suppliers.NewHTTPFetcher(cfg.Suppliers.Timeout, cfg.Suppliers.ConnectTimeout)
	}

	// Initialize cache
	searchCache := cache.NewCache(cfg.CacheTTL)
	defer searchCache.Close()

	// Initialize aggregator
	aggregator := search.NewAggregator(list, fetcher, searchCache, search.Options{
		Timeout: cfg.Suppliers.Timeout,
		Metrics: metrics,
		Logger:  logger,
	})

	// Initialize rate limiter
	limiter := ratelimit.New(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer limiter.Close()

	h := handler.New(aggregator, limiter, metrics, logger)

	// Configure server
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler.NewRouter(h, metrics, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"addr", srv.Addr,
			"live_calls", cfg.Suppliers.LiveCalls,
			"cache_ttl", cfg.CacheTTL.String(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		logger.Error("server error", "error", err)
		return err
	}

	// Graceful shutdown
	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}

func buildSuppliers(endpoints map[string]string) ([]*suppliers.Supplier, error) {
	list := make([]*suppliers.Supplier, 0, len(supplierOrder))
	for _, name := range supplierOrder {
		s, err := suppliers.ByName(name, endpoints[name])
		if err != nil {
			return nil, fmt.Errorf("build supplier %s: %w", name, err)
		}
		list = append(list, s)
	}
	return list, nil
}
