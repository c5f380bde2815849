package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/alex-user-go/hotel-aggregator/internal/suppliers"
)

func main() {
	_ = godotenv.Load()

	port := getEnv("PORT", "9001")
	name := getEnv("SUPPLIER", suppliers.SupplierA)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	supplier, err := suppliers.ByName(name, "")
	if err != nil {
		logger.Error("unknown supplier", "supplier", name)
		os.Exit(1)
	}

	latency, err := time.ParseDuration(getEnv("LATENCY", "0s"))
	if err != nil {
		logger.Error("invalid LATENCY", "error", err)
		os.Exit(1)
	}
	failureRate, err := strconv.ParseFloat(getEnv("FAILURE_RATE", "0"), 64)
	if err != nil || failureRate < 0 || failureRate > 1 {
		logger.Error("invalid FAILURE_RATE", "value", os.Getenv("FAILURE_RATE"))
		os.Exit(1)
	}

	handler := suppliers.NewServer(supplier,
		suppliers.WithLatency(latency),
		suppliers.WithFailureRate(failureRate),
		suppliers.WithLogger(logger.With("supplier", name)),
	)

	// Setup routes
	mux := http.NewServeMux()
	mux.Handle("/hotels/search", handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write healthz response", "error", err)
		}
	})

	// Configure server
	addr := ":" + port
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("supplier listening",
			"supplier", name,
			"addr", addr,
			"latency", latency.String(),
			"failure_rate", failureRate,
			"locations", supplier.Locations(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logger.Info("shutting down supplier")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("supplier stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
