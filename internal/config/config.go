package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alex-user-go/hotel-aggregator/internal/suppliers"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// SupplierConfig controls outbound supplier calls.
type SupplierConfig struct {
	LiveCalls      bool
	Timeout        time.Duration
	ConnectTimeout time.Duration
	Endpoints      map[string]string
}

// RateLimitConfig is the per-client request budget.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// TelemetryConfig configures tracing export.
type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig
	Suppliers SupplierConfig
	RateLimit RateLimitConfig
	Telemetry TelemetryConfig
	CacheTTL  time.Duration
	LogLevel  slog.Level
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Suppliers: SupplierConfig{
			LiveCalls:      getEnvBool("SUPPLIER_LIVE_CALLS", false),
			Timeout:        getEnvDuration("SUPPLIER_TIMEOUT", 3*time.Second),
			ConnectTimeout: getEnvDuration("SUPPLIER_CONNECT_TIMEOUT", 2*time.Second),
			Endpoints: map[string]string{
				suppliers.SupplierA: getEnv("SUPPLIER_A_URL", suppliers.DefaultEndpointA),
				suppliers.SupplierB: getEnv("SUPPLIER_B_URL", suppliers.DefaultEndpointB),
				suppliers.SupplierC: getEnv("SUPPLIER_C_URL", suppliers.DefaultEndpointC),
				suppliers.SupplierD: getEnv("SUPPLIER_D_URL", suppliers.DefaultEndpointD),
			},
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvPositiveInt("RATE_LIMIT", 60),
			Window:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "hotel-aggregator"),
		},
		CacheTTL: getEnvDuration("CACHE_TTL", 10*time.Minute),
		LogLevel: parseLevel(getEnv("LOG_LEVEL", "info")),
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvPositiveInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
