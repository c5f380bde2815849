package suppliers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/alex-user-go/hotel-aggregator/internal/search/types"
)

var errSupplierUnavailable = errors.New("supplier unavailable")

// Server exposes a supplier dataset over HTTP in the live payload shape.
// Latency and failure injection make it usable as a stand-in for a real API.
type Server struct {
	supplier    *Supplier
	latency     time.Duration
	failureRate float64
	logger      *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLatency delays every response by up to d.
func WithLatency(d time.Duration) ServerOption {
	return func(s *Server) { s.latency = d }
}

// WithFailureRate makes a fraction of requests fail with 503.
func WithFailureRate(rate float64) ServerOption {
	return func(s *Server) { s.failureRate = rate }
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a Server for supplier.
func NewServer(supplier *Supplier, opts ...ServerOption) *Server {
	s := &Server{
		supplier: supplier,
		logger:   slog.Default(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ServeHTTP answers GET /hotels/search with the supplier's rows for location.
// Prices are base prices; stay dates are echoed back so clients can apply pricing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	location := strings.TrimSpace(query.Get("location"))
	if location == "" {
		http.Error(w, "missing location", http.StatusBadRequest)
		return
	}

	var checkIn, checkOut time.Time
	if v := query.Get("check_in"); v != "" {
		t, err := time.Parse(types.DateLayout, v)
		if err != nil {
			http.Error(w, "invalid check_in", http.StatusBadRequest)
			return
		}
		checkIn = t
	}
	if v := query.Get("check_out"); v != "" {
		t, err := time.Parse(types.DateLayout, v)
		if err != nil {
			http.Error(w, "invalid check_out", http.StatusBadRequest)
			return
		}
		checkOut = t
	}

	latency, fail := s.roll()
	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-r.Context().Done():
			return
		}
	}
	if fail {
		http.Error(w, errSupplierUnavailable.Error(), http.StatusServiceUnavailable)
		return
	}

	payload := s.supplier.FallbackData(location, checkIn, checkOut)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "supplier", s.supplier.Name(), "error", err)
	}
}

func (s *Server) roll() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latency time.Duration
	if s.latency > 0 {
		latency = time.Duration(s.rng.Int63n(int64(s.latency)) + 1)
	}
	return latency, s.failureRate > 0 && s.rng.Float64() < s.failureRate
}
