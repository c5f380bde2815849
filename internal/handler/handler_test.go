package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alex-user-go/hotel-aggregator/internal/handler"
	"github.com/alex-user-go/hotel-aggregator/internal/obs"
	"github.com/alex-user-go/hotel-aggregator/internal/search"
	"github.com/alex-user-go/hotel-aggregator/internal/search/cache"
	"github.com/alex-user-go/hotel-aggregator/internal/search/ratelimit"
	"github.com/alex-user-go/hotel-aggregator/internal/search/types"
	"github.com/alex-user-go/hotel-aggregator/internal/suppliers"
)

// Tuesday, far enough ahead to pass the "today or later" rule.
const searchQuery = "location=cairo&check_in=2030-10-15&check_out=2030-10-17"

type envelope struct {
	Status  bool                `json:"status"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

type stubSearcher struct {
	hotels  []types.Hotel
	err     error
	calls   int
	flushed int
}

func (s *stubSearcher) Aggregate(ctx context.Context, params types.Params) ([]types.Hotel, error) {
	s.calls++
	return s.hotels, s.err
}

func (s *stubSearcher) FlushCache() {
	s.flushed++
}

func newRouter(t *testing.T, searcher handler.Searcher, limit int) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := obs.NewMetrics(prometheus.NewRegistry())
	limiter := ratelimit.New(limit, time.Minute)
	t.Cleanup(limiter.Close)

	h := handler.New(searcher, limiter, metrics, logger)
	return handler.NewRouter(h, metrics, logger)
}

func newAggregator(t *testing.T) *search.Aggregator {
	t.Helper()

	searchCache := cache.NewCache(time.Minute)
	t.Cleanup(searchCache.Close)

	return search.NewAggregator(suppliers.Default(), suppliers.OfflineFetcher{}, searchCache, search.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func do(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "192.168.1.1:12345"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode envelope: %v (body %q)", err, w.Body.String())
	}
	return w, env
}

func TestHandler_Search(t *testing.T) {
	router := newRouter(t, newAggregator(t), 10)

	w, env := do(t, router, http.MethodGet, "/api/hotels/search?"+searchQuery+"&sort_by=price")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !env.Status || env.Message != "Hotels fetched successfully" {
		t.Errorf("envelope = %+v", env)
	}

	var data handler.SearchData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}

	wantNames := []string{
		"Four Seasons Cairo",
		"Grand Nile Hotel",
		"Pyramids View Inn",
		"Cairo Palace Hotel",
		"Nile Boutique",
		"Cairo Downtown Hotel",
	}
	if data.TotalCount != len(wantNames) || len(data.Hotels) != len(wantNames) {
		t.Fatalf("total_count = %d, hotels = %d, want %d", data.TotalCount, len(data.Hotels), len(wantNames))
	}
	// Ascending by price, so the most expensive is last.
	for i := 1; i < len(data.Hotels); i++ {
		if data.Hotels[i].PricePerNight < data.Hotels[i-1].PricePerNight {
			t.Fatalf("hotels not sorted by price at %d: %+v", i, data.Hotels)
		}
	}
	if last := data.Hotels[len(data.Hotels)-1]; last.Name != wantNames[0] {
		t.Errorf("most expensive = %q, want %q", last.Name, wantNames[0])
	}

	echo := data.SearchParams
	if echo.Location != "cairo" || echo.CheckIn != "2030-10-15" || echo.CheckOut != "2030-10-17" {
		t.Errorf("search_params = %+v", echo)
	}
	if echo.SortBy == nil || *echo.SortBy != types.SortByPrice {
		t.Errorf("sort_by = %v, want price", echo.SortBy)
	}
	if echo.Guests != nil || echo.MinPrice != nil || echo.MaxPrice != nil {
		t.Errorf("optional params should echo null: %+v", echo)
	}
}

func TestHandler_SearchEchoesNulls(t *testing.T) {
	router := newRouter(t, &stubSearcher{hotels: []types.Hotel{}}, 10)

	w, env := do(t, router, http.MethodGet, "/api/hotels/search?location=atlantis&check_in=2030-10-15&check_out=2030-10-17")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var raw map[string]any
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	hotels, ok := raw["hotels"].([]any)
	if !ok || len(hotels) != 0 {
		t.Errorf("hotels = %v, want empty array", raw["hotels"])
	}
	params := raw["search_params"].(map[string]any)
	for _, key := range []string{"guests", "min_price", "max_price", "sort_by"} {
		v, present := params[key]
		if !present || v != nil {
			t.Errorf("search_params[%q] = %v, present %v; want null", key, v, present)
		}
	}
}

func TestHandler_SearchValidation(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing location",
			query:     "check_in=2030-10-15&check_out=2030-10-17",
			wantField: "location",
			wantMsg:   "Location is required.",
		},
		{
			name:      "location too short",
			query:     "location=x&check_in=2030-10-15&check_out=2030-10-17",
			wantField: "location",
			wantMsg:   "Location must be at least 2 characters.",
		},
		{
			name:      "check_in in the past",
			query:     "location=cairo&check_in=2001-01-01&check_out=2030-10-17",
			wantField: "check_in",
			wantMsg:   "Check-in date must be today or later.",
		},
		{
			name:      "malformed check_in",
			query:     "location=cairo&check_in=15/10/2030&check_out=2030-10-17",
			wantField: "check_in",
			wantMsg:   "Check-in must be a valid date.",
		},
		{
			name:      "check_out before check_in",
			query:     "location=cairo&check_in=2030-10-17&check_out=2030-10-15",
			wantField: "check_out",
			wantMsg:   "Check-out date must be after check-in date.",
		},
		{
			name:      "check_out equals check_in",
			query:     "location=cairo&check_in=2030-10-15&check_out=2030-10-15",
			wantField: "check_out",
			wantMsg:   "Check-out date must be after check-in date.",
		},
		{
			name:      "too many guests",
			query:     searchQuery + "&guests=21",
			wantField: "guests",
			wantMsg:   "Guests must not exceed 20.",
		},
		{
			name:      "zero guests",
			query:     searchQuery + "&guests=0",
			wantField: "guests",
			wantMsg:   "Guests must be at least 1.",
		},
		{
			name:      "negative min price",
			query:     searchQuery + "&min_price=-1",
			wantField: "min_price",
			wantMsg:   "Minimum price must be at least 0.",
		},
		{
			name:      "non-numeric max price",
			query:     searchQuery + "&max_price=cheap",
			wantField: "max_price",
			wantMsg:   "Maximum price must be a number.",
		},
		{
			name:      "max below min",
			query:     searchQuery + "&min_price=200&max_price=100",
			wantField: "max_price",
			wantMsg:   "Maximum price must be greater than or equal to minimum price.",
		},
		{
			name:      "unknown sort key",
			query:     searchQuery + "&sort_by=name",
			wantField: "sort_by",
			wantMsg:   "Sort by must be either price or rating.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &stubSearcher{}
			router := newRouter(t, searcher, 100)

			w, env := do(t, router, http.MethodGet, "/api/hotels/search?"+tt.query)

			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
			}
			if env.Status || env.Message != "Validation failed" {
				t.Errorf("envelope = %+v", env)
			}
			msgs := env.Errors[tt.wantField]
			if len(msgs) != 1 || msgs[0] != tt.wantMsg {
				t.Errorf("errors[%q] = %v, want [%q]", tt.wantField, msgs, tt.wantMsg)
			}
			if searcher.calls != 0 {
				t.Errorf("searcher called %d times on invalid input", searcher.calls)
			}
		})
	}
}

func TestHandler_SearchFailure(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "unexpected error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "An error occurred while searching for hotels. Please try again later.",
		},
		{
			name:       "invalid params from core",
			err:        types.ErrInvalidParams,
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "Validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(t, &stubSearcher{err: tt.err}, 10)

			w, env := do(t, router, http.MethodGet, "/api/hotels/search?"+searchQuery)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if env.Status || env.Message != tt.wantMsg {
				t.Errorf("envelope = %+v", env)
			}
			if strings.Contains(w.Body.String(), "boom") {
				t.Error("internal error leaked into response body")
			}
		})
	}
}

func TestHandler_RateLimit(t *testing.T) {
	searcher := &stubSearcher{hotels: []types.Hotel{}}
	router := newRouter(t, searcher, 2)

	for i := range 2 {
		if w, _ := do(t, router, http.MethodGet, "/api/hotels/search?"+searchQuery); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i, w.Code, http.StatusOK)
		}
	}

	w, env := do(t, router, http.MethodGet, "/api/hotels/search?"+searchQuery)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if env.Status || env.Message != "Too many requests" {
		t.Errorf("envelope = %+v", env)
	}
	retry, err := strconv.Atoi(w.Header().Get("Retry-After"))
	if err != nil || retry < 1 {
		t.Errorf("Retry-After = %q, want positive seconds", w.Header().Get("Retry-After"))
	}
	if searcher.calls != 2 {
		t.Errorf("searcher calls = %d, want 2", searcher.calls)
	}
}

func TestHandler_RateLimitPerClient(t *testing.T) {
	router := newRouter(t, &stubSearcher{hotels: []types.Hotel{}}, 1)

	for _, ip := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodGet, "/api/hotels/search?"+searchQuery, nil)
		req.Header.Set("X-Forwarded-For", ip)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("client %s: status = %d, want %d", ip, w.Code, http.StatusOK)
		}
	}
}

func TestHandler_FlushCache(t *testing.T) {
	searcher := &stubSearcher{}
	router := newRouter(t, searcher, 10)

	w, env := do(t, router, http.MethodDelete, "/api/hotels/cache")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !env.Status || env.Message != "Hotel search cache cleared" {
		t.Errorf("envelope = %+v", env)
	}
	if searcher.flushed != 1 {
		t.Errorf("flushed = %d, want 1", searcher.flushed)
	}
}

func TestRouter_Fallbacks(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "unknown route",
			method:     http.MethodGet,
			target:     "/api/hotels/nowhere",
			wantStatus: http.StatusNotFound,
			wantMsg:    "Endpoint not found",
		},
		{
			name:       "wrong method",
			method:     http.MethodPost,
			target:     "/api/hotels/search",
			wantStatus: http.StatusMethodNotAllowed,
			wantMsg:    "Method not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(t, &stubSearcher{}, 10)

			w, env := do(t, router, tt.method, tt.target)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if env.Status || env.Message != tt.wantMsg {
				t.Errorf("envelope = %+v", env)
			}
		})
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	router := newRouter(t, &stubSearcher{hotels: []types.Hotel{}}, 10)

	// Generate one labelled request first.
	do(t, router, http.MethodGet, "/api/hotels/search?"+searchQuery)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Errorf("healthz = %d %q", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`http_requests_total{method="GET",route="/api/hotels/search",status="200"} 1`,
		"hotel_ratelimit_drops_total 0",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		wantIP     string
	}{
		{name: "host and port", remoteAddr: "192.168.1.1:12345", wantIP: "192.168.1.1"},
		{name: "without port", remoteAddr: "192.168.1.1", wantIP: "192.168.1.1"},
		{name: "IPv6", remoteAddr: "[::1]:12345", wantIP: "::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = tt.remoteAddr

			if got := handler.ExtractIP(req); got != tt.wantIP {
				t.Errorf("ExtractIP() = %q, want %q", got, tt.wantIP)
			}
		})
	}
}
