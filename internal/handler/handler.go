package handler

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/alex-user-go/hotel-aggregator/internal/middleware"
	"github.com/alex-user-go/hotel-aggregator/internal/obs"
	"github.com/alex-user-go/hotel-aggregator/internal/search/ratelimit"
	"github.com/alex-user-go/hotel-aggregator/internal/search/types"
)

const (
	msgSearchOK     = "Hotels fetched successfully"
	msgValidation   = "Validation failed"
	msgSearchFailed = "An error occurred while searching for hotels. Please try again later."
	msgRateLimited  = "Too many requests"
	msgCacheFlushed = "Hotel search cache cleared"
	msgNotFound     = "Endpoint not found"
	msgNotAllowed   = "Method not allowed"
)

// Searcher runs aggregated hotel searches.
type Searcher interface {
	Aggregate(ctx context.Context, params types.Params) ([]types.Hotel, error)
	FlushCache()
}

// Handler handles HTTP requests.
type Handler struct {
	searcher    Searcher
	rateLimiter *ratelimit.Limiter
	metrics     *obs.Metrics
	logger      *slog.Logger
	now         func() time.Time
}

// New creates a new Handler.
func New(
	searcher Searcher,
	rateLimiter *ratelimit.Limiter,
	metrics *obs.Metrics,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		searcher:    searcher,
		rateLimiter: rateLimiter,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// SearchData is the payload of a successful search.
type SearchData struct {
	Hotels       []types.Hotel `json:"hotels"`
	TotalCount   int           `json:"total_count"`
	SearchParams SearchEcho    `json:"search_params"`
}

// SearchEcho repeats the accepted query parameters.
type SearchEcho struct {
	Location string   `json:"location"`
	CheckIn  string   `json:"check_in"`
	CheckOut string   `json:"check_out"`
	Guests   *int     `json:"guests"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
	SortBy   *string  `json:"sort_by"`
}

// Search handles GET /api/hotels/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestID(r.Context())
	ip := ExtractIP(r)

	if !h.rateLimiter.Allow(ip) {
		h.metrics.IncRateLimitDrops()
		h.logger.Warn("rate limit exceeded", "request_id", requestID, "ip", ip)
		retry := int(math.Ceil(h.rateLimiter.RetryAfter(ip).Seconds()))
		w.Header().Set("Retry-After", strconv.Itoa(max(retry, 1)))
		writeError(w, http.StatusTooManyRequests, msgRateLimited, nil)
		return
	}

	params, verrs := ParseSearchParams(r, h.now().UTC())
	if verrs != nil {
		h.logger.Debug("invalid request parameters", "request_id", requestID, "error", verrs.Error(), "ip", ip)
		writeError(w, http.StatusUnprocessableEntity, msgValidation, verrs)
		return
	}

	h.logger.Info("hotel search request received",
		"request_id", requestID,
		"location", params.Location,
		"check_in", params.CheckIn.Format(types.DateLayout),
		"check_out", params.CheckOut.Format(types.DateLayout),
		"ip", ip,
	)

	hotels, err := h.searcher.Aggregate(r.Context(), params)
	if err != nil {
		if errors.Is(err, types.ErrInvalidParams) {
			writeError(w, http.StatusUnprocessableEntity, msgValidation, ValidationErrors{"params": {err.Error()}})
			return
		}
		h.logger.Error("hotel search failed",
			"request_id", requestID,
			"error", err,
			"query", r.URL.RawQuery,
		)
		writeError(w, http.StatusInternalServerError, msgSearchFailed, nil)
		return
	}

	echo := SearchEcho{
		Location: params.Location,
		CheckIn:  params.CheckIn.Format(types.DateLayout),
		CheckOut: params.CheckOut.Format(types.DateLayout),
		Guests:   params.Guests,
		MinPrice: params.MinPrice,
		MaxPrice: params.MaxPrice,
	}
	if params.SortBy != "" {
		echo.SortBy = &params.SortBy
	}

	h.writeSuccess(w, http.StatusOK, msgSearchOK, SearchData{
		Hotels:       hotels,
		TotalCount:   len(hotels),
		SearchParams: echo,
	})
}

// FlushCache handles DELETE /api/hotels/cache.
func (h *Handler) FlushCache(w http.ResponseWriter, r *http.Request) {
	h.searcher.FlushCache()
	h.logger.Info("hotel search cache cleared", "request_id", middleware.RequestID(r.Context()))
	h.writeSuccess(w, http.StatusOK, msgCacheFlushed, nil)
}

// NotFound answers unknown routes with the JSON envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgNotFound, nil)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, msgNotAllowed, nil)
}

// ExtractIP returns the client IP. Proxy headers are resolved into
// RemoteAddr by the RealIP middleware before this runs.
func ExtractIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
