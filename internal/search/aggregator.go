package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/alex-user-go/hotel-aggregator/internal/obs"
	"github.com/alex-user-go/hotel-aggregator/internal/search/cache"
	"github.com/alex-user-go/hotel-aggregator/internal/search/types"
	"github.com/alex-user-go/hotel-aggregator/internal/suppliers"
)

var errSupplierPanic = errors.New("supplier panicked")

// Options tunes an Aggregator. Zero values fall back to defaults.
type Options struct {
	Timeout time.Duration
	Metrics *obs.Metrics
	Tracer  trace.Tracer
	Logger  *slog.Logger
}

// Aggregator fans a search out to every supplier and merges the results.
type Aggregator struct {
	suppliers []*suppliers.Supplier
	fetcher   suppliers.Fetcher
	cache     *cache.Cache
	timeout   time.Duration
	metrics   *obs.Metrics
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewAggregator creates a new Aggregator. Suppliers are merged in the order given.
func NewAggregator(list []*suppliers.Supplier, fetcher suppliers.Fetcher, searchCache *cache.Cache, opts Options) *Aggregator {
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	if opts.Tracer == nil {
		opts.Tracer = obs.Tracer()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Aggregator{
		suppliers: list,
		fetcher:   fetcher,
		cache:     searchCache,
		timeout:   opts.Timeout,
		metrics:   opts.Metrics,
		tracer:    opts.Tracer,
		logger:    opts.Logger,
	}
}

// Aggregate returns the merged hotel list for params, from cache when possible.
func (a *Aggregator) Aggregate(ctx context.Context, params types.Params) ([]types.Hotel, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	key, err := cache.Key(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidParams, err)
	}

	if a.metrics != nil {
		a.metrics.IncSearches()
	}

	// The shared aggregation outlives the caller that started it; only the
	// per-supplier timeout bounds it.
	hotels, hit, err := a.cache.GetOrFetch(ctx, key, func() ([]types.Hotel, error) {
		return a.search(context.WithoutCancel(ctx), params), nil
	})
	if err != nil {
		return nil, err
	}
	if hit {
		a.cacheHit(params, key, len(hotels))
	}
	return hotels, nil
}

// FlushCache drops every cached search.
func (a *Aggregator) FlushCache() {
	a.cache.Flush()
	a.logger.Info("search cache flushed")
}

func (a *Aggregator) cacheHit(params types.Params, key string, count int) {
	if a.metrics != nil {
		a.metrics.IncCacheHits()
	}
	a.logger.Info("returning cached hotel search results",
		"location", params.Location,
		"cache_key", key,
		"count", count,
	)
}

type outcome struct {
	payload suppliers.Payload
	err     error
}

func (a *Aggregator) search(ctx context.Context, params types.Params) []types.Hotel {
	ctx, span := a.tracer.Start(ctx, "search.aggregate", trace.WithAttributes(
		attribute.String("search.location", params.NormalizedLocation()),
		attribute.Int("search.nights", params.Nights()),
		attribute.Int("search.suppliers", len(a.suppliers)),
	))
	defer span.End()

	start := time.Now()
	a.logger.Info("starting hotel search",
		"location", params.Location,
		"check_in", params.CheckIn.Format(types.DateLayout),
		"check_out", params.CheckOut.Format(types.DateLayout),
		"suppliers", len(a.suppliers),
	)

	outcomes := make([]outcome, len(a.suppliers))
	var wg sync.WaitGroup
	for i, s := range a.suppliers {
		wg.Go(func() {
			outcomes[i] = a.fetch(ctx, s, params)
		})
	}
	wg.Wait()

	// Contributions are concatenated in registration order so the merge
	// does not depend on which supplier answered first.
	filters := params.Filters()
	var merged []suppliers.Record
	for i, s := range a.suppliers {
		records := a.contribution(s, outcomes[i], params)
		kept := 0
		for _, r := range records {
			if r.MatchesFilters(filters) {
				merged = append(merged, r)
				kept++
			}
		}
		a.logger.Debug("supplier contribution",
			"supplier", s.Name(),
			"received", len(records),
			"kept", kept,
		)
	}

	deduped := a.dedup(merged)
	a.sortRecords(deduped, params.SortBy)

	hotels := make([]types.Hotel, 0, len(deduped))
	for _, r := range deduped {
		hotels = append(hotels, r.Projection())
	}

	elapsed := time.Since(start)
	if a.metrics != nil {
		a.metrics.ObserveSearchDuration(elapsed)
	}
	span.SetAttributes(attribute.Int("search.results", len(hotels)))
	a.logger.Info("hotel search completed",
		"location", params.Location,
		"total_before_dedup", len(merged),
		"total_after_dedup", len(hotels),
		"duration_ms", elapsed.Milliseconds(),
	)

	return hotels
}

// fetch calls one supplier under the per-call timeout. Panics become errors.
func (a *Aggregator) fetch(ctx context.Context, s *suppliers.Supplier, params types.Params) (out outcome) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	ctx, span := a.tracer.Start(ctx, "supplier.fetch", trace.WithAttributes(
		attribute.String("supplier.name", s.Name()),
	))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			out = outcome{err: fmt.Errorf("%w: %v", errSupplierPanic, r)}
		}
		if out.err != nil && !errors.Is(out.err, suppliers.ErrLiveCallsDisabled) {
			span.RecordError(out.err)
			span.SetStatus(codes.Error, "supplier fetch failed")
		}
		span.End()
		if a.metrics != nil {
			a.metrics.ObserveSupplierLatency(s.Name(), time.Since(start))
		}
	}()

	payload, err := a.fetcher.Fetch(ctx, s, params)
	return outcome{payload: payload, err: err}
}

// contribution maps a supplier outcome to records, substituting the local
// dataset when the live call failed. A payload that cannot be mapped
// contributes nothing.
func (a *Aggregator) contribution(s *suppliers.Supplier, out outcome, params types.Params) []suppliers.Record {
	payload := out.payload
	if out.err != nil {
		reason := obs.ReasonError
		if errors.Is(out.err, suppliers.ErrLiveCallsDisabled) {
			reason = obs.ReasonDisabled
			a.logger.Debug("using supplier fallback data", "supplier", s.Name())
		} else {
			a.logger.Warn("supplier call failed, using fallback data",
				"supplier", s.Name(),
				"error", out.err,
			)
		}
		if a.metrics != nil {
			a.metrics.IncSupplierFallback(s.Name(), reason)
		}
		payload = s.FallbackData(params.Location, params.CheckIn, params.CheckOut)
	}

	records, err := s.MapResponse(payload)
	if err != nil {
		a.logger.Error("failed to map supplier response",
			"supplier", s.Name(),
			"error", err,
		)
		if a.metrics != nil {
			a.metrics.IncMappingFailure(s.Name())
		}
		return nil
	}
	return records
}

// dedup keeps one record per identity key. The first occurrence holds the
// position; a later one replaces it only when strictly cheaper.
func (a *Aggregator) dedup(records []suppliers.Record) []suppliers.Record {
	index := make(map[string]int, len(records))
	out := make([]suppliers.Record, 0, len(records))

	for _, r := range records {
		key := r.IdentityKey()
		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, r)
			continue
		}
		if r.PricePerNight() < out[i].PricePerNight() {
			a.logger.Debug("replacing duplicate hotel with cheaper offer",
				"hotel", r.Name(),
				"old_source", out[i].Source(),
				"old_price", out[i].PricePerNight(),
				"new_source", r.Source(),
				"new_price", r.PricePerNight(),
			)
			out[i] = r
		}
	}
	return out
}

func (a *Aggregator) sortRecords(records []suppliers.Record, sortBy string) {
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "":
	case types.SortByPrice:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].PricePerNight() < records[j].PricePerNight()
		})
	case types.SortByRating:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Rating() > records[j].Rating()
		})
	default:
		a.logger.Warn("ignoring unsupported sort key", "sort_by", sortBy)
	}
}
