package suppliers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/alex-user-go/hotel-aggregator/internal/search/types"
)

var (
	// ErrLiveCallsDisabled is returned by OfflineFetcher so callers use fallback data.
	ErrLiveCallsDisabled = errors.New("live supplier calls disabled")
	// ErrUnexpectedStatus is returned for non-2xx supplier responses.
	ErrUnexpectedStatus = errors.New("unexpected supplier status")
)

// Fetcher retrieves a live payload from a supplier.
type Fetcher interface {
	Fetch(ctx context.Context, s *Supplier, p types.Params) (Payload, error)
}

// HTTPFetcher queries supplier endpoints over HTTP.
type HTTPFetcher struct {
	httpClient *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher with an overall request timeout and a
// separate connect timeout.
func NewHTTPFetcher(timeout, connectTimeout time.Duration) *HTTPFetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext

	return &HTTPFetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Fetch performs a GET against the supplier endpoint and decodes the body.
func (f *HTTPFetcher) Fetch(ctx context.Context, s *Supplier, p types.Params) (Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint(p), nil)
	if err != nil {
		return Payload{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return Payload{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Payload{}, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	var payload Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return payload, nil
}

// OfflineFetcher never reaches the network. Every supplier is served from
// its local dataset.
type OfflineFetcher struct{}

func (OfflineFetcher) Fetch(context.Context, *Supplier, types.Params) (Payload, error) {
	return Payload{}, ErrLiveCallsDisabled
}
