// Package beaches is the anti-corruption layer between the poster pipeline
// and the beaches.ie EPA API. All outbound calls are routed through a single
// request path that enforces a hard timeout, circuit breaking, response
// caching with stale-on-failure fallback, and error mapping to
// types.AppError.
//
// The client never retries a failed call; retry is the caller's
// responsibility by re-invoking the operation.
package beaches

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"bwip/internal/config"
	"bwip/internal/types"
)

// Client fetches location, measurement, and alert data from beaches.ie.
type Client struct {
	cfg     config.BeachesConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	cache   *ttlCache
	logger  *slog.Logger
	now     func() time.Time
}

// ClientOption is a functional option for configuring a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Intended for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithClock overrides the time source used for cache expiry and the
// fetched_at stamp. Intended for tests.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
		c.cache.now = now
	}
}

// NewClient creates a beaches.ie API client.
func NewClient(cfg config.BeachesConfig, logger *slog.Logger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "beaches-api",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	c := &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: cb,
		cache:   newTTLCache(),
		logger:  logger,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// cacheKey builds a deterministic cache key from the endpoint and its
// parameters. Parameters are sorted so logically identical requests share an
// entry.
func cacheKey(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return "beaches_api:" + endpoint
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s&", k, params.Get(k))
	}
	return "beaches_api:" + endpoint + "?" + b.String()
}

// makeRequest performs one GET against the API, returning the raw response
// body. The resolution order is:
//
//  1. Mock mode: return the fixture for the endpoint, bypassing cache,
//     network, and breaker entirely.
//  2. Fresh cache hit: return the cached body.
//  3. Live call through the circuit breaker. On success the cache is
//     refreshed and the body returned.
//  4. On timeout or transport failure, serve a stale cache entry if one
//     exists; otherwise propagate an upstream error.
//
// A 404 maps to upstream_not_found; callers absorb it at the per-fetch
// boundary. An undecodable body maps to upstream_invalid_response and is
// always surfaced.
func (c *Client) makeRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.cfg.UseMockData {
		return mockResponse(endpoint, params)
	}

	key := cacheKey(endpoint, params)
	if data, ok := c.cache.Get(key); ok {
		c.logger.Debug("cache hit", "endpoint", endpoint)
		return data, nil
	}

	data, err := c.breaker.Execute(func() ([]byte, error) {
		return c.fetch(ctx, endpoint, params)
	})
	if err == nil {
		c.cache.Set(key, data, c.cfg.CacheTTL)
		return data, nil
	}

	var appErr *types.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case types.ErrCodeUpstreamNotFound, types.ErrCodeUpstreamInvalidResponse:
			// Definitive upstream answers: no fallback applies.
			return nil, appErr
		}
	}

	// Timeout, transport failure, 5xx, or open breaker: try stale cache
	// before surfacing the failure.
	if data, ok := c.cache.GetStale(key); ok {
		c.logger.Info("serving stale cache after upstream failure",
			"endpoint", endpoint, "error", err)
		return data, nil
	}

	// The breaker returns its own sentinel errors when rejecting calls;
	// callers only speak AppError.
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, types.NewAppError(types.ErrCodeUpstreamRateLimited,
			fmt.Sprintf("beaches.ie requests suspended after repeated failures: %s", endpoint), err)
	}

	return nil, err
}

// fetch executes a single HTTP GET with the configured hard timeout and maps
// transport and status failures to AppErrors.
func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	reqURL := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected,
			"failed to build upstream request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if traceID := types.GetRequestID(ctx); traceID != "" {
		req.Header.Set("X-Request-Id", traceID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, types.NewAppError(types.ErrCodeUpstreamTimeout,
				fmt.Sprintf("timeout fetching %s", endpoint), err)
		}
		return nil, types.NewAppError(types.ErrCodeUpstreamUnavailable,
			fmt.Sprintf("request failed for %s", endpoint), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, types.NewAppError(types.ErrCodeUpstreamNotFound,
			fmt.Sprintf("resource not found: %s", endpoint), nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, types.NewAppError(types.ErrCodeUpstreamRateLimited,
			"upstream rate limit exceeded", nil)
	case resp.StatusCode >= 400:
		return nil, types.NewAppError(types.ErrCodeUpstreamUnavailable,
			fmt.Sprintf("upstream returned %d for %s", resp.StatusCode, endpoint), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamUnavailable,
			"failed to read upstream response", err)
	}

	// An undecodable body is an upstream contract break, never treated as
	// absent data.
	if !json.Valid(body) {
		return nil, types.NewAppError(types.ErrCodeUpstreamInvalidResponse,
			fmt.Sprintf("invalid JSON response from %s", endpoint), nil)
	}

	return body, nil
}

// isTimeout reports whether err represents a request deadline being hit.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// isNotFound reports whether err is the internal not-found failure absorbed
// at the per-fetch boundary.
func isNotFound(err error) bool {
	var appErr *types.AppError
	return errors.As(err, &appErr) && appErr.Code == types.ErrCodeUpstreamNotFound
}

// GetLocation fetches location metadata for a beach. Not-found degrades to a
// nil result rather than an error; the summary must be producible with
// partial upstream data.
func (c *Client) GetLocation(ctx context.Context, beachID string) (*rawLocation, error) {
	data, err := c.makeRequest(ctx, "locations/"+beachID, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var loc rawLocation
	if err := json.Unmarshal(data, &loc); err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamInvalidResponse,
			"malformed location payload", err)
	}
	return &loc, nil
}

// GetMeasurements fetches up to limit recent water quality measurements,
// newest first. Not-found degrades to an empty list.
func (c *Client) GetMeasurements(ctx context.Context, beachID string, limit int) ([]rawMeasurement, error) {
	params := url.Values{}
	params.Set("beach_id", beachID)
	params.Set("per_page", fmt.Sprintf("%d", limit))

	data, err := c.makeRequest(ctx, "measurements", params)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	items, err := decodeList(data)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamInvalidResponse,
			"malformed measurements payload", err)
	}

	measurements := make([]rawMeasurement, 0, len(items))
	for _, item := range items {
		var m rawMeasurement
		if err := json.Unmarshal(item, &m); err != nil {
			return nil, types.NewAppError(types.ErrCodeUpstreamInvalidResponse,
				"malformed measurement record", err)
		}
		measurements = append(measurements, m)
	}
	if len(measurements) > limit {
		measurements = measurements[:limit]
	}
	return measurements, nil
}

// GetAlerts fetches the active alerts for a beach. Not-found degrades to an
// empty list.
func (c *Client) GetAlerts(ctx context.Context, beachID string) ([]rawAlert, error) {
	params := url.Values{}
	params.Set("beach_id", beachID)
	params.Set("is_active", "true")

	data, err := c.makeRequest(ctx, "alerts", params)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	items, err := decodeList(data)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamInvalidResponse,
			"malformed alerts payload", err)
	}

	alerts := make([]rawAlert, 0, len(items))
	for _, item := range items {
		var a rawAlert
		if err := json.Unmarshal(item, &a); err != nil {
			return nil, types.NewAppError(types.ErrCodeUpstreamInvalidResponse,
				"malformed alert record", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}

// decodeList handles the API's two list shapes: a bare JSON array, or an
// envelope object with a "data" array.
func decodeList(data []byte) ([]json.RawMessage, error) {
	var bare []json.RawMessage
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}
