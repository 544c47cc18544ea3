package airquality

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is where the service listens in a local setup.
	DefaultBaseURL = "http://localhost:5000"

	defaultTimeout  = 10 * time.Second
	maxResponseSize = 10 << 20
	userAgent       = "airwatch/1.0"

	// RequestIDHeader carries the per-fetch correlation id.
	RequestIDHeader = "X-Request-ID"
)

// Endpoint names, used for logging and metrics labels.
const (
	EndpointSectors  = "sectors"
	EndpointStatus   = "status"
	EndpointPolicy   = "policy"
	EndpointSimulate = "simulate"
)

// Client defines the calls the dashboard makes against the service.
type Client interface {
	Sectors(ctx context.Context) ([]Sector, error)
	Status(ctx context.Context, sectorID int) (SectorStatus, error)
	Policy(ctx context.Context, sectorID int) (Policy, error)
	Simulate(ctx context.Context, sectorID int, policyName string) (SimulationResult, error)
}

// Observer receives the outcome of every fetch.
type Observer interface {
	ObserveFetch(endpoint string, d time.Duration, err error)
}

// HTTPClient talks to the service over HTTP/JSON.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	observer Observer
	logger   *slog.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithRateLimit caps outbound requests to rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithObserver sets the fetch observer.
func WithObserver(o Observer) Option {
	return func(c *HTTPClient) {
		c.observer = o
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewHTTPClient builds a client for baseURL. A zero timeout uses the default.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", base)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &HTTPClient{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised service root.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) Sectors(ctx context.Context) ([]Sector, error) {
	var out []Sector
	if err := c.call(ctx, http.MethodGet, EndpointSectors, "/sectors", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Status(ctx context.Context, sectorID int) (SectorStatus, error) {
	var out SectorStatus
	path := "/sector/" + strconv.Itoa(sectorID) + "/status"
	if err := c.call(ctx, http.MethodGet, EndpointStatus, path, nil, &out); err != nil {
		return SectorStatus{}, err
	}
	return out, nil
}

func (c *HTTPClient) Policy(ctx context.Context, sectorID int) (Policy, error) {
	var out Policy
	path := "/sector/" + strconv.Itoa(sectorID) + "/policy"
	if err := c.call(ctx, http.MethodGet, EndpointPolicy, path, nil, &out); err != nil {
		return Policy{}, err
	}
	return out, nil
}

func (c *HTTPClient) Simulate(ctx context.Context, sectorID int, policyName string) (SimulationResult, error) {
	var out SimulationResult
	q := url.Values{}
	q.Set("sector_id", strconv.Itoa(sectorID))
	q.Set("policy_name", policyName)
	if err := c.call(ctx, http.MethodPost, EndpointSimulate, "/simulate", q, &out); err != nil {
		return SimulationResult{}, err
	}
	return out, nil
}

func (c *HTTPClient) call(ctx context.Context, method, endpoint, path string, query url.Values, out any) error {
	start := time.Now()
	reqID := RequestIDFrom(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	err := c.doJSON(ctx, method, path, query, reqID, out)
	elapsed := time.Since(start)
	if c.observer != nil {
		c.observer.ObserveFetch(endpoint, elapsed, err)
	}
	if err != nil {
		c.logger.Debug("fetch failed", "endpoint", endpoint, "request_id", reqID, "duration", elapsed, "error", err)
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	c.logger.Debug("fetch ok", "endpoint", endpoint, "request_id", reqID, "duration", elapsed)
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, reqID string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxResponseSize {
		return fmt.Errorf("response body exceeds maximum allowed size of %d bytes", maxResponseSize)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewHTTPError(resp.StatusCode, target, summarize(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// maxErrorRunes caps how much of an error body ends up in HTTPError.
const maxErrorRunes = 200

func summarize(body []byte) string {
	msg := strings.TrimSpace(string(body))
	if utf8.RuneCountInString(msg) > maxErrorRunes {
		msg = string([]rune(msg)[:maxErrorRunes]) + "…"
	}
	return msg
}

type requestIDKey struct{}

// WithRequestID attaches a correlation id that the client forwards in
// the X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id set by WithRequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

var _ Client = (*HTTPClient)(nil)
