package zanox

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/8earnity-corporation/laravel-affiliate-zanox-network/src/logger"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

// NetworkKey identifies this provider in Program references.
const NetworkKey = "zanox"

// MaxPerPage is the largest page size the provider accepts.
const MaxPerPage = 50

// TrackingCodeParam is the query parameter the provider uses for affiliate
// attribution on generated links and inside transaction gpps entries.
const TrackingCodeParam = "zpar0"

const defaultBaseURL = "https://api.zanox.com/json/2011-03-01"

// Config carries the credentials and knobs needed to talk to the provider.
type Config struct {
	ConnectID string
	SecretKey string
	AdSpaceID string

	// BaseURL overrides the provider endpoint, mainly for tests.
	BaseURL string
	// Timeout bounds each provider round trip. Zero means 20s.
	Timeout time.Duration
	// RequestsPerSecond throttles outbound calls. Zero disables throttling.
	RequestsPerSecond float64
}

// Client is the signed, paginated interface to the provider API. All
// per-request state travels in request descriptor values, so a single Client
// may be shared across goroutines.
type Client struct {
	baseURL    string
	adSpaceID  string
	signer     *signer
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a provider client from config. Credential validation is
// the config layer's concern; values arrive here ready to use.
func NewClient(cfg Config) *Client {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		logger.L.Error("Failed to create cookie jar for provider client", "error", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL:   baseURL,
		adSpaceID: cfg.AdSpaceID,
		signer:    newSigner(cfg.ConnectID, cfg.SecretKey),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		limiter: limiter,
	}
}

// apiRequest describes one logical GET against the provider. It replaces the
// scratch endpoint/query fields the original adapter kept on the instance.
type apiRequest struct {
	endpoint string
	query    url.Values
}

// call performs one signed round trip and returns the raw body. Any response
// status other than 200 aborts the logical operation.
func (c *Client) call(ctx context.Context, req apiRequest) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for provider rate limiter: %w", err)
		}
	}

	fullURL := c.baseURL + req.endpoint
	if len(req.query) > 0 {
		fullURL += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building provider request for %s: %w", req.endpoint, err)
	}
	// The signature covers the endpoint path only, never the query string.
	for name, value := range c.signer.headers(req.endpoint) {
		httpReq.Header.Set(name, value)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling provider endpoint %s: %w", req.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading provider response for %s: %w", req.endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.L.Warn("Provider returned unexpected status",
			"endpoint", req.endpoint,
			"statusCode", resp.StatusCode)
		return nil, &UnexpectedStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
