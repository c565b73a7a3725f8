package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client wraps resty.Client with retry logic and timeout handling
type Client struct {
	resty      *resty.Client
	maxRetries int
	timeout    time.Duration
	debug      bool
	logger     *slog.Logger
}

// ClientConfig holds configuration for the HTTP client
type ClientConfig struct {
	Timeout    time.Duration
	MaxRetries int // 0 disables retries
	RetryWait  time.Duration
	UserAgent  string
	Debug      bool
	Logger     *slog.Logger
}

// DefaultClientConfig returns sensible defaults for HTTP client
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:    30 * time.Second,
		MaxRetries: 2,
		RetryWait:  time.Second,
		UserAgent:  "yt-tui",
	}
}

// APIError is returned for responses with a 4xx or 5xx status
type APIError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("HTTP error %d for %s: %s", e.StatusCode, e.URL, e.Message)
}

// StatusCode returns the HTTP status of an *APIError in err's chain, or 0
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// NewClient creates a new HTTP client with the given configuration
func NewClient(config ClientConfig) *Client {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.RetryWait <= 0 {
		config.RetryWait = time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "yt-tui"
	}

	restyClient := resty.New().
		SetTimeout(config.Timeout).
		SetRetryCount(config.MaxRetries).
		SetRetryWaitTime(config.RetryWait).
		SetRetryMaxWaitTime(5*config.RetryWait).
		SetHeader("User-Agent", config.UserAgent).
		SetHeader("Accept", "application/json")

	// Retry on network errors, 5xx and rate limiting; never on other 4xx
	restyClient.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return !errors.Is(err, context.Canceled)
		}
		return r.StatusCode() >= 500 || r.StatusCode() == 429
	})

	client := &Client{
		resty:      restyClient,
		maxRetries: config.MaxRetries,
		timeout:    config.Timeout,
		debug:      config.Debug,
		logger:     config.Logger,
	}

	if config.Debug && config.Logger != nil {
		restyClient.OnBeforeRequest(func(c *resty.Client, r *resty.Request) error {
			client.logRequest(r)
			return nil
		})
		restyClient.OnAfterResponse(func(c *resty.Client, r *resty.Response) error {
			client.logResponse(r)
			return nil
		})
	}

	return client
}

// Get performs a GET request with context support
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values, headers map[string]string) (*resty.Response, error) {
	req := c.resty.R().SetContext(ctx)

	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	for key, value := range headers {
		req.SetHeader(key, value)
	}

	resp, err := req.Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("GET request failed for %s: %w", rawURL, err)
	}

	if resp.StatusCode() >= 400 {
		return resp, &APIError{
			StatusCode: resp.StatusCode(),
			URL:        rawURL,
			Message:    errorMessage(resp.Body()),
		}
	}

	return resp, nil
}

// GetJSON performs a GET request and decodes the JSON body into out
func (c *Client) GetJSON(ctx context.Context, rawURL string, query url.Values, headers map[string]string, out any) error {
	resp, err := c.Get(ctx, rawURL, query, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", rawURL, err)
	}
	return nil
}

// errorMessage extracts a message from a Google-style error body, falling back to the raw text
func errorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	msg := string(body)
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return msg
}

// SetHeader sets a default header for all requests
func (c *Client) SetHeader(key, value string) {
	c.resty.SetHeader(key, value)
}

// GetTimeout returns the configured timeout
func (c *Client) GetTimeout() time.Duration {
	return c.timeout
}

// GetMaxRetries returns the configured max retries
func (c *Client) GetMaxRetries() int {
	return c.maxRetries
}

// logRequest logs HTTP request details
func (c *Client) logRequest(r *resty.Request) {
	c.logger.Debug("HTTP Request",
		"method", r.Method,
		"url", redactKey(r.URL),
		"query", redactQuery(r.QueryParam),
	)
}

// logResponse logs HTTP response details
func (c *Client) logResponse(r *resty.Response) {
	bodyStr := r.String()
	if len(bodyStr) > 1000 {
		bodyStr = bodyStr[:1000] + "... (truncated)"
	}
	c.logger.Debug("HTTP Response",
		"status", r.StatusCode(),
		"url", redactKey(r.Request.URL),
		"time", r.Time(),
		"body", bodyStr,
	)
}

// redactQuery hides the API key before logging
func redactQuery(q url.Values) url.Values {
	if q.Get("key") == "" {
		return q
	}
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = v
	}
	out.Set("key", "REDACTED")
	return out
}

func redactKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Get("key") == "" {
		return rawURL
	}
	u.RawQuery = redactQuery(q).Encode()
	return u.String()
}
