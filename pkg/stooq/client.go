package stooq

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Fetch retrieves and normalizes the quote for a single stock code.
// An empty code fails fast without touching the network. The fetch is a
// single attempt with no retry; the provider publishes no retry contract.
func (c *Client) Fetch(ctx context.Context, stockCode string) (*Quote, error) {
	if strings.TrimSpace(stockCode) == "" {
		return nil, ErrInvalidRequest
	}

	endpoint := fmt.Sprintf("%s/q/l/?s=%s&f=sd2t2ohlcvn&h&e=csv",
		c.baseURL, url.QueryEscape(stockCode))

	// Construct the GET request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Execute the HTTP request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	// Check HTTP status code
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrUpstreamUnavailable, err)
	}

	quote, err := ParseQuoteCSV(string(body))
	if err != nil {
		// Parse failures collapse into the upstream error: the caller cannot
		// tell a provider outage from a bad payload. The cause stays in the
		// message for internal logs.
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	return quote, nil
}
