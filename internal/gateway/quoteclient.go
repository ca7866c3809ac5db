package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stockgate/pkg/stooq"
)

// QuoteFetcher is the gateway's view of the internal quote service. Handlers
// only ever see this interface, never a network address, so tests can swap in
// a double.
type QuoteFetcher interface {
	Fetch(ctx context.Context, stockCode string) (*stooq.Quote, error)
}

// UpstreamError carries the quote service's HTTP status so the stock handler
// can propagate it to the caller unchanged.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("quote service returned status %d", e.StatusCode)
}

// QuoteServiceClient fetches quotes from the internal quote adapter service
// over HTTP.
type QuoteServiceClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewQuoteServiceClient(baseURL string, timeout time.Duration) *QuoteServiceClient {
	return &QuoteServiceClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *QuoteServiceClient) HTTPClient() *http.Client {
	return c.httpClient
}

func (c *QuoteServiceClient) Fetch(ctx context.Context, stockCode string) (*stooq.Quote, error) {
	endpoint := fmt.Sprintf("%s/stock?stock_code=%s", c.baseURL, url.QueryEscape(stockCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	var quote stooq.Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}

	return &quote, nil
}
