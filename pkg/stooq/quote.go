package stooq

import "errors"

// Quote is a single point-in-time price record for a ticker symbol as
// normalized from the provider's CSV. Prices stay as provider-supplied text
// on this wire contract; callers that need numbers parse them on their side.
type Quote struct {
	Symbol string `json:"symbol"`
	Date   string `json:"date"` // "YYYY-MM-DD HH:MM:SS"
	Open   string `json:"open"`
	High   string `json:"high"`
	Low    string `json:"low"`
	Close  string `json:"close"`
	Name   string `json:"name"`
}

var (
	// ErrInvalidRequest means the caller did not supply a stock code.
	ErrInvalidRequest = errors.New("stock code is required")

	// ErrUpstreamUnavailable covers provider non-200 responses, transport
	// failures and malformed payloads. A caller cannot distinguish a provider
	// outage from a bad payload, so both degrade identically.
	ErrUpstreamUnavailable = errors.New("upstream quote provider unavailable")

	// ErrMalformedResponse means the provider body could not be parsed into
	// a complete quote.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrNoData means the provider returned a valid header but no data rows.
	ErrNoData = errors.New("provider returned no data rows")
)
