package stooq

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// requiredColumns are the header names the provider must return. Column order
// is arbitrary; lookup goes through a name->index map built from the header.
var requiredColumns = []string{"Symbol", "Date", "Time", "Open", "High", "Low", "Close", "Name"}

// ParseQuoteCSV normalizes a provider CSV body into a Quote. Only the first
// data row is read; the provider returns one quote per query, so any extra
// rows are ignored rather than rejected.
func ParseQuoteCSV(raw string) (*Quote, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	reader := csv.NewReader(strings.NewReader(raw))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformedResponse)
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedResponse, name)
		}
	}

	if len(records) < 2 {
		return nil, ErrNoData
	}

	row := records[1]
	field := func(name string) string {
		i := index[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	quote := &Quote{
		Symbol: field("Symbol"),
		Date:   field("Date") + " " + field("Time"),
		Open:   field("Open"),
		High:   field("High"),
		Low:    field("Low"),
		Close:  field("Close"),
		Name:   field("Name"),
	}

	// Every field must be present and non-empty; a partial quote is a
	// malformed response, not a partial success.
	for name, value := range map[string]string{
		"Symbol": quote.Symbol,
		"Date":   field("Date"),
		"Time":   field("Time"),
		"Open":   quote.Open,
		"High":   quote.High,
		"Low":    quote.Low,
		"Close":  quote.Close,
		"Name":   quote.Name,
	} {
		if value == "" {
			return nil, fmt.Errorf("%w: empty value for %q", ErrMalformedResponse, name)
		}
	}

	return quote, nil
}
