package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go-currency-converter/domain"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// ApiUrlBase primary currency-api endpoint
	ApiUrlBase = "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1"

	// MirrorUrlBase mirror of the same feed, used as a fallback
	MirrorUrlBase = "https://latest.currency-api.pages.dev/v1"
)

var (
	// ErrFetch the rate source was unreachable or returned unusable data
	ErrFetch = errors.New("failed to fetch exchange rates")

	// ErrSuperseded a load was overtaken by a newer one and its result discarded
	ErrSuperseded = errors.New("superseded by a newer load")
)

// Service loads the current rate table for a base currency
type Service interface {
	Latest(ctx context.Context, base domain.Currency) (domain.Snapshot, error)
}

// service currency-api client
type service struct {
	// url base API url
	url string

	// client for HTTP requests
	client http.Client
}

// NewService constructs a Service reading from url with the given request timeout.
func NewService(url string, timeout time.Duration) Service {
	return &service{
		url: strings.TrimSuffix(url, "/"),
		client: http.Client{
			Timeout: timeout,
		},
	}
}

// Latest loads the current rates for base. The feed is published daily.
func (s *service) Latest(ctx context.Context, base domain.Currency) (domain.Snapshot, error) {
	base = domain.Currency(strings.ToLower(string(base)))
	url := fmt.Sprintf("%v/currencies/%v.json", s.url, base)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: building http request: %w", ErrFetch, err)
	}
	httpResponse, err := s.client.Do(request)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: http get: %w", ErrFetch, err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode > 299 {
		return domain.Snapshot{}, fmt.Errorf("%w: unexpected status %v", ErrFetch, httpResponse.Status)
	}

	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: reading json: %w", ErrFetch, err)
	}

	return decode(bytes, base)
}

// decode parses a currency-api document. The rate object is keyed by the base code,
// e.g. {"date": "2024-03-06", "usd": {"eur": 0.92, ...}}
func decode(bytes []byte, base domain.Currency) (domain.Snapshot, error) {
	var document map[string]json.RawMessage
	if err := json.Unmarshal(bytes, &document); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: decoding json: %w", ErrFetch, err)
	}

	var date string
	if raw, ok := document["date"]; ok {
		if err := json.Unmarshal(raw, &date); err != nil {
			return domain.Snapshot{}, fmt.Errorf("%w: decoding date: %w", ErrFetch, err)
		}
	}
	if date == "" {
		return domain.Snapshot{}, fmt.Errorf("%w: missing date", ErrFetch)
	}

	raw, ok := document[string(base)]
	if !ok {
		return domain.Snapshot{}, fmt.Errorf("%w: missing rates for [%v]", ErrFetch, base)
	}
	var values map[string]float64
	if err := json.Unmarshal(raw, &values); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: bad rate value: %w", ErrFetch, err)
	}

	rates := domain.Rates{}
	for k, v := range values {
		// null and non-positive entries can't be converted with, so they never enter the table
		if v <= 0 {
			continue
		}
		rates[domain.Currency(strings.ToLower(k))] = domain.Rate(v)
	}
	if len(rates) == 0 {
		return domain.Snapshot{}, fmt.Errorf("%w: empty rate table for [%v]", ErrFetch, base)
	}

	return domain.Snapshot{Base: base, Date: date, Rates: rates}, nil
}
