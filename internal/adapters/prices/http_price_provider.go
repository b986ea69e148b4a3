package prices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"qibla-zakat-service/internal/domain"
	"qibla-zakat-service/internal/platform/obs"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Wire format of the price feed.
type feedResponse struct {
	Currency      string             `json:"currency"`
	GoldPerGram   map[string]float64 `json:"gold_per_gram"`
	SilverPerGram *float64           `json:"silver_per_gram"`
}

// HTTPPriceProvider fetches live gold and silver prices from a JSON feed.
//
// Outbound calls are rate limited and transient failures are retried.
// The provider is safe for concurrent use.
type HTTPPriceProvider struct {
	client         *http.Client
	endpoint       string
	limiter        *rate.Limiter
	maxAttempts    int
	initialBackoff time.Duration
}

type HTTPOption func(*HTTPPriceProvider)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(p *HTTPPriceProvider) { p.client = c }
}

func WithBackoff(initial time.Duration, maxAttempts int) HTTPOption {
	return func(p *HTTPPriceProvider) {
		p.initialBackoff = initial
		p.maxAttempts = maxAttempts
	}
}

func NewHTTPPriceProvider(endpoint string, requestsPerSecond float64, opts ...HTTPOption) (*HTTPPriceProvider, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("price feed endpoint is empty")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("price feed endpoint %q: %w", endpoint, err)
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}

	p := &HTTPPriceProvider{
		client:         &http.Client{Timeout: 10 * time.Second},
		endpoint:       endpoint,
		limiter:        rate.NewLimiter(rate.Limit(requestsPerSecond), 5),
		maxAttempts:    4,
		initialBackoff: 200 * time.Millisecond,
	}
	for _, o := range opts {
		o(p)
	}

	return p, nil
}

func (p *HTTPPriceProvider) GetPrices(
	ctx context.Context,
	currency domain.Currency,
) (_ domain.PriceTable, err error) {
	defer obs.Time(ctx, "prices.http.GetPrices")(&err)

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		q.Set("currency", currency.Code)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.PriceTable{}, fmt.Errorf("price feed request failed: %w", err)
	}
	defer resp.Body.Close()

	var fr feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return domain.PriceTable{}, fmt.Errorf("decode price feed response: %w", err)
	}

	return fr.toTable(currency)
}

func (fr feedResponse) toTable(requested domain.Currency) (domain.PriceTable, error) {
	if fr.Currency != "" && !strings.EqualFold(fr.Currency, requested.Code) {
		return domain.PriceTable{}, fmt.Errorf(
			"price feed returned currency %q, requested %q",
			fr.Currency, requested.Code,
		)
	}
	if fr.SilverPerGram == nil {
		return domain.PriceTable{}, errors.New("price feed response missing silver_per_gram")
	}

	gold := make(map[domain.Karat]float64, len(fr.GoldPerGram))
	for k, v := range fr.GoldPerGram {
		karat, err := domain.ParseKarat(k)
		if err != nil {
			return domain.PriceTable{}, fmt.Errorf("price feed gold key: %w", err)
		}
		gold[karat] = v
	}

	table := domain.PriceTable{
		GoldPerGram:   gold,
		SilverPerGram: *fr.SilverPerGram,
		Currency:      requested,
	}
	if err := table.Validate(); err != nil {
		return domain.PriceTable{}, fmt.Errorf("price feed: %w", err)
	}

	return table, nil
}
