package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const (
	frankfurterBaseURL = "https://api.frankfurter.dev/v1"
	cacheTTL           = 1 * time.Hour
)

// ExchangeRates represents the response from Frankfurter API
type ExchangeRates struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Conversion is the result of converting an amount between currencies
type Conversion struct {
	Amount          float64 `json:"amount"`
	From            string  `json:"from"`
	To              string  `json:"to"`
	Rate            float64 `json:"rate"`
	ConvertedAmount float64 `json:"convertedAmount"`
}

// Client handles currency conversion using Frankfurter API
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      map[string]*cachedRates
	cacheMu    sync.RWMutex
	now        func() time.Time
}

type cachedRates struct {
	rates     *ExchangeRates
	expiresAt time.Time
}

// NewClient creates a new currency client. An empty baseURL uses the public
// Frankfurter API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = frankfurterBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: make(map[string]*cachedRates),
		now:   time.Now,
	}
}

// GetLatestRates fetches the latest exchange rates for a base currency
func (c *Client) GetLatestRates(ctx context.Context, baseCurrency string) (*ExchangeRates, error) {
	baseCurrency = strings.ToUpper(strings.TrimSpace(baseCurrency))
	cacheKey := fmt.Sprintf("latest_%s", baseCurrency)

	// Check cache
	c.cacheMu.RLock()
	if cached, ok := c.cache[cacheKey]; ok && c.now().Before(cached.expiresAt) {
		c.cacheMu.RUnlock()
		return cached.rates, nil
	}
	c.cacheMu.RUnlock()

	endpoint := fmt.Sprintf("%s/latest?%s", c.baseURL, url.Values{"base": {baseCurrency}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var rates ExchangeRates
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.cacheMu.Lock()
	c.cache[cacheKey] = &cachedRates{
		rates:     &rates,
		expiresAt: c.now().Add(cacheTTL),
	}
	c.cacheMu.Unlock()

	return &rates, nil
}

// Rate returns how many units of toCurrency one unit of fromCurrency buys
func (c *Client) Rate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	fromCurrency = strings.ToUpper(strings.TrimSpace(fromCurrency))
	toCurrency = strings.ToUpper(strings.TrimSpace(toCurrency))
	if fromCurrency == toCurrency {
		return decimal.NewFromInt(1), nil
	}

	rates, err := c.GetLatestRates(ctx, fromCurrency)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get exchange rates: %w", err)
	}

	rate, ok := rates.Rates[toCurrency]
	if !ok {
		return decimal.Zero, fmt.Errorf("exchange rate not found for %s to %s", fromCurrency, toCurrency)
	}
	return decimal.NewFromFloat(rate), nil
}

// Convert converts an amount from one currency to another, rounded to cents
func (c *Client) Convert(ctx context.Context, amount float64, fromCurrency, toCurrency string) (*Conversion, error) {
	rate, err := c.Rate(ctx, fromCurrency, toCurrency)
	if err != nil {
		return nil, err
	}

	return &Conversion{
		Amount:          amount,
		From:            strings.ToUpper(strings.TrimSpace(fromCurrency)),
		To:              strings.ToUpper(strings.TrimSpace(toCurrency)),
		Rate:            rate.InexactFloat64(),
		ConvertedAmount: decimal.NewFromFloat(amount).Mul(rate).Round(2).InexactFloat64(),
	}, nil
}

// GetSupportedCurrencies returns the sorted list of supported currency codes
func (c *Client) GetSupportedCurrencies(ctx context.Context) ([]string, error) {
	rates, err := c.GetLatestRates(ctx, "EUR")
	if err != nil {
		return nil, err
	}

	currencies := make([]string, 0, len(rates.Rates)+1)
	currencies = append(currencies, "EUR")
	for code := range rates.Rates {
		currencies = append(currencies, code)
	}
	sort.Strings(currencies)

	return currencies, nil
}
