// Package cnb fetches daily exchange rates from the Czech National Bank.
package cnb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdolezal/czspot-go/hours"
)

const RatesURL = "https://api.cnb.cz/cnbapi/exrates/daily"

type rate struct {
	ValidFor     string  `json:"validFor"`
	Order        int     `json:"order"`
	Country      string  `json:"country"`
	Currency     string  `json:"currency"`
	Amount       int     `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
	Rate         float64 `json:"rate"`
}

type ratesResponse struct {
	Rates []rate `json:"rates"`
}

type rateError struct {
	Description string `json:"description"`
	ErrorCode   string `json:"errorCode"`
	HappenedAt  string `json:"happenedAt"`
	EndPoint    string `json:"endPoint"`
	MessageID   string `json:"messageId"`
}

// errNoRatesForDate is returned for days the bank publishes no fixing
// (weekends, bank holidays).
var errNoRatesForDate = errors.New("no rates published for date")

type Cnb struct {
	URL        string
	HTTPClient *http.Client

	logger *slog.Logger
}

func New(logger *slog.Logger) *Cnb {
	return &Cnb{
		URL:        RatesURL,
		HTTPClient: &http.Client{},
		logger:     logger,
	}
}

// GetCurrentRates returns today's fixing as CZK per one unit of each
// currency, keyed by currency code. CZK itself is always present with
// rate 1.
func (c *Cnb) GetCurrentRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	day := time.Now().In(hours.Prague())
	return c.getDayRates(ctx, day)
}

func (c *Cnb) getDayRates(ctx context.Context, day time.Time) (map[string]decimal.Decimal, error) {
	rates := map[string]decimal.Decimal{
		"CZK": decimal.NewFromInt(1),
	}

	var published *ratesResponse
	// Walk back up to a week to skip weekends and bank holidays.
	for previousDay := 0; previousDay < 7; previousDay++ {
		resp, err := c.downloadRates(ctx, day.AddDate(0, 0, -previousDay))
		if errors.Is(err, errNoRatesForDate) {
			continue
		}
		if err != nil {
			return nil, err
		}
		published = resp
		break
	}

	if published == nil {
		return nil, fmt.Errorf("could not download CNB rates for last 7 days")
	}

	for _, r := range published.Rates {
		rates[r.CurrencyCode] = decimal.NewFromFloat(r.Rate)
	}

	return rates, nil
}

func (c *Cnb) downloadRates(ctx context.Context, day time.Time) (*ratesResponse, error) {
	url := fmt.Sprintf("%s?date=%s", c.URL, day.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusBadRequest {
			var apiErr rateError
			if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.ErrorCode == "VALIDATION_ERROR" {
				c.logger.Debug("no CNB rates for date", slog.String("date", day.Format("2006-01-02")))
				return nil, errNoRatesForDate
			}
		}
		return nil, fmt.Errorf("error %d while downloading rates", resp.StatusCode)
	}

	var published ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&published); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &published, nil
}
