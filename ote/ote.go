// Package ote fetches day-ahead electricity and gas spot prices from the
// OTE public data service and normalizes them into a UTC-keyed rate series.
package ote

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mdolezal/czspot-go/hours"
	"github.com/mdolezal/czspot-go/types"
)

const PublicDataServiceURL = "https://www.ote-cr.cz/services/PublicDataService"

type Client struct {
	// URL of the market data endpoint, overridable for tests.
	URL string
	// HTTPClient used for the POST, one outbound call per invocation.
	HTTPClient *http.Client

	logger        *slog.Logger
	loc           *time.Location
	exchangeRates types.ExchangeRateProvider
}

// New returns a client for the public OTE endpoint. The exchange rate
// provider is only consulted on the gas path when CZK prices are requested.
func New(logger *slog.Logger, exchangeRates types.ExchangeRateProvider) *Client {
	return &Client{
		URL:           PublicDataServiceURL,
		HTTPClient:    &http.Client{},
		logger:        logger,
		loc:           hours.Prague(),
		exchangeRates: exchangeRates,
	}
}

// GetElectricityRates returns hourly day-ahead electricity prices for the
// day before, the day of and the day after ref, resolved against ref's
// calendar date in the market time zone. Currency selection happens
// server-side via the InEur query flag.
func (c *Client) GetElectricityRates(ctx context.Context, ref time.Time, inEur bool, unit types.EnergyUnit) (types.RateSeries, error) {
	first := ref.In(c.loc)
	// From yesterday (needed for trailing window stats) till tomorrow, there
	// is no more data anyway.
	query := electricityQuery(first.AddDate(0, 0, -1), first.AddDate(0, 0, 1), inEur)

	return c.getRates(ctx, query, unit, true)
}

// GetGasRates returns daily gas index prices for the same 3-day window. The
// feed reports gas in EUR only; when CZK is requested the price fetch and
// the exchange rate fetch run concurrently and the series is converted with
// the joined EUR rate.
func (c *Client) GetGasRates(ctx context.Context, ref time.Time, inEur bool, unit types.EnergyUnit) (types.RateSeries, error) {
	first := ref.In(c.loc)
	// Yesterday, today and tomorrow. Yesterday because today's value might
	// not be published for some time.
	query := gasQuery(first.AddDate(0, 0, -1), first.AddDate(0, 0, 1))

	if inEur {
		return c.getRates(ctx, query, unit, false)
	}

	var (
		series types.RateSeries
		table  map[string]decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		series, err = c.getRates(gctx, query, unit, false)
		return err
	})
	g.Go(func() error {
		var err error
		table, err = c.exchangeRates.GetCurrentRates(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	eurRate, ok := table["EUR"]
	if !ok {
		return nil, &Fault{Message: `exchange rate table has no "EUR" entry`}
	}

	return Convert(series, eurRate), nil
}

func (c *Client) getRates(ctx context.Context, query string, unit types.EnergyUnit, hasHours bool) (types.RateSeries, error) {
	text, err := c.download(ctx, query)
	if err != nil {
		return nil, err
	}

	doc, err := parseResponse(text)
	if err != nil {
		return nil, err
	}

	if doc.fault != nil {
		message := doc.fault.FaultString
		if message == "" {
			message = text
		}
		return nil, &Fault{Message: message}
	}

	return c.extract(doc, unit, hasHours)
}

func (c *Client) download(ctx context.Context, query string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, strings.NewReader(query))
	if err != nil {
		return "", &Fault{Message: fmt.Sprintf("unable to build request: %v", err), Cause: err}
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &Fault{Message: fmt.Sprintf("unable to download rates: %v", err), Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Fault{Message: fmt.Sprintf("unable to read response: %v", err), Cause: err}
	}

	return string(body), nil
}
