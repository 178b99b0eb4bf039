package database

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mdolezal/czspot-go/hours"
)

const (
	ProductElectricity = "electricity"
	ProductGas         = "gas"
)

type SpotPriceRow struct {
	When  hours.DateHour
	Price decimal.Decimal
}

// SaveSpotPrices upserts one product's rows. Prices are stored as decimal
// strings so no precision is lost on the round trip.
func (d *Database) SaveSpotPrices(ctx context.Context, product string, rows []SpotPriceRow) error {
	for _, row := range rows {
		_, err := d.write.ExecContext(ctx, `
			INSERT INTO spot_price (product, date, hour, price) VALUES (?, ?, ?, ?)
			ON CONFLICT(product, date, hour) DO UPDATE SET price = excluded.price`,
			product,
			row.When.Date,
			row.When.Hour,
			row.Price.String())
		if err != nil {
			return fmt.Errorf("saving spot price %s %s: %w", product, row.When, err)
		}
	}
	return nil
}

func (d *Database) GetSpotPrice(ctx context.Context, product string, dh hours.DateHour) (SpotPriceRow, error) {
	row := d.read.QueryRowContext(ctx, `SELECT
		date, hour, price
		FROM spot_price
		WHERE product = ? AND date = ? AND hour = ?`,
		product, dh.Date, dh.Hour)

	var sp SpotPriceRow
	var price string
	if err := row.Scan(&sp.When.Date, &sp.When.Hour, &price); err != nil {
		return SpotPriceRow{}, err
	}

	var err error
	sp.Price, err = decimal.NewFromString(price)
	if err != nil {
		return SpotPriceRow{}, fmt.Errorf("parsing stored price %q: %w", price, err)
	}

	return sp, nil
}

func (d *Database) GetSpotPricesFrom(ctx context.Context, product string, dh hours.DateHour) ([]SpotPriceRow, error) {
	rows, err := d.read.QueryContext(ctx, `SELECT
		date, hour, price
		FROM spot_price
		WHERE product = ? AND ((date = ? AND hour >= ?) OR date > ?)
		ORDER BY date, hour ASC`,
		product, dh.Date, dh.Hour, dh.Date)
	if err != nil {
		return nil, fmt.Errorf("fetching spot prices: %w", err)
	}
	defer rows.Close()

	var spotPrices []SpotPriceRow
	for rows.Next() {
		var sp SpotPriceRow
		var price string
		if err := rows.Scan(&sp.When.Date, &sp.When.Hour, &price); err != nil {
			return nil, fmt.Errorf("scanning spot price row: %w", err)
		}
		sp.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parsing stored price %q: %w", price, err)
		}
		spotPrices = append(spotPrices, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading spot price rows: %w", err)
	}

	return spotPrices, nil
}

func (d *Database) PurgeSpotPrice(ctx context.Context, retentionDays int) error {
	return d.purgeTable(ctx, "spot_price", retentionDays)
}
