package ote

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdolezal/czspot-go/types"
)

// extract turns parsed Items into a rate series keyed by UTC instant.
//
// The timestamp is computed by converting local midnight of the item date to
// UTC first and adding the hour offset afterwards, so the hour index resolves
// to a real instant even on daylight-saving transition days.
func (c *Client) extract(doc *document, unit types.EnergyUnit, hasHours bool) (types.RateSeries, error) {
	result := make(types.RateSeries, len(doc.items))

	for _, item := range doc.items {
		if item.Date == "" {
			return nil, &InvalidFormatError{Reason: `item has no "Date" child or is empty`}
		}
		day, err := time.ParseInLocation(dateLayout, item.Date, c.loc)
		if err != nil {
			return nil, &InvalidFormatError{Reason: fmt.Sprintf("item date %q: %v", item.Date, err)}
		}

		// Gas rates don't have hours, one value per day.
		currentHour := 0
		if hasHours {
			if item.Hour == "" {
				c.logger.Warn(`item has no "Hour" child or is empty`, slog.String("date", item.Date))
			} else {
				n, err := strconv.Atoi(item.Hour)
				if err != nil {
					return nil, &InvalidFormatError{Reason: fmt.Sprintf("item hour %q: %v", item.Hour, err)}
				}
				// OTE reports the nth hour starting with 1, "1" is the
				// 00:00-01:00 slot.
				currentHour = n - 1
			}
		}

		if item.Price == "" {
			c.logger.Info(`item has no "Price" child or is empty`,
				slog.String("date", item.Date),
				slog.Int("hour", currentHour))
			continue
		}
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, &InvalidFormatError{Reason: fmt.Sprintf("item price %q: %v", item.Price, err)}
		}

		price = scaleToUnit(price, unit)

		startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, c.loc)
		ts := startOfDay.UTC().Add(time.Duration(currentHour) * time.Hour)

		result[ts] = price
	}

	return result, nil
}

// scaleToUnit converts the MWh-denominated feed price into the requested
// unit. The shift by -3 is an exact decimal operation.
func scaleToUnit(price decimal.Decimal, unit types.EnergyUnit) decimal.Decimal {
	switch unit {
	case types.UnitMWh:
		return price
	case types.UnitKWh:
		return price.Shift(-3)
	default:
		panic(fmt.Sprintf("unknown energy unit %d", int(unit)))
	}
}

// Convert returns a new series with every value multiplied by rate. The
// input series is left untouched.
func Convert(series types.RateSeries, rate decimal.Decimal) types.RateSeries {
	converted := make(types.RateSeries, len(series))
	for ts, value := range series {
		converted[ts] = value.Mul(rate)
	}
	return converted
}
