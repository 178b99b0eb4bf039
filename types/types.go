package types

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RateSeries maps hour-aligned UTC instants to spot prices. Electricity has
// one entry per hour, gas one entry per day (keyed at local midnight in UTC).
type RateSeries map[time.Time]decimal.Decimal

// EnergyUnit selects the denomination of returned prices. The upstream feed
// is MWh-denominated, kWh prices are derived by exact division.
type EnergyUnit int

const (
	UnitMWh EnergyUnit = iota
	UnitKWh
)

func (u EnergyUnit) String() string {
	switch u {
	case UnitMWh:
		return "MWh"
	case UnitKWh:
		return "kWh"
	default:
		panic(fmt.Sprintf("unknown energy unit %d", int(u)))
	}
}

func ParseEnergyUnit(str string) (EnergyUnit, error) {
	switch {
	case strings.EqualFold(str, "MWh"):
		return UnitMWh, nil
	case strings.EqualFold(str, "kWh"):
		return UnitKWh, nil
	default:
		return UnitMWh, fmt.Errorf("unknown energy unit %q", str)
	}
}

// ExchangeRateProvider supplies current exchange rates as a mapping from
// currency code to the price of one unit of that currency in CZK.
type ExchangeRateProvider interface {
	GetCurrentRates(ctx context.Context) (map[string]decimal.Decimal, error)
}

// SpotRateProvider is the surface the task layer consumes. The reference
// instant anchors the queried window on its calendar date in the market
// time zone.
type SpotRateProvider interface {
	GetElectricityRates(ctx context.Context, ref time.Time, inEur bool, unit EnergyUnit) (RateSeries, error)
	GetGasRates(ctx context.Context, ref time.Time, inEur bool, unit EnergyUnit) (RateSeries, error)
}
