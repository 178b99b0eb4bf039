package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/mdolezal/czspot-go/config"
	"github.com/mdolezal/czspot-go/database"
	"github.com/mdolezal/czspot-go/hours"
	"github.com/mdolezal/czspot-go/types"
)

func NewSpotPriceTask(logger *slog.Logger, db *database.Database, provider types.SpotRateProvider, cnfg config.AppConfigSpotPrice) func() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if needImmediateSpotPriceUpdate(ctx, db) {
		logger.Info("need an immediate update of spot prices")
		runSpotPriceTask(logger, db, provider, cnfg)
	} else {
		logger.Debug("no need for immediate update of spot prices")
	}

	return func() { runSpotPriceTask(logger, db, provider, cnfg) }
}

func runSpotPriceTask(logger *slog.Logger, db *database.Database, provider types.SpotRateProvider, cnfg config.AppConfigSpotPrice) {
	logger.Debug("running spot price task...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()

	electricity, err := provider.GetElectricityRates(ctx, now, cnfg.InEur(), cnfg.GetUnit())
	if err != nil {
		logger.Error("spot price task error, fetching electricity rates", slog.Any("error", err))
		return
	}
	if err := saveSeries(ctx, db, database.ProductElectricity, electricity); err != nil {
		logger.Error("spot price task error", slog.Any("error", err))
		return
	}

	gas, err := provider.GetGasRates(ctx, now, cnfg.InEur(), cnfg.GetUnit())
	if err != nil {
		logger.Error("spot price task error, fetching gas rates", slog.Any("error", err))
		return
	}
	if err := saveSeries(ctx, db, database.ProductGas, gas); err != nil {
		logger.Error("spot price task error", slog.Any("error", err))
		return
	}

	logger.Info("spot price task done",
		slog.Int("noOfElectricityHours", len(electricity)),
		slog.Int("noOfGasDays", len(gas)))
}

func saveSeries(ctx context.Context, db *database.Database, product string, series types.RateSeries) error {
	rows := make([]database.SpotPriceRow, 0, len(series))
	for ts, price := range series {
		rows = append(rows, database.SpotPriceRow{When: hours.FromTime(ts), Price: price})
	}
	return db.SaveSpotPrices(ctx, product, rows)
}

func needImmediateSpotPriceUpdate(ctx context.Context, db *database.Database) bool {
	dh := hours.FromNow().Add(1)
	if _, err := db.GetSpotPrice(ctx, database.ProductElectricity, dh); err != nil {
		return true
	}
	return false
}
