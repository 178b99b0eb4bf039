package task

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/mdolezal/czspot-go/config"
	"github.com/mdolezal/czspot-go/database"
	"github.com/mdolezal/czspot-go/types"
)

type Tasks struct {
	cron            *cron.Cron
	cnfg            *config.AppConfig
	SpotPriceTask   func()
	MaintenanceTask func()
}

func NewTasks(db *database.Database, provider types.SpotRateProvider, cnfg *config.AppConfig) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		cnfg:            cnfg,
		SpotPriceTask:   NewSpotPriceTask(logger.With(slog.String("task", "spot_price")), db, provider, cnfg.SpotPrice),
		MaintenanceTask: NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg),
	}
}

func (t *Tasks) Run() {
	_, err := t.cron.AddFunc(t.cnfg.SpotPrice.RunAt, t.SpotPriceTask)
	if err != nil {
		panic(err)
	}
	_, err = t.cron.AddFunc("30 2 * * *", t.MaintenanceTask)
	if err != nil {
		panic(err)
	}
	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
