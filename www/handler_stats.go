package www

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdolezal/czspot-go/database"
	"github.com/mdolezal/czspot-go/hours"
	"github.com/mdolezal/czspot-go/stats"
	"github.com/mdolezal/czspot-go/types"
	"github.com/mdolezal/czspot-go/types/maybe"
)

type statsHour struct {
	Hour                     string          `json:"hour"`
	LocalHour                string          `json:"localHour"`
	Price                    decimal.Decimal `json:"price"`
	CheapestConsecutiveOrder map[int]int     `json:"cheapestConsecutiveOrder"`
}

type statsDay struct {
	CheapestHour      *statsHour `json:"cheapestHour"`
	MostExpensiveHour *statsHour `json:"mostExpensiveHour"`
	NoOfHours         int        `json:"noOfHours"`
}

type statsResponse struct {
	Today    *statsDay `json:"today"`
	Tomorrow *statsDay `json:"tomorrow,omitempty"`
}

func NewStatsHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		// Enough history for the trailing consecutive windows of today's
		// first hours.
		from := hours.FromNow().Sub(36)
		rows, err := db.GetSpotPricesFrom(r.Context(), database.ProductElectricity, from)
		if err != nil {
			logger.Error("handling stats request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		series := make(types.RateSeries, len(rows))
		for _, row := range rows {
			series[row.When.Time()] = row.Price
		}

		hourly := stats.NewHourlyStats(series, hours.Prague(), time.Now())

		resp := statsResponse{Today: toStatsDay(hourly.Today)}
		if hourly.Tomorrow != nil {
			resp.Tomorrow = toStatsDay(hourly.Tomorrow)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("encoding stats response", slog.Any("error", err))
		}
	}
}

type gasStatsResponse struct {
	Today    decimal.Decimal              `json:"today"`
	Tomorrow maybe.Maybe[decimal.Decimal] `json:"tomorrow"`
}

// NewGasStatsHandler serves the daily gas value around now. Today's value
// falls back to yesterday's while today's has not been published.
func NewGasStatsHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		from := hours.FromNow().Sub(48)
		rows, err := db.GetSpotPricesFrom(r.Context(), database.ProductGas, from)
		if err != nil {
			logger.Error("handling gas stats request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		series := make(types.RateSeries, len(rows))
		for _, row := range rows {
			series[row.When.Time()] = row.Price
		}

		daily := stats.NewDailyStats(series, hours.Prague(), time.Now())
		today, err := daily.Today()
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(gasStatsResponse{Today: today, Tomorrow: daily.Tomorrow()}); err != nil {
			logger.Error("encoding gas stats response", slog.Any("error", err))
		}
	}
}

func toStatsDay(day *stats.Day) *statsDay {
	return &statsDay{
		CheapestHour:      toStatsHour(day.CheapestHour()),
		MostExpensiveHour: toStatsHour(day.MostExpensiveHour()),
		NoOfHours:         len(day.Hours),
	}
}

func toStatsHour(hour *stats.Hour) *statsHour {
	if hour == nil {
		return nil
	}
	dh := hours.FromTime(hour.UTC)
	return &statsHour{
		Hour:                     dh.IsoString(),
		LocalHour:                dh.LocalizedString(),
		Price:                    hour.Price,
		CheapestConsecutiveOrder: hour.CheapestConsecutiveOrder,
	}
}
