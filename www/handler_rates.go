package www

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mdolezal/czspot-go/database"
	"github.com/mdolezal/czspot-go/hours"
)

type rateEntry struct {
	Hour      string          `json:"hour"`
	LocalHour string          `json:"localHour"`
	Price     decimal.Decimal `json:"price"`
}

func NewRatesHandler(logger *slog.Logger, db *database.Database, product string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			from := hours.FromNow().Sub(intOrDefault(r.URL, "hours", 24))

			rows, err := db.GetSpotPricesFrom(r.Context(), product, from)
			if err != nil {
				logger.Error("handling rates request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			entries := make([]rateEntry, 0, len(rows))
			for _, row := range rows {
				entries = append(entries, rateEntry{
					Hour:      row.When.IsoString(),
					LocalHour: row.When.LocalizedString(),
					Price:     row.Price,
				})
			}

			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(entries); err != nil {
				logger.Error("encoding rates response", slog.Any("error", err))
			}
		default:
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	}
}
