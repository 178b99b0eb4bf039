package www

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mdolezal/czspot-go/config"
)

type sysInfo struct {
	Version  string `json:"version"`
	Currency string `json:"currency"`
	Unit     string `json:"unit"`
	Timezone string `json:"timezone"`
}

func NewSysInfoHandler(logger *slog.Logger, cnfg *config.AppConfig, version string) http.HandlerFunc {
	currency := "CZK"
	if cnfg.SpotPrice.InEur() {
		currency = "EUR"
	}
	info := sysInfo{
		Version:  version,
		Currency: currency,
		Unit:     cnfg.SpotPrice.GetUnit().String(),
		Timezone: cnfg.Gui.GetTimezone(),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(info); err != nil {
			logger.Error("encoding sys_info response", slog.Any("error", err))
		}
	}
}
