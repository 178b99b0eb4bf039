package www

import (
	"log/slog"
	"net/http"

	"github.com/mdolezal/czspot-go/task"
)

// NewUpdateHandler triggers an out-of-schedule spot price fetch, e.g. after
// a failed scheduled run. The fetch runs in the background, the handler
// returns immediately.
func NewUpdateHandler(logger *slog.Logger, tasks *task.Tasks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		logger.Info("manual spot price update requested", slog.String("remoteAddr", r.RemoteAddr))
		go tasks.SpotPriceTask()

		w.WriteHeader(http.StatusAccepted)
	}
}
