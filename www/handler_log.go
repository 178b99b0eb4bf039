package www

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mdolezal/czspot-go/database"
	"github.com/mdolezal/czspot-go/logging"
)

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Attrs     string `json:"attrs,omitempty"`
}

func NewLogHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		level := r.URL.Query().Get("level")
		var minLevel slog.Level
		if level != "" {
			minLevel = logging.LevelFromString(&level)
		}
		page := intOrDefault(r.URL, "page", 1)
		pageSize := intOrDefault(r.URL, "page_size", 50)

		rows, err := db.GetLogEntries(r.Context(), minLevel, page, pageSize)
		if err != nil {
			logger.Error("handling log request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		entries := make([]logEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, logEntry{
				Timestamp: row.Timestamp.Format(time.RFC3339),
				Level:     slog.Level(row.Level).String(),
				Message:   row.Message,
				Attrs:     row.Attrs,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			logger.Error("encoding log response", slog.Any("error", err))
		}
	}
}
