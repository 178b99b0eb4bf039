package www

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mdolezal/czspot-go/config"
	"github.com/mdolezal/czspot-go/database"
	"github.com/mdolezal/czspot-go/task"
)

type Server struct {
	logger *slog.Logger
	config config.AppConfig
	db     *database.Database
	mux    *http.ServeMux
}

func StartServer(db *database.Database, tasks *task.Tasks, cnfg *config.AppConfig, version string) *Server {
	logger := slog.Default().With("module", "www")

	s := &Server{
		logger: logger,
		config: *cnfg,
		db:     db,
		mux:    http.NewServeMux(),
	}

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	s.mux.Handle("/api/rates/electricity", logReqMW(NewRatesHandler(
		logger.With(slog.String("handler", "rates_electricity")),
		s.db,
		database.ProductElectricity)))

	s.mux.Handle("/api/rates/gas", logReqMW(NewRatesHandler(
		logger.With(slog.String("handler", "rates_gas")),
		s.db,
		database.ProductGas)))

	s.mux.Handle("/api/stats/electricity", logReqMW(NewStatsHandler(
		logger.With(slog.String("handler", "stats_electricity")),
		s.db)))

	s.mux.Handle("/api/stats/gas", logReqMW(NewGasStatsHandler(
		logger.With(slog.String("handler", "stats_gas")),
		s.db)))

	s.mux.Handle("/api/sys_info", logReqMW(NewSysInfoHandler(
		logger.With(slog.String("handler", "sys_info")),
		cnfg,
		version)))

	s.mux.Handle("/api/log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")),
		s.db)))

	s.mux.Handle("/api/update", logReqMW(NewUpdateHandler(
		logger.With(slog.String("handler", "update")),
		tasks)))

	return s
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "port", s.config.Api.Port)
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.Api.Address, s.config.Api.Port),
		Handler: s.mux,
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	for {
		select {
		case err := <-srvErrors:
			if err != nil {
				s.logger.Error("server error", slog.Any("error", err))
			}

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return
		}
	}
}
