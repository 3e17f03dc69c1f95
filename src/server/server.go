package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"tradingjournal/src/handler"
	"tradingjournal/src/risk"
)

// NewRouter builds the journal's route surface. Route names are part of the
// contract consumed by the dashboard UI.
func NewRouter(riskSettings *risk.Settings) *chi.Mux {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("\"/healthcheck\" error")
		}
	})

	// Risk fraction
	r.Post("/set_risk", handler.SetRiskHandler(riskSettings))
	r.Get("/get_risk", handler.GetRiskHandler(riskSettings))

	// Reference data
	r.Post("/add_trade_setup", handler.DefaultAddSetupsHandler())
	r.Get("/get_trade_setups", handler.DefaultGetSetupsHandler())
	r.Delete("/delete_trade_setup", handler.DefaultDeleteSetupHandler())
	r.Post("/add_market", handler.DefaultAddMarketsHandler())
	r.Get("/get_markets", handler.DefaultGetMarketsHandler())
	r.Delete("/delete_market", handler.DefaultDeleteMarketHandler())

	// Trade ledger
	r.Post("/add_trade", handler.DefaultAddTradesHandler())
	r.Get("/get_trades", handler.DefaultGetTradesHandler())
	r.Delete("/delete_trade/{id}", handler.DefaultDeleteTradeHandler())
	r.Get("/metrics", handler.DefaultMetricsHandler())
	r.Get("/get_balance_log", handler.DefaultGetBalanceLogHandler())

	// Transactions
	r.Post("/add_deposit", handler.DefaultAddDepositHandler())
	r.Post("/add_withdrawal", handler.DefaultAddWithdrawalHandler())
	r.Get("/get_transactions", handler.DefaultGetTransactionsHandler())

	return r
}

// StartServer runs the HTTP server until SIGINT or SIGTERM.
func StartServer(port string, riskSettings *risk.Settings) {
	// Server setup
	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: NewRouter(riskSettings),
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}

// requestIDMiddleware tags every request with a uuid so log lines from one
// call can be correlated.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		}).Debug("Handling request")

		next.ServeHTTP(w, r)
	})
}
