package handler

import (
	"net/http"

	logger "github.com/sirupsen/logrus"

	"tradingjournal/src/metrics"
	"tradingjournal/src/repository"
)

// MetricsHandler recomputes the aggregate summary from the full trade ledger
// on every call. No aggregate state is persisted anywhere.
func MetricsHandler(repo tradeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trades, err := repo.FindAll(r.Context())
		if err != nil {
			logger.WithError(err).Error("failed to load trades for metrics")
			respondError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		summary := metrics.Compute(trades)
		if summary == nil {
			respondJSON(w, http.StatusOK, map[string]string{
				"message": "No trades available to calculate metrics",
			})
			return
		}

		respondJSON(w, http.StatusOK, summary)
	}
}

// DefaultMetricsHandler wires the handler to the production repository implementation.
func DefaultMetricsHandler() http.HandlerFunc {
	return MetricsHandler(repository.NewTradeRepository())
}
