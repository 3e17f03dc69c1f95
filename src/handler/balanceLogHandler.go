package handler

import (
	"context"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"tradingjournal/src/model"
	"tradingjournal/src/repository"
)

type balanceLogLister interface {
	FindAll(ctx context.Context) ([]model.AccountBalanceLog, error)
}

// GetBalanceLogHandler returns the daily balance snapshots in date order, the
// series the balance chart is drawn from.
func GetBalanceLogHandler(repo balanceLogLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logs, err := repo.FindAll(r.Context())
		if err != nil {
			logger.WithError(err).Error("failed to list balance log")
			respondError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		records := make([]map[string]interface{}, len(logs))
		for i, entry := range logs {
			records[i] = map[string]interface{}{
				"id":      entry.ID,
				"date":    entry.Date.Format("2006-01-02"),
				"balance": entry.Balance,
			}
		}
		respondJSON(w, http.StatusOK, records)
	}
}

// DefaultGetBalanceLogHandler wires the handler to the production repository implementation.
func DefaultGetBalanceLogHandler() http.HandlerFunc {
	return GetBalanceLogHandler(repository.NewBalanceLogRepository())
}
