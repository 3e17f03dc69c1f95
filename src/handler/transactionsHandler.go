package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	logger "github.com/sirupsen/logrus"

	"tradingjournal/src/model"
	"tradingjournal/src/repository"
)

// transactionDateLayout matches the wire format the transaction list has
// always used, distinct from the trade timestamp layout.
const transactionDateLayout = "2006-01-02 15:04:05"

type depositCreator interface {
	CreateDeposit(ctx context.Context, amount float64) (*model.Transaction, error)
}

type withdrawalRecorder interface {
	RecordWithdrawal(ctx context.Context, amount float64) (float64, error)
}

type transactionLister interface {
	FindAll(ctx context.Context) ([]model.Transaction, error)
}

type amountRequest struct {
	Amount interface{} `json:"amount"`
}

// AddDepositHandler stores a deposit. The amount must be a positive number;
// numeric strings are accepted.
func AddDepositHandler(repo depositCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req amountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount == nil {
			respondError(w, http.StatusBadRequest, "Amount is required.")
			return
		}

		amount, ok := parseAmount(req.Amount)
		if !ok {
			respondError(w, http.StatusBadRequest, "Amount must be a valid number.")
			return
		}
		if amount <= 0 {
			respondError(w, http.StatusBadRequest, "Amount must be greater than 0.")
			return
		}

		if _, err := repo.CreateDeposit(r.Context(), amount); err != nil {
			logger.WithError(err).Error("failed to create deposit")
			respondError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{
			"message": "Deposit of " + strconv.FormatFloat(amount, 'f', -1, 64) + " added successfully!",
		})
	}
}

// AddWithdrawalHandler records a withdrawal against the latest trade's
// balance. Over-withdrawing is rejected and persists nothing.
func AddWithdrawalHandler(repo withdrawalRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req amountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount == nil {
			respondError(w, http.StatusBadRequest, "Invalid withdrawal amount")
			return
		}

		amount, ok := parseAmount(req.Amount)
		if !ok || amount <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid withdrawal amount")
			return
		}

		newBalance, err := repo.RecordWithdrawal(r.Context(), amount)
		if err != nil {
			if errors.Is(err, repository.ErrInsufficientBalance) {
				respondError(w, http.StatusBadRequest, "Withdrawal would result in negative balance")
				return
			}
			logger.WithError(err).Error("failed to record withdrawal")
			respondError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message":     "Withdrawal recorded successfully",
			"new_balance": newBalance,
		})
	}
}

// GetTransactionsHandler lists all transactions, deposits and withdrawals
// alike, in storage order.
func GetTransactionsHandler(repo transactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactions, err := repo.FindAll(r.Context())
		if err != nil {
			logger.WithError(err).Error("failed to list transactions")
			respondError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		records := make([]map[string]interface{}, len(transactions))
		for i, tx := range transactions {
			records[i] = map[string]interface{}{
				"id":     tx.ID,
				"amount": tx.Amount,
				"type":   tx.Type,
				"date":   tx.Date.Format(transactionDateLayout),
			}
		}
		respondJSON(w, http.StatusOK, records)
	}
}

// DefaultAddDepositHandler wires the handler to the production repository implementation.
func DefaultAddDepositHandler() http.HandlerFunc {
	return AddDepositHandler(repository.NewTransactionRepository())
}

// DefaultAddWithdrawalHandler wires the handler to the production repository implementation.
func DefaultAddWithdrawalHandler() http.HandlerFunc {
	return AddWithdrawalHandler(repository.NewTransactionRepository())
}

// DefaultGetTransactionsHandler wires the handler to the production repository implementation.
func DefaultGetTransactionsHandler() http.HandlerFunc {
	return GetTransactionsHandler(repository.NewTransactionRepository())
}
