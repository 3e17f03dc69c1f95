package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradingjournal/src/database"
	"tradingjournal/src/model"
)

// ErrInsufficientBalance is returned when a withdrawal would drive the
// account balance negative. No transaction row is persisted in that case.
var ErrInsufficientBalance = errors.New("withdrawal would result in negative balance")

// TransactionRepository handles standalone deposits and withdrawals.
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new repository instance using the main database.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *TransactionRepository) WithDB(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// CreateDeposit stores a positive deposit transaction. Amount validation
// (numeric, > 0) happens at the boundary.
func (r *TransactionRepository) CreateDeposit(ctx context.Context, amount float64) (*model.Transaction, error) {
	deposit := model.Transaction{
		Amount: amount,
		Date:   time.Now().UTC(),
		Type:   model.TransactionTypeDeposit,
	}

	if err := r.db.WithContext(ctx).Create(&deposit).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":   "TransactionRepository",
			"op":     "CreateDeposit",
			"amount": amount,
		}).WithError(err).Error("Failed to create deposit")

		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":   "TransactionRepository",
		"op":     "CreateDeposit",
		"id":     deposit.ID,
		"amount": amount,
	}).Info("Deposit created successfully")

	return &deposit, nil
}

// RecordWithdrawal stores a withdrawal with a negated amount AND patches the
// most recent trade's account_balance to the new balance. That side effect
// bypasses the normal append chain on purpose: it is how the original system
// made withdrawals visible on the balance chart. Returns the new balance, or
// ErrInsufficientBalance (with nothing persisted) when the balance would go
// negative.
func (r *TransactionRepository) RecordWithdrawal(ctx context.Context, amount float64) (float64, error) {
	var newBalance float64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		last, err := findLastTrade(tx)
		if err != nil {
			return err
		}

		current := decimal.Zero
		if last != nil && last.AccountBalance != nil {
			current = decimal.NewFromFloat(*last.AccountBalance)
		}

		remaining := current.Sub(decimal.NewFromFloat(amount))
		if remaining.IsNegative() {
			return ErrInsufficientBalance
		}
		newBalance = remaining.InexactFloat64()

		withdrawal := model.Transaction{
			Amount: -amount,
			Date:   time.Now().UTC(),
			Type:   model.TransactionTypeWithdrawal,
		}
		if err := tx.Create(&withdrawal).Error; err != nil {
			return err
		}

		if last != nil {
			if err := tx.
				Model(&model.Trade{}).
				Where("id = ?", last.ID).
				Update("account_balance", newBalance).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientBalance) {
			logger.WithFields(map[string]interface{}{
				"repo":   "TransactionRepository",
				"op":     "RecordWithdrawal",
				"amount": amount,
			}).WithError(err).Error("Failed to record withdrawal")
		}
		return 0, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "TransactionRepository",
		"op":          "RecordWithdrawal",
		"amount":      amount,
		"new_balance": newBalance,
	}).Info("Withdrawal recorded successfully")

	return newBalance, nil
}

// FindAll returns every transaction, all kinds, in storage order.
func (r *TransactionRepository) FindAll(ctx context.Context) ([]model.Transaction, error) {
	var transactions []model.Transaction

	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&transactions).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TransactionRepository",
			"op":   "FindAll",
		}).WithError(err).Error("Failed to fetch transactions")

		return nil, err
	}

	return transactions, nil
}
