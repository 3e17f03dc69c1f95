package repository

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradingjournal/src/database"
	"tradingjournal/src/model"
)

// BalanceLogRepository handles the daily account-balance snapshots.
type BalanceLogRepository struct {
	db *gorm.DB
}

// NewBalanceLogRepository creates a new repository instance using the main database.
func NewBalanceLogRepository() *BalanceLogRepository {
	return &BalanceLogRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *BalanceLogRepository) WithDB(db *gorm.DB) *BalanceLogRepository {
	return &BalanceLogRepository{db: db}
}

// Upsert writes the balance for the given calendar date, overwriting any
// existing row for that date. Never deletes.
func (r *BalanceLogRepository) Upsert(ctx context.Context, date time.Time, balance float64) error {
	return upsertDailyBalance(r.db.WithContext(ctx), date, balance)
}

// FindAll returns the snapshots ordered by date, for charting.
func (r *BalanceLogRepository) FindAll(ctx context.Context) ([]model.AccountBalanceLog, error) {
	var logs []model.AccountBalanceLog

	err := r.db.WithContext(ctx).
		Order("date ASC").
		Find(&logs).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "BalanceLogRepository",
			"op":   "FindAll",
		}).WithError(err).Error("Failed to fetch balance log")

		return nil, err
	}

	return logs, nil
}

// upsertDailyBalance is shared with the trade append transaction, which
// writes through the daily snapshot on the same tx as the trade rows.
func upsertDailyBalance(db *gorm.DB, date time.Time, balance float64) error {
	entry := model.AccountBalanceLog{
		Date:    truncateToDay(date),
		Balance: balance,
	}

	// On conflict on the unique date column, overwrite the balance.
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"balance"}),
	}).Create(&entry).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":    "BalanceLogRepository",
			"op":      "Upsert",
			"date":    entry.Date,
			"balance": balance,
		}).WithError(err).Error("Failed to upsert daily balance")

		return err
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
