package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradingjournal/src/database"
	"tradingjournal/src/ledger"
	"tradingjournal/src/model"
)

// TradeRepository handles the trade ledger: appends that extend the running
// balance chain, listing, and deletion.
type TradeRepository struct {
	db *gorm.DB

	// mu serializes appends. The balance chain is derived from the most
	// recently inserted trade, so the read-last/compute/insert sequence must
	// not interleave with another append.
	mu sync.Mutex
}

// NewTradeRepository creates a new repository instance using the main database.
func NewTradeRepository() *TradeRepository {
	return &TradeRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *TradeRepository) WithDB(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Append computes the derived fields for each input in order, so every trade
// in the batch builds on its predecessor's balance, and persists all of them
// plus the daily balance snapshots in one transaction. Returns the generated
// ids; on any error nothing is persisted.
func (r *TradeRepository) Append(ctx context.Context, inputs []ledger.Input) ([]uint, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	logger.WithFields(map[string]interface{}{
		"repo":  "TradeRepository",
		"op":    "Append",
		"count": len(inputs),
	}).Debug("Appending trades")

	var ids []uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		last, err := findLastTrade(tx)
		if err != nil {
			return err
		}
		chain := ledger.ChainFrom(last)

		for _, input := range inputs {
			trade, next := ledger.Compute(input, chain)
			if err := tx.Create(&trade).Error; err != nil {
				return err
			}

			balance := next.Balance.InexactFloat64()
			if err := upsertDailyBalance(tx, input.DateEntered, balance); err != nil {
				return err
			}

			ids = append(ids, trade.ID)
			chain = next
		}
		return nil
	})
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":  "TradeRepository",
			"op":    "Append",
			"count": len(inputs),
		}).WithError(err).Error("Failed to append trades")

		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":      "TradeRepository",
		"op":        "Append",
		"trade_ids": ids,
	}).Info("Trades appended successfully")

	return ids, nil
}

// FindAll returns every trade ordered by id with the market and setup
// relations preloaded.
func (r *TradeRepository) FindAll(ctx context.Context) ([]model.Trade, error) {
	var trades []model.Trade

	err := r.db.WithContext(ctx).
		Preload("Market").
		Preload("TradeSetup").
		Order("id ASC").
		Find(&trades).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "FindAll",
		}).WithError(err).Error("Failed to fetch trades")

		return nil, err
	}

	return trades, nil
}

// FindLast returns the most recently inserted trade, or (nil, nil) when the
// ledger is empty.
func (r *TradeRepository) FindLast(ctx context.Context) (*model.Trade, error) {
	return findLastTrade(r.db.WithContext(ctx))
}

// DeleteByID removes a trade. Returns gorm.ErrRecordNotFound when the id does
// not exist. Balances of later trades are NOT recomputed; the chain keeps the
// deleted trade's contribution baked in.
func (r *TradeRepository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Trade{}, id)
	if result.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "DeleteByID",
			"id":   id,
		}).WithError(result.Error).Error("Failed to delete trade")

		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("trade %d: %w", id, gorm.ErrRecordNotFound)
	}

	logger.WithFields(map[string]interface{}{
		"repo": "TradeRepository",
		"op":   "DeleteByID",
		"id":   id,
	}).Info("Trade deleted successfully")

	return nil
}

func findLastTrade(db *gorm.DB) (*model.Trade, error) {
	var trade model.Trade

	err := db.Order("id DESC").First(&trade).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trade, nil
}
