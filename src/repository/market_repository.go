package repository

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradingjournal/src/database"
	"tradingjournal/src/model"
)

// MarketRepository handles read/write operations for markets.
type MarketRepository struct {
	db *gorm.DB
}

// NewMarketRepository creates a new repository instance using the main database.
func NewMarketRepository() *MarketRepository {
	return &MarketRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *MarketRepository) WithDB(db *gorm.DB) *MarketRepository {
	return &MarketRepository{db: db}
}

// CreateAll inserts the given markets in one transaction. All of them get
// their generated IDs filled in, or none are persisted.
func (r *MarketRepository) CreateAll(
	ctx context.Context,
	markets []*model.Market,
) error {

	logger.WithFields(map[string]interface{}{
		"repo":  "MarketRepository",
		"op":    "CreateAll",
		"count": len(markets),
	}).Debug("Creating markets")

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, market := range markets {
			if err := tx.Create(market).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "MarketRepository",
			"op":   "CreateAll",
		}).WithError(err).Error("Failed to create markets")

		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":  "MarketRepository",
		"op":    "CreateAll",
		"count": len(markets),
	}).Info("Markets created successfully")

	return nil
}

// FindAll returns every market ordered by id.
func (r *MarketRepository) FindAll(ctx context.Context) ([]model.Market, error) {
	var markets []model.Market

	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&markets).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "MarketRepository",
			"op":   "FindAll",
		}).WithError(err).Error("Failed to fetch markets")

		return nil, err
	}

	return markets, nil
}

// DeleteByID removes a market. Returns gorm.ErrRecordNotFound when the id
// does not exist. Trades referencing the market are left in place and
// resolve to "Unknown" at read time.
func (r *MarketRepository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Market{}, id)
	if result.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "MarketRepository",
			"op":   "DeleteByID",
			"id":   id,
		}).WithError(result.Error).Error("Failed to delete market")

		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("market %d: %w", id, gorm.ErrRecordNotFound)
	}

	logger.WithFields(map[string]interface{}{
		"repo": "MarketRepository",
		"op":   "DeleteByID",
		"id":   id,
	}).Info("Market deleted successfully")

	return nil
}
