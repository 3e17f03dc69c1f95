package repository

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradingjournal/src/database"
	"tradingjournal/src/model"
)

// SetupRepository handles read/write operations for trade setups.
type SetupRepository struct {
	db *gorm.DB
}

// NewSetupRepository creates a new repository instance using the main database.
func NewSetupRepository() *SetupRepository {
	return &SetupRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *SetupRepository) WithDB(db *gorm.DB) *SetupRepository {
	return &SetupRepository{db: db}
}

// CreateAll inserts the given setups in one transaction, all-or-nothing.
func (r *SetupRepository) CreateAll(
	ctx context.Context,
	setups []*model.TradeSetup,
) error {

	logger.WithFields(map[string]interface{}{
		"repo":  "SetupRepository",
		"op":    "CreateAll",
		"count": len(setups),
	}).Debug("Creating trade setups")

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, setup := range setups {
			if err := tx.Create(setup).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "SetupRepository",
			"op":   "CreateAll",
		}).WithError(err).Error("Failed to create trade setups")

		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":  "SetupRepository",
		"op":    "CreateAll",
		"count": len(setups),
	}).Info("Trade setups created successfully")

	return nil
}

// FindAll returns every setup ordered by id.
func (r *SetupRepository) FindAll(ctx context.Context) ([]model.TradeSetup, error) {
	var setups []model.TradeSetup

	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&setups).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "SetupRepository",
			"op":   "FindAll",
		}).WithError(err).Error("Failed to fetch trade setups")

		return nil, err
	}

	return setups, nil
}

// DeleteByID removes a setup. Returns gorm.ErrRecordNotFound when the id does
// not exist.
func (r *SetupRepository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.TradeSetup{}, id)
	if result.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "SetupRepository",
			"op":   "DeleteByID",
			"id":   id,
		}).WithError(result.Error).Error("Failed to delete trade setup")

		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("trade setup %d: %w", id, gorm.ErrRecordNotFound)
	}

	logger.WithFields(map[string]interface{}{
		"repo": "SetupRepository",
		"op":   "DeleteByID",
		"id":   id,
	}).Info("Trade setup deleted successfully")

	return nil
}
