package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradingjournal/src/model"
)

// MainDB is the primary database connection used by the application.
var MainDB *gorm.DB

// InitMainDB initializes the database connection and runs migrations.
// This should be called once at application startup (e.g. in main()).
func InitMainDB() error {

	config := GetConfig()
	db, err := Open(config.DatabasePath, config.GormLogLevel)
	if err != nil {
		return err
	}

	// Assign to the global variable only after a successful connection.
	MainDB = db

	logrus.WithField("path", config.DatabasePath).Info("[database] MainDB connection established")

	if err := Migrate(MainDB); err != nil {
		return err
	}

	logrus.Info("[database] MainDB migrations completed")

	return nil
}

// Open opens a sqlite database at the given path with the journal's gorm
// settings. TranslateError maps driver errors onto gorm.ErrDuplicatedKey and
// friends so callers can branch on them.
func Open(path string, gormLogLevel int) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path),
		&gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.LogLevel(gormLogLevel)),
			// Reference rows may be deleted out from under trades; readers
			// substitute "Unknown" instead of the schema enforcing the link.
			DisableForeignKeyConstraintWhenMigrating: true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get DB from GORM: %w", err)
	}
	// sqlite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY churn under the request-per-call model.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return db, nil
}

// Migrate runs AutoMigrate for the full journal schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Market{},
		&model.TradeSetup{},
		&model.Trade{},
		&model.Transaction{},
		&model.AccountBalanceLog{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
