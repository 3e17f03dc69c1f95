package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"gorm.io/gorm"

	"tradingjournal/src/database"
	"tradingjournal/src/model"
)

func main() {
	app := cli.NewApp()
	app.Name = "initdb"
	app.Usage = "recreate the trading journal database"

	app.Commands = []cli.Command{
		resetCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var resetCMD = cli.Command{
	Name:      "reset",
	Usage:     "drop all tables, migrate the schema, optionally seed sample data",
	Action:    resetAction,
	ArgsUsage: "",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "database",
			Usage: "sqlite database file",
			Value: "trading_journal.db",
		},
		cli.BoolFlag{
			Name:  "seed",
			Usage: "populate sample markets and trade setups",
		},
	},
	Description: `Drops and recreates every journal table. All recorded trades,
transactions and balance snapshots are lost.`,
}

func resetAction(c *cli.Context) error {
	db, err := database.Open(c.String("database"), 1)
	if err != nil {
		return err
	}

	logrus.Info("Dropping all tables...")
	if err := db.Migrator().DropTable(
		&model.Market{},
		&model.TradeSetup{},
		&model.Trade{},
		&model.Transaction{},
		&model.AccountBalanceLog{},
	); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}

	logrus.Info("Creating tables...")
	if err := database.Migrate(db); err != nil {
		return err
	}

	if c.Bool("seed") {
		if err := seedSampleData(db); err != nil {
			return err
		}
		logrus.Info("Sample data added successfully")
	}

	logrus.Info("Database has been reset and initialized")
	return nil
}

func seedSampleData(db *gorm.DB) error {
	markets := []model.Market{
		{Name: "Forex"},
		{Name: "Stocks"},
		{Name: "Cryptocurrency"},
		{Name: "Options"},
	}
	setups := []model.TradeSetup{
		{Name: "Range Breakout", Description: "Setup for trading range breakouts."},
		{Name: "Swing Failure", Description: "Setup for identifying swing failure patterns."},
		{Name: "Trend Continuation", Description: "Setup for riding the trend."},
		{Name: "Order Blocks", Description: "Setup for trading based on order blocks."},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&markets).Error; err != nil {
			return err
		}
		return tx.Create(&setups).Error
	})
}
