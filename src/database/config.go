package database

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"debug"` // Expected to hold values like "debug", "info", "warn", "error"
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"` // Expected to hold values like "json" or "text"

	// DatabasePath is the sqlite database file. ":memory:" works for local
	// experiments but loses everything on exit.
	DatabasePath string `envconfig:"DATABASE_PATH" default:"trading_journal.db"`
	GormLogLevel int    `envconfig:"GORM_LOG_LEVEL" default:"2"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
