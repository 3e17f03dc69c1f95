package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"tradingjournal/src/database"
	"tradingjournal/src/risk"
	"tradingjournal/src/server"
)

func SetupLogger() {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))

	level, err := logger.ParseLevel(levelStr)
	if err != nil {
		level = logger.DebugLevel
	}

	logger.SetLevel(level)
	logger.SetFormatter(&logger.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	SetupLogger()
	defer handlePanic()

	if err := database.InitMainDB(); err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	// In-memory risk fraction. Resets to the default on restart.
	riskSettings := risk.NewSettings()

	server.StartServer(server.GetConfig().Port, riskSettings)
}

func handlePanic() {
	if r := recover(); r != nil {
		logger.WithError(fmt.Errorf("%+v", r)).Error("Application trading-journal panic")
	}
	//nolint
	time.Sleep(time.Second * 5)
}
