package main

import (
	"github.com/osse101/HarvestBot_Go/internal/config"
	"github.com/osse101/HarvestBot_Go/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		logger.DefaultVersion,
		cfg.Environment,
		addSource,
	)

	logger.InitLogger(loggerConfig)
}
