package main

import (
	"os"

	"github.com/kabachok/dropclient/internal/cli"
	"github.com/kabachok/dropclient/internal/config"
	"github.com/kabachok/dropclient/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.InitLogger(logger.DefaultConfig())
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	initLogger(cfg)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
