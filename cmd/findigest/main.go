package main

import (
	"context"
	"os"

	"github.com/deusflow/findigest/internal/app"
	"github.com/deusflow/findigest/internal/config"
	"github.com/deusflow/findigest/internal/logger"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	if err := app.New(cfg).Run(context.Background()); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}
