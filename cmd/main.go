package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/scout/internal/services"
	"github.com/desertthunder/scout/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	catalog := services.NewFootballDataService(config.API.BaseURL, config.API.Token, nil)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: catalog,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "scout",
		Usage:    "Scan upcoming football fixtures for form streaks inside an odds band",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
