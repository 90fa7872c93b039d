package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/remood/internal/buildinfo"
	"github.com/dmitrijs2005/remood/internal/client/cli"
	"github.com/dmitrijs2005/remood/internal/client/config"
	"github.com/dmitrijs2005/remood/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stderr)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
