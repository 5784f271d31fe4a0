package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/jobboard/internal/buildinfo"
	"github.com/dmitrijs2005/jobboard/internal/client/cli"
	"github.com/dmitrijs2005/jobboard/internal/client/config"
	"github.com/dmitrijs2005/jobboard/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
