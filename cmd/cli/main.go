package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/walletdash/walletdash/internal/buildinfo"
	"github.com/walletdash/walletdash/internal/client/cli"
	"github.com/walletdash/walletdash/internal/client/config"
	"github.com/walletdash/walletdash/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewJSON(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
