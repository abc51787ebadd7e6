package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"picklist/internal/config"
	"picklist/internal/listener"
	"picklist/internal/logging"
	"picklist/internal/orders"
	"picklist/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)
	must(cfg.Require("SHIPPING_API_KEY", cfg.ShippingAPIKey))
	must(cfg.Require("SHIPPING_API_SECRET", cfg.ShippingAPISecret))

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cfg.LogOutput, Env: cfg.AppEnv})
	must(err)
	defer logger.Sync()

	catalog, err := config.LoadCatalog(cfg.StoresFile)
	must(err)

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	syncSvc := orders.NewSyncService(db, orders.NewClient(cfg), catalog, cfg, logger)
	svc := listener.NewService(syncSvc, cfg.SyncListenerIntervalSec, logger.Named("listener"))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil {
		logger.Error("listener stopped", zap.Error(err))
		os.Exit(1)
	}
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
