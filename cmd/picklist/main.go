package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"picklist/internal/config"
	"picklist/internal/logging"
	"picklist/internal/storage"
)

// app holds what every subcommand shares. It is filled in by the root
// command's PersistentPreRunE and closed by the caller of Execute.
type app struct {
	cfg    config.Config
	db     *storage.DB
	logger *zap.Logger
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := &app{}
	err := newRootCmd(a).ExecuteContext(ctx)
	if closeErr := a.close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cancel()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "picklist",
		Short:         "Sync open storefront orders and build the warehouse pick list",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}

	root.AddCommand(
		newSyncCmd(a),
		newPickListCmd(a),
		newOrdersCmd(a),
		newNotesCmd(a),
		newNormalizeCmd(a),
		newStatusCmd(a),
	)
	return root
}

func (a *app) open() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
		Env:    cfg.AppEnv,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = logger

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.db = db
	return nil
}

func (a *app) close() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.db != nil {
		err := a.db.Close()
		a.db = nil
		return err
	}
	return nil
}
