package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-catalog-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/shell/paymentgateway"
)

func main() {
	cfg := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	if err := config.LoadEnv(); err != nil {
		logger.Warn("ignoring unreadable .env file", "error", err)
	}

	if err := run(ctx, cfg, handler, logger); err != nil {
		logger.Error("circulation demo failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, handler slog.Handler, logger *slog.Logger) (err error) {
	obs, err := newObservers(ctx, cfg, handler)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, obs.shutdown())
	}()

	store, closeStore, err := openStore(ctx, cfg, obs)
	if err != nil {
		return err
	}

	defer closeStore()

	gateway, err := paymentgateway.NewGateway(paymentgateway.WithContextualLogger(obs.contextualLogger))
	if err != nil {
		return err
	}

	desk, err := NewDesk(store, gateway, obs, logger)
	if err != nil {
		return err
	}

	logger.Info("circulation demo started", "engine", cfg.Engine, "observability", cfg.ObservabilityEnabled)

	report, err := desk.Run(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	reportJSON, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	ledgerJSON, err := gateway.LedgerJSON()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(os.Stdout, "patron status:\n%s\n\npayment ledger:\n%s\n", reportJSON, ledgerJSON)

	return err
}
