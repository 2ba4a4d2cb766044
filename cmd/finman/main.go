package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"finman/internal/backend"
	"finman/internal/cli"
	"finman/internal/console"
	"finman/internal/log"
	"finman/internal/services"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	sessionID := uuid.NewString()
	logger = logger.With(log.FieldSessionID, sessionID)

	ctx, stop := signal.NotifyContext(log.WithContext(context.Background(), logger), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg, sessionID)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, log.FieldBackend, backendCfg.Type)
		os.Exit(1)
	}

	ledger := services.NewLedger(result.Journal, result.Publisher, logger)
	session := console.NewSession(ledger, os.Stdin, os.Stdout, logger)

	logger.Info("Starting finman session",
		log.FieldOperation, log.OpStartup,
		log.FieldBackend, backendCfg.Type,
		"amqp_enabled", result.Publisher != nil)

	g, gctx := errgroup.WithContext(ctx)
	sessionDone := make(chan struct{})
	g.Go(func() error {
		defer close(sessionDone)
		return session.Run(gctx)
	})
	g.Go(func() error {
		select {
		case <-sessionDone:
		case <-gctx.Done():
			logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)
		}
		return nil
	})

	err = g.Wait()

	if result.Cleanup != nil {
		if cerr := result.Cleanup(); cerr != nil {
			logger.Error("Cleanup failed", log.FieldError, cerr)
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Session failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Session finished", log.FieldOperation, log.OpShutdown, log.FieldBalance, ledger.CurrentBalance())
}
