package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"healthymeal/internal/app"
	"healthymeal/internal/cli"
	"healthymeal/internal/config"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger, err := newLogger(level)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeAndLog(application, logger)

	report := application.Start(ctx)
	logger.Debug("startup maintenance finished",
		zap.Int("repaired", report.Repaired),
		zap.Int("deleted", report.Deleted))

	return cli.NewRootCmd(application, level).ExecuteContext(ctx)
}

// closeAndLog closes c and logs a failure instead of dropping it.
func closeAndLog(c io.Closer, logger *zap.Logger) {
	if err := c.Close(); err != nil {
		logger.Warn("failed to close application", zap.Error(err))
	}
}

// newLogger writes to stderr: human-readable on a terminal, JSON otherwise.
func newLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
