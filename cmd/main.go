package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"valuebet/internal/application"
	"valuebet/pkg/contextx"
	"valuebet/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{ //nolint:exhaustruct
		Level:      slog.LevelDebug,
		TimeFormat: time.TimeOnly,
	}))
	slog.SetDefault(logger)

	ctx = contextx.WithLogger(ctx, logger)

	if err := application.Run(ctx); err != nil {
		logger.Error("application failed", logx.Error(err))
		os.Exit(1)
	}

	logger.Info("application stopped")
}
