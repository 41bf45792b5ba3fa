package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"deal_radar/internal/application"
	"deal_radar/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := application.Run(ctx, os.Stdout); err != nil {
		logx.NewLogger(os.Stderr, os.Getenv("LOG_LEVEL")).Error("application failed", logx.Error(err))
		cancel()
		os.Exit(1) //nolint:gocritic
	}
}
