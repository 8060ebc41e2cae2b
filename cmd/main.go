package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/orgball2608/social-detail-bot/internal/app"
	"github.com/orgball2608/social-detail-bot/pkg/config"
	"github.com/orgball2608/social-detail-bot/pkg/logger"
	"go.uber.org/fx"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		logger.New(logger.Opts{}).Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(logger.Opts{Env: cfg.App.Env, SentryDSN: cfg.App.SentryUrl})

	options := []fx.Option{
		fx.Logger(log),
		app.Module,
		app.SourceModule(cfg.API.Source),
	}
	if cfg.Telegram.Token != "" {
		options = append(options, app.BotModule)
	} else {
		log.Info("TELEGRAM_TOKEN not set, bot disabled")
	}

	app := fx.New(options...)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	// Gracefully shutdown the application
	if err := app.Stop(context.Background()); err != nil {
		log.Error("Failed to stop application", "error", err)
		os.Exit(1)
	}
}
