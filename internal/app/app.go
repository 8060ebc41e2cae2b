package app

import (
	"context"
	"errors"

	"github.com/orgball2608/social-detail-bot/internal/api"
	"github.com/orgball2608/social-detail-bot/internal/api/apiimpl"
	"github.com/orgball2608/social-detail-bot/internal/api/httpapi"
	"github.com/orgball2608/social-detail-bot/internal/backfill"
	"github.com/orgball2608/social-detail-bot/internal/command"
	"github.com/orgball2608/social-detail-bot/internal/command/commandimpl"
	"github.com/orgball2608/social-detail-bot/internal/detail"
	"github.com/orgball2608/social-detail-bot/internal/ratelimit"
	repositories "github.com/orgball2608/social-detail-bot/internal/repositories/fx"
	"github.com/orgball2608/social-detail-bot/internal/server"
	"github.com/orgball2608/social-detail-bot/internal/telegram"
	"github.com/orgball2608/social-detail-bot/internal/telegram/telegramimpl"
	"github.com/orgball2608/social-detail-bot/internal/uniqueid"
	"github.com/orgball2608/social-detail-bot/pkg/config"
	"github.com/orgball2608/social-detail-bot/pkg/logger"
	"github.com/orgball2608/social-detail-bot/pkg/pgx"
	"go.uber.org/fx"
)

// Module wires what every deployment needs: configuration, logging, the
// detail resolver and the HTTP endpoint.
var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		detail.New,
		server.New,
	),
	fx.Invoke(func(*server.Server) {}),
)

// postgresModule reads users and posts straight from the database and keeps
// their unique ids filled in.
var postgresModule = fx.Options(
	fx.Provide(
		pgx.New,
		uniqueid.NewGenerator,
		backfill.New,
		fx.Annotate(
			apiimpl.New,
			fx.As(new(api.Client)),
		),
	),
	repositories.Module,
	fx.Invoke(scheduleBackfill),
)

var httpModule = fx.Provide(
	fx.Annotate(
		httpapi.New,
		fx.As(new(api.Client)),
	),
)

// SourceModule selects the api.Client implementation for cfg.API.Source.
func SourceModule(source string) fx.Option {
	if source == config.SourceHTTP {
		return httpModule
	}
	return postgresModule
}

// BotModule runs the Telegram command handler.
var BotModule = fx.Options(
	fx.Provide(
		ratelimit.New,
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		),
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
	),
	fx.Invoke(runBot),
)

func scheduleBackfill(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, b *backfill.Backfill) {
	if !cfg.Backfill.Enabled {
		log.Info("Unique id backfill disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return b.Schedule(ctx)
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func runBot(lc fx.Lifecycle, log logger.Logger, cmdClient command.Client) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := cmdClient.HandleCommand(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("Command handler stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
