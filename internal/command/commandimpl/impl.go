package commandimpl

import (
	"github.com/orgball2608/social-detail-bot/internal/command"
	"github.com/orgball2608/social-detail-bot/internal/detail"
	"github.com/orgball2608/social-detail-bot/internal/ratelimit"
	"github.com/orgball2608/social-detail-bot/internal/telegram"
	"github.com/orgball2608/social-detail-bot/pkg/config"
	"github.com/orgball2608/social-detail-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Telegram telegram.Client
	Resolver *detail.Resolver
	Limiter  ratelimit.Limiter
	Logger   logger.Logger
	Config   *config.Config
}

type CommandImpl struct {
	Telegram telegram.Client
	Resolver *detail.Resolver
	Limiter  ratelimit.Limiter
	Logger   logger.Logger
	Config   *config.Config
}

func New(opts Opts) *CommandImpl {
	return &CommandImpl{
		Telegram: opts.Telegram,
		Resolver: opts.Resolver,
		Limiter:  opts.Limiter,
		Logger:   opts.Logger.WithComponent("CommandHandler"),
		Config:   opts.Config,
	}
}

var _ command.Client = (*CommandImpl)(nil)
