// Package bot runs the Telegram long-polling loop that lets operators act
// on alerts and query the engine.
package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"valuebet/internal/config"
	"valuebet/internal/transport/bot/handler"
	"valuebet/pkg/contextx"
	"valuebet/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Bot struct {
	bot        *telego.Bot
	botHandler *th.BotHandler
}

func New(ctx context.Context, cfg config.Telegram, commandHandler *handler.Handler) (*Bot, error) {
	bot, err := telego.NewBot(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	updates, err := bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: 60,
	})
	if err != nil {
		return nil, fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(bot, updates)
	if err != nil {
		return nil, fmt.Errorf("th.NewBotHandler: %w", err)
	}

	commandHandler.RegisterRoutes(botHandler, cfg.AdminIDs)

	return &Bot{
		bot:        bot,
		botHandler: botHandler,
	}, nil
}

// Run processes updates until the context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	go func() {
		if err := b.botHandler.Start(); err != nil {
			logger(ctx).Error("bot handler start", logx.Error(err))
		}
	}()

	logger(ctx).Info("telegram bot started")

	<-ctx.Done()

	if err := b.botHandler.Stop(); err != nil {
		logger(ctx).Error("bot handler stop", logx.Error(err))
	}

	return ctx.Err()
}
