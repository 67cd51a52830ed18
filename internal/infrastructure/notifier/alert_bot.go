// Package notifier delivers bet alerts to the Telegram target chat and
// keeps their messages in sync with the bet lifecycle.
package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"valuebet/internal/domain"
	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/value"
	"valuebet/pkg/errcodes"
)

type AlertBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewAlertBot(token string, chatID int64) (*AlertBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return &AlertBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// SendAlert dispatches the bet with played/skipped action buttons and
// returns the reference of the created message.
func (b *AlertBot) SendAlert(ctx context.Context, bet entity.TrackedBet) (entity.MessageRef, error) {
	msg := tu.Message(tu.ID(b.chatID), FormatAlert(bet)).
		WithParseMode(telego.ModeHTML).
		WithReplyMarkup(ActionKeyboard(bet.ID))

	sent, err := b.bot.SendMessage(ctx, msg)
	if err != nil {
		return entity.MessageRef{}, domain.WrapError(err, errcodes.TransportError, "send alert for bet "+bet.ID)
	}

	return entity.MessageRef{
		ChatID:    sent.Chat.ID,
		MessageID: sent.MessageID,
	}, nil
}

// UpdateAlert rewrites the alert message with the bet's current outcome and
// drops its action buttons.
func (b *AlertBot) UpdateAlert(ctx context.Context, bet entity.TrackedBet) error {
	return b.EditMessage(ctx, bet.Message, FormatOutcome(bet))
}

// DeleteAlert removes the alert message entirely.
func (b *AlertBot) DeleteAlert(ctx context.Context, ref entity.MessageRef) error {
	return b.DeleteMessage(ctx, ref)
}

// EditMessage replaces the alert text and drops its action buttons.
func (b *AlertBot) EditMessage(ctx context.Context, ref entity.MessageRef, text string) error {
	if ref.Zero() {
		return nil
	}

	_, err := b.bot.EditMessageText(ctx, &telego.EditMessageTextParams{
		ChatID:    tu.ID(ref.ChatID),
		MessageID: ref.MessageID,
		Text:      text,
		ParseMode: telego.ModeHTML,
	})
	if err != nil {
		return domain.WrapError(err, errcodes.TransportError, "edit alert message")
	}

	return nil
}

func (b *AlertBot) DeleteMessage(ctx context.Context, ref entity.MessageRef) error {
	if ref.Zero() {
		return nil
	}

	err := b.bot.DeleteMessage(ctx, &telego.DeleteMessageParams{
		ChatID:    tu.ID(ref.ChatID),
		MessageID: ref.MessageID,
	})
	if err != nil {
		return domain.WrapError(err, errcodes.TransportError, "delete alert message")
	}

	return nil
}

// SendText posts a plain service message to the target chat.
func (b *AlertBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return domain.WrapError(err, errcodes.TransportError, "send text")
	}

	return nil
}

// ActionKeyboard builds the played/skipped buttons. Callback data is
// "<action>:<betID>".
func ActionKeyboard(betID string) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(
			tu.InlineKeyboardButton("✅ Played").
				WithCallbackData(value.ActionPlayed.String()+":"+betID),
			tu.InlineKeyboardButton("🚫 Skipped").
				WithCallbackData(value.ActionSkipped.String()+":"+betID),
		),
	)
}
