package handler

import (
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"valuebet/internal/domain"
	"valuebet/internal/domain/value"
	"valuebet/pkg/errcodes"
)

// OnBetAction handles the played/skipped buttons under an alert.
// Callback data is "<action>:<betID>".
func (h *Handler) OnBetAction(ctx *th.Context, query telego.CallbackQuery) error {
	rawAction, betID, found := strings.Cut(query.Data, ":")
	if !found {
		return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
			WithText("❌ Malformed action").WithShowAlert())
	}

	action, err := value.ParseUserAction(rawAction)
	if err != nil {
		return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
			WithText("❌ Unknown action").WithShowAlert())
	}

	bet, err := h.bets.RecordAction(ctx, betID, action, displayName(query.From))
	if err != nil {
		if domain.HasCode(err, errcodes.BetNotFound) {
			return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
				WithText("❌ Bet is gone").WithShowAlert())
		}

		_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
			WithText("❌ Failed, try again").WithShowAlert())

		return fmt.Errorf("bets.RecordAction: %w", err)
	}

	// Stale taps race the sweep and settle cycles; tell the operator what
	// the bet became instead.
	if bet.Status != action.Status() {
		return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
			WithText("Already " + bet.Status.String()))
	}

	text := "✅ Marked as played"
	if action == value.ActionSkipped {
		text = "🚫 Marked as skipped"
	}

	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).WithText(text))
}

func displayName(user telego.User) string {
	if user.Username != "" {
		return "@" + user.Username
	}

	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}
