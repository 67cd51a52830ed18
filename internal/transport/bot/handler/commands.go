package handler

import (
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/value"
)

const startMessage = `👋 <b>Value engine online</b>

Alerts land here with ✅ Played / 🚫 Skipped buttons.

/status — engine settings and queue
/stats — last 7 days performance
/pending — bets awaiting a decision`

const statsDays = 7

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, startMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	depth, err := h.queue.Depth(ctx)
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, "❌ Queue unreachable: "+err.Error())
	}

	bets, err := h.bets.ActiveBets(ctx)
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, "❌ Bet store unreachable: "+err.Error())
	}

	var pending, played int

	for _, bet := range bets {
		switch bet.Status {
		case value.StatusPending:
			pending++
		case value.StatusPlayed:
			played++
		}
	}

	text := fmt.Sprintf(`📊 <b>Engine status</b>

📬 <b>Queue:</b> %d queued
⏳ <b>Pending:</b> %d
🎯 <b>Played:</b> %d

📐 <b>Edge window:</b> %.1f%% – %.1f%%
⚖️ <b>Fair method:</b> %s
🔁 <b>Scan every:</b> %s
📖 <b>Books:</b> %s
🧠 <b>Sharps:</b> %s`,
		depth,
		pending,
		played,
		h.settings.MinEdgePercent, h.settings.MaxEdgePercent,
		h.settings.FairMethod,
		h.settings.ScanInterval,
		strings.Join(h.settings.BettableBooks, ", "),
		strings.Join(h.settings.SharpBooks, ", "),
	)

	return h.sendHTML(ctx, msg.Chat.ID, text)
}

func (h *Handler) OnStats(ctx *th.Context, msg telego.Message) error {
	stats, err := h.bets.Stats(ctx, statsDays)
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, "❌ Stats unavailable: "+err.Error())
	}

	if len(stats) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, "📈 No settled bets in the last 7 days.")
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📈 <b>Last %d days</b>\n\n", statsDays))

	var total entity.DailyStats

	for _, day := range stats {
		sb.WriteString(fmt.Sprintf("<code>%s</code>  %dW-%dL-%dP  %+.2f\n",
			day.Date.Format("02.01"), day.Won, day.Lost, day.Pushed, day.Profit))

		total.Total += day.Total
		total.Played += day.Played
		total.Won += day.Won
		total.Lost += day.Lost
		total.Pushed += day.Pushed
		total.Staked += day.Staked
		total.Profit += day.Profit
	}

	sb.WriteString(fmt.Sprintf(`
🎯 <b>Played:</b> %d of %d alerts
✅ <b>Record:</b> %dW-%dL-%dP
💰 <b>Staked:</b> %.2f
📊 <b>Profit:</b> %+.2f (ROI %.1f%%)`,
		total.Played, total.Total,
		total.Won, total.Lost, total.Pushed,
		total.Staked,
		total.Profit, total.ROI(),
	))

	return h.sendHTML(ctx, msg.Chat.ID, sb.String())
}

func (h *Handler) OnPending(ctx *th.Context, msg telego.Message) error {
	bets, err := h.bets.ActiveBets(ctx)
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, "❌ Bet store unreachable: "+err.Error())
	}

	var sb strings.Builder

	count := 0

	for _, bet := range bets {
		if bet.Status != value.StatusPending {
			continue
		}

		count++

		sb.WriteString(fmt.Sprintf("%d. <b>%s</b> — %s %s @ %.2f (%s, +%.1f%%)\n",
			count, bet.Fixture, bet.Market, bet.Selection, bet.Odds, bet.Bookmaker, bet.EdgePercent))
	}

	if count == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, "⏳ Nothing pending.")
	}

	return h.sendHTML(ctx, msg.Chat.ID,
		fmt.Sprintf("⏳ <b>Pending bets (%d):</b>\n\n%s", count, sb.String()))
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})

	return err
}
