package notifier_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/value"
	"valuebet/internal/infrastructure/notifier"
)

func alertBet() entity.TrackedBet {
	return entity.TrackedBet{
		ID:          "b1",
		Fixture:     "Arsenal vs Chelsea",
		League:      "Premier League",
		Kickoff:     time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC),
		Market:      "Total Corners",
		Selection:   "Over 9.5",
		Bookmaker:   "betsson",
		Odds:        2.10,
		FairOdds:    1.90,
		EdgePercent: 10.53,
		Stake:       75,
		Status:      value.StatusPending,
	}
}

func TestFormatAlert(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	text := notifier.FormatAlert(alertBet())

	rq.Contains(text, "Value bet found")
	rq.Contains(text, "<b>10.5%</b>")
	rq.Contains(text, "🔷 <b>BETSSON</b>")
	rq.Contains(text, "⚽ Arsenal vs Chelsea")
	rq.Contains(text, "🏆 Premier League | 14.03 15:00")
	rq.Contains(text, "Market: <b>Total Corners</b>")
	rq.Contains(text, "⬆️ <b>Over 9.5</b>")
	rq.Contains(text, "Odds: <b>2.10</b> (fair 1.90)")
	rq.Contains(text, "Stake: <b>75.00</b>")

	// 10.53% of edge fills five blocks of ten
	rq.Contains(text, "▰▰▰▰▰░░░░░")
}

func TestFormatAlertUnknownBookAndKickoff(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	bet := alertBet()
	bet.Bookmaker = "pinnacle"
	bet.Kickoff = time.Time{}
	bet.Selection = "Under 9.5"

	text := notifier.FormatAlert(bet)

	rq.Contains(text, "⚪ <b>PINNACLE</b>")
	rq.Contains(text, "| TBD")
	rq.Contains(text, "⬇️ <b>Under 9.5</b>")
}

func TestFormatOutcome(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		bet  func() entity.TrackedBet
		want string
	}{
		{
			name: "won",
			bet: func() entity.TrackedBet {
				bet := alertBet()
				bet.Status = value.StatusWon
				bet.Profit = 82.5
				bet.ResultValue = 11

				return bet
			},
			want: "✅ <b>WON</b> +82.50 (result: 11)",
		},
		{
			name: "lost",
			bet: func() entity.TrackedBet {
				bet := alertBet()
				bet.Status = value.StatusLost
				bet.Profit = -75
				bet.ResultValue = 8

				return bet
			},
			want: "❌ <b>LOST</b> -75.00 (result: 8)",
		},
		{
			name: "push",
			bet: func() entity.TrackedBet {
				bet := alertBet()
				bet.Status = value.StatusPush
				bet.ResultValue = 9.5

				return bet
			},
			want: "➖ <b>PUSH</b> (result: 9.5)",
		},
		{
			name: "played",
			bet: func() entity.TrackedBet {
				bet := alertBet()
				bet.Status = value.StatusPlayed

				return bet
			},
			want: "🎯 <b>Played</b>",
		},
		{
			name: "skipped",
			bet: func() entity.TrackedBet {
				bet := alertBet()
				bet.Status = value.StatusSkipped

				return bet
			},
			want: "🚫 <b>Skipped</b>",
		},
		{
			name: "expired",
			bet: func() entity.TrackedBet {
				bet := alertBet()
				bet.Status = value.StatusExpired

				return bet
			},
			want: "⌛ <b>Expired</b> (kickoff passed)",
		},
		{
			name: "voided with reason",
			bet: func() entity.TrackedBet {
				bet := alertBet()
				bet.Status = value.StatusVoid
				bet.VoidReason = "edge decayed to 1.20% from 10.53%"

				return bet
			},
			want: "♻️ <b>Voided</b>: edge decayed to 1.20% from 10.53%",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			text := notifier.FormatOutcome(tc.bet())
			require.Contains(t, text, tc.want)

			// the outcome keeps the original alert on top
			require.Contains(t, text, "Value bet found")
		})
	}
}

func TestActionKeyboard(t *testing.T) {
	t.Parallel()
	rq := require.New(t)

	markup := notifier.ActionKeyboard("b1")

	rq.Len(markup.InlineKeyboard, 1)
	rq.Len(markup.InlineKeyboard[0], 2)

	played := markup.InlineKeyboard[0][0]
	rq.Equal("✅ Played", played.Text)
	rq.Equal("played:b1", played.CallbackData)

	skipped := markup.InlineKeyboard[0][1]
	rq.Equal("🚫 Skipped", skipped.Text)
	rq.Equal("skipped:b1", skipped.CallbackData)
}
