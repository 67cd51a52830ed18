package notifier

import (
	"fmt"
	"strings"

	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/value"
)

// bookIcons mark the bettable books in alerts.
var bookIcons = map[string]string{ //nolint:gochecknoglobals
	"betsson":  "🔷",
	"leovegas": "🟡",
	"unibet":   "🟢",
	"betano":   "🟠",
}

// FormatAlert renders the dispatch message for a fresh bet.
func FormatAlert(bet entity.TrackedBet) string {
	kickoff := "TBD"
	if !bet.Kickoff.IsZero() {
		kickoff = bet.Kickoff.Format("02.01 15:04")
	}

	return fmt.Sprintf(`⚠️ <b>Value bet found</b> ⚠️
%s <b>%.1f%%</b>

%s <b>%s</b>

⚽ %s
🏆 %s | %s

Market: <b>%s</b>
Pick: %s <b>%s</b>
Odds: <b>%.2f</b> (fair %.2f)
Stake: <b>%.2f</b>`,
		edgeBar(bet.EdgePercent), bet.EdgePercent,
		bookIcon(bet.Bookmaker), strings.ToUpper(bet.Bookmaker),
		bet.Fixture,
		bet.League, kickoff,
		bet.Market,
		pickArrow(bet.Selection), bet.Selection,
		bet.Odds, bet.FairOdds,
		bet.Stake,
	)
}

// FormatOutcome renders the message a terminal bet's alert is edited into.
func FormatOutcome(bet entity.TrackedBet) string {
	header := FormatAlert(bet)

	switch bet.Status {
	case value.StatusWon:
		return fmt.Sprintf("%s\n\n✅ <b>WON</b> %+.2f (result: %g)", header, bet.Profit, bet.ResultValue)
	case value.StatusLost:
		return fmt.Sprintf("%s\n\n❌ <b>LOST</b> %+.2f (result: %g)", header, bet.Profit, bet.ResultValue)
	case value.StatusPush:
		return fmt.Sprintf("%s\n\n➖ <b>PUSH</b> (result: %g)", header, bet.ResultValue)
	case value.StatusPlayed:
		return header + "\n\n🎯 <b>Played</b>"
	case value.StatusSkipped:
		return header + "\n\n🚫 <b>Skipped</b>"
	case value.StatusExpired:
		return header + "\n\n⌛ <b>Expired</b> (kickoff passed)"
	case value.StatusVoid:
		reason := bet.VoidReason
		if reason == "" {
			reason = "edge gone"
		}

		return fmt.Sprintf("%s\n\n♻️ <b>Voided</b>: %s", header, reason)
	default:
		return header
	}
}

// edgeBar is a ten-block progress bar, one block per 2% of edge.
func edgeBar(edge float64) string {
	filled := int(edge / 2)
	if filled > 10 {
		filled = 10
	}

	if filled < 0 {
		filled = 0
	}

	return strings.Repeat("▰", filled) + strings.Repeat("░", 10-filled)
}

func bookIcon(book string) string {
	if icon, ok := bookIcons[strings.ToLower(book)]; ok {
		return icon
	}

	return "⚪"
}

func pickArrow(selection value.Selection) string {
	switch selection.Direction() {
	case value.DirectionOver:
		return "⬆️"
	case value.DirectionUnder:
		return "⬇️"
	default:
		return "➡️"
	}
}
