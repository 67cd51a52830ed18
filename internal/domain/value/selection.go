package value

import (
	"strconv"
	"strings"
)

// Direction is the side of a totals-style market a selection bets on.
type Direction string

const (
	DirectionOver  Direction = "over"
	DirectionUnder Direction = "under"
	// DirectionNone marks selections without an over/under threshold,
	// e.g. moneyline picks or handicap legs.
	DirectionNone Direction = ""
)

// Selection is the display text of the outcome a quote prices, e.g.
// "Over 9.5", "Under 2.5" or a team name for moneyline markets.
type Selection string

func (s Selection) String() string {
	return string(s)
}

// Direction extracts the over/under side from the selection text.
func (s Selection) Direction() Direction {
	lower := strings.ToLower(strings.TrimSpace(string(s)))

	switch {
	case strings.HasPrefix(lower, "over"):
		return DirectionOver
	case strings.HasPrefix(lower, "under"):
		return DirectionUnder
	default:
		return DirectionNone
	}
}

// Line extracts the numeric threshold from the selection text. The second
// return is false for selections that carry no threshold.
func (s Selection) Line() (float64, bool) {
	fields := strings.Fields(string(s))

	for i := len(fields) - 1; i >= 0; i-- {
		token := strings.TrimPrefix(fields[i], "+")

		line, err := strconv.ParseFloat(token, 64)
		if err == nil {
			return line, true
		}
	}

	return 0, false
}

// Directional reports whether the selection can be graded against a single
// final statistic.
func (s Selection) Directional() bool {
	return s.Direction() != DirectionNone
}
