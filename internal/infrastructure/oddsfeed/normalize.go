package oddsfeed

import (
	"fmt"
	"strconv"
	"strings"

	"valuebet/internal/domain/entity"
	"valuebet/internal/domain/value"
	"valuebet/pkg/oddsmath"
)

// marketNames maps feed market keys to the canonical market names stored on
// quotes and bets. Unknown keys pass through verbatim.
var marketNames = map[string]string{ //nolint:gochecknoglobals
	"totals":                    "Total Goals",
	"alternate_totals":          "Total Goals",
	"totals_corners":            "Total Corners",
	"alternate_totals_corners":  "Total Corners",
	"spreads":                   "Asian Handicap",
	"alternate_spreads":         "Asian Handicap",
	"spreads_corners":           "Asian Handicap Corners",
	"alternate_spreads_corners": "Asian Handicap Corners",
	"player_shots":              "Player Shots",
	"player_shots_on_target":    "Player Shots On Target",
}

func marketDisplayName(key string) string {
	if name, ok := marketNames[key]; ok {
		return name
	}

	return key
}

func isSpread(marketKey string) bool {
	return strings.Contains(marketKey, "spreads")
}

func normalizeEvent(event eventDTO, sportKey string) FixtureOdds {
	fixture := entity.Fixture{
		ID:       event.ID,
		Sport:    sportKey,
		League:   event.SportTitle,
		HomeTeam: event.HomeTeam,
		AwayTeam: event.AwayTeam,
		Kickoff:  event.CommenceTime,
	}

	var quotes []entity.Quote

	for _, book := range event.Bookmakers {
		for _, market := range book.Markets {
			observedAt := market.LastUpdate
			if observedAt.IsZero() {
				observedAt = book.LastUpdate
			}

			for _, outcome := range market.Outcomes {
				quotes = append(quotes, entity.Quote{
					Source:      book.Key,
					Market:      marketDisplayName(market.Key),
					Selection:   selectionText(market.Key, outcome),
					Line:        groupingLine(market.Key, outcome, event.HomeTeam),
					DecimalOdds: decimalPrice(outcome.Price),
					ObservedAt:  observedAt,
				})
			}
		}
	}

	return FixtureOdds{Fixture: fixture, Quotes: quotes}
}

// selectionText renders the outcome the way it is stored and displayed:
// "Over 9.5" for totals, "Arsenal -1.5" for handicap legs, the bare name
// otherwise.
func selectionText(marketKey string, outcome outcomeDTO) value.Selection {
	if outcome.Point == 0 && !isSpread(marketKey) {
		return value.Selection(outcome.Name)
	}

	if isSpread(marketKey) {
		return value.Selection(fmt.Sprintf("%s %+g", outcome.Name, outcome.Point))
	}

	return value.Selection(outcome.Name + " " + strconv.FormatFloat(outcome.Point, 'f', -1, 64))
}

// groupingLine is the line both sides of one market share. Handicap legs
// carry mirrored points (home -1.5, away +1.5), so the away leg flips sign
// to land in the home-perspective group.
func groupingLine(marketKey string, outcome outcomeDTO, homeTeam string) float64 {
	if isSpread(marketKey) && outcome.Name != homeTeam {
		return -outcome.Point
	}

	return outcome.Point
}

// decimalPrice keeps decimal prices as is and converts American ones.
// The feed is asked for decimal, but some books still answer American.
func decimalPrice(price float64) float64 {
	if price >= 100 || price <= -100 {
		return oddsmath.AmericanToDecimal(price)
	}

	return price
}
