package entity

import (
	"strings"
	"time"

	"valuebet/internal/domain/value"
)

// Opportunity is a bookmaker quote priced above fair value. Produced by the
// detector, read-only afterward.
type Opportunity struct {
	ID          string          `json:"id"`
	FixtureID   string          `json:"fixture_id"`
	Fixture     string          `json:"fixture"`
	League      string          `json:"league"`
	Kickoff     time.Time       `json:"kickoff"`
	Market      string          `json:"market"`
	Selection   value.Selection `json:"selection"`
	Line        float64         `json:"line"`
	Bookmaker   string          `json:"bookmaker"`
	QuotedOdds  float64         `json:"quoted_odds"`
	FairOdds    float64         `json:"fair_odds"`
	EdgePercent float64         `json:"edge_percent"`
	ObservedAt  time.Time       `json:"observed_at"`
}

// DedupeKey identifies the tuple at most one tracked bet may exist for.
func (o Opportunity) DedupeKey() string {
	return BetDedupeKey(o.FixtureID, o.Market, o.Selection, o.Bookmaker)
}

// MarketKey returns the grouping key the opportunity was detected under.
func (o Opportunity) MarketKey() MarketKey {
	return MarketKey{FixtureID: o.FixtureID, Market: o.Market, Line: o.Line}
}

// BetDedupeKey builds the (fixture, market, selection, bookmaker) dedupe key
// shared by opportunities, queue entries and tracked bets.
func BetDedupeKey(fixtureID, market string, selection value.Selection, bookmaker string) string {
	return strings.Join([]string{fixtureID, market, selection.String(), bookmaker}, "|")
}
