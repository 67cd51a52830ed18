package entity

import (
	"fmt"
	"time"

	"valuebet/internal/domain/value"
)

// Quote is one bookmaker's price for one selection, immutable once captured.
// A newer observation of the same selection is a new Quote.
type Quote struct {
	Source      string          `json:"source"`
	Market      string          `json:"market"`
	Selection   value.Selection `json:"selection"`
	Line        float64         `json:"line"` // 0 for markets without a threshold
	DecimalOdds float64         `json:"decimal_odds"`
	ObservedAt  time.Time       `json:"observed_at"`
}

// Fresh reports whether the quote was observed within the given window.
func (q Quote) Fresh(now time.Time, window time.Duration) bool {
	if q.ObservedAt.IsZero() {
		return false
	}

	return now.Sub(q.ObservedAt) <= window
}

// MarketKey groups quotes that price the same outcome set of one fixture.
type MarketKey struct {
	FixtureID string  `json:"fixture_id"`
	Market    string  `json:"market"`
	Line      float64 `json:"line"`
}

func (k MarketKey) String() string {
	return fmt.Sprintf("%s|%s|%g", k.FixtureID, k.Market, k.Line)
}

// FairValue is the devigged price per selection for one market key. It is
// recomputed from the live quote set every cycle and never persisted.
type FairValue struct {
	Key     MarketKey
	Odds    map[value.Selection]float64
	Samples map[value.Selection]int // books that contributed per selection
}
